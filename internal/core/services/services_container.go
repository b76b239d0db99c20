package services

import (
	portsrepo "github.com/labvitta/labfin/internal/core/ports/repositories"
	portssvc "github.com/labvitta/labfin/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Check:   NewCheckService(repos.CheckRepo),
		Account: NewAccountService(repos.AccountRepo),
		Ledger:  NewVisitLedgerService(repos.LedgerRepo),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CheckSvcFacade       = (*checkService)(nil)
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.VisitLedgerSvcFacade = (*visitLedgerService)(nil)
)
