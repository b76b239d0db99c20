package services

import (
	"context"

	"github.com/labvitta/labfin/internal/core/domain"
	"github.com/labvitta/labfin/internal/dto"
)

// AccountReaderSvc defines read operations for payable/receivable accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// ListAccounts retrieves accounts filtered by the given params. The
	// status filter is applied against a status derived with a fresh clock
	// reading, never a cached one.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.LedgerAccount, error)
}

// AccountWriterSvc defines write operations for payable/receivable accounts
type AccountWriterSvc interface {
	// RegisterAccount persists a new account with a generated sequential
	// code (CP-YYYY-NNNN / CR-YYYY-NNNN).
	RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest, actor string) (*domain.LedgerAccount, error)

	// RecordPayment appends an immutable payment to the account. There is
	// no line-item reversal on accounts; corrections happen at the
	// aggregate cancel level.
	RecordPayment(ctx context.Context, accountID string, req dto.RecordAccountPaymentRequest, actor string) (*domain.LedgerAccount, error)

	// CancelAccount applies the manual CANCELADO override, which takes
	// priority over every derived status.
	CancelAccount(ctx context.Context, accountID string, req dto.CancelAccountRequest, actor string) (*domain.LedgerAccount, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
