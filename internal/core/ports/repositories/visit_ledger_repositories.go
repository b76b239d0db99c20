package repositories

import (
	"context"

	"github.com/labvitta/labfin/internal/core/domain"
)

// VisitLedgerReader defines read operations for visit ledger data
type VisitLedgerReader interface {
	// FindLedgerByID retrieves a specific ledger by its unique identifier.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.VisitLedger, error)

	// FindLedgerByVisitID retrieves the ledger owned by a visit.
	FindLedgerByVisitID(ctx context.Context, visitID string) (*domain.VisitLedger, error)
}

// VisitLedgerWriter defines write operations for visit ledger data
type VisitLedgerWriter interface {
	// SaveLedger persists a new, empty ledger.
	SaveLedger(ctx context.Context, ledger domain.VisitLedger) error

	// UpdateLedger replaces the stored ledger with the given state.
	UpdateLedger(ctx context.Context, ledger domain.VisitLedger) error
}

// VisitLedgerRepositoryFacade combines all ledger-related repository interfaces
type VisitLedgerRepositoryFacade interface {
	VisitLedgerReader
	VisitLedgerWriter
}
