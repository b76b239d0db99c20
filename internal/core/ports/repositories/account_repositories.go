package repositories

import (
	"context"

	"github.com/labvitta/labfin/internal/core/domain"
)

// AccountReader defines read operations for payable/receivable account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// ListAccounts retrieves accounts, optionally filtered by kind. Empty
	// filter values match everything. Status is derived, never stored, so
	// status filtering happens in the service with a fresh clock reading.
	ListAccounts(ctx context.Context, kind domain.LedgerAccountKind, limit int, offset int) ([]domain.LedgerAccount, error)
}

// AccountWriter defines write operations for payable/receivable account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.LedgerAccount) error

	// UpdateAccount replaces the stored account with the given state.
	UpdateAccount(ctx context.Context, account domain.LedgerAccount) error

	// NextAccountCode reserves the next sequential code for the kind and
	// year, e.g. CP-2026-0001.
	NextAccountCode(ctx context.Context, kind domain.LedgerAccountKind, year int) (string, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
