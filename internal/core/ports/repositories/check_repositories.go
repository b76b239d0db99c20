package repositories

import (
	"context"

	"github.com/labvitta/labfin/internal/core/domain"
)

// CheckReader defines read operations for check data
type CheckReader interface {
	// FindCheckByID retrieves a specific check by its unique identifier.
	FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error)

	// ListChecks retrieves checks, optionally filtered by kind and status.
	// Empty filter values match everything.
	ListChecks(ctx context.Context, kind domain.CheckKind, status domain.CheckStatus, limit int, offset int) ([]domain.Check, error)
}

// CheckWriter defines write operations for check data
type CheckWriter interface {
	// SaveCheck persists a new check.
	SaveCheck(ctx context.Context, check domain.Check) error

	// UpdateCheck replaces the stored check with the given state. The full
	// update (fields + cascade + audit entry) is applied atomically.
	UpdateCheck(ctx context.Context, check domain.Check) error
}

// CheckRepositoryFacade combines all check-related repository interfaces
type CheckRepositoryFacade interface {
	CheckReader
	CheckWriter
}
