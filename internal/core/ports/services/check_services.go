package services

import (
	"context"

	"github.com/labvitta/labfin/internal/core/domain"
	"github.com/labvitta/labfin/internal/dto"
)

// CheckReaderSvc defines read operations for check data
type CheckReaderSvc interface {
	// GetCheckByID retrieves a specific check by its unique identifier.
	GetCheckByID(ctx context.Context, checkID string) (*domain.Check, error)

	// ListChecks retrieves checks filtered by the given params.
	ListChecks(ctx context.Context, params dto.ListChecksParams) ([]domain.Check, error)
}

// CheckWriterSvc defines write operations for check data
type CheckWriterSvc interface {
	// RegisterCheck persists a new check in its initial ABERTO status.
	RegisterCheck(ctx context.Context, req dto.RegisterCheckRequest, actor string) (*domain.Check, error)

	// Transition applies a requested situacao change, cascading the
	// localizacao for received checks. Either the full update (fields +
	// cascade + audit entry) applies, or nothing does.
	Transition(ctx context.Context, checkID string, req dto.TransitionCheckRequest, actor string) (*domain.Check, error)

	// UpdateFields edits the check's bank/party/amount/date fields. Same
	// immutability precondition as Transition; no cascade.
	UpdateFields(ctx context.Context, checkID string, req dto.UpdateCheckRequest, actor string) (*domain.Check, error)

	// SetLocation sets the localizacao of a received check independently of
	// its situacao. Blocked once terminal.
	SetLocation(ctx context.Context, checkID string, req dto.SetCheckLocationRequest, actor string) (*domain.Check, error)
}

// CheckSvcFacade combines all check-related service interfaces
type CheckSvcFacade interface {
	CheckReaderSvc
	CheckWriterSvc
}
