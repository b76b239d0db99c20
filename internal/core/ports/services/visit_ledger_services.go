package services

import (
	"context"

	"github.com/labvitta/labfin/internal/core/domain"
	"github.com/labvitta/labfin/internal/dto"
)

// VisitLedgerReaderSvc defines read operations for visit ledgers
type VisitLedgerReaderSvc interface {
	// GetLedgerByID retrieves a specific ledger by its unique identifier.
	GetLedgerByID(ctx context.Context, ledgerID string) (*domain.VisitLedger, error)

	// GetLedgerByVisitID retrieves the ledger owned by a visit.
	GetLedgerByVisitID(ctx context.Context, visitID string) (*domain.VisitLedger, error)
}

// VisitLedgerWriterSvc defines write operations for visit ledgers
type VisitLedgerWriterSvc interface {
	// CreateLedger creates the empty ledger owned by a visit.
	CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, actor string) (*domain.VisitLedger, error)

	// AddEntry appends a payment entry with the next monotonic id. A single
	// entry may never push the pending balance negative.
	AddEntry(ctx context.Context, ledgerID string, req dto.AddLedgerEntryRequest, actor string) (*domain.VisitLedger, error)

	// EditEntry replaces the editable fields of an entry in place. The id
	// and situacao are not editable; reversed entries reject edits.
	EditEntry(ctx context.Context, ledgerID string, entryID int64, req dto.EditLedgerEntryRequest, actor string) (*domain.VisitLedger, error)

	// ReverseEntry marks an entry ESTORNADO without removing it from the
	// list. Double reversal is rejected, not silently accepted.
	ReverseEntry(ctx context.Context, ledgerID string, entryID int64, req dto.ReverseLedgerEntryRequest, actor string) (*domain.VisitLedger, error)
}

// VisitLedgerSvcFacade combines all ledger-related service interfaces
type VisitLedgerSvcFacade interface {
	VisitLedgerReaderSvc
	VisitLedgerWriterSvc
}
