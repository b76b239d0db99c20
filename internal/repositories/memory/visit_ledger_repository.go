package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/labvitta/labfin/internal/apperrors"
	"github.com/labvitta/labfin/internal/core/domain"
	portsrepo "github.com/labvitta/labfin/internal/core/ports/repositories"
)

// VisitLedgerRepository is an in-memory adapter for visit ledger storage.
type VisitLedgerRepository struct {
	mu      sync.RWMutex
	ledgers map[string]domain.VisitLedger
	byVisit map[string]string // visitID -> ledgerID
}

// NewVisitLedgerRepository creates an empty in-memory ledger repository.
func NewVisitLedgerRepository() *VisitLedgerRepository {
	return &VisitLedgerRepository{
		ledgers: make(map[string]domain.VisitLedger),
		byVisit: make(map[string]string),
	}
}

// Ensure VisitLedgerRepository implements the repository facade
var _ portsrepo.VisitLedgerRepositoryFacade = (*VisitLedgerRepository)(nil)

// SaveLedger persists a new, empty ledger. A visit owns at most one ledger.
func (r *VisitLedgerRepository) SaveLedger(_ context.Context, ledger domain.VisitLedger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ledgers[ledger.LedgerID]; exists {
		return fmt.Errorf("%w: ledger %s", apperrors.ErrDuplicate, ledger.LedgerID)
	}
	if _, exists := r.byVisit[ledger.VisitID]; exists {
		return fmt.Errorf("%w: visit %s already owns a ledger", apperrors.ErrDuplicate, ledger.VisitID)
	}
	r.ledgers[ledger.LedgerID] = ledger.Clone()
	r.byVisit[ledger.VisitID] = ledger.LedgerID
	return nil
}

// UpdateLedger replaces the stored ledger with the given state.
func (r *VisitLedgerRepository) UpdateLedger(_ context.Context, ledger domain.VisitLedger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ledgers[ledger.LedgerID]; !exists {
		return fmt.Errorf("%w: ledger %s", apperrors.ErrNotFound, ledger.LedgerID)
	}
	r.ledgers[ledger.LedgerID] = ledger.Clone()
	return nil
}

// FindLedgerByID retrieves a copy of a ledger.
func (r *VisitLedgerRepository) FindLedgerByID(_ context.Context, ledgerID string) (*domain.VisitLedger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ledger, exists := r.ledgers[ledgerID]
	if !exists {
		return nil, fmt.Errorf("%w: ledger %s", apperrors.ErrNotFound, ledgerID)
	}
	out := ledger.Clone()
	return &out, nil
}

// FindLedgerByVisitID retrieves a copy of the ledger owned by a visit.
func (r *VisitLedgerRepository) FindLedgerByVisitID(_ context.Context, visitID string) (*domain.VisitLedger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ledgerID, exists := r.byVisit[visitID]
	if !exists {
		return nil, fmt.Errorf("%w: ledger for visit %s", apperrors.ErrNotFound, visitID)
	}
	ledger := r.ledgers[ledgerID]
	out := ledger.Clone()
	return &out, nil
}
