// Package memory provides map-backed repository adapters. The engine's
// authoritative state is in-memory; adapters hand out deep copies so stored
// state can only change through a completed service operation.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/labvitta/labfin/internal/apperrors"
	"github.com/labvitta/labfin/internal/core/domain"
	portsrepo "github.com/labvitta/labfin/internal/core/ports/repositories"
)

// CheckRepository is an in-memory adapter for check storage.
type CheckRepository struct {
	mu     sync.RWMutex
	checks map[string]domain.Check
	order  []string // insertion order for stable listings
}

// NewCheckRepository creates an empty in-memory check repository.
func NewCheckRepository() *CheckRepository {
	return &CheckRepository{checks: make(map[string]domain.Check)}
}

// Ensure CheckRepository implements the repository facade
var _ portsrepo.CheckRepositoryFacade = (*CheckRepository)(nil)

// SaveCheck persists a new check.
func (r *CheckRepository) SaveCheck(_ context.Context, check domain.Check) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checks[check.CheckID]; exists {
		return fmt.Errorf("%w: check %s", apperrors.ErrDuplicate, check.CheckID)
	}
	r.checks[check.CheckID] = check.Clone()
	r.order = append(r.order, check.CheckID)
	return nil
}

// UpdateCheck replaces the stored check with the given state.
func (r *CheckRepository) UpdateCheck(_ context.Context, check domain.Check) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checks[check.CheckID]; !exists {
		return fmt.Errorf("%w: check %s", apperrors.ErrNotFound, check.CheckID)
	}
	r.checks[check.CheckID] = check.Clone()
	return nil
}

// FindCheckByID retrieves a copy of a check.
func (r *CheckRepository) FindCheckByID(_ context.Context, checkID string) (*domain.Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	check, exists := r.checks[checkID]
	if !exists {
		return nil, fmt.Errorf("%w: check %s", apperrors.ErrNotFound, checkID)
	}
	out := check.Clone()
	return &out, nil
}

// ListChecks retrieves checks in insertion order, optionally filtered by
// kind and status.
func (r *CheckRepository) ListChecks(_ context.Context, kind domain.CheckKind, status domain.CheckStatus, limit int, offset int) ([]domain.Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	matched := 0
	out := make([]domain.Check, 0, limit)
	for _, id := range r.order {
		check := r.checks[id]
		if kind != "" && check.Kind != kind {
			continue
		}
		if status != "" && check.Status != status {
			continue
		}
		if matched < offset {
			matched++
			continue
		}
		matched++
		out = append(out, check.Clone())
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
