package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/labvitta/labfin/internal/apperrors"
	"github.com/labvitta/labfin/internal/core/domain"
	portsrepo "github.com/labvitta/labfin/internal/core/ports/repositories"
)

// AccountRepository is an in-memory adapter for payable/receivable storage.
// It also owns the per-kind, per-year code sequences (CP-YYYY-NNNN).
type AccountRepository struct {
	mu        sync.RWMutex
	accounts  map[string]domain.LedgerAccount
	order     []string
	sequences map[string]int // "CP-2026" -> last issued number
}

// NewAccountRepository creates an empty in-memory account repository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts:  make(map[string]domain.LedgerAccount),
		sequences: make(map[string]int),
	}
}

// Ensure AccountRepository implements the repository facade
var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

// NextAccountCode reserves the next sequential code for the kind and year.
func (r *AccountRepository) NextAccountCode(_ context.Context, kind domain.LedgerAccountKind, year int) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s-%d", kind.CodePrefix(), year)
	r.sequences[key]++
	return fmt.Sprintf("%s-%04d", key, r.sequences[key]), nil
}

// SaveAccount persists a new account.
func (r *AccountRepository) SaveAccount(_ context.Context, account domain.LedgerAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	r.accounts[account.AccountID] = account.Clone()
	r.order = append(r.order, account.AccountID)
	return nil
}

// UpdateAccount replaces the stored account with the given state.
func (r *AccountRepository) UpdateAccount(_ context.Context, account domain.LedgerAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.AccountID]; !exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountID)
	}
	r.accounts[account.AccountID] = account.Clone()
	return nil
}

// FindAccountByID retrieves a copy of an account.
func (r *AccountRepository) FindAccountByID(_ context.Context, accountID string) (*domain.LedgerAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[accountID]
	if !exists {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	out := account.Clone()
	return &out, nil
}

// ListAccounts retrieves accounts in insertion order, optionally filtered
// by kind.
func (r *AccountRepository) ListAccounts(_ context.Context, kind domain.LedgerAccountKind, limit int, offset int) ([]domain.LedgerAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	matched := 0
	out := make([]domain.LedgerAccount, 0, limit)
	for _, id := range r.order {
		account := r.accounts[id]
		if kind != "" && account.Kind != kind {
			continue
		}
		if matched < offset {
			matched++
			continue
		}
		matched++
		out = append(out, account.Clone())
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
