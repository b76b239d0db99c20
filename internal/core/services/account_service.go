package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labvitta/labfin/internal/apperrors"
	"github.com/labvitta/labfin/internal/core/domain"
	portsrepo "github.com/labvitta/labfin/internal/core/ports/repositories"
	portssvc "github.com/labvitta/labfin/internal/core/ports/services"
	"github.com/labvitta/labfin/internal/dto"
	"github.com/labvitta/labfin/internal/middleware"
)

var (
	ErrAccountAmountNotPositive = errors.New("account original amount must be positive")
	ErrPaymentAmountNotPositive = errors.New("payment amount must be positive")
	ErrAccountCancelled         = errors.New("account is cancelled")
)

// accountService manages payable/receivable accounts. The aggregate status
// is never stored; every read derives it from the payment list and a fresh
// clock reading, so a record can become VENCIDO purely by the passage of
// time.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// RegisterAccount persists a new account with a generated sequential code.
func (s *accountService) RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest, actor string) (*domain.LedgerAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.ValorOriginal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAccountAmountNotPositive)
	}

	now := s.now()
	code, err := s.accountRepo.NextAccountCode(ctx, req.Kind, now.Year())
	if err != nil {
		logger.Error("Failed to reserve account code", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reserve account code: %w", err)
	}

	account := domain.LedgerAccount{
		AccountID:        uuid.NewString(),
		Code:             code,
		Kind:             req.Kind,
		Description:      req.Description,
		CounterpartName:  req.CounterpartName,
		CounterpartTaxID: req.CounterpartTaxID,
		ValorOriginal:    req.ValorOriginal,
		Pagamentos:       []domain.AccountPayment{},
		DataVencimento:   req.DataVencimento,
		Historico: domain.History{
			domain.NewAuditEntry(now, actor, "", domain.AccountStatusAberto.String(), ""),
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account registered", slog.String("account_id", account.AccountID), slog.String("code", code))
	return &account, nil
}

// RecordPayment appends an immutable payment to the account. Over-payment
// is not rejected here: the status clamps to PAGO and the negative
// remainder stays visible, unlike the visit ledger which refuses it.
func (s *accountService) RecordPayment(ctx context.Context, accountID string, req dto.RecordAccountPaymentRequest, actor string) (*domain.LedgerAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	account := stored.Clone()

	if account.Cancelado {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAccountCancelled)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPaymentAmountNotPositive)
	}
	if req.Method == "" {
		return nil, fmt.Errorf("%w: payment method is required", apperrors.ErrValidation)
	}

	now := s.now()
	paymentDate := now
	if req.Date != nil {
		paymentDate = *req.Date
	}

	fromStatus := account.Situacao(now)
	account.Pagamentos = append(account.Pagamentos, domain.AccountPayment{
		PaymentID: uuid.NewString(),
		Date:      paymentDate,
		Amount:    req.Amount,
		Method:    req.Method,
		Actor:     actor,
		Note:      req.Note,
	})
	toStatus := account.Situacao(now)

	account.Historico = account.Historico.Appended(
		domain.NewAuditEntry(now, actor, fromStatus.String(), toStatus.String(), req.Note),
	)
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actor

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		logger.Error("Failed to persist account payment", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account payment recorded",
		slog.String("account_id", accountID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", toStatus.String()),
	)
	return &account, nil
}

// CancelAccount applies the manual CANCELADO override.
func (s *accountService) CancelAccount(ctx context.Context, accountID string, req dto.CancelAccountRequest, actor string) (*domain.LedgerAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	account := stored.Clone()

	if account.Cancelado {
		return nil, fmt.Errorf("%w: account is already cancelled", apperrors.ErrConflict)
	}

	now := s.now()
	fromStatus := account.Situacao(now)
	account.Cancelado = true
	account.Historico = account.Historico.Appended(
		domain.NewAuditEntry(now, actor, fromStatus.String(), domain.AccountStatusCancelado.String(), req.Note),
	)
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actor

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		logger.Error("Failed to persist account cancellation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account cancelled", slog.String("account_id", accountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves accounts filtered by kind and derived status. The
// status filter is evaluated against one clock reading taken here.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.LedgerAccount, error) {
	if params.Kind != "" && !params.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, params.Kind)
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, params.Kind, params.Limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if params.Status == "" {
		return accounts, nil
	}

	now := s.now()
	filtered := make([]domain.LedgerAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.Situacao(now) == params.Status {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}
