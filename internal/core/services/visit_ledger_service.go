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
	ErrEntryAmountNotPositive = errors.New("entry amount must be positive")
	ErrDiscountNegative       = errors.New("entry discount cannot be negative")
	ErrDiscountExceedsAmount  = errors.New("entry discount cannot exceed the entry amount")
	ErrLedgerTotalNegative    = errors.New("ledger total cannot be negative")
	ErrOperadoraRequired      = errors.New("operadora is required for card payments")
	ErrChequeDetailsRequired  = errors.New("emitente, banco and numero are required for cheque payments")
	ErrMotivoRequired         = errors.New("motivo is required for discount entries")
)

// visitLedgerService maintains the ordered payment list for one visit,
// enforcing the balance invariants and supporting reversal without
// deletion.
type visitLedgerService struct {
	ledgerRepo portsrepo.VisitLedgerRepositoryFacade
}

// NewVisitLedgerService creates a new VisitLedgerService.
func NewVisitLedgerService(ledgerRepo portsrepo.VisitLedgerRepositoryFacade) portssvc.VisitLedgerSvcFacade {
	return &visitLedgerService{ledgerRepo: ledgerRepo}
}

// Ensure visitLedgerService implements the portssvc.VisitLedgerSvcFacade interface
var _ portssvc.VisitLedgerSvcFacade = (*visitLedgerService)(nil)

// CreateLedger creates the empty payment ledger owned by a visit. A visit
// owns exactly one ledger for its entire life.
func (s *visitLedgerService) CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, actor string) (*domain.VisitLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ValorTotal.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrLedgerTotalNegative)
	}

	existing, err := s.ledgerRepo.FindLedgerByVisitID(ctx, req.VisitID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing ledger", slog.String("error", err.Error()), slog.String("visit_id", req.VisitID))
		return nil, fmt.Errorf("failed to check for existing ledger: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: visit %s already owns ledger %s", apperrors.ErrDuplicate, req.VisitID, existing.LedgerID)
	}

	now := time.Now().UTC()
	ledger := domain.VisitLedger{
		LedgerID:    uuid.NewString(),
		VisitID:     req.VisitID,
		ValorTotal:  req.ValorTotal,
		Entries:     []domain.PaymentEntry{},
		NextEntryID: 1,
		Historico: domain.History{
			domain.NewAuditEntry(now, actor, "", "ledger created", ""),
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		logger.Error("Failed to save ledger", slog.String("error", err.Error()), slog.String("visit_id", req.VisitID))
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}

	logger.Info("Visit ledger created", slog.String("ledger_id", ledger.LedgerID), slog.String("visit_id", req.VisitID))
	return &ledger, nil
}

// validateEntry checks the structural rules shared by add and edit: a
// positive amount, a sane discount and the method-specific required fields.
func validateEntry(entry *domain.PaymentEntry) error {
	if entry.Valor.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryAmountNotPositive)
	}
	if entry.Desconto.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDiscountNegative)
	}
	if entry.Desconto.GreaterThan(entry.Valor) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDiscountExceedsAmount)
	}
	if !entry.Method.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, entry.Method)
	}

	switch entry.Method {
	case domain.PaymentCredito, domain.PaymentDebito:
		if entry.Operadora == "" {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrOperadoraRequired)
		}
	case domain.PaymentCheque:
		if entry.Cheque == nil || entry.Cheque.Emitente == "" || entry.Cheque.Banco == "" || entry.Cheque.Numero == "" {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrChequeDetailsRequired)
		}
	case domain.PaymentDesconto:
		if entry.Motivo == "" {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrMotivoRequired)
		}
	}
	return nil
}

func chequeFromPayload(p *dto.ChequeDetailsPayload) *domain.ChequeDetails {
	if p == nil {
		return nil
	}
	cheque := &domain.ChequeDetails{
		Emitente: p.Emitente,
		Banco:    p.Banco,
		Agencia:  p.Agencia,
		Conta:    p.Conta,
		Numero:   p.Numero,
	}
	if p.DataCompensacao != nil {
		d := *p.DataCompensacao
		cheque.DataCompensacao = &d
	}
	return cheque
}

// AddEntry appends a payment entry with the next monotonic id. Unlike the
// account aggregator, a single entry may never push the pending balance
// negative.
func (s *visitLedgerService) AddEntry(ctx context.Context, ledgerID string, req dto.AddLedgerEntryRequest, actor string) (*domain.VisitLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}
	ledger := stored.Clone()

	now := time.Now().UTC()
	entryDate := now
	if req.Date != nil {
		entryDate = *req.Date
	}

	entry := domain.PaymentEntry{
		Date:        entryDate,
		Valor:       req.Valor,
		Desconto:    req.Desconto,
		Method:      req.Method,
		Operadora:   req.Operadora,
		Cheque:      chequeFromPayload(req.Cheque),
		Motivo:      req.Motivo,
		Observacoes: req.Observacoes,
		Status:      domain.EntryNormal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	if err := validateEntry(&entry); err != nil {
		return nil, err
	}
	if entry.Net().GreaterThan(ledger.ValorPendente()) {
		return nil, fmt.Errorf("%w: entry of %s against pending balance of %s",
			apperrors.ErrOverpayment, entry.Net().String(), ledger.ValorPendente().String())
	}

	entry.EntryID = ledger.NextEntryID
	ledger.NextEntryID++
	ledger.Entries = append(ledger.Entries, entry)
	ledger.Historico = ledger.Historico.Appended(
		domain.NewAuditEntry(now, actor, "", string(domain.EntryNormal), fmt.Sprintf("entry %d added", entry.EntryID)),
	)
	ledger.LastUpdatedAt = now
	ledger.LastUpdatedBy = actor

	if err := s.ledgerRepo.UpdateLedger(ctx, ledger); err != nil {
		logger.Error("Failed to persist ledger entry", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("failed to update ledger: %w", err)
	}

	logger.Info("Ledger entry added",
		slog.String("ledger_id", ledgerID),
		slog.Int64("entry_id", entry.EntryID),
		slog.String("pending", ledger.ValorPendente().String()),
	)
	return &ledger, nil
}

// EditEntry replaces the editable fields of an entry in place. Reversed
// entries are immutable; the id and situacao are not editable here.
func (s *visitLedgerService) EditEntry(ctx context.Context, ledgerID string, entryID int64, req dto.EditLedgerEntryRequest, actor string) (*domain.VisitLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}
	ledger := stored.Clone()

	idx := ledger.FindEntry(entryID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: entry %d", apperrors.ErrNotFound, entryID)
	}
	if ledger.Entries[idx].Status == domain.EntryEstornado {
		return nil, fmt.Errorf("%w: entry %d", apperrors.ErrImmutableEntry, entryID)
	}

	entry := ledger.Entries[idx]
	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.Valor != nil {
		entry.Valor = *req.Valor
	}
	if req.Desconto != nil {
		entry.Desconto = *req.Desconto
	}
	if req.Method != nil {
		entry.Method = *req.Method
	}
	if req.Operadora != nil {
		entry.Operadora = *req.Operadora
	}
	if req.Cheque != nil {
		entry.Cheque = chequeFromPayload(req.Cheque)
	}
	if req.Motivo != nil {
		entry.Motivo = *req.Motivo
	}
	if req.Observacoes != nil {
		entry.Observacoes = *req.Observacoes
	}
	if err := validateEntry(&entry); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actor
	ledger.Entries[idx] = entry
	ledger.Historico = ledger.Historico.Appended(
		domain.NewAuditEntry(now, actor, string(domain.EntryNormal), string(domain.EntryNormal), fmt.Sprintf("entry %d edited", entryID)),
	)
	ledger.LastUpdatedAt = now
	ledger.LastUpdatedBy = actor

	if err := s.ledgerRepo.UpdateLedger(ctx, ledger); err != nil {
		logger.Error("Failed to persist ledger entry edit", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("failed to update ledger: %w", err)
	}

	logger.Info("Ledger entry edited", slog.String("ledger_id", ledgerID), slog.Int64("entry_id", entryID))
	return &ledger, nil
}

// ReverseEntry marks an entry ESTORNADO. The entry stays in the list so
// totals at a point in time remain reconstructible; double reversal is a
// caller bug surfaced as an error, never silent success.
func (s *visitLedgerService) ReverseEntry(ctx context.Context, ledgerID string, entryID int64, req dto.ReverseLedgerEntryRequest, actor string) (*domain.VisitLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}
	ledger := stored.Clone()

	idx := ledger.FindEntry(entryID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: entry %d", apperrors.ErrNotFound, entryID)
	}
	if ledger.Entries[idx].Status == domain.EntryEstornado {
		return nil, fmt.Errorf("%w: entry %d", apperrors.ErrAlreadyReversed, entryID)
	}

	now := time.Now().UTC()
	ledger.Entries[idx].Status = domain.EntryEstornado
	ledger.Entries[idx].LastUpdatedAt = now
	ledger.Entries[idx].LastUpdatedBy = actor
	ledger.Historico = ledger.Historico.Appended(
		domain.NewAuditEntry(now, actor, string(domain.EntryNormal), string(domain.EntryEstornado), fmt.Sprintf("entry %d reversed: %s", entryID, req.Note)),
	)
	ledger.LastUpdatedAt = now
	ledger.LastUpdatedBy = actor

	if err := s.ledgerRepo.UpdateLedger(ctx, ledger); err != nil {
		logger.Error("Failed to persist ledger reversal", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("failed to update ledger: %w", err)
	}

	logger.Info("Ledger entry reversed",
		slog.String("ledger_id", ledgerID),
		slog.Int64("entry_id", entryID),
		slog.String("pending", ledger.ValorPendente().String()),
	)
	return &ledger, nil
}

// GetLedgerByID retrieves a specific ledger.
func (s *visitLedgerService) GetLedgerByID(ctx context.Context, ledgerID string) (*domain.VisitLedger, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find ledger by ID", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		}
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}
	return ledger, nil
}

// GetLedgerByVisitID retrieves the ledger owned by a visit.
func (s *visitLedgerService) GetLedgerByVisitID(ctx context.Context, visitID string) (*domain.VisitLedger, error) {
	ledger, err := s.ledgerRepo.FindLedgerByVisitID(ctx, visitID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find ledger by visit ID", slog.String("error", err.Error()), slog.String("visit_id", visitID))
		}
		return nil, fmt.Errorf("failed to find ledger for visit %s: %w", visitID, err)
	}
	return ledger, nil
}
