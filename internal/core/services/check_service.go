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
	ErrCheckAmountNotPositive = errors.New("check amount must be positive")
	ErrIssuedCheckLocation    = errors.New("issued checks do not carry a location")
)

// checkService drives a check through its status lifecycle, cascading the
// dependent location and blocking every mutation once terminal.
type checkService struct {
	checkRepo portsrepo.CheckRepositoryFacade
}

// NewCheckService creates a new CheckService.
func NewCheckService(checkRepo portsrepo.CheckRepositoryFacade) portssvc.CheckSvcFacade {
	return &checkService{checkRepo: checkRepo}
}

// Ensure checkService implements the portssvc.CheckSvcFacade interface
var _ portssvc.CheckSvcFacade = (*checkService)(nil)

// RegisterCheck persists a new check in its initial ABERTO status.
func (s *checkService) RegisterCheck(ctx context.Context, req dto.RegisterCheckRequest, actor string) (*domain.Check, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown check kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCheckAmountNotPositive)
	}

	location := domain.CheckLocation("")
	switch req.Kind {
	case domain.CheckReceived:
		location = domain.CheckLocationEmCaixa
		if req.Location != "" {
			if !req.Location.IsValid() {
				return nil, fmt.Errorf("%w: unknown location %q", apperrors.ErrValidation, req.Location)
			}
			location = req.Location
		}
	case domain.CheckIssued:
		if req.Location != "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrIssuedCheckLocation)
		}
	}

	now := time.Now().UTC()
	check := domain.Check{
		CheckID:    uuid.NewString(),
		Kind:       req.Kind,
		Number:     req.Number,
		BankCode:   req.BankCode,
		BankName:   req.BankName,
		Agency:     req.Agency,
		Account:    req.Account,
		PartyName:  req.PartyName,
		PartyTaxID: req.PartyTaxID,
		Amount:     req.Amount,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Status:     domain.CheckStatusAberto,
		Location:   location,
		Historico: domain.History{
			domain.NewAuditEntry(now, actor, "", domain.CheckStatusAberto.String(), req.Note),
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.checkRepo.SaveCheck(ctx, check); err != nil {
		logger.Error("Failed to save check", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save check: %w", err)
	}

	logger.Info("Check registered", slog.String("check_id", check.CheckID), slog.String("kind", string(check.Kind)))
	return &check, nil
}

// Transition validates and applies a requested situacao change. The status
// cascade on received checks is applied here, never requested by the
// caller. Either the full update (fields + cascade + audit entry) commits,
// or nothing does.
func (s *checkService) Transition(ctx context.Context, checkID string, req dto.TransitionCheckRequest, actor string) (*domain.Check, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to find check %s: %w", checkID, err)
	}
	check := stored.Clone()

	if !check.Kind.AllowsStatus(req.Status) {
		return nil, fmt.Errorf("%w: status %s is not part of the %s check lifecycle", apperrors.ErrInvalidTransition, req.Status, check.Kind)
	}
	action, reachable := domain.ActionForStatus(req.Status)
	if !reachable {
		return nil, fmt.Errorf("%w: status %s cannot be requested", apperrors.ErrInvalidTransition, req.Status)
	}
	if !check.Permits(action) {
		if check.IsTerminal() {
			return nil, fmt.Errorf("%w: check is %s", apperrors.ErrImmutableState, check.Status)
		}
		return nil, fmt.Errorf("%w: %s not permitted while %s", apperrors.ErrInvalidTransition, action, check.Status)
	}

	now := time.Now().UTC()
	fromStatus := check.Status
	check.Status = req.Status
	if check.Kind == domain.CheckReceived {
		if location, forced := domain.CascadeLocation(req.Status); forced {
			check.Location = location
		}
	}
	check.Historico = check.Historico.Appended(
		domain.NewAuditEntry(now, actor, fromStatus.String(), check.Status.String(), req.Note),
	)
	check.LastUpdatedAt = now
	check.LastUpdatedBy = actor

	if err := s.checkRepo.UpdateCheck(ctx, check); err != nil {
		logger.Error("Failed to persist check transition", slog.String("error", err.Error()), slog.String("check_id", checkID))
		return nil, fmt.Errorf("failed to update check: %w", err)
	}

	logger.Info("Check transitioned",
		slog.String("check_id", checkID),
		slog.String("from", fromStatus.String()),
		slog.String("to", check.Status.String()),
	)
	return &check, nil
}

// UpdateFields edits the check's bank/party/amount/date fields. The same
// immutability precondition as Transition applies; there is no cascade.
func (s *checkService) UpdateFields(ctx context.Context, checkID string, req dto.UpdateCheckRequest, actor string) (*domain.Check, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to find check %s: %w", checkID, err)
	}
	check := stored.Clone()

	if !check.Permits(domain.CheckActionEditar) {
		if check.IsTerminal() {
			return nil, fmt.Errorf("%w: check is %s", apperrors.ErrImmutableState, check.Status)
		}
		return nil, fmt.Errorf("%w: editing not permitted while %s", apperrors.ErrInvalidTransition, check.Status)
	}

	updated := false
	if req.Number != nil {
		check.Number = *req.Number
		updated = true
	}
	if req.BankCode != nil {
		check.BankCode = *req.BankCode
		updated = true
	}
	if req.BankName != nil {
		check.BankName = *req.BankName
		updated = true
	}
	if req.Agency != nil {
		check.Agency = *req.Agency
		updated = true
	}
	if req.Account != nil {
		check.Account = *req.Account
		updated = true
	}
	if req.PartyName != nil {
		check.PartyName = *req.PartyName
		updated = true
	}
	if req.PartyTaxID != nil {
		check.PartyTaxID = *req.PartyTaxID
		updated = true
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCheckAmountNotPositive)
		}
		check.Amount = *req.Amount
		updated = true
	}
	if req.IssueDate != nil {
		check.IssueDate = *req.IssueDate
		updated = true
	}
	if req.DueDate != nil {
		due := *req.DueDate
		check.DueDate = &due
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for check update", slog.String("check_id", checkID))
		return &check, nil
	}

	now := time.Now().UTC()
	note := req.Note
	if note == "" {
		note = "fields updated"
	}
	check.Historico = check.Historico.Appended(
		domain.NewAuditEntry(now, actor, check.Status.String(), check.Status.String(), note),
	)
	check.LastUpdatedAt = now
	check.LastUpdatedBy = actor

	if err := s.checkRepo.UpdateCheck(ctx, check); err != nil {
		logger.Error("Failed to persist check field update", slog.String("error", err.Error()), slog.String("check_id", checkID))
		return nil, fmt.Errorf("failed to update check: %w", err)
	}

	logger.Info("Check fields updated", slog.String("check_id", checkID))
	return &check, nil
}

// SetLocation sets the localizacao of a received check independently of its
// situacao. Cascaded statuses keep forcing their location on the next
// transition regardless of what is set here.
func (s *checkService) SetLocation(ctx context.Context, checkID string, req dto.SetCheckLocationRequest, actor string) (*domain.Check, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to find check %s: %w", checkID, err)
	}
	check := stored.Clone()

	if check.Kind != domain.CheckReceived {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrIssuedCheckLocation)
	}
	if !req.Location.IsValid() {
		return nil, fmt.Errorf("%w: unknown location %q", apperrors.ErrValidation, req.Location)
	}
	if !check.Permits(domain.CheckActionLocalizar) {
		return nil, fmt.Errorf("%w: check is %s", apperrors.ErrImmutableState, check.Status)
	}

	now := time.Now().UTC()
	fromLocation := check.Location
	check.Location = req.Location
	check.Historico = check.Historico.Appended(
		domain.NewAuditEntry(now, actor, string(fromLocation), string(check.Location), req.Note),
	)
	check.LastUpdatedAt = now
	check.LastUpdatedBy = actor

	if err := s.checkRepo.UpdateCheck(ctx, check); err != nil {
		logger.Error("Failed to persist check location", slog.String("error", err.Error()), slog.String("check_id", checkID))
		return nil, fmt.Errorf("failed to update check: %w", err)
	}

	logger.Info("Check location set",
		slog.String("check_id", checkID),
		slog.String("from", string(fromLocation)),
		slog.String("to", string(check.Location)),
	)
	return &check, nil
}

// GetCheckByID retrieves a specific check.
func (s *checkService) GetCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	check, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find check by ID", slog.String("error", err.Error()), slog.String("check_id", checkID))
		}
		return nil, fmt.Errorf("failed to find check %s: %w", checkID, err)
	}
	return check, nil
}

// ListChecks retrieves checks filtered by kind and status.
func (s *checkService) ListChecks(ctx context.Context, params dto.ListChecksParams) ([]domain.Check, error) {
	if params.Kind != "" && !params.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown check kind %q", apperrors.ErrValidation, params.Kind)
	}
	if params.Status != "" && params.Kind != "" && !params.Kind.AllowsStatus(params.Status) {
		return nil, fmt.Errorf("%w: status %s is not part of the %s check lifecycle", apperrors.ErrValidation, params.Status, params.Kind)
	}

	checks, err := s.checkRepo.ListChecks(ctx, params.Kind, params.Status, params.Limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list checks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	return checks, nil
}
