package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/labvitta/labfin/internal/apperrors"
	"github.com/labvitta/labfin/internal/core/domain"
	portssvc "github.com/labvitta/labfin/internal/core/ports/services"
	"github.com/labvitta/labfin/internal/core/services"
	"github.com/labvitta/labfin/internal/dto"
)

// MockVisitLedgerRepository is a mock type for the VisitLedgerRepositoryFacade interface
type MockVisitLedgerRepository struct {
	mock.Mock
}

func (m *MockVisitLedgerRepository) SaveLedger(ctx context.Context, ledger domain.VisitLedger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockVisitLedgerRepository) UpdateLedger(ctx context.Context, ledger domain.VisitLedger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockVisitLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.VisitLedger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitLedger), args.Error(1)
}

func (m *MockVisitLedgerRepository) FindLedgerByVisitID(ctx context.Context, visitID string) (*domain.VisitLedger, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitLedger), args.Error(1)
}

// --- Test Suite Setup ---

type VisitLedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockVisitLedgerRepository
	service  portssvc.VisitLedgerSvcFacade
}

func (suite *VisitLedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockVisitLedgerRepository)
	suite.service = services.NewVisitLedgerService(suite.mockRepo)
}

func (suite *VisitLedgerServiceTestSuite) storedLedger(total int64, entries ...domain.PaymentEntry) *domain.VisitLedger {
	now := time.Now().UTC()
	nextID := int64(1)
	for _, e := range entries {
		if e.EntryID >= nextID {
			nextID = e.EntryID + 1
		}
	}
	return &domain.VisitLedger{
		LedgerID:    uuid.NewString(),
		VisitID:     uuid.NewString(),
		ValorTotal:  decimal.NewFromInt(total),
		Entries:     entries,
		NextEntryID: nextID,
		Historico: domain.History{
			domain.NewAuditEntry(now, "Ana", "", "ledger created", ""),
		},
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: "Ana", LastUpdatedAt: now, LastUpdatedBy: "Ana",
		},
	}
}

// --- Test Cases ---

func (suite *VisitLedgerServiceTestSuite) TestCreateLedger_Success() {
	ctx := context.Background()
	visitID := uuid.NewString()

	suite.mockRepo.On("FindLedgerByVisitID", ctx, visitID).
		Return(nil, fmt.Errorf("%w: ledger for visit %s", apperrors.ErrNotFound, visitID)).Once()
	suite.mockRepo.On("SaveLedger", ctx, mock.AnythingOfType("domain.VisitLedger")).Return(nil).Once()

	ledger, err := suite.service.CreateLedger(ctx, dto.CreateLedgerRequest{
		VisitID:    visitID,
		ValorTotal: decimal.NewFromInt(300),
	}, "Ana")

	suite.Require().NoError(err)
	suite.Require().NotNil(ledger)
	suite.Equal(visitID, ledger.VisitID)
	suite.Empty(ledger.Entries)
	suite.EqualValues(1, ledger.NextEntryID)
	suite.True(ledger.ValorPendente().Equal(decimal.NewFromInt(300)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VisitLedgerServiceTestSuite) TestCreateLedger_VisitOwnsAtMostOne() {
	ctx := context.Background()
	existing := suite.storedLedger(300)

	suite.mockRepo.On("FindLedgerByVisitID", ctx, existing.VisitID).Return(existing, nil).Once()

	_, err := suite.service.CreateLedger(ctx, dto.CreateLedgerRequest{
		VisitID:    existing.VisitID,
		ValorTotal: decimal.NewFromInt(100),
	}, "Ana")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedger")
}

func (suite *VisitLedgerServiceTestSuite) TestCreateLedger_NegativeTotalRejected() {
	ctx := context.Background()

	_, err := suite.service.CreateLedger(ctx, dto.CreateLedgerRequest{
		VisitID:    uuid.NewString(),
		ValorTotal: decimal.NewFromInt(-1),
	}, "Ana")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedger")
}

func (suite *VisitLedgerServiceTestSuite) TestAddEntry_AssignsMonotonicIDs() {
	ctx := context.Background()
	stored := suite.storedLedger(300)

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateLedger", ctx, mock.AnythingOfType("domain.VisitLedger")).Return(nil).Twice()

	first, err := suite.service.AddEntry(ctx, stored.LedgerID, dto.AddLedgerEntryRequest{
		Valor:  decimal.NewFromInt(100),
		Method: domain.PaymentDinheiro,
	}, "Bruno")
	suite.Require().NoError(err)
	suite.EqualValues(1, first.Entries[0].EntryID)

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(first, nil).Once()

	second, err := suite.service.AddEntry(ctx, stored.LedgerID, dto.AddLedgerEntryRequest{
		Valor:     decimal.NewFromInt(150),
		Method:    domain.PaymentCredito,
		Operadora: "Visa",
	}, "Bruno")
	suite.Require().NoError(err)
	suite.Require().Len(second.Entries, 2)
	suite.EqualValues(2, second.Entries[1].EntryID)
	suite.True(second.TotalPago().Equal(decimal.NewFromInt(250)))
	suite.True(second.ValorPendente().Equal(decimal.NewFromInt(50)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VisitLedgerServiceTestSuite) TestAddEntry_OverpaymentRejected() {
	ctx := context.Background()
	stored := suite.storedLedger(300,
		domain.PaymentEntry{EntryID: 1, Valor: decimal.NewFromInt(100), Method: domain.PaymentDinheiro, Status: domain.EntryNormal},
		domain.PaymentEntry{EntryID: 2, Valor: decimal.NewFromInt(150), Method: domain.PaymentCredito, Operadora: "Visa", Status: domain.EntryNormal},
	)

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(stored, nil).Once()

	_, err := suite.service.AddEntry(ctx, stored.LedgerID, dto.AddLedgerEntryRequest{
		Valor:  decimal.NewFromInt(100),
		Method: domain.PaymentDinheiro,
	}, "Bruno")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverpayment)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLedger")
}

func (suite *VisitLedgerServiceTestSuite) TestAddEntry_DiscountCountsAgainstPending() {
	ctx := context.Background()
	stored := suite.storedLedger(300,
		domain.PaymentEntry{EntryID: 1, Valor: decimal.NewFromInt(250), Method: domain.PaymentDinheiro, Status: domain.EntryNormal},
	)

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateLedger", ctx, mock.AnythingOfType("domain.VisitLedger")).Return(nil).Once()

	ledger, err := suite.service.AddEntry(ctx, stored.LedgerID, dto.AddLedgerEntryRequest{
		Valor:  decimal.NewFromInt(50),
		Method: domain.PaymentDesconto,
		Motivo: "convenio",
	}, "Bruno")

	suite.Require().NoError(err)
	suite.True(ledger.IsComplete())
	suite.True(ledger.ValorPendente().IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VisitLedgerServiceTestSuite) TestAddEntry_MethodSpecificValidation() {
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.AddLedgerEntryRequest
	}{
		{"card without operadora", dto.AddLedgerEntryRequest{Valor: decimal.NewFromInt(50), Method: domain.PaymentCredito}},
		{"cheque without details", dto.AddLedgerEntryRequest{Valor: decimal.NewFromInt(50), Method: domain.PaymentCheque}},
		{"cheque missing numero", dto.AddLedgerEntryRequest{Valor: decimal.NewFromInt(50), Method: domain.PaymentCheque, Cheque: &dto.ChequeDetailsPayload{Emitente: "Maria", Banco: "341"}}},
		{"desconto without motivo", dto.AddLedgerEntryRequest{Valor: decimal.NewFromInt(50), Method: domain.PaymentDesconto}},
		{"unknown method", dto.AddLedgerEntryRequest{Valor: decimal.NewFromInt(50), Method: domain.PaymentMethod("PIX")}},
		{"discount above amount", dto.AddLedgerEntryRequest{Valor: decimal.NewFromInt(50), Desconto: decimal.NewFromInt(60), Method: domain.PaymentDinheiro}},
		{"negative discount", dto.AddLedgerEntryRequest{Valor: decimal.NewFromInt(50), Desconto: decimal.NewFromInt(-1), Method: domain.PaymentDinheiro}},
		{"zero amount", dto.AddLedgerEntryRequest{Valor: decimal.Zero, Method: domain.PaymentDinheiro}},
	}

	for _, tt := range tests {
		stored := suite.storedLedger(300)
		suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(stored, nil).Once()

		_, err := suite.service.AddEntry(ctx, stored.LedgerID, tt.req, "Bruno")

		suite.Require().Error(err, tt.name)
		suite.ErrorIs(err, apperrors.ErrValidation, tt.name)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLedger")
}

func (suite *VisitLedgerServiceTestSuite) TestEditEntry_Success() {
	ctx := context.Background()
	stored := suite.storedLedger(300,
		domain.PaymentEntry{EntryID: 1, Valor: decimal.NewFromInt(100), Method: domain.PaymentDinheiro, Status: domain.EntryNormal},
	)
	newValor := decimal.NewFromInt(120)

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateLedger", ctx, mock.AnythingOfType("domain.VisitLedger")).Return(nil).Once()

	ledger, err := suite.service.EditEntry(ctx, stored.LedgerID, 1, dto.EditLedgerEntryRequest{Valor: &newValor}, "Bruno")

	suite.Require().NoError(err)
	suite.True(ledger.Entries[0].Valor.Equal(newValor))
	suite.EqualValues(1, ledger.Entries[0].EntryID, "entry id is never reassigned")
	suite.True(ledger.TotalPago().Equal(newValor))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VisitLedgerServiceTestSuite) TestEditEntry_ReversedEntryIsImmutable() {
	ctx := context.Background()
	stored := suite.storedLedger(300,
		domain.PaymentEntry{EntryID: 1, Valor: decimal.NewFromInt(100), Method: domain.PaymentDinheiro, Status: domain.EntryEstornado},
	)
	newValor := decimal.NewFromInt(120)

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(stored, nil).Once()

	_, err := suite.service.EditEntry(ctx, stored.LedgerID, 1, dto.EditLedgerEntryRequest{Valor: &newValor}, "Bruno")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutableEntry)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLedger")
}

func (suite *VisitLedgerServiceTestSuite) TestEditEntry_UnknownEntry() {
	ctx := context.Background()
	stored := suite.storedLedger(300)

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(stored, nil).Once()

	_, err := suite.service.EditEntry(ctx, stored.LedgerID, 42, dto.EditLedgerEntryRequest{}, "Bruno")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *VisitLedgerServiceTestSuite) TestReverseEntry_RestoresPendingBalance() {
	ctx := context.Background()
	stored := suite.storedLedger(300,
		domain.PaymentEntry{EntryID: 1, Valor: decimal.NewFromInt(100), Method: domain.PaymentDinheiro, Status: domain.EntryNormal},
		domain.PaymentEntry{EntryID: 2, Valor: decimal.NewFromInt(200), Method: domain.PaymentDinheiro, Status: domain.EntryNormal},
	)

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateLedger", ctx, mock.AnythingOfType("domain.VisitLedger")).Return(nil).Once()

	ledger, err := suite.service.ReverseEntry(ctx, stored.LedgerID, 2, dto.ReverseLedgerEntryRequest{Note: "wrong amount"}, "Bruno")

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Entries, 2, "reversed entries stay in the list")
	suite.Equal(domain.EntryEstornado, ledger.Entries[1].Status)
	suite.True(ledger.TotalPago().Equal(decimal.NewFromInt(100)))
	suite.True(ledger.ValorPendente().Equal(decimal.NewFromInt(200)))
	suite.Require().Len(ledger.Historico, 2)
	suite.Contains(ledger.Historico[1].Note, "wrong amount")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VisitLedgerServiceTestSuite) TestReverseEntry_DoubleReversalRejected() {
	ctx := context.Background()
	stored := suite.storedLedger(300,
		domain.PaymentEntry{EntryID: 1, Valor: decimal.NewFromInt(100), Method: domain.PaymentDinheiro, Status: domain.EntryEstornado},
	)

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(stored, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, stored.LedgerID, 1, dto.ReverseLedgerEntryRequest{}, "Bruno")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReversed)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLedger")
}

func (suite *VisitLedgerServiceTestSuite) TestReverseThenRepay() {
	ctx := context.Background()
	stored := suite.storedLedger(300,
		domain.PaymentEntry{EntryID: 1, Valor: decimal.NewFromInt(300), Method: domain.PaymentDinheiro, Status: domain.EntryNormal},
	)

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateLedger", ctx, mock.AnythingOfType("domain.VisitLedger")).Return(nil).Twice()

	reversed, err := suite.service.ReverseEntry(ctx, stored.LedgerID, 1, dto.ReverseLedgerEntryRequest{Note: "cashier error"}, "Bruno")
	suite.Require().NoError(err)
	suite.True(reversed.ValorPendente().Equal(decimal.NewFromInt(300)))

	suite.mockRepo.On("FindLedgerByID", ctx, stored.LedgerID).Return(reversed, nil).Once()

	repaid, err := suite.service.AddEntry(ctx, stored.LedgerID, dto.AddLedgerEntryRequest{
		Valor:  decimal.NewFromInt(300),
		Method: domain.PaymentDinheiro,
	}, "Bruno")
	suite.Require().NoError(err)
	suite.EqualValues(2, repaid.Entries[1].EntryID, "ids keep growing past reversed entries")
	suite.True(repaid.IsComplete())
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestVisitLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VisitLedgerServiceTestSuite))
}
