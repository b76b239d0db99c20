package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/labvitta/labfin/internal/core/domain"
)

func TestVisitLedger_Totals(t *testing.T) {
	ledger := domain.VisitLedger{
		ValorTotal: decimal.NewFromInt(300),
		Entries: []domain.PaymentEntry{
			{EntryID: 1, Valor: decimal.NewFromInt(100), Method: domain.PaymentDinheiro, Status: domain.EntryNormal},
			{EntryID: 2, Valor: decimal.NewFromInt(150), Desconto: decimal.NewFromInt(50), Method: domain.PaymentCredito, Status: domain.EntryNormal},
			{EntryID: 3, Valor: decimal.NewFromInt(80), Method: domain.PaymentDinheiro, Status: domain.EntryEstornado},
		},
	}

	// 100 + (150-50); the reversed entry contributes nothing.
	assert.True(t, ledger.TotalPago().Equal(decimal.NewFromInt(200)))
	assert.True(t, ledger.ValorPendente().Equal(decimal.NewFromInt(100)))
	assert.False(t, ledger.IsComplete())
}

func TestVisitLedger_IsComplete(t *testing.T) {
	ledger := domain.VisitLedger{
		ValorTotal: decimal.NewFromInt(100),
		Entries: []domain.PaymentEntry{
			{EntryID: 1, Valor: decimal.NewFromInt(100), Method: domain.PaymentDinheiro, Status: domain.EntryNormal},
		},
	}
	assert.True(t, ledger.IsComplete())

	ledger.Entries[0].Status = domain.EntryEstornado
	assert.False(t, ledger.IsComplete())
}

func TestPaymentEntry_Net(t *testing.T) {
	e := domain.PaymentEntry{Valor: decimal.NewFromInt(150), Desconto: decimal.NewFromInt(30)}
	assert.True(t, e.Net().Equal(decimal.NewFromInt(120)))
}

func TestVisitLedger_FindEntry(t *testing.T) {
	ledger := domain.VisitLedger{
		Entries: []domain.PaymentEntry{{EntryID: 1}, {EntryID: 2}},
	}
	assert.Equal(t, 1, ledger.FindEntry(2))
	assert.Equal(t, -1, ledger.FindEntry(99))
}

func TestVisitLedger_Clone_DeepCopiesCheques(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	ledger := domain.VisitLedger{
		ValorTotal: decimal.NewFromInt(200),
		Entries: []domain.PaymentEntry{
			{
				EntryID: 1,
				Valor:   decimal.NewFromInt(200),
				Method:  domain.PaymentCheque,
				Cheque: &domain.ChequeDetails{
					Emitente:        "Maria Souza",
					Banco:           "341",
					Numero:          "000123",
					DataCompensacao: &due,
				},
				Status: domain.EntryNormal,
			},
		},
		Historico: domain.History{{Actor: "Ana"}},
	}

	clone := ledger.Clone()
	clone.Entries[0].Cheque.Emitente = "Outro Emitente"
	newDate := due.AddDate(0, 1, 0)
	clone.Entries[0].Cheque.DataCompensacao = &newDate

	assert.Equal(t, "Maria Souza", ledger.Entries[0].Cheque.Emitente)
	assert.True(t, ledger.Entries[0].Cheque.DataCompensacao.Equal(due))
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, domain.PaymentDinheiro.IsValid())
	assert.True(t, domain.PaymentDesconto.IsValid())
	assert.False(t, domain.PaymentMethod("PIX").IsValid())
}
