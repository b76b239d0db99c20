package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/labvitta/labfin/internal/core/domain"
)

func TestCheckKind_AllowsStatus(t *testing.T) {
	tests := []struct {
		name   string
		kind   domain.CheckKind
		status domain.CheckStatus
		want   bool
	}{
		{"received allows aberto", domain.CheckReceived, domain.CheckStatusAberto, true},
		{"received allows depositado", domain.CheckReceived, domain.CheckStatusDepositado, true},
		{"received allows devolvido", domain.CheckReceived, domain.CheckStatusDevolvido, true},
		{"received allows reapresentado", domain.CheckReceived, domain.CheckStatusReapresentado, true},
		{"received allows compensado", domain.CheckReceived, domain.CheckStatusCompensado, true},
		{"received rejects cancelado", domain.CheckReceived, domain.CheckStatusCancelado, false},
		{"issued allows aberto", domain.CheckIssued, domain.CheckStatusAberto, true},
		{"issued allows compensado", domain.CheckIssued, domain.CheckStatusCompensado, true},
		{"issued allows devolvido", domain.CheckIssued, domain.CheckStatusDevolvido, true},
		{"issued allows cancelado", domain.CheckIssued, domain.CheckStatusCancelado, true},
		{"issued rejects depositado", domain.CheckIssued, domain.CheckStatusDepositado, false},
		{"issued rejects reapresentado", domain.CheckIssued, domain.CheckStatusReapresentado, false},
		{"unknown kind rejects everything", domain.CheckKind("OUTRO"), domain.CheckStatusAberto, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.AllowsStatus(tt.status))
		})
	}
}

func TestCascadeLocation(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.CheckStatus
		wantLoc    domain.CheckLocation
		wantForced bool
	}{
		{"depositado forces em transicao", domain.CheckStatusDepositado, domain.CheckLocationEmTransicao, true},
		{"compensado forces compensado", domain.CheckStatusCompensado, domain.CheckLocationCompensado, true},
		{"devolvido forces devolvido", domain.CheckStatusDevolvido, domain.CheckLocationDevolvido, true},
		{"aberto leaves location alone", domain.CheckStatusAberto, domain.CheckLocation(""), false},
		{"reapresentado leaves location alone", domain.CheckStatusReapresentado, domain.CheckLocation(""), false},
		{"cancelado leaves location alone", domain.CheckStatusCancelado, domain.CheckLocation(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, forced := domain.CascadeLocation(tt.status)
			assert.Equal(t, tt.wantForced, forced)
			assert.Equal(t, tt.wantLoc, loc)
		})
	}
}

func TestCheck_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		kind   domain.CheckKind
		status domain.CheckStatus
		want   bool
	}{
		{"received compensado is terminal", domain.CheckReceived, domain.CheckStatusCompensado, true},
		{"received devolvido is not terminal", domain.CheckReceived, domain.CheckStatusDevolvido, false},
		{"received aberto is not terminal", domain.CheckReceived, domain.CheckStatusAberto, false},
		{"issued compensado is terminal", domain.CheckIssued, domain.CheckStatusCompensado, true},
		{"issued cancelado is terminal", domain.CheckIssued, domain.CheckStatusCancelado, true},
		{"issued aberto is not terminal", domain.CheckIssued, domain.CheckStatusAberto, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.Check{Kind: tt.kind, Status: tt.status}
			assert.Equal(t, tt.want, c.IsTerminal())
		})
	}
}

func TestCheck_PermittedActions(t *testing.T) {
	t.Run("received non-terminal permits the full set except cancelar", func(t *testing.T) {
		c := domain.Check{Kind: domain.CheckReceived, Status: domain.CheckStatusDevolvido}
		actions := c.PermittedActions()
		assert.ElementsMatch(t, []domain.CheckAction{
			domain.CheckActionEditar,
			domain.CheckActionLocalizar,
			domain.CheckActionDepositar,
			domain.CheckActionCompensar,
			domain.CheckActionDevolver,
			domain.CheckActionReapresentar,
		}, actions)
		assert.False(t, c.Permits(domain.CheckActionCancelar))
	})

	t.Run("received compensado permits nothing", func(t *testing.T) {
		c := domain.Check{Kind: domain.CheckReceived, Status: domain.CheckStatusCompensado}
		assert.Empty(t, c.PermittedActions())
	})

	t.Run("issued aberto permits editar compensar devolver cancelar", func(t *testing.T) {
		c := domain.Check{Kind: domain.CheckIssued, Status: domain.CheckStatusAberto}
		assert.ElementsMatch(t, []domain.CheckAction{
			domain.CheckActionEditar,
			domain.CheckActionCompensar,
			domain.CheckActionDevolver,
			domain.CheckActionCancelar,
		}, c.PermittedActions())
	})

	t.Run("issued compensado still permits the bank-side devolver", func(t *testing.T) {
		c := domain.Check{Kind: domain.CheckIssued, Status: domain.CheckStatusCompensado}
		assert.Equal(t, []domain.CheckAction{domain.CheckActionDevolver}, c.PermittedActions())
		assert.True(t, c.IsTerminal())
	})

	t.Run("issued cancelado permits nothing", func(t *testing.T) {
		c := domain.Check{Kind: domain.CheckIssued, Status: domain.CheckStatusCancelado}
		assert.Empty(t, c.PermittedActions())
	})
}

func TestActionForStatus(t *testing.T) {
	_, reachable := domain.ActionForStatus(domain.CheckStatusAberto)
	assert.False(t, reachable, "ABERTO is only ever the initial status")

	action, reachable := domain.ActionForStatus(domain.CheckStatusDepositado)
	assert.True(t, reachable)
	assert.Equal(t, domain.CheckActionDepositar, action)
}

func TestCheck_Clone(t *testing.T) {
	c := domain.Check{
		CheckID: "chk-1",
		Kind:    domain.CheckReceived,
		Amount:  decimal.NewFromInt(100),
		Status:  domain.CheckStatusAberto,
		Historico: domain.History{
			{Actor: "Ana", ToState: "ABERTO"},
		},
	}

	clone := c.Clone()
	clone.Status = domain.CheckStatusDepositado
	clone.Historico = clone.Historico.Appended(domain.AuditEntry{Actor: "Ana", ToState: "DEPOSITADO"})

	assert.Equal(t, domain.CheckStatusAberto, c.Status)
	assert.Len(t, c.Historico, 1)
	assert.Len(t, clone.Historico, 2)
}
