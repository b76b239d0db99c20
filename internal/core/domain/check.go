package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckKind distinguishes checks received from patients from checks issued
// by the clinic. The two kinds share the lifecycle mechanics but have
// different status sets.
type CheckKind string

const (
	CheckReceived CheckKind = "RECEBIDO"
	CheckIssued   CheckKind = "EMITIDO"
)

// IsValid checks if the kind is a known CheckKind.
func (k CheckKind) IsValid() bool {
	return k == CheckReceived || k == CheckIssued
}

// CheckStatus is the primary lifecycle status (situacao) of a check.
type CheckStatus string

const (
	CheckStatusAberto        CheckStatus = "ABERTO"
	CheckStatusDepositado    CheckStatus = "DEPOSITADO"
	CheckStatusDevolvido     CheckStatus = "DEVOLVIDO"
	CheckStatusReapresentado CheckStatus = "REAPRESENTADO"
	CheckStatusCompensado    CheckStatus = "COMPENSADO"
	CheckStatusCancelado     CheckStatus = "CANCELADO"
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	return string(s)
}

// receivedStatuses and issuedStatuses are the closed status sets per kind.
var receivedStatuses = map[CheckStatus]struct{}{
	CheckStatusAberto:        {},
	CheckStatusDepositado:    {},
	CheckStatusDevolvido:     {},
	CheckStatusReapresentado: {},
	CheckStatusCompensado:    {},
}

var issuedStatuses = map[CheckStatus]struct{}{
	CheckStatusAberto:     {},
	CheckStatusCompensado: {},
	CheckStatusDevolvido:  {},
	CheckStatusCancelado:  {},
}

// AllowsStatus reports whether the status belongs to this kind's status set.
func (k CheckKind) AllowsStatus(s CheckStatus) bool {
	switch k {
	case CheckReceived:
		_, ok := receivedStatuses[s]
		return ok
	case CheckIssued:
		_, ok := issuedStatuses[s]
		return ok
	}
	return false
}

// CheckLocation is the secondary, cascade-derived physical/process location
// (localizacao) of a received check. Issued checks carry no location.
type CheckLocation string

const (
	CheckLocationEmCaixa     CheckLocation = "EM_CAIXA"
	CheckLocationEmTransicao CheckLocation = "EM_TRANSICAO"
	CheckLocationEmBanco     CheckLocation = "EM_BANCO"
	CheckLocationComTerceiro CheckLocation = "COM_TERCEIRO"
	CheckLocationCompensado  CheckLocation = "COMPENSADO"
	CheckLocationDevolvido   CheckLocation = "DEVOLVIDO"
)

// IsValid checks if the location is a known CheckLocation.
func (l CheckLocation) IsValid() bool {
	switch l {
	case CheckLocationEmCaixa, CheckLocationEmTransicao, CheckLocationEmBanco,
		CheckLocationComTerceiro, CheckLocationCompensado, CheckLocationDevolvido:
		return true
	}
	return false
}

// CascadeLocation returns the location forced by a status, if any. Statuses
// outside the table leave the location under the caller's control.
func CascadeLocation(s CheckStatus) (CheckLocation, bool) {
	switch s {
	case CheckStatusDepositado:
		return CheckLocationEmTransicao, true
	case CheckStatusCompensado:
		return CheckLocationCompensado, true
	case CheckStatusDevolvido:
		return CheckLocationDevolvido, true
	}
	return "", false
}

// CheckAction is an operation a caller may attempt against a check.
type CheckAction string

const (
	CheckActionEditar       CheckAction = "EDITAR"
	CheckActionLocalizar    CheckAction = "LOCALIZAR"
	CheckActionDepositar    CheckAction = "DEPOSITAR"
	CheckActionCompensar    CheckAction = "COMPENSAR"
	CheckActionDevolver     CheckAction = "DEVOLVER"
	CheckActionReapresentar CheckAction = "REAPRESENTAR"
	CheckActionCancelar     CheckAction = "CANCELAR"
)

// ActionForStatus maps a requested target status onto the action that
// produces it. The second return is false for statuses that are not
// reachable through a transition (ABERTO is only ever the initial status).
func ActionForStatus(s CheckStatus) (CheckAction, bool) {
	switch s {
	case CheckStatusDepositado:
		return CheckActionDepositar, true
	case CheckStatusCompensado:
		return CheckActionCompensar, true
	case CheckStatusDevolvido:
		return CheckActionDevolver, true
	case CheckStatusReapresentado:
		return CheckActionReapresentar, true
	case CheckStatusCancelado:
		return CheckActionCancelar, true
	}
	return "", false
}

// Check represents a single financial instrument tracked through its
// status/location lifecycle.
type Check struct {
	CheckID    string          `json:"checkID"`
	Kind       CheckKind       `json:"kind"`
	Number     string          `json:"number"` // bank-format, not globally validated
	BankCode   string          `json:"bankCode"`
	BankName   string          `json:"bankName"`
	Agency     string          `json:"agency"`
	Account    string          `json:"account"`
	PartyName  string          `json:"partyName"` // payer (received) or payee (issued)
	PartyTaxID string          `json:"partyTaxID"`
	Amount     decimal.Decimal `json:"amount"`
	IssueDate  time.Time       `json:"issueDate"`
	DueDate    *time.Time      `json:"dueDate,omitempty"` // compensation date, nullable until set
	Status     CheckStatus     `json:"status"`
	Location   CheckLocation   `json:"location,omitempty"` // received checks only
	Historico  History         `json:"historico"`
	AuditFields
}

// IsTerminal reports whether the check reached a status that blocks every
// further mutation. For issued checks COMPENSADO still admits a bank-side
// DEVOLVER, so only CANCELADO is fully terminal there; the asymmetry is
// resolved by PermittedActions.
func (c *Check) IsTerminal() bool {
	switch c.Kind {
	case CheckReceived:
		return c.Status == CheckStatusCompensado
	case CheckIssued:
		return c.Status == CheckStatusCompensado || c.Status == CheckStatusCancelado
	}
	return false
}

// PermittedActions returns the set of actions a caller may attempt given the
// check's current status. Callers consult this so they never attempt an
// invalid transition; the engine still rejects one with a typed error.
func (c *Check) PermittedActions() []CheckAction {
	switch c.Kind {
	case CheckReceived:
		if c.Status == CheckStatusCompensado {
			return nil
		}
		return []CheckAction{
			CheckActionEditar,
			CheckActionLocalizar,
			CheckActionDepositar,
			CheckActionCompensar,
			CheckActionDevolver,
			CheckActionReapresentar,
		}
	case CheckIssued:
		switch c.Status {
		case CheckStatusAberto:
			return []CheckAction{
				CheckActionEditar,
				CheckActionCompensar,
				CheckActionDevolver,
				CheckActionCancelar,
			}
		case CheckStatusCompensado:
			// Bank-side reversal after clearing.
			return []CheckAction{CheckActionDevolver}
		}
		return nil
	}
	return nil
}

// Permits reports whether a single action is currently permitted.
func (c *Check) Permits(action CheckAction) bool {
	for _, a := range c.PermittedActions() {
		if a == action {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the check, including its history.
func (c *Check) Clone() Check {
	out := *c
	if c.DueDate != nil {
		due := *c.DueDate
		out.DueDate = &due
	}
	out.Historico = make(History, len(c.Historico))
	copy(out.Historico, c.Historico)
	return out
}
