package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerAccountKind distinguishes accounts payable from accounts receivable.
type LedgerAccountKind string

const (
	AccountPayable    LedgerAccountKind = "PAGAR"
	AccountReceivable LedgerAccountKind = "RECEBER"
)

// IsValid checks if the kind is a known LedgerAccountKind.
func (k LedgerAccountKind) IsValid() bool {
	return k == AccountPayable || k == AccountReceivable
}

// CodePrefix returns the account code prefix for the kind (CP / CR).
func (k LedgerAccountKind) CodePrefix() string {
	if k == AccountPayable {
		return "CP"
	}
	return "CR"
}

// LedgerAccountStatus is the derived aggregate status of an account.
// VENCIDO replaces PARCIAL/ABERTO when the due date has passed; it is its
// own value, not a flag on top of them.
type LedgerAccountStatus string

const (
	AccountStatusAberto    LedgerAccountStatus = "ABERTO"
	AccountStatusParcial   LedgerAccountStatus = "PARCIAL"
	AccountStatusPago      LedgerAccountStatus = "PAGO"
	AccountStatusVencido   LedgerAccountStatus = "VENCIDO"
	AccountStatusCancelado LedgerAccountStatus = "CANCELADO"
)

// String returns the string representation of the status.
func (s LedgerAccountStatus) String() string {
	return string(s)
}

// AccountPayment is a single settlement against an account. Entries are
// append-only and immutable once recorded; reversal exists only at the
// aggregate cancel level, unlike the visit ledger.
type AccountPayment struct {
	PaymentID string          `json:"paymentID"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Actor     string          `json:"actor"`
	Note      string          `json:"note"`
}

// LedgerAccount represents a payable or receivable account whose aggregate
// status is derived, never stored.
type LedgerAccount struct {
	AccountID        string            `json:"accountID"`
	Code             string            `json:"code"` // e.g. CP-2026-0001
	Kind             LedgerAccountKind `json:"kind"`
	Description      string            `json:"description"`
	CounterpartName  string            `json:"counterpartName"`
	CounterpartTaxID string            `json:"counterpartTaxID"`
	ValorOriginal    decimal.Decimal   `json:"valorOriginal"` // fixed at creation
	Pagamentos       []AccountPayment  `json:"pagamentos"`
	DataVencimento   time.Time         `json:"dataVencimento"`
	Cancelado        bool              `json:"cancelado"` // manual override
	Historico        History           `json:"historico"`
	AuditFields
}

// ValorPago is the sum of recorded payments.
func (a *LedgerAccount) ValorPago() decimal.Decimal {
	return SumPayments(a.Pagamentos)
}

// ValorDevido is the remaining amount due. Over-payment drives it negative;
// the negative remainder is preserved for display.
func (a *LedgerAccount) ValorDevido() decimal.Decimal {
	return a.ValorOriginal.Sub(a.ValorPago())
}

// Situacao derives the aggregate status as of now.
func (a *LedgerAccount) Situacao(now time.Time) LedgerAccountStatus {
	return DeriveAccountStatus(a.ValorOriginal, a.Pagamentos, a.DataVencimento, a.Cancelado, now)
}

// Clone returns a deep copy of the account.
func (a *LedgerAccount) Clone() LedgerAccount {
	out := *a
	out.Pagamentos = make([]AccountPayment, len(a.Pagamentos))
	copy(out.Pagamentos, a.Pagamentos)
	out.Historico = make(History, len(a.Historico))
	copy(out.Historico, a.Historico)
	return out
}

// SumPayments totals a payment list.
func SumPayments(payments []AccountPayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// DeriveAccountStatus maps an account's amounts and dates to its aggregate
// status. It is a pure function over the payment list and must be
// re-evaluated on every read: a record becomes VENCIDO purely by the
// passage of time. Priority: CANCELADO > PAGO > VENCIDO > PARCIAL > ABERTO.
func DeriveAccountStatus(valorOriginal decimal.Decimal, payments []AccountPayment, dataVencimento time.Time, cancelado bool, now time.Time) LedgerAccountStatus {
	if cancelado {
		return AccountStatusCancelado
	}

	valorPago := SumPayments(payments)
	valorDevido := valorOriginal.Sub(valorPago)

	// Over-payment clamps to PAGO; the negative remainder stays visible
	// through ValorDevido.
	if valorDevido.LessThanOrEqual(decimal.Zero) {
		return AccountStatusPago
	}

	candidate := AccountStatusAberto
	if valorPago.GreaterThan(decimal.Zero) {
		candidate = AccountStatusParcial
	}

	if dataVencimento.Before(now) {
		return AccountStatusVencido
	}
	return candidate
}
