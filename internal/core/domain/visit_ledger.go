package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the settlement method of a visit ledger entry.
type PaymentMethod string

const (
	PaymentDinheiro PaymentMethod = "DINHEIRO"
	PaymentCredito  PaymentMethod = "CREDITO"
	PaymentDebito   PaymentMethod = "DEBITO"
	PaymentCheque   PaymentMethod = "CHEQUE"
	PaymentDesconto PaymentMethod = "DESCONTO"
)

// IsValid checks if the method is a known PaymentMethod.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentDinheiro, PaymentCredito, PaymentDebito, PaymentCheque, PaymentDesconto:
		return true
	}
	return false
}

// EntryStatus is the lifecycle status of a single ledger entry.
type EntryStatus string

const (
	EntryNormal    EntryStatus = "NORMAL"
	EntryEstornado EntryStatus = "ESTORNADO"
)

// ChequeDetails carries the method-specific fields of a cheque payment.
type ChequeDetails struct {
	Emitente        string     `json:"emitente"`
	Banco           string     `json:"banco"`
	Agencia         string     `json:"agencia"`
	Conta           string     `json:"conta"`
	Numero          string     `json:"numero"`
	DataCompensacao *time.Time `json:"dataCompensacao,omitempty"`
}

// PaymentEntry is one line of a visit's payment ledger. Reversed entries
// stay in the list so totals at a point in time remain reconstructible.
type PaymentEntry struct {
	EntryID     int64           `json:"entryID"` // monotonic per ledger
	Date        time.Time       `json:"date"`
	Valor       decimal.Decimal `json:"valor"`
	Desconto    decimal.Decimal `json:"desconto"` // secondary discount, independent of the DESCONTO method
	Method      PaymentMethod   `json:"method"`
	Operadora   string          `json:"operadora,omitempty"` // card methods
	Cheque      *ChequeDetails  `json:"cheque,omitempty"`
	Motivo      string          `json:"motivo,omitempty"` // DESCONTO method
	Observacoes string          `json:"observacoes,omitempty"`
	Status      EntryStatus     `json:"status"`
	AuditFields
}

// Net is the entry's contribution to the paid total while NORMAL.
func (e *PaymentEntry) Net() decimal.Decimal {
	return e.Valor.Sub(e.Desconto)
}

// VisitLedger is the ordered payment ledger owned by a single visit for its
// entire life; it is never merged with another ledger.
type VisitLedger struct {
	LedgerID    string          `json:"ledgerID"`
	VisitID     string          `json:"visitID"`
	ValorTotal  decimal.Decimal `json:"valorTotal"`
	Entries     []PaymentEntry  `json:"entries"`
	NextEntryID int64           `json:"nextEntryID"`
	Historico   History         `json:"historico"`
	AuditFields
}

// TotalPago sums valor minus desconto over entries still NORMAL.
func (l *VisitLedger) TotalPago() decimal.Decimal {
	total := decimal.Zero
	for i := range l.Entries {
		if l.Entries[i].Status == EntryNormal {
			total = total.Add(l.Entries[i].Net())
		}
	}
	return total
}

// ValorPendente is the outstanding balance against the visit total.
func (l *VisitLedger) ValorPendente() decimal.Decimal {
	return l.ValorTotal.Sub(l.TotalPago())
}

// IsComplete reports whether the ledger is fully settled. Finalization
// itself belongs to the workflow layer; add/edit/reverse stay available
// even when complete so corrections remain possible before it.
func (l *VisitLedger) IsComplete() bool {
	return l.ValorPendente().IsZero()
}

// FindEntry returns the index of an entry by id, or -1.
func (l *VisitLedger) FindEntry(entryID int64) int {
	for i := range l.Entries {
		if l.Entries[i].EntryID == entryID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the ledger.
func (l *VisitLedger) Clone() VisitLedger {
	out := *l
	out.Entries = make([]PaymentEntry, len(l.Entries))
	copy(out.Entries, l.Entries)
	for i := range out.Entries {
		if l.Entries[i].Cheque != nil {
			cheque := *l.Entries[i].Cheque
			if l.Entries[i].Cheque.DataCompensacao != nil {
				d := *l.Entries[i].Cheque.DataCompensacao
				cheque.DataCompensacao = &d
			}
			out.Entries[i].Cheque = &cheque
		}
	}
	out.Historico = make(History, len(l.Historico))
	copy(out.Historico, l.Historico)
	return out
}
