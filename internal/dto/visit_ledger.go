package dto

import (
	"time"

	"github.com/labvitta/labfin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerRequest defines the payload to create the empty payment
// ledger owned by a visit.
type CreateLedgerRequest struct {
	VisitID    string          `json:"visitID" binding:"required"`
	ValorTotal decimal.Decimal `json:"valorTotal" binding:"required"`
}

// ChequeDetailsPayload carries the cheque-specific fields of an entry.
type ChequeDetailsPayload struct {
	Emitente        string     `json:"emitente"`
	Banco           string     `json:"banco"`
	Agencia         string     `json:"agencia"`
	Conta           string     `json:"conta"`
	Numero          string     `json:"numero"`
	DataCompensacao *time.Time `json:"dataCompensacao,omitempty"`
}

// AddLedgerEntryRequest defines the payload to add a payment entry.
type AddLedgerEntryRequest struct {
	Date        *time.Time            `json:"date,omitempty"` // defaults to now
	Valor       decimal.Decimal       `json:"valor" binding:"required"`
	Desconto    decimal.Decimal       `json:"desconto"`
	Method      domain.PaymentMethod  `json:"method" binding:"required"`
	Operadora   string                `json:"operadora,omitempty"`
	Cheque      *ChequeDetailsPayload `json:"cheque,omitempty"`
	Motivo      string                `json:"motivo,omitempty"`
	Observacoes string                `json:"observacoes,omitempty"`
}

// EditLedgerEntryRequest defines the editable fields of an entry. The entry
// id and situacao are never editable through this path.
type EditLedgerEntryRequest struct {
	Date        *time.Time            `json:"date,omitempty"`
	Valor       *decimal.Decimal      `json:"valor,omitempty"`
	Desconto    *decimal.Decimal      `json:"desconto,omitempty"`
	Method      *domain.PaymentMethod `json:"method,omitempty"`
	Operadora   *string               `json:"operadora,omitempty"`
	Cheque      *ChequeDetailsPayload `json:"cheque,omitempty"`
	Motivo      *string               `json:"motivo,omitempty"`
	Observacoes *string               `json:"observacoes,omitempty"`
}

// ReverseLedgerEntryRequest defines the payload for an estorno.
type ReverseLedgerEntryRequest struct {
	Note string `json:"note,omitempty"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID     int64                 `json:"entryID"`
	Date        time.Time             `json:"date"`
	Valor       decimal.Decimal       `json:"valor"`
	Desconto    decimal.Decimal       `json:"desconto"`
	Method      domain.PaymentMethod  `json:"method"`
	Operadora   string                `json:"operadora,omitempty"`
	Cheque      *ChequeDetailsPayload `json:"cheque,omitempty"`
	Motivo      string                `json:"motivo,omitempty"`
	Observacoes string                `json:"observacoes,omitempty"`
	Status      domain.EntryStatus    `json:"status"`
}

// LedgerResponse defines the data returned for a visit ledger, with the
// running totals recomputed from the entry list.
type LedgerResponse struct {
	LedgerID      string                `json:"ledgerID"`
	VisitID       string                `json:"visitID"`
	ValorTotal    decimal.Decimal       `json:"valorTotal"`
	TotalPago     decimal.Decimal       `json:"totalPago"`
	ValorPendente decimal.Decimal       `json:"valorPendente"`
	IsComplete    bool                  `json:"isComplete"`
	Entries       []LedgerEntryResponse `json:"entries"`
	Historico     []AuditEntryResponse  `json:"historico"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain.PaymentEntry to its response form.
func ToLedgerEntryResponse(e *domain.PaymentEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		EntryID:     e.EntryID,
		Date:        e.Date,
		Valor:       e.Valor,
		Desconto:    e.Desconto,
		Method:      e.Method,
		Operadora:   e.Operadora,
		Motivo:      e.Motivo,
		Observacoes: e.Observacoes,
		Status:      e.Status,
	}
	if e.Cheque != nil {
		resp.Cheque = &ChequeDetailsPayload{
			Emitente:        e.Cheque.Emitente,
			Banco:           e.Cheque.Banco,
			Agencia:         e.Cheque.Agencia,
			Conta:           e.Cheque.Conta,
			Numero:          e.Cheque.Numero,
			DataCompensacao: e.Cheque.DataCompensacao,
		}
	}
	return resp
}

// ToLedgerResponse converts a domain.VisitLedger to LedgerResponse DTO.
func ToLedgerResponse(l *domain.VisitLedger) LedgerResponse {
	entries := make([]LedgerEntryResponse, len(l.Entries))
	for i := range l.Entries {
		entries[i] = ToLedgerEntryResponse(&l.Entries[i])
	}
	return LedgerResponse{
		LedgerID:      l.LedgerID,
		VisitID:       l.VisitID,
		ValorTotal:    l.ValorTotal,
		TotalPago:     l.TotalPago(),
		ValorPendente: l.ValorPendente(),
		IsComplete:    l.IsComplete(),
		Entries:       entries,
		Historico:     ToAuditEntryResponses(l.Historico),
		CreatedAt:     l.CreatedAt,
		CreatedBy:     l.CreatedBy,
	}
}
