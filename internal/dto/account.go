package dto

import (
	"time"

	"github.com/labvitta/labfin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterAccountRequest defines the payload to register a payable or
// receivable account.
type RegisterAccountRequest struct {
	Kind             domain.LedgerAccountKind `json:"kind" binding:"required"`
	Description      string                   `json:"description" binding:"required"`
	CounterpartName  string                   `json:"counterpartName" binding:"required"`
	CounterpartTaxID string                   `json:"counterpartTaxID"`
	ValorOriginal    decimal.Decimal          `json:"valorOriginal" binding:"required"`
	DataVencimento   time.Time                `json:"dataVencimento" binding:"required"`
}

// RecordAccountPaymentRequest defines the payload for a partial or full
// settlement against an account.
type RecordAccountPaymentRequest struct {
	Date   *time.Time      `json:"date,omitempty"` // defaults to now
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required"`
	Note   string          `json:"note,omitempty"`
}

// CancelAccountRequest defines the payload for a manual cancellation.
type CancelAccountRequest struct {
	Note string `json:"note,omitempty"`
}

// ListAccountsParams holds the query filters for listing accounts.
type ListAccountsParams struct {
	Kind   domain.LedgerAccountKind   `form:"kind"`
	Status domain.LedgerAccountStatus `form:"status"`
	Limit  int                        `form:"limit,default=50"`
	Offset int                        `form:"offset,default=0"`
}

// AccountPaymentResponse defines the data returned for an account payment.
type AccountPaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Actor     string          `json:"actor"`
	Note      string          `json:"note,omitempty"`
}

// AccountResponse defines the data returned for an account. Situacao,
// valorPago and valorDevido are derived from the payment list at response
// time; valorDevido may be negative on an over-paid account.
type AccountResponse struct {
	AccountID        string                     `json:"accountID"`
	Code             string                     `json:"code"`
	Kind             domain.LedgerAccountKind   `json:"kind"`
	Description      string                     `json:"description"`
	CounterpartName  string                     `json:"counterpartName"`
	CounterpartTaxID string                     `json:"counterpartTaxID,omitempty"`
	ValorOriginal    decimal.Decimal            `json:"valorOriginal"`
	ValorPago        decimal.Decimal            `json:"valorPago"`
	ValorDevido      decimal.Decimal            `json:"valorDevido"`
	DataVencimento   time.Time                  `json:"dataVencimento"`
	Situacao         domain.LedgerAccountStatus `json:"situacao"`
	Pagamentos       []AccountPaymentResponse   `json:"pagamentos"`
	Historico        []AuditEntryResponse       `json:"historico"`
	CreatedAt        time.Time                  `json:"createdAt"`
	CreatedBy        string                     `json:"createdBy"`
}

// ToAccountResponse converts a domain.LedgerAccount to AccountResponse,
// deriving the status with the caller-supplied clock reading.
func ToAccountResponse(a *domain.LedgerAccount, now time.Time) AccountResponse {
	payments := make([]AccountPaymentResponse, len(a.Pagamentos))
	for i, p := range a.Pagamentos {
		payments[i] = AccountPaymentResponse{
			PaymentID: p.PaymentID,
			Date:      p.Date,
			Amount:    p.Amount,
			Method:    p.Method,
			Actor:     p.Actor,
			Note:      p.Note,
		}
	}
	return AccountResponse{
		AccountID:        a.AccountID,
		Code:             a.Code,
		Kind:             a.Kind,
		Description:      a.Description,
		CounterpartName:  a.CounterpartName,
		CounterpartTaxID: a.CounterpartTaxID,
		ValorOriginal:    a.ValorOriginal,
		ValorPago:        a.ValorPago(),
		ValorDevido:      a.ValorDevido(),
		DataVencimento:   a.DataVencimento,
		Situacao:         a.Situacao(now),
		Pagamentos:       payments,
		Historico:        ToAuditEntryResponses(a.Historico),
		CreatedAt:        a.CreatedAt,
		CreatedBy:        a.CreatedBy,
	}
}

// ToAccountResponses converts a slice of accounts, sharing one clock
// reading so a list renders consistently.
func ToAccountResponses(accounts []domain.LedgerAccount, now time.Time) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i], now)
	}
	return responses
}
