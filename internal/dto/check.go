package dto

import (
	"time"

	"github.com/labvitta/labfin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterCheckRequest defines the payload to register a new check.
type RegisterCheckRequest struct {
	Kind       domain.CheckKind     `json:"kind" binding:"required"`
	Number     string               `json:"number" binding:"required"`
	BankCode   string               `json:"bankCode"`
	BankName   string               `json:"bankName"`
	Agency     string               `json:"agency"`
	Account    string               `json:"account"`
	PartyName  string               `json:"partyName" binding:"required"`
	PartyTaxID string               `json:"partyTaxID"`
	Amount     decimal.Decimal      `json:"amount" binding:"required"`
	IssueDate  time.Time            `json:"issueDate" binding:"required"`
	DueDate    *time.Time           `json:"dueDate,omitempty"`
	Location   domain.CheckLocation `json:"location,omitempty"` // received checks only
	Note       string               `json:"note,omitempty"`
}

// TransitionCheckRequest defines the payload for a situacao change.
type TransitionCheckRequest struct {
	Status domain.CheckStatus `json:"status" binding:"required"`
	Note   string             `json:"note,omitempty"`
}

// UpdateCheckRequest defines the editable check fields. Nil pointers leave
// the stored value untouched.
type UpdateCheckRequest struct {
	Number     *string          `json:"number,omitempty"`
	BankCode   *string          `json:"bankCode,omitempty"`
	BankName   *string          `json:"bankName,omitempty"`
	Agency     *string          `json:"agency,omitempty"`
	Account    *string          `json:"account,omitempty"`
	PartyName  *string          `json:"partyName,omitempty"`
	PartyTaxID *string          `json:"partyTaxID,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	IssueDate  *time.Time       `json:"issueDate,omitempty"`
	DueDate    *time.Time       `json:"dueDate,omitempty"`
	Note       string           `json:"note,omitempty"`
}

// SetCheckLocationRequest defines the payload for a manual localizacao change.
type SetCheckLocationRequest struct {
	Location domain.CheckLocation `json:"location" binding:"required"`
	Note     string               `json:"note,omitempty"`
}

// ListChecksParams holds the query filters for listing checks.
type ListChecksParams struct {
	Kind   domain.CheckKind   `form:"kind"`
	Status domain.CheckStatus `form:"status"`
	Limit  int                `form:"limit,default=50"`
	Offset int                `form:"offset,default=0"`
}

// AuditEntryResponse defines the data returned for a single audit entry.
type AuditEntryResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	FromState string    `json:"fromState"`
	ToState   string    `json:"toState"`
	Note      string    `json:"note,omitempty"`
}

// CheckResponse defines the data returned for a check, including the
// actions the caller may attempt next.
type CheckResponse struct {
	CheckID          string               `json:"checkID"`
	Kind             domain.CheckKind     `json:"kind"`
	Number           string               `json:"number"`
	BankCode         string               `json:"bankCode,omitempty"`
	BankName         string               `json:"bankName,omitempty"`
	Agency           string               `json:"agency,omitempty"`
	Account          string               `json:"account,omitempty"`
	PartyName        string               `json:"partyName"`
	PartyTaxID       string               `json:"partyTaxID,omitempty"`
	Amount           decimal.Decimal      `json:"amount"`
	IssueDate        time.Time            `json:"issueDate"`
	DueDate          *time.Time           `json:"dueDate,omitempty"`
	Status           domain.CheckStatus   `json:"status"`
	Location         domain.CheckLocation `json:"location,omitempty"`
	PermittedActions []domain.CheckAction `json:"permittedActions"`
	Historico        []AuditEntryResponse `json:"historico"`
	CreatedAt        time.Time            `json:"createdAt"`
	CreatedBy        string               `json:"createdBy"`
}

// ToAuditEntryResponses converts a domain history to its response form.
func ToAuditEntryResponses(h domain.History) []AuditEntryResponse {
	responses := make([]AuditEntryResponse, len(h))
	for i, e := range h {
		responses[i] = AuditEntryResponse{
			Timestamp: e.Timestamp,
			Actor:     e.Actor,
			FromState: e.FromState,
			ToState:   e.ToState,
			Note:      e.Note,
		}
	}
	return responses
}

// ToCheckResponse converts a domain.Check to CheckResponse DTO.
func ToCheckResponse(c *domain.Check) CheckResponse {
	actions := c.PermittedActions()
	if actions == nil {
		actions = []domain.CheckAction{}
	}
	return CheckResponse{
		CheckID:          c.CheckID,
		Kind:             c.Kind,
		Number:           c.Number,
		BankCode:         c.BankCode,
		BankName:         c.BankName,
		Agency:           c.Agency,
		Account:          c.Account,
		PartyName:        c.PartyName,
		PartyTaxID:       c.PartyTaxID,
		Amount:           c.Amount,
		IssueDate:        c.IssueDate,
		DueDate:          c.DueDate,
		Status:           c.Status,
		Location:         c.Location,
		PermittedActions: actions,
		Historico:        ToAuditEntryResponses(c.Historico),
		CreatedAt:        c.CreatedAt,
		CreatedBy:        c.CreatedBy,
	}
}

// ToCheckResponses converts a slice of domain.Check to []CheckResponse.
func ToCheckResponses(checks []domain.Check) []CheckResponse {
	responses := make([]CheckResponse, len(checks))
	for i := range checks {
		responses[i] = ToCheckResponse(&checks[i])
	}
	return responses
}
