package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // Actor display name
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // Actor display name
}

// AuditEntry is a single write-once record in an entity's history.
// Entries are never mutated, reordered or pruned.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	FromState string    `json:"fromState"`
	ToState   string    `json:"toState"`
	Note      string    `json:"note"`
}

// History is an append-only, chronologically ordered audit trail.
type History []AuditEntry

// Appended returns the history extended with a new entry. The receiver is
// left untouched so a failed operation never leaks a partial write.
func (h History) Appended(entry AuditEntry) History {
	out := make(History, len(h), len(h)+1)
	copy(out, h)
	return append(out, entry)
}

// NewAuditEntry builds an audit entry stamped with the given instant.
func NewAuditEntry(at time.Time, actor, fromState, toState, note string) AuditEntry {
	return AuditEntry{
		Timestamp: at,
		Actor:     actor,
		FromState: fromState,
		ToState:   toState,
		Note:      note,
	}
}
