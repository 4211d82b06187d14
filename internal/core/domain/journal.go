package domain

import "time"

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Void   EntryStatus = "VOID"
)

// Applied reports whether the entry's postings have been applied to
// account balances. A VOID entry stays applied; its effect is cancelled by
// the POSTED compensating entry, not by un-applying its own postings.
func (s EntryStatus) Applied() bool {
	return s == Posted || s == Void
}

// JournalEntry is a balanced group of postings recorded as one transaction.
// Lifecycle: Draft (mutable) -> Posted (immutable) -> optionally Void.
// Voiding creates a compensating peer entry; VoidedByEntryID and
// VoidsEntryID hold the bidirectional link.
type JournalEntry struct {
	EntryID         string      `json:"entryID"`
	ClientID        string      `json:"clientID"`
	EntryNumber     int64       `json:"entryNumber"` // strictly increasing per client, never reused
	EntryDate       time.Time   `json:"entryDate"`
	Description     string      `json:"description"`
	Reference       string      `json:"reference"`
	Status          EntryStatus `json:"status"`
	VoidedByEntryID *string     `json:"voidedByEntryID,omitempty"`
	VoidsEntryID    *string     `json:"voidsEntryID,omitempty"`
	Version         int64       `json:"version"`
	AuditFields

	// Postings are loaded separately for most operations.
	Postings []Posting `json:"postings,omitempty"`
}
