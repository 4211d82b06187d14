package dto

import (
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// CreatePostingRequest is one line of a journal entry. Amounts are in minor
// units; exactly one of debitAmount/creditAmount must be greater than zero.
type CreatePostingRequest struct {
	AccountID    string `json:"accountID" binding:"required"`
	DebitAmount  int64  `json:"debitAmount" binding:"min=0"`
	CreditAmount int64  `json:"creditAmount" binding:"min=0"`
	Memo         string `json:"memo"`
}

// CreateEntryRequest defines the data needed to create a new draft entry.
type CreateEntryRequest struct {
	EntryDate   time.Time              `json:"entryDate" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Reference   string                 `json:"reference"`
	Postings    []CreatePostingRequest `json:"postings" binding:"required,min=2,dive"`
}

// UpdateEntryRequest replaces a draft entry's fields and postings wholesale.
type UpdateEntryRequest struct {
	EntryDate   time.Time              `json:"entryDate" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Reference   string                 `json:"reference"`
	Postings    []CreatePostingRequest `json:"postings" binding:"required,min=2,dive"`
	Version     int64                  `json:"version" binding:"required"`
}

// VoidEntryRequest defines the data needed to void a posted entry.
// VoidDate becomes the compensating entry's entry date.
type VoidEntryRequest struct {
	VoidDate time.Time `json:"voidDate" binding:"required"`
	Reason   string    `json:"reason" binding:"required"`
}

// PostingResponse defines the data returned for one entry line.
type PostingResponse struct {
	PostingID    string `json:"postingID"`
	AccountID    string `json:"accountID"`
	DebitAmount  int64  `json:"debitAmount"`
	CreditAmount int64  `json:"creditAmount"`
	Memo         string `json:"memo"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID         string             `json:"entryID"`
	ClientID        string             `json:"clientID"`
	EntryNumber     int64              `json:"entryNumber"`
	EntryDate       time.Time          `json:"entryDate"`
	Description     string             `json:"description"`
	Reference       string             `json:"reference"`
	Status          domain.EntryStatus `json:"status"`
	VoidedByEntryID *string            `json:"voidedByEntryID,omitempty"`
	VoidsEntryID    *string            `json:"voidsEntryID,omitempty"`
	Version         int64              `json:"version"`
	Postings        []PostingResponse  `json:"postings,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ToPostingResponse converts a domain.Posting to PostingResponse DTO.
func ToPostingResponse(p *domain.Posting) PostingResponse {
	return PostingResponse{
		PostingID:    p.PostingID,
		AccountID:    p.AccountID,
		DebitAmount:  p.DebitAmount,
		CreditAmount: p.CreditAmount,
		Memo:         p.Memo,
	}
}

// ToPostingResponses converts a slice of domain.Posting to []PostingResponse.
func ToPostingResponses(postings []domain.Posting) []PostingResponse {
	responses := make([]PostingResponse, len(postings))
	for i, p := range postings {
		responses[i] = ToPostingResponse(&p)
	}
	return responses
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		ClientID:        e.ClientID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate,
		Description:     e.Description,
		Reference:       e.Reference,
		Status:          e.Status,
		VoidedByEntryID: e.VoidedByEntryID,
		VoidsEntryID:    e.VoidsEntryID,
		Version:         e.Version,
		Postings:        ToPostingResponses(e.Postings),
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
		LastUpdatedAt:   e.LastUpdatedAt,
		LastUpdatedBy:   e.LastUpdatedBy,
	}
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the cursor for the next.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken string          `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a page of domain entries plus cursor.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken string) ListEntriesResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(&e)
	}
	return ListEntriesResponse{Entries: res, NextToken: nextToken}
}
