package services

import (
	"context"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its postings.
	GetEntryByID(ctx context.Context, clientID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of a client's entries, newest first.
	// nextToken is the opaque cursor from a previous page; the returned
	// token is empty on the last page.
	ListEntries(ctx context.Context, clientID string, limit int, nextToken string) ([]domain.JournalEntry, string, error)
}

// JournalWriterSvc defines lifecycle operations for journal entries.
type JournalWriterSvc interface {
	// CreateDraftEntry validates and persists a new draft entry, assigning
	// the client's next entry number.
	CreateDraftEntry(ctx context.Context, clientID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateDraftEntry replaces a draft entry's fields and postings. Only
	// drafts are editable.
	UpdateDraftEntry(ctx context.Context, clientID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry transitions a draft to POSTED, applying its balance effects
	// atomically. Posted entries are immutable.
	PostEntry(ctx context.Context, clientID string, entryID string, userID string) (*domain.JournalEntry, error)

	// VoidEntry voids a posted entry by generating and posting a
	// compensating entry with mirrored postings, dated at the void date.
	// The original's history is preserved. Returns the compensating entry.
	VoidEntry(ctx context.Context, clientID string, entryID string, req dto.VoidEntryRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
