package repositories

import (
	"context"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry, without postings.
	// Returns apperrors.ErrNotFound if not found.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	// FindPostingsByEntryID retrieves an entry's postings in insertion order.
	FindPostingsByEntryID(ctx context.Context, entryID string) ([]domain.Posting, error)
	// ListEntriesByClient retrieves a page of a client's entries ordered by
	// (entry_date, created_at) descending. nextToken is an opaque cursor from
	// a previous page; the returned token is empty on the last page.
	ListEntriesByClient(ctx context.Context, clientID string, limit int, nextToken string) ([]domain.JournalEntry, string, error)
	// FindPostingsByAccountID retrieves a page of postings against an
	// account, newest entry first, for account activity views.
	FindPostingsByAccountID(ctx context.Context, accountID string, limit int, nextToken string) ([]domain.Posting, string, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveDraft atomically assigns the client's next entry number and
	// persists the draft entry with its postings. The assigned number is
	// returned; gaps never occur because assignment and insert share one
	// transaction.
	SaveDraft(ctx context.Context, entry domain.JournalEntry, postings []domain.Posting) (int64, error)
	// ReplaceDraft rewrites a draft entry's fields and postings, guarded by
	// the entry's Version. Returns apperrors.ErrConcurrencyConflict on a
	// version mismatch and apperrors.ErrStateTransition if the entry is no
	// longer a draft.
	ReplaceDraft(ctx context.Context, entry domain.JournalEntry, postings []domain.Posting) error
	// PostEntry transitions a draft to POSTED and applies its balance deltas,
	// all in one transaction: the touched accounts are row-locked in stable
	// ID order, re-checked for activity, and updated together with the entry
	// status. Returns apperrors.ErrStateTransition if the entry is not a
	// draft or any account is inactive.
	PostEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]int64, userID string) error
	// VoidEntry marks the original entry VOID, persists the compensating
	// entry as POSTED with its mirrored postings, links the two, and applies
	// the reversing balance deltas, all in one transaction. The compensating
	// entry's assigned number is returned.
	VoidEntry(ctx context.Context, original domain.JournalEntry, compensating domain.JournalEntry, mirrored []domain.Posting, balanceChanges map[string]int64) (int64, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	TransactionManager
}
