package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	"github.com/brightbooks/bright_books_app/internal/utils/pagination"
)

const entryColumns = `entry_id, client_id, entry_number, entry_date, description, reference, status,
	voided_by_entry_id, voids_entry_id, version, created_at, created_by, last_updated_at, last_updated_by`

const postingColumns = `posting_id, entry_id, account_id, debit_amount, credit_amount, memo,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxJournalRepository implements journal persistence and the atomic posting
// path. It leans on the account repository for row locking and balance
// application so both sides share one locking discipline.
type PgxJournalRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID, &e.ClientID, &e.EntryNumber, &e.EntryDate, &e.Description, &e.Reference, &e.Status,
		&e.VoidedByEntryID, &e.VoidsEntryID, &e.Version, &e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// nextEntryNumber advances the client's entry counter inside the caller's
// transaction. The single UPDATE ... RETURNING makes concurrent drafts
// serialize on the client row instead of racing a read-then-increment.
func nextEntryNumber(ctx context.Context, tx pgx.Tx, clientID string, userID string, now time.Time) (int64, error) {
	var entryNumber int64
	err := tx.QueryRow(ctx, `
		UPDATE clients
		SET last_entry_number = last_entry_number + 1, last_updated_at = $1, last_updated_by = $2
		WHERE client_id = $3
		RETURNING last_entry_number`,
		now, userID, clientID,
	).Scan(&entryNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", clientID))
		}
		return 0, fmt.Errorf("failed to assign entry number: %w", err)
	}
	return entryNumber, nil
}

func insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		entry.EntryID, entry.ClientID, entry.EntryNumber, entry.EntryDate, entry.Description, entry.Reference, entry.Status,
		entry.VoidedByEntryID, entry.VoidsEntryID, entry.Version, entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func insertPostings(ctx context.Context, tx pgx.Tx, postings []domain.Posting) error {
	batch := &pgx.Batch{}
	for _, p := range postings {
		batch.Queue(`
			INSERT INTO ledger_entries (`+postingColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.PostingID, p.EntryID, p.AccountID, p.DebitAmount, p.CreditAmount, p.Memo,
			p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range postings {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert posting: %w", err)
		}
	}
	return nil
}

func (r *PgxJournalRepository) SaveDraft(ctx context.Context, entry domain.JournalEntry, postings []domain.Posting) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	entryNumber, err := nextEntryNumber(ctx, tx, entry.ClientID, entry.CreatedBy, entry.CreatedAt)
	if err != nil {
		return 0, err
	}
	entry.EntryNumber = entryNumber

	if err := insertEntry(ctx, tx, entry); err != nil {
		return 0, err
	}
	if err := insertPostings(ctx, tx, postings); err != nil {
		return 0, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryNumber, nil
}

func (r *PgxJournalRepository) ReplaceDraft(ctx context.Context, entry domain.JournalEntry, postings []domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET entry_date = $1, description = $2, reference = $3,
			version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $6 AND version = $7 AND status = $8`,
		entry.EntryDate, entry.Description, entry.Reference,
		entry.LastUpdatedAt, entry.LastUpdatedBy,
		entry.EntryID, entry.Version, domain.Draft,
	)
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedEntryUpdate(ctx, tx, entry.EntryID, domain.Draft)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to clear draft postings: %w", err)
	}
	if err := insertPostings(ctx, tx, postings); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// classifyMissedEntryUpdate distinguishes not-found, wrong-status and lost
// version races after a guarded UPDATE matched nothing.
func (r *PgxJournalRepository) classifyMissedEntryUpdate(ctx context.Context, tx pgx.Tx, entryID string, wantStatus domain.EntryStatus) error {
	var status domain.EntryStatus
	err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1`, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", entryID))
		}
		return fmt.Errorf("failed to check entry status: %w", err)
	}
	if status != wantStatus {
		return fmt.Errorf("%w: entry is %s", apperrors.ErrStateTransition, status)
	}
	return fmt.Errorf("%w: entry %s", apperrors.ErrConcurrencyConflict, entryID)
}

// lockActiveAccounts row-locks the given accounts and fails if any is
// missing or inactive. Posting decisions made before the locks were taken
// are re-validated here, under them.
func (r *PgxJournalRepository) lockActiveAccounts(ctx context.Context, tx pgx.Tx, accountIDs []string) error {
	accounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", id))
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrStateTransition, account.AccountNumber)
		}
	}
	return nil
}

func balanceChangeAccountIDs(balanceChanges map[string]int64) []string {
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	return ids
}

func (r *PgxJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]int64, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := r.lockActiveAccounts(ctx, tx, balanceChangeAccountIDs(balanceChanges)); err != nil {
		return err
	}

	now := time.Now()
	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4 AND status = $5`,
		domain.Posted, now, userID, entry.EntryID, domain.Draft,
	)
	if err != nil {
		return fmt.Errorf("failed to post entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedEntryUpdate(ctx, tx, entry.EntryID, domain.Draft)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) VoidEntry(ctx context.Context, original domain.JournalEntry, compensating domain.JournalEntry, mirrored []domain.Posting, balanceChanges map[string]int64) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	// Voiding reverses balances on deactivated accounts too, so only the
	// locks matter here, not activity.
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, balanceChangeAccountIDs(balanceChanges)); err != nil {
		return 0, err
	}

	userID := compensating.CreatedBy
	now := compensating.CreatedAt
	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $1, voided_by_entry_id = $2, version = version + 1, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $5 AND status = $6 AND version = $7`,
		domain.Void, compensating.EntryID, now, userID,
		original.EntryID, domain.Posted, original.Version,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark entry void: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, r.classifyMissedEntryUpdate(ctx, tx, original.EntryID, domain.Posted)
	}

	entryNumber, err := nextEntryNumber(ctx, tx, compensating.ClientID, userID, now)
	if err != nil {
		return 0, err
	}
	compensating.EntryNumber = entryNumber

	if err := insertEntry(ctx, tx, compensating); err != nil {
		return 0, err
	}
	if err := insertPostings(ctx, tx, mirrored); err != nil {
		return 0, err
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return 0, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryNumber, nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to query entry: %w", err)
	}
	return entry, nil
}

func (r *PgxJournalRepository) FindPostingsByEntryID(ctx context.Context, entryID string) ([]domain.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM ledger_entries WHERE entry_id = $1 ORDER BY created_at, posting_id`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query postings: %w", err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

func collectPostings(rows pgx.Rows) ([]domain.Posting, error) {
	var postings []domain.Posting
	for rows.Next() {
		var p domain.Posting
		err := rows.Scan(
			&p.PostingID, &p.EntryID, &p.AccountID, &p.DebitAmount, &p.CreditAmount, &p.Memo,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

func (r *PgxJournalRepository) ListEntriesByClient(ctx context.Context, clientID string, limit int, nextToken string) ([]domain.JournalEntry, string, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE client_id = $1`
	args := []any{clientID}
	if nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, entryDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit+1) // fetch one extra to know whether a next page exists

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var token string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token = pagination.EncodeToken(last.EntryDate, last.CreatedAt)
	}
	return entries, token, nil
}

func (r *PgxJournalRepository) FindPostingsByAccountID(ctx context.Context, accountID string, limit int, nextToken string) ([]domain.Posting, string, error) {
	query := `
		SELECT p.posting_id, p.entry_id, p.account_id, p.debit_amount, p.credit_amount, p.memo,
			p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
		FROM ledger_entries p
		JOIN journal_entries e ON e.entry_id = p.entry_id
		WHERE p.account_id = $1`
	args := []any{accountID}
	if nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (e.entry_date, p.created_at) < ($2, $3)`
		args = append(args, entryDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY e.entry_date DESC, p.created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query account postings: %w", err)
	}
	defer rows.Close()

	postings, err := collectPostings(rows)
	if err != nil {
		return nil, "", err
	}

	var token string
	if len(postings) > limit {
		postings = postings[:limit]
		last := postings[len(postings)-1]
		entry, err := r.FindEntryByID(ctx, last.EntryID)
		if err != nil {
			return nil, "", err
		}
		token = pagination.EncodeToken(entry.EntryDate, last.CreatedAt)
	}
	return postings, token, nil
}
