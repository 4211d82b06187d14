package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
)

// uniqueViolation is the postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

const accountColumns = `account_id, client_id, account_number, name, account_type, account_subtype,
	COALESCE(parent_account_id, ''), normal_balance, description, is_active, is_system_account,
	balance, version, created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository implements account persistence using pgx.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID, &a.ClientID, &a.AccountNumber, &a.Name, &a.AccountType, &a.AccountSubtype,
		&a.ParentAccountID, &a.NormalBalance, &a.Description, &a.IsActive, &a.IsSystemAccount,
		&a.Balance, &a.Version, &a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, client_id, account_number, name, account_type, account_subtype,
			parent_account_id, normal_balance, description, is_active, is_system_account,
			balance, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.ClientID, account.AccountNumber, account.Name, account.AccountType, account.AccountSubtype,
		account.ParentAccountID, account.NormalBalance, account.Description, account.IsActive, account.IsSystemAccount,
		account.Balance, account.Version, account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountNumber)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return account, nil
}

func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, clientID string, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE client_id = $1 AND account_number = $2`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, clientID, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account number %s not found", accountNumber))
		}
		return nil, fmt.Errorf("failed to query account by number: %w", err)
	}
	return account, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1)`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	return accounts, rows.Err()
}

func (r *PgxAccountRepository) ListAccountsByClient(ctx context.Context, clientID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE client_id = $1 ORDER BY account_number`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, account_subtype = $2, description = $3,
			version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $6 AND version = $7`
	tag, err := r.Pool.Exec(ctx, query,
		account.Name, account.AccountSubtype, account.Description,
		account.LastUpdatedAt, account.LastUpdatedBy,
		account.AccountID, account.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, account.AccountID)
	}
	return nil
}

// classifyMissedUpdate distinguishes a vanished row from a lost version race.
func (r *PgxAccountRepository) classifyMissedUpdate(ctx context.Context, accountID string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1)`, accountID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check account existence: %w", err)
	}
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return fmt.Errorf("%w: account %s", apperrors.ErrConcurrencyConflict, accountID)
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, version = version + 1, last_updated_at = $1, last_updated_by = $2
		WHERE account_id = $3`
	tag, err := r.Pool.Exec(ctx, query, now, userID, accountID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	// Stable lock order prevents deadlocks between concurrent posts that
	// touch overlapping account sets.
	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(sorted))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	return accounts, rows.Err()
}

func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]int64, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	batch := &pgx.Batch{}
	query := `
		UPDATE accounts
		SET balance = balance + $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4`
	for _, id := range ids {
		batch.Queue(query, balanceChanges[id], now, userID, id)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for _, id := range ids {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("failed to update balance for account %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", id))
		}
	}
	return nil
}
