package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
)

// balanceRowSelect aggregates postings per account. Only applied entries
// (POSTED or VOID) move balances; a voided entry and its compensating
// mirror net out from the void date forward while keeping earlier
// point-in-time queries intact.
const balanceRowSelect = `
	SELECT a.account_id, a.account_number, a.name, a.account_type, a.account_subtype,
		COALESCE(a.parent_account_id, ''), a.normal_balance,
		COALESCE(SUM(p.debit_amount) FILTER (WHERE %s), 0),
		COALESCE(SUM(p.credit_amount) FILTER (WHERE %s), 0)
	FROM accounts a
	LEFT JOIN ledger_entries p ON p.account_id = a.account_id
	LEFT JOIN journal_entries e ON e.entry_id = p.entry_id
	WHERE a.client_id = $1
	GROUP BY a.account_id, a.account_number, a.name, a.account_type, a.account_subtype,
		a.parent_account_id, a.normal_balance
	ORDER BY a.account_number`

// ReportingRepository implements the aggregation queries behind balances and
// financial statements.
type ReportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool *pgxpool.Pool) *ReportingRepository {
	return &ReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

func collectBalanceRows(rows pgx.Rows) ([]domain.BalanceRow, error) {
	var result []domain.BalanceRow
	for rows.Next() {
		var row domain.BalanceRow
		err := rows.Scan(
			&row.AccountID, &row.AccountNumber, &row.Name, &row.AccountType, &row.AccountSubtype,
			&row.ParentAccountID, &row.NormalBalance, &row.Debits, &row.Credits,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *ReportingRepository) GetBalanceRows(ctx context.Context, clientID string, asOf time.Time) ([]domain.BalanceRow, error) {
	cond := `e.status IN ('POSTED', 'VOID') AND e.entry_date <= $2`
	query := fmt.Sprintf(balanceRowSelect, cond, cond)
	rows, err := r.Pool.Query(ctx, query, clientID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()
	return collectBalanceRows(rows)
}

func (r *ReportingRepository) GetPeriodRows(ctx context.Context, clientID string, from time.Time, to time.Time) ([]domain.BalanceRow, error) {
	cond := `e.status IN ('POSTED', 'VOID') AND e.entry_date >= $2 AND e.entry_date <= $3`
	query := fmt.Sprintf(balanceRowSelect, cond, cond)
	rows, err := r.Pool.Query(ctx, query, clientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query period activity: %w", err)
	}
	defer rows.Close()
	return collectBalanceRows(rows)
}

func (r *ReportingRepository) GetAccountActivity(ctx context.Context, accountID string, asOf time.Time) (int64, int64, error) {
	var debits, credits int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(p.debit_amount), 0), COALESCE(SUM(p.credit_amount), 0)
		FROM ledger_entries p
		JOIN journal_entries e ON e.entry_id = p.entry_id
		WHERE p.account_id = $1 AND e.status IN ('POSTED', 'VOID') AND e.entry_date <= $2`,
		accountID, asOf,
	).Scan(&debits, &credits)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate account activity: %w", err)
	}
	return debits, credits, nil
}
