package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines the interface for managing database transactions.
type TransactionManager interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) (pgx.Tx, error)
	// Commit commits the given transaction.
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback aborts the given transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
