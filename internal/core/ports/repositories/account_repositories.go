package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// AccountReader defines read operations for accounts.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its ID.
	// Returns apperrors.ErrNotFound if not found.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// FindAccountByNumber retrieves a client's account by its account number.
	// Returns apperrors.ErrNotFound if not found.
	FindAccountByNumber(ctx context.Context, clientID string, accountNumber string) (*domain.Account, error)
	// FindAccountsByIDs retrieves multiple accounts by their IDs, returned as
	// a map keyed by account ID. Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	// ListAccountsByClient retrieves all of a client's accounts, active and
	// inactive, ordered by account number.
	ListAccountsByClient(ctx context.Context, clientID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
	// UpdateAccount persists changes to an existing account, guarded by the
	// account's Version. Returns apperrors.ErrConcurrencyConflict if the
	// stored version no longer matches.
	UpdateAccount(ctx context.Context, account domain.Account) error
	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines account operations that participate in a
// caller-owned transaction, used by the posting engine.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate retrieves accounts by ID with row locks
	// (SELECT ... FOR UPDATE), in a stable ID order to avoid deadlocks.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	// UpdateAccountBalancesInTx applies signed balance deltas to the given
	// accounts within the transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]int64, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
	TransactionManager
}
