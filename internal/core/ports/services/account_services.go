package services

import (
	"context"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, clientID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all of a client's accounts, active and inactive,
	// ordered by account number.
	ListAccounts(ctx context.Context, clientID string) ([]domain.Account, error)

	// GetAccountTree retrieves the client's accounts assembled into their
	// parent/child hierarchy, roots ordered by account number.
	GetAccountTree(ctx context.Context, clientID string) ([]*domain.AccountNode, error)
}

// AccountWriterSvc defines write operations for the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount persists a new account after validating number
	// uniqueness, the type/normal-balance pairing, and parent linkage.
	CreateAccount(ctx context.Context, clientID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's mutable details. Type and
	// normal balance are fixed at creation.
	UpdateAccount(ctx context.Context, clientID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive so no new postings can
	// reference it. System accounts and accounts with active children are
	// protected.
	DeactivateAccount(ctx context.Context, clientID string, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
