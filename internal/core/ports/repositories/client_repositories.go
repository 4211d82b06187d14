package repositories

import (
	"context"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// ClientReader defines read operations for clients.
type ClientReader interface {
	// FindClientByID retrieves a single client by its ID.
	// Returns apperrors.ErrNotFound if not found.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	// ListClients retrieves a page of clients ordered by name.
	ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for clients.
type ClientWriter interface {
	// SaveClient persists a new client. Returns apperrors.ErrDuplicate if a
	// client with the same ID already exists.
	SaveClient(ctx context.Context, client domain.Client) error
	// UpdateClient persists changes to an existing client.
	UpdateClient(ctx context.Context, client domain.Client) error
}

// ClientRepositoryFacade combines all client repository interfaces.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
