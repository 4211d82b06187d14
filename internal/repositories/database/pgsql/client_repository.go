package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
)

const clientColumns = `client_id, company_name, contact_name, email, phone, industry, plan, monthly_fee,
	status, last_entry_number, created_at, created_by, last_updated_at, last_updated_by`

// PgxClientRepository implements client persistence using pgx.
type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) *PgxClientRepository {
	return &PgxClientRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID, &c.CompanyName, &c.ContactName, &c.Email, &c.Phone, &c.Industry, &c.Plan, &c.MonthlyFee,
		&c.Status, &c.LastEntryNumber, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		client.ClientID, client.CompanyName, client.ContactName, client.Email, client.Phone, client.Industry, client.Plan, client.MonthlyFee,
		client.Status, client.LastEntryNumber, client.CreatedAt, client.CreatedBy, client.LastUpdatedAt, client.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: client %s", apperrors.ErrDuplicate, client.ClientID)
		}
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1`
	client, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", clientID))
		}
		return nil, fmt.Errorf("failed to query client: %w", err)
	}
	return client, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY company_name LIMIT $1 OFFSET $2`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *client)
	}
	return clients, rows.Err()
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	// last_entry_number is deliberately excluded; only the entry counter
	// path may touch it.
	tag, err := r.Pool.Exec(ctx, `
		UPDATE clients
		SET company_name = $1, contact_name = $2, email = $3, phone = $4, industry = $5,
			plan = $6, monthly_fee = $7, status = $8, last_updated_at = $9, last_updated_by = $10
		WHERE client_id = $11`,
		client.CompanyName, client.ContactName, client.Email, client.Phone, client.Industry,
		client.Plan, client.MonthlyFee, client.Status, client.LastUpdatedAt, client.LastUpdatedBy,
		client.ClientID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", client.ClientID))
	}
	return nil
}
