package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

type clientService struct {
	BaseService
	clientRepo  portsrepo.ClientRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewClientService creates the client (tenant) service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{
		clientRepo:  clientRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error) {
	if !req.Plan.IsValid() {
		return nil, fmt.Errorf("%w: invalid plan %q", apperrors.ErrValidation, req.Plan)
	}
	if req.MonthlyFee.IsNegative() {
		return nil, fmt.Errorf("%w: monthly fee cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	client := domain.Client{
		ClientID:    uuid.NewString(),
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Industry:    strings.ToLower(req.Industry),
		Plan:        req.Plan,
		Status:      domain.ClientActive,
		MonthlyFee:  req.MonthlyFee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "failed to save client")
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	if req.SeedChart {
		if _, err := s.SeedIndustryTemplate(ctx, client.ClientID, client.Industry, userID); err != nil {
			// The client record exists; seeding can be retried explicitly.
			s.LogError(ctx, err, "failed to seed chart of accounts", slog.String("client_id", client.ClientID))
			return nil, fmt.Errorf("client created but chart seeding failed: %w", err)
		}
	}

	s.LogInfo(ctx, "client created",
		slog.String("client_id", client.ClientID),
		slog.String("industry", client.Industry))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	clients, err := s.clientRepo.ListClients(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list clients")
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		if *req.CompanyName == "" {
			return nil, fmt.Errorf("%w: company name cannot be empty", apperrors.ErrValidation)
		}
		client.CompanyName = *req.CompanyName
	}
	if req.ContactName != nil {
		client.ContactName = *req.ContactName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Industry != nil {
		client.Industry = strings.ToLower(*req.Industry)
	}
	if req.Plan != nil {
		if !req.Plan.IsValid() {
			return nil, fmt.Errorf("%w: invalid plan %q", apperrors.ErrValidation, *req.Plan)
		}
		client.Plan = *req.Plan
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	if req.MonthlyFee != nil {
		if req.MonthlyFee.IsNegative() {
			return nil, fmt.Errorf("%w: monthly fee cannot be negative", apperrors.ErrValidation)
		}
		client.MonthlyFee = *req.MonthlyFee
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = userID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "failed to update client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *clientService) SeedIndustryTemplate(ctx context.Context, clientID string, industry string, userID string) ([]domain.Account, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return nil, err
	}

	now := time.Now()
	var created []domain.Account
	for _, row := range TemplateForIndustry(strings.ToLower(industry)) {
		existing, err := s.accountRepo.FindAccountByNumber(ctx, clientID, row.AccountNumber)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return created, fmt.Errorf("failed to check account number %s: %w", row.AccountNumber, err)
		}
		if existing != nil {
			// Re-seeding is additive; numbers already in use are kept as-is.
			continue
		}

		account := domain.Account{
			AccountID:       uuid.NewString(),
			ClientID:        clientID,
			AccountNumber:   row.AccountNumber,
			Name:            row.Name,
			AccountType:     row.AccountType,
			AccountSubtype:  row.AccountSubtype,
			NormalBalance:   row.AccountType.NormalBalance(),
			Description:     row.Description,
			IsActive:        true,
			IsSystemAccount: true,
			Version:         1,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			return created, fmt.Errorf("failed to seed account %s: %w", row.AccountNumber, err)
		}
		created = append(created, account)
	}

	s.LogInfo(ctx, "industry template seeded",
		slog.String("client_id", clientID),
		slog.String("industry", industry),
		slog.Int("accounts_created", len(created)))
	return created, nil
}
