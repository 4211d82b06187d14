package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

// Account service specific errors
var (
	// ErrAccountCycle indicates the parent chain of an account loops back on
	// itself.
	ErrAccountCycle = errors.New("account hierarchy contains a cycle")
	// ErrProtectedAccount indicates the account is a system account and may
	// not be deactivated.
	ErrProtectedAccount = errors.New("account is protected")
)

// maxHierarchyDepth bounds the parent-chain walk so a corrupted chain fails
// fast instead of spinning.
const maxHierarchyDepth = 100

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, clientID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}

	normalBalance := req.AccountType.NormalBalance()
	if req.NormalBalance != nil && domain.NormalBalance(*req.NormalBalance) != normalBalance {
		return nil, fmt.Errorf("%w: normal balance %s does not match account type %s", apperrors.ErrValidation, *req.NormalBalance, req.AccountType)
	}

	// Account numbers are unique within a client.
	existing, err := s.accountRepo.FindAccountByNumber(ctx, clientID, req.AccountNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to check account number uniqueness", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to check account number: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account number %s already exists for client", apperrors.ErrDuplicate, req.AccountNumber)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if err := s.validateParent(ctx, clientID, parentID, req.AccountType); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		ClientID:        clientID,
		AccountNumber:   req.AccountNumber,
		Name:            req.Name,
		AccountType:     req.AccountType,
		AccountSubtype:  req.AccountSubtype,
		ParentAccountID: parentID,
		NormalBalance:   normalBalance,
		Description:     req.Description,
		IsActive:        true,
		Balance:         0,
		Version:         1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "failed to save account", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("client_id", clientID))
	return &account, nil
}

// validateParent checks the parent exists, belongs to the same client, has
// the same account type, and that its own chain is cycle-free.
func (s *accountService) validateParent(ctx context.Context, clientID string, parentID string, accountType domain.AccountType) error {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, parentID)
		}
		return fmt.Errorf("failed to fetch parent account: %w", err)
	}
	if parent.ClientID != clientID {
		return fmt.Errorf("%w: parent account belongs to a different client", apperrors.ErrValidation)
	}
	if parent.AccountType != accountType {
		return fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, accountType)
	}

	// Walk up from the parent so a pre-existing loop is caught before we
	// attach anything new to it.
	visited := map[string]bool{}
	current := parent
	for depth := 0; current.ParentAccountID != ""; depth++ {
		if depth >= maxHierarchyDepth || visited[current.AccountID] {
			return fmt.Errorf("%w: detected at account %s", ErrAccountCycle, current.AccountID)
		}
		visited[current.AccountID] = true
		next, err := s.accountRepo.FindAccountByID(ctx, current.ParentAccountID)
		if err != nil {
			return fmt.Errorf("failed to walk account hierarchy: %w", err)
		}
		current = next
	}
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, clientID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.ClientID != clientID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, clientID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "failed to list accounts", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) GetAccountTree(ctx context.Context, clientID string) ([]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListAccountsByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for i := range accounts {
		nodes[accounts[i].AccountID] = &domain.AccountNode{Account: accounts[i]}
	}

	var roots []*domain.AccountNode
	for _, node := range nodes {
		if node.Account.ParentAccountID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[node.Account.ParentAccountID]
		if !ok {
			// Orphaned parent reference; surface the account as a root
			// rather than dropping it from the tree.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	// A cycle leaves its members unreachable from any root.
	if countNodes(roots) != len(nodes) {
		return nil, fmt.Errorf("%w: account tree for client %s", ErrAccountCycle, clientID)
	}

	sortTree(roots)
	return roots, nil
}

func countNodes(nodes []*domain.AccountNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + countNodes(n.Children)
	}
	return total
}

func sortTree(nodes []*domain.AccountNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Account.AccountNumber < nodes[j].Account.AccountNumber
	})
	for _, n := range nodes {
		sortTree(n.Children)
	}
}

func (s *accountService) UpdateAccount(ctx context.Context, clientID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, clientID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = *req.Name
	}
	if req.AccountSubtype != nil {
		account.AccountSubtype = *req.AccountSubtype
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.Version = req.Version
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrConcurrencyConflict) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	account.Version++
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, clientID string, accountID string, userID string) error {
	account, err := s.GetAccountByID(ctx, clientID, accountID)
	if err != nil {
		return err
	}
	if account.IsSystemAccount {
		return fmt.Errorf("%w: system account %s cannot be deactivated", ErrProtectedAccount, account.AccountNumber)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrStateTransition, account.AccountNumber)
	}

	// Deactivating a parent while children still accept postings would make
	// the tree misleading.
	siblings, err := s.accountRepo.ListAccountsByClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	for _, a := range siblings {
		if a.ParentAccountID == accountID && a.IsActive {
			return fmt.Errorf("%w: account %s has active child accounts", ErrProtectedAccount, account.AccountNumber)
		}
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.LogInfo(ctx, "account deactivated",
		slog.String("account_id", accountID),
		slog.String("client_id", clientID))
	return nil
}
