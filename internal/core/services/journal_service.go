package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/utils/accounting"
)

// Journal service specific errors
var (
	// ErrUnbalancedEntry indicates an entry whose debit and credit totals
	// differ.
	ErrUnbalancedEntry = errors.New("entry debits and credits do not balance")
)

type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates the journal entry service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validatePostings runs the full double-entry validation over the request
// lines and returns the referenced accounts, keyed by ID, for delta
// computation.
func (s *journalService) validatePostings(ctx context.Context, clientID string, lines []dto.CreatePostingRequest) (map[string]domain.Account, error) {
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: an entry needs at least two postings", apperrors.ErrValidation)
	}

	postings := make([]domain.Posting, len(lines))
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for i, line := range lines {
		postings[i] = domain.Posting{
			AccountID:    line.AccountID,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
		}
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	if err := accounting.ValidatePostingAmounts(postings); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	debits, credits := accounting.EntryTotals(postings)
	if debits != credits {
		return nil, fmt.Errorf("%w: debits %d != credits %d", ErrUnbalancedEntry, debits, credits)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, id)
		}
		if account.ClientID != clientID {
			return nil, fmt.Errorf("%w: account %s belongs to a different client", apperrors.ErrValidation, id)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountNumber)
		}
	}
	return accounts, nil
}

// buildPostings materializes request lines into persistable postings.
func buildPostings(lines []dto.CreatePostingRequest, entryID string, userID string, now time.Time) []domain.Posting {
	postings := make([]domain.Posting, len(lines))
	for i, line := range lines {
		postings[i] = domain.Posting{
			PostingID:    uuid.NewString(),
			EntryID:      entryID,
			AccountID:    line.AccountID,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
			Memo:         line.Memo,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return postings
}

// balanceDeltas computes each account's signed balance change from a set of
// postings, in the account's normal-balance convention.
func balanceDeltas(postings []domain.Posting, accounts map[string]domain.Account) map[string]int64 {
	deltas := make(map[string]int64, len(accounts))
	for _, p := range postings {
		account := accounts[p.AccountID]
		deltas[p.AccountID] += accounting.SignedAmount(p, account.NormalBalance)
	}
	return deltas
}

func (s *journalService) CreateDraftEntry(ctx context.Context, clientID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	if _, err := s.validatePostings(ctx, clientID, req.Postings); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		ClientID:    clientID,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      domain.Draft,
		Version:     1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	postings := buildPostings(req.Postings, entry.EntryID, userID, now)

	entryNumber, err := s.journalRepo.SaveDraft(ctx, entry, postings)
	if err != nil {
		s.LogError(ctx, err, "failed to save draft entry", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to save draft entry: %w", err)
	}
	entry.EntryNumber = entryNumber
	entry.Postings = postings

	s.LogInfo(ctx, "draft entry created",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.String("client_id", clientID))
	return &entry, nil
}

func (s *journalService) UpdateDraftEntry(ctx context.Context, clientID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.findClientEntry(ctx, clientID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %d is %s, only drafts are editable", apperrors.ErrStateTransition, entry.EntryNumber, entry.Status)
	}
	if _, err := s.validatePostings(ctx, clientID, req.Postings); err != nil {
		return nil, err
	}

	now := time.Now()
	entry.EntryDate = req.EntryDate
	entry.Description = req.Description
	entry.Reference = req.Reference
	entry.Version = req.Version
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	postings := buildPostings(req.Postings, entry.EntryID, userID, now)

	if err := s.journalRepo.ReplaceDraft(ctx, *entry, postings); err != nil {
		if errors.Is(err, apperrors.ErrConcurrencyConflict) || errors.Is(err, apperrors.ErrStateTransition) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to update draft entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update draft entry: %w", err)
	}
	entry.Version++
	entry.Postings = postings
	return entry, nil
}

func (s *journalService) PostEntry(ctx context.Context, clientID string, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.findClientEntry(ctx, clientID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %d is %s, only drafts can be posted", apperrors.ErrStateTransition, entry.EntryNumber, entry.Status)
	}

	postings, err := s.journalRepo.FindPostingsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch postings: %w", err)
	}
	accounts, err := s.checkAccountsActive(ctx, postings)
	if err != nil {
		return nil, err
	}

	// The repository re-checks activity and the draft status under row
	// locks; this precheck just fails the obvious cases without taking
	// locks.
	if err := s.journalRepo.PostEntry(ctx, *entry, balanceDeltas(postings, accounts), userID); err != nil {
		if errors.Is(err, apperrors.ErrStateTransition) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to post entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post entry: %w", err)
	}

	entry.Status = domain.Posted
	entry.Version++
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = userID
	entry.Postings = postings

	s.LogInfo(ctx, "entry posted",
		slog.String("entry_id", entryID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.String("client_id", clientID))
	return entry, nil
}

func (s *journalService) VoidEntry(ctx context.Context, clientID string, entryID string, req dto.VoidEntryRequest, userID string) (*domain.JournalEntry, error) {
	original, err := s.findClientEntry(ctx, clientID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %d is %s, only posted entries can be voided", apperrors.ErrStateTransition, original.EntryNumber, original.Status)
	}

	originalPostings, err := s.journalRepo.FindPostingsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch postings: %w", err)
	}

	now := time.Now()
	compensating := domain.JournalEntry{
		EntryID:      uuid.NewString(),
		ClientID:     clientID,
		EntryDate:    req.VoidDate,
		Description:  fmt.Sprintf("Void of entry %d: %s", original.EntryNumber, req.Reason),
		Reference:    original.Reference,
		Status:       domain.Posted,
		VoidsEntryID: &original.EntryID,
		Version:      1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	mirrored := accounting.MirrorPostings(originalPostings)
	for i := range mirrored {
		mirrored[i].PostingID = uuid.NewString()
		mirrored[i].EntryID = compensating.EntryID
		mirrored[i].AuditFields = compensating.AuditFields
	}

	// Voiding must reverse the balances even if an account has since been
	// deactivated, so unlike posting there is no activity check here.
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, postingAccountIDs(mirrored))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	entryNumber, err := s.journalRepo.VoidEntry(ctx, *original, compensating, mirrored, balanceDeltas(mirrored, accounts))
	if err != nil {
		if errors.Is(err, apperrors.ErrStateTransition) || errors.Is(err, apperrors.ErrConcurrencyConflict) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to void entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to void entry: %w", err)
	}
	compensating.EntryNumber = entryNumber
	compensating.Postings = mirrored

	s.LogInfo(ctx, "entry voided",
		slog.String("entry_id", entryID),
		slog.String("compensating_entry_id", compensating.EntryID),
		slog.String("client_id", clientID))
	return &compensating, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, clientID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.findClientEntry(ctx, clientID, entryID)
	if err != nil {
		return nil, err
	}
	postings, err := s.journalRepo.FindPostingsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch postings: %w", err)
	}
	entry.Postings = postings
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, clientID string, limit int, nextToken string) ([]domain.JournalEntry, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	entries, token, err := s.journalRepo.ListEntriesByClient(ctx, clientID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list entries", slog.String("client_id", clientID))
		return nil, "", fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, token, nil
}

// findClientEntry fetches an entry and hides other clients' entries behind
// not-found.
func (s *journalService) findClientEntry(ctx context.Context, clientID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.ClientID != clientID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", entryID))
	}
	return entry, nil
}

// checkAccountsActive fetches the accounts behind a set of postings and
// fails if any has been deactivated since the draft was created.
func (s *journalService) checkAccountsActive(ctx context.Context, postings []domain.Posting) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, postingAccountIDs(postings))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, p := range postings {
		account, ok := accounts[p.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, p.AccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s was deactivated after drafting", apperrors.ErrStateTransition, account.AccountNumber)
		}
	}
	return accounts, nil
}

func postingAccountIDs(postings []domain.Posting) []string {
	seen := make(map[string]bool, len(postings))
	ids := make([]string, 0, len(postings))
	for _, p := range postings {
		if !seen[p.AccountID] {
			seen[p.AccountID] = true
			ids = append(ids, p.AccountID)
		}
	}
	return ids
}
