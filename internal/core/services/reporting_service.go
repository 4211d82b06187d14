package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/utils/accounting"
)

// warningCodeUnbalanced flags a balance sheet whose sides disagree. The
// report is still produced; the warning travels with it.
const warningCodeUnbalanced = "BALANCE_SHEET_UNBALANCED"

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	reportRepo    portsrepo.ReportRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewReportingService creates the balance and reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, reportRepo portsrepo.ReportRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		reportRepo:    reportRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetAccountBalance(ctx context.Context, clientID string, accountID string, asOf time.Time) (int64, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if account.ClientID != clientID {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}

	debits, credits, err := s.reportingRepo.GetAccountActivity(ctx, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate account activity", slog.String("account_id", accountID))
		return 0, fmt.Errorf("failed to aggregate account activity: %w", err)
	}
	if account.NormalBalance == domain.Debit {
		return debits - credits, nil
	}
	return credits - debits, nil
}

func (s *reportingService) GetTrialBalance(ctx context.Context, clientID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetBalanceRows(ctx, clientID, asOf)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate trial balance", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}

	result := make([]domain.TrialBalanceRow, len(rows))
	for i, row := range rows {
		result[i] = domain.TrialBalanceRow{
			AccountID:     row.AccountID,
			AccountNumber: row.AccountNumber,
			AccountName:   row.Name,
			AccountType:   row.AccountType,
			NormalBalance: row.NormalBalance,
			// Debit-positive for every account so the rows sum to zero.
			Balance: row.Debits - row.Credits,
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AccountNumber < result[j].AccountNumber })
	return result, nil
}

func (s *reportingService) GenerateBalanceSheet(ctx context.Context, clientID string, asOf time.Time) (*domain.Report, error) {
	rows, err := s.reportingRepo.GetBalanceRows(ctx, clientID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}

	var netIncome int64
	byType := map[domain.AccountType][]domain.BalanceRow{}
	for _, row := range rows {
		if row.AccountType.IsFlow() {
			// Revenue and expense balances roll into equity as earnings.
			if row.AccountType == domain.Revenue {
				netIncome += row.Signed()
			} else {
				netIncome -= row.Signed()
			}
			continue
		}
		byType[row.AccountType] = append(byType[row.AccountType], row)
	}

	assets, totalAssets := buildBalanceSheetSection(byType[domain.Asset])
	liabilities, totalLiabilities := buildBalanceSheetSection(byType[domain.Liability])
	equity, totalEquity := buildBalanceSheetSection(byType[domain.Equity])

	// Earnings not yet closed to an equity account still belong on the
	// equity side.
	if netIncome != 0 {
		equity = append(equity, domain.BalanceSheetLine{Name: "Net Income", Amount: netIncome})
		totalEquity += netIncome
	}

	data := &domain.BalanceSheetData{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
	}
	if totalAssets != totalLiabilities+totalEquity {
		data.Warnings = append(data.Warnings, domain.IntegrityWarning{
			Code: warningCodeUnbalanced,
			Detail: fmt.Sprintf("assets %d != liabilities %d + equity %d",
				totalAssets, totalLiabilities, totalEquity),
		})
		s.LogWarn(ctx, "balance sheet does not balance",
			slog.String("client_id", clientID),
			slog.Int64("total_assets", totalAssets),
			slog.Int64("total_liabilities", totalLiabilities),
			slog.Int64("total_equity", totalEquity))
	}

	return &domain.Report{
		ClientID:     clientID,
		ReportType:   domain.ReportBalanceSheet,
		PeriodStart:  asOf,
		PeriodEnd:    asOf,
		BalanceSheet: data,
	}, nil
}

// buildBalanceSheetSection nests one account type's rows per the account
// tree; each line's amount includes its descendants.
func buildBalanceSheetSection(rows []domain.BalanceRow) ([]domain.BalanceSheetLine, int64) {
	type node struct {
		line     domain.BalanceSheetLine
		parentID string
		children []*node
	}

	nodes := make(map[string]*node, len(rows))
	var total int64
	for _, row := range rows {
		total += row.Signed()
		nodes[row.AccountID] = &node{
			line: domain.BalanceSheetLine{
				AccountID:     row.AccountID,
				AccountNumber: row.AccountNumber,
				Name:          row.Name,
				Amount:        row.Signed(),
			},
			parentID: row.ParentAccountID,
		}
	}

	var roots []*node
	for _, n := range nodes {
		if parent, ok := nodes[n.parentID]; ok {
			parent.children = append(parent.children, n)
		} else {
			roots = append(roots, n)
		}
	}

	var build func(n *node) domain.BalanceSheetLine
	build = func(n *node) domain.BalanceSheetLine {
		sort.Slice(n.children, func(i, j int) bool {
			return n.children[i].line.AccountNumber < n.children[j].line.AccountNumber
		})
		line := n.line
		for _, child := range n.children {
			childLine := build(child)
			line.Amount += childLine.Amount
			line.Children = append(line.Children, childLine)
		}
		return line
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].line.AccountNumber < roots[j].line.AccountNumber
	})
	lines := make([]domain.BalanceSheetLine, len(roots))
	for i, root := range roots {
		lines[i] = build(root)
	}
	return lines, total
}

func (s *reportingService) GenerateProfitAndLoss(ctx context.Context, clientID string, from time.Time, to time.Time) (*domain.Report, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}
	rows, err := s.reportingRepo.GetPeriodRows(ctx, clientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate period activity: %w", err)
	}

	data := &domain.ProfitAndLossData{PeriodStart: from, PeriodEnd: to}
	for _, row := range rows {
		amount := row.Signed()
		switch row.AccountType {
		case domain.Revenue:
			data.Revenue = append(data.Revenue, toAccountAmount(row, amount))
			data.TotalRevenue += amount
		case domain.Expense:
			data.Expenses = append(data.Expenses, toAccountAmount(row, amount))
			data.TotalExpenses += amount
		}
	}
	data.NetIncome = data.TotalRevenue - data.TotalExpenses
	sortAccountAmounts(data.Revenue)
	sortAccountAmounts(data.Expenses)

	return &domain.Report{
		ClientID:      clientID,
		ReportType:    domain.ReportProfitAndLoss,
		PeriodStart:   from,
		PeriodEnd:     to,
		ProfitAndLoss: data,
	}, nil
}

func (s *reportingService) GenerateCashFlow(ctx context.Context, clientID string, from time.Time, to time.Time) (*domain.Report, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}
	rows, err := s.reportingRepo.GetPeriodRows(ctx, clientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate period activity: %w", err)
	}

	data := &domain.CashFlowData{PeriodStart: from, PeriodEnd: to}
	for _, row := range rows {
		delta := row.Signed()
		if row.AccountType.IsFlow() {
			if row.AccountType == domain.Revenue {
				data.NetIncome += delta
			} else {
				data.NetIncome -= delta
			}
			continue
		}
		if accounting.IsCashSubtype(row.AccountSubtype) {
			// The cash accounts are the statement's bottom line, not an
			// adjustment to it.
			continue
		}
		if row.Debits == 0 && row.Credits == 0 {
			continue
		}

		activity, ok := accounting.ActivityForSubtype(row.AccountSubtype)
		if !ok {
			return nil, fmt.Errorf("%w: account %s has subtype %q with no cash flow classification",
				apperrors.ErrValidation, row.AccountNumber, row.AccountSubtype)
		}

		// An asset growing consumes cash; a liability or equity account
		// growing provides it.
		cashEffect := delta
		if row.AccountType == domain.Asset {
			cashEffect = -delta
		}
		adj := domain.CashFlowAdjustment{
			AccountID:     row.AccountID,
			AccountNumber: row.AccountNumber,
			Name:          row.Name,
			Activity:      activity,
			Amount:        cashEffect,
		}
		switch activity {
		case domain.Operating:
			data.Operating = append(data.Operating, adj)
		case domain.Investing:
			data.Investing = append(data.Investing, adj)
		case domain.Financing:
			data.Financing = append(data.Financing, adj)
		}
	}

	data.NetOperating = data.NetIncome + sumAdjustments(data.Operating)
	data.NetInvesting = sumAdjustments(data.Investing)
	data.NetFinancing = sumAdjustments(data.Financing)
	data.NetChangeInCash = data.NetOperating + data.NetInvesting + data.NetFinancing
	sortAdjustments(data.Operating)
	sortAdjustments(data.Investing)
	sortAdjustments(data.Financing)

	return &domain.Report{
		ClientID:    clientID,
		ReportType:  domain.ReportCashFlow,
		PeriodStart: from,
		PeriodEnd:   to,
		CashFlow:    data,
	}, nil
}

func toAccountAmount(row domain.BalanceRow, amount int64) domain.AccountAmount {
	return domain.AccountAmount{
		AccountID:     row.AccountID,
		AccountNumber: row.AccountNumber,
		Name:          row.Name,
		Amount:        amount,
	}
}

func sortAccountAmounts(amounts []domain.AccountAmount) {
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].AccountNumber < amounts[j].AccountNumber })
}

func sortAdjustments(adjs []domain.CashFlowAdjustment) {
	sort.Slice(adjs, func(i, j int) bool { return adjs[i].AccountNumber < adjs[j].AccountNumber })
}

func sumAdjustments(adjs []domain.CashFlowAdjustment) int64 {
	var total int64
	for _, adj := range adjs {
		total += adj.Amount
	}
	return total
}

func (s *reportingService) SaveReport(ctx context.Context, report domain.Report, userID string) (*domain.Report, error) {
	if err := validateReportPayload(&report); err != nil {
		return nil, err
	}

	now := time.Now()
	report.ReportID = uuid.NewString()
	report.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	if err := s.reportRepo.SaveReport(ctx, report); err != nil {
		s.LogError(ctx, err, "failed to save report", slog.String("client_id", report.ClientID))
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.LogInfo(ctx, "report saved",
		slog.String("report_id", report.ReportID),
		slog.String("report_type", string(report.ReportType)),
		slog.String("client_id", report.ClientID))
	return &report, nil
}

func (s *reportingService) GetReportByID(ctx context.Context, clientID string, reportID string) (*domain.Report, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.ClientID != clientID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("report %s not found", reportID))
	}
	if err := validateReportPayload(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportingService) ListReports(ctx context.Context, clientID string, limit int, offset int) ([]domain.Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	reports, err := s.reportRepo.ListReportsByClient(ctx, clientID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list reports", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// validateReportPayload enforces the closed payload set: exactly one payload
// is present and it matches the declared type.
func validateReportPayload(report *domain.Report) error {
	count := 0
	if report.BalanceSheet != nil {
		count++
	}
	if report.ProfitAndLoss != nil {
		count++
	}
	if report.CashFlow != nil {
		count++
	}
	if count != 1 {
		return fmt.Errorf("%w: report must carry exactly one payload, got %d", apperrors.ErrValidation, count)
	}
	switch report.ReportType {
	case domain.ReportBalanceSheet:
		if report.BalanceSheet == nil {
			return fmt.Errorf("%w: payload does not match report type %s", apperrors.ErrValidation, report.ReportType)
		}
	case domain.ReportProfitAndLoss:
		if report.ProfitAndLoss == nil {
			return fmt.Errorf("%w: payload does not match report type %s", apperrors.ErrValidation, report.ReportType)
		}
	case domain.ReportCashFlow:
		if report.CashFlow == nil {
			return fmt.Errorf("%w: payload does not match report type %s", apperrors.ErrValidation, report.ReportType)
		}
	default:
		return fmt.Errorf("%w: unknown report type %q", apperrors.ErrValidation, report.ReportType)
	}
	return nil
}
