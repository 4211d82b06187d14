package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockReportRepo    *MockReportRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.ReportingSvcFacade

	clientID string
	userID   string
	asOf     time.Time
	from     time.Time
	to       time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockReportRepo = new(MockReportRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockReportRepo, suite.mockAccountRepo)

	suite.clientID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.from = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
}

func assetRow(number, name, subtype string, debits, credits int64) domain.BalanceRow {
	return domain.BalanceRow{
		AccountID:      uuid.NewString(),
		AccountNumber:  number,
		Name:           name,
		AccountType:    domain.Asset,
		AccountSubtype: subtype,
		NormalBalance:  domain.Debit,
		Debits:         debits,
		Credits:        credits,
	}
}

func creditRow(accountType domain.AccountType, number, name, subtype string, debits, credits int64) domain.BalanceRow {
	return domain.BalanceRow{
		AccountID:      uuid.NewString(),
		AccountNumber:  number,
		Name:           name,
		AccountType:    accountType,
		AccountSubtype: subtype,
		NormalBalance:  domain.Credit,
		Debits:         debits,
		Credits:        credits,
	}
}

func (suite *ReportingServiceTestSuite) TestGetAccountBalance_CreditNormal() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:     accountID,
		ClientID:      suite.clientID,
		NormalBalance: domain.Credit,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, accountID, suite.asOf).
		Return(int64(20000), int64(150000), nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, suite.clientID, accountID, suite.asOf)

	suite.Require().NoError(err)
	suite.Equal(int64(130000), balance) // credits - debits
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_SumsToZeroAndSorts() {
	ctx := context.Background()
	rows := []domain.BalanceRow{
		creditRow(domain.Revenue, "4000", "Service Revenue", "", 0, 120000),
		assetRow("1000", "Cash", "Cash", 150000, 30000),
	}

	suite.mockReportingRepo.On("GetBalanceRows", ctx, suite.clientID, suite.asOf).
		Return(rows, nil).Once()

	result, err := suite.service.GetTrialBalance(ctx, suite.clientID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("1000", result[0].AccountNumber)
	suite.Equal(int64(120000), result[0].Balance)
	suite.Equal("4000", result[1].AccountNumber)
	suite.Equal(int64(-120000), result[1].Balance)

	var total int64
	for _, row := range result {
		total += row.Balance
	}
	suite.Zero(total)
}

func (suite *ReportingServiceTestSuite) TestGenerateBalanceSheet_BalancedWithNetIncome() {
	ctx := context.Background()
	parent := assetRow("1000", "Current Assets", "", 0, 0)
	child := assetRow("1100", "Cash", "Cash", 100000, 0)
	child.ParentAccountID = parent.AccountID
	rows := []domain.BalanceRow{
		parent,
		child,
		creditRow(domain.Revenue, "4000", "Service Revenue", "", 0, 100000),
	}

	suite.mockReportingRepo.On("GetBalanceRows", ctx, suite.clientID, suite.asOf).
		Return(rows, nil).Once()

	report, err := suite.service.GenerateBalanceSheet(ctx, suite.clientID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(domain.ReportBalanceSheet, report.ReportType)
	suite.Require().NotNil(report.BalanceSheet)
	data := report.BalanceSheet

	suite.Equal(int64(100000), data.TotalAssets)
	suite.Zero(data.TotalLiabilities)
	suite.Equal(int64(100000), data.TotalEquity)
	suite.Empty(data.Warnings)

	// The child rolls up into its parent line.
	suite.Require().Len(data.Assets, 1)
	suite.Equal("1000", data.Assets[0].AccountNumber)
	suite.Equal(int64(100000), data.Assets[0].Amount)
	suite.Require().Len(data.Assets[0].Children, 1)
	suite.Equal(int64(100000), data.Assets[0].Children[0].Amount)

	// Un-closed earnings land on the equity side as a synthetic line.
	suite.Require().Len(data.Equity, 1)
	suite.Equal("Net Income", data.Equity[0].Name)
	suite.Equal(int64(100000), data.Equity[0].Amount)
}

func (suite *ReportingServiceTestSuite) TestGenerateBalanceSheet_ImbalanceAttachesWarning() {
	ctx := context.Background()
	rows := []domain.BalanceRow{
		assetRow("1000", "Cash", "Cash", 5000, 0),
	}

	suite.mockReportingRepo.On("GetBalanceRows", ctx, suite.clientID, suite.asOf).
		Return(rows, nil).Once()

	report, err := suite.service.GenerateBalanceSheet(ctx, suite.clientID, suite.asOf)

	// An imbalance is reported, not failed.
	suite.Require().NoError(err)
	suite.Require().NotNil(report.BalanceSheet)
	suite.Equal(int64(5000), report.BalanceSheet.TotalAssets)
	suite.Require().Len(report.BalanceSheet.Warnings, 1)
	suite.Equal("BALANCE_SHEET_UNBALANCED", report.BalanceSheet.Warnings[0].Code)
}

func (suite *ReportingServiceTestSuite) TestGenerateProfitAndLoss() {
	ctx := context.Background()
	expense := domain.BalanceRow{
		AccountID:     uuid.NewString(),
		AccountNumber: "5000",
		Name:          "Rent Expense",
		AccountType:   domain.Expense,
		NormalBalance: domain.Debit,
		Debits:        80000,
	}
	rows := []domain.BalanceRow{
		creditRow(domain.Revenue, "4000", "Service Revenue", "", 0, 200000),
		expense,
	}

	suite.mockReportingRepo.On("GetPeriodRows", ctx, suite.clientID, suite.from, suite.to).
		Return(rows, nil).Once()

	report, err := suite.service.GenerateProfitAndLoss(ctx, suite.clientID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().NotNil(report.ProfitAndLoss)
	data := report.ProfitAndLoss
	suite.Equal(int64(200000), data.TotalRevenue)
	suite.Equal(int64(80000), data.TotalExpenses)
	suite.Equal(int64(120000), data.NetIncome)
	suite.Require().Len(data.Revenue, 1)
	suite.Require().Len(data.Expenses, 1)
}

func (suite *ReportingServiceTestSuite) TestGenerateProfitAndLoss_InvertedPeriod() {
	ctx := context.Background()

	report, err := suite.service.GenerateProfitAndLoss(ctx, suite.clientID, suite.to, suite.from)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetPeriodRows", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGenerateCashFlow_IndirectMethod() {
	ctx := context.Background()
	expense := domain.BalanceRow{
		AccountID:     uuid.NewString(),
		AccountNumber: "5000",
		Name:          "Rent Expense",
		AccountType:   domain.Expense,
		NormalBalance: domain.Debit,
		Debits:        80000,
	}
	rows := []domain.BalanceRow{
		// Cash moves are the bottom line, never an adjustment.
		assetRow("1000", "Cash", "Cash", 90000, 30000),
		// AR grew by 30000: revenue earned but not collected.
		assetRow("1100", "Accounts Receivable", "Accounts Receivable", 30000, 0),
		// Equipment purchase.
		assetRow("1500", "Equipment", "Fixed Asset", 50000, 0),
		// Loan drawn down.
		creditRow(domain.Liability, "2500", "Bank Loan", "Notes Payable", 0, 20000),
		// No activity this period; skipped even though the subtype is unmapped.
		assetRow("1900", "Artwork", "Collectibles", 0, 0),
		creditRow(domain.Revenue, "4000", "Service Revenue", "", 0, 200000),
		expense,
	}

	suite.mockReportingRepo.On("GetPeriodRows", ctx, suite.clientID, suite.from, suite.to).
		Return(rows, nil).Once()

	report, err := suite.service.GenerateCashFlow(ctx, suite.clientID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().NotNil(report.CashFlow)
	data := report.CashFlow

	suite.Equal(int64(120000), data.NetIncome)
	suite.Require().Len(data.Operating, 1)
	suite.Equal(int64(-30000), data.Operating[0].Amount) // AR growth consumed cash
	suite.Require().Len(data.Investing, 1)
	suite.Equal(int64(-50000), data.Investing[0].Amount)
	suite.Require().Len(data.Financing, 1)
	suite.Equal(int64(20000), data.Financing[0].Amount)

	suite.Equal(int64(90000), data.NetOperating)
	suite.Equal(int64(-50000), data.NetInvesting)
	suite.Equal(int64(20000), data.NetFinancing)
	suite.Equal(int64(60000), data.NetChangeInCash)
}

func (suite *ReportingServiceTestSuite) TestGenerateCashFlow_UnmappedSubtypeWithActivity() {
	ctx := context.Background()
	rows := []domain.BalanceRow{
		assetRow("1900", "Artwork", "Collectibles", 10000, 0),
	}

	suite.mockReportingRepo.On("GetPeriodRows", ctx, suite.clientID, suite.from, suite.to).
		Return(rows, nil).Once()

	report, err := suite.service.GenerateCashFlow(ctx, suite.clientID, suite.from, suite.to)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestSaveReport_AssignsIDAndAudit() {
	ctx := context.Background()
	report := domain.Report{
		ClientID:    suite.clientID,
		ReportType:  domain.ReportProfitAndLoss,
		PeriodStart: suite.from,
		PeriodEnd:   suite.to,
		ProfitAndLoss: &domain.ProfitAndLossData{
			PeriodStart: suite.from,
			PeriodEnd:   suite.to,
		},
	}

	suite.mockReportRepo.On("SaveReport", ctx, mock.AnythingOfType("domain.Report")).Return(nil).Once()

	saved, err := suite.service.SaveReport(ctx, report, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.NotEmpty(saved.ReportID)
	suite.Equal(suite.userID, saved.CreatedBy)
	suite.WithinDuration(time.Now(), saved.CreatedAt, time.Second)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestSaveReport_RejectsMissingPayload() {
	ctx := context.Background()
	report := domain.Report{
		ClientID:   suite.clientID,
		ReportType: domain.ReportBalanceSheet,
	}

	saved, err := suite.service.SaveReport(ctx, report, suite.userID)

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportRepo.AssertNotCalled(suite.T(), "SaveReport", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestSaveReport_RejectsMismatchedPayload() {
	ctx := context.Background()
	report := domain.Report{
		ClientID:   suite.clientID,
		ReportType: domain.ReportBalanceSheet,
		CashFlow:   &domain.CashFlowData{},
	}

	saved, err := suite.service.SaveReport(ctx, report, suite.userID)

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestGetReportByID_OtherClientHiddenAsNotFound() {
	ctx := context.Background()
	reportID := uuid.NewString()
	report := &domain.Report{
		ReportID:     reportID,
		ClientID:     uuid.NewString(), // someone else's
		ReportType:   domain.ReportBalanceSheet,
		BalanceSheet: &domain.BalanceSheetData{},
	}

	suite.mockReportRepo.On("FindReportByID", ctx, reportID).Return(report, nil).Once()

	result, err := suite.service.GetReportByID(ctx, suite.clientID, reportID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
