package services

import (
	"context"
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// BalanceSvc defines balance calculation operations over posted ledger data.
type BalanceSvc interface {
	// GetAccountBalance returns an account's signed balance as of a date,
	// in the account's normal-balance convention.
	GetAccountBalance(ctx context.Context, clientID string, accountID string, asOf time.Time) (int64, error)

	// GetTrialBalance returns every account's signed balance as of a date.
	// The rows of a well-formed ledger sum to exactly zero.
	GetTrialBalance(ctx context.Context, clientID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

// ReportGeneratorSvc defines financial statement generation. Generated
// reports are returned unsaved; SaveReport persists a snapshot.
type ReportGeneratorSvc interface {
	// GenerateBalanceSheet builds a point-in-time balance sheet. An
	// imbalance (assets != liabilities + equity) attaches an
	// IntegrityWarning rather than failing the report.
	GenerateBalanceSheet(ctx context.Context, clientID string, asOf time.Time) (*domain.Report, error)

	// GenerateProfitAndLoss builds a profit and loss statement for a period.
	GenerateProfitAndLoss(ctx context.Context, clientID string, from time.Time, to time.Time) (*domain.Report, error)

	// GenerateCashFlow builds an indirect-method cash flow statement for a
	// period. An account subtype with no activity classification fails the
	// report with a validation error.
	GenerateCashFlow(ctx context.Context, clientID string, from time.Time, to time.Time) (*domain.Report, error)
}

// ReportStoreSvc defines persistence operations for generated reports.
type ReportStoreSvc interface {
	// SaveReport persists a generated report snapshot and returns it with
	// its assigned ID.
	SaveReport(ctx context.Context, report domain.Report, userID string) (*domain.Report, error)

	// GetReportByID retrieves a stored report with its payload.
	GetReportByID(ctx context.Context, clientID string, reportID string) (*domain.Report, error)

	// ListReports retrieves a client's stored reports, newest first,
	// without payloads.
	ListReports(ctx context.Context, clientID string, limit int, offset int) ([]domain.Report, error)
}

// ReportingSvcFacade combines balance calculation, report generation and
// report storage.
type ReportingSvcFacade interface {
	BalanceSvc
	ReportGeneratorSvc
	ReportStoreSvc
}
