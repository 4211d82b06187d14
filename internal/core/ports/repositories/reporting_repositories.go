package repositories

import (
	"context"
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// ReportingRepository defines the aggregation queries behind balances and
// financial reports. All queries sum postings of applied entries only
// (status POSTED or VOID); drafts never move a balance, and a voided entry
// stays in history alongside its compensating mirror.
type ReportingRepository interface {
	// GetBalanceRows returns per-account debit/credit totals for all of a
	// client's accounts over postings dated on or before asOf. Accounts with
	// no postings appear with zero totals.
	GetBalanceRows(ctx context.Context, clientID string, asOf time.Time) ([]domain.BalanceRow, error)
	// GetPeriodRows returns per-account debit/credit totals for postings
	// dated within [from, to].
	GetPeriodRows(ctx context.Context, clientID string, from time.Time, to time.Time) ([]domain.BalanceRow, error)
	// GetAccountActivity returns the raw debit and credit totals for a single
	// account over postings dated on or before asOf.
	GetAccountActivity(ctx context.Context, accountID string, asOf time.Time) (debits int64, credits int64, err error)
}

// ReportReader defines read operations for stored reports.
type ReportReader interface {
	// FindReportByID retrieves a stored report with its payload.
	// Returns apperrors.ErrNotFound if not found.
	FindReportByID(ctx context.Context, reportID string) (*domain.Report, error)
	// ListReportsByClient retrieves a client's stored reports, newest first,
	// without payloads.
	ListReportsByClient(ctx context.Context, clientID string, limit int, offset int) ([]domain.Report, error)
}

// ReportWriter defines write operations for stored reports.
type ReportWriter interface {
	// SaveReport persists a generated report snapshot.
	SaveReport(ctx context.Context, report domain.Report) error
}

// ReportRepositoryFacade combines stored-report repository interfaces.
type ReportRepositoryFacade interface {
	ReportReader
	ReportWriter
}
