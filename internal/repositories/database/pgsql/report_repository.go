package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
)

// PgxReportRepository implements stored-report persistence. Payloads are
// jsonb; the shape is closed per report type and enforced on both write and
// read.
type PgxReportRepository struct {
	BaseRepository
}

func newPgxReportRepository(pool *pgxpool.Pool) *PgxReportRepository {
	return &PgxReportRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportRepositoryFacade = (*PgxReportRepository)(nil)

func marshalReportPayload(report domain.Report) ([]byte, error) {
	switch report.ReportType {
	case domain.ReportBalanceSheet:
		if report.BalanceSheet != nil {
			return json.Marshal(report.BalanceSheet)
		}
	case domain.ReportProfitAndLoss:
		if report.ProfitAndLoss != nil {
			return json.Marshal(report.ProfitAndLoss)
		}
	case domain.ReportCashFlow:
		if report.CashFlow != nil {
			return json.Marshal(report.CashFlow)
		}
	}
	return nil, fmt.Errorf("%w: report payload does not match type %q", apperrors.ErrValidation, report.ReportType)
}

func unmarshalReportPayload(report *domain.Report, payload []byte) error {
	switch report.ReportType {
	case domain.ReportBalanceSheet:
		report.BalanceSheet = &domain.BalanceSheetData{}
		return json.Unmarshal(payload, report.BalanceSheet)
	case domain.ReportProfitAndLoss:
		report.ProfitAndLoss = &domain.ProfitAndLossData{}
		return json.Unmarshal(payload, report.ProfitAndLoss)
	case domain.ReportCashFlow:
		report.CashFlow = &domain.CashFlowData{}
		return json.Unmarshal(payload, report.CashFlow)
	default:
		return fmt.Errorf("%w: unknown stored report type %q", apperrors.ErrValidation, report.ReportType)
	}
}

func (r *PgxReportRepository) SaveReport(ctx context.Context, report domain.Report) error {
	payload, err := marshalReportPayload(report)
	if err != nil {
		return err
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO reports (report_id, client_id, report_type, period_start, period_end, payload,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		report.ReportID, report.ClientID, report.ReportType, report.PeriodStart, report.PeriodEnd, payload,
		report.CreatedAt, report.CreatedBy, report.LastUpdatedAt, report.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

func (r *PgxReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	var report domain.Report
	var payload []byte
	err := r.Pool.QueryRow(ctx, `
		SELECT report_id, client_id, report_type, period_start, period_end, payload,
			created_at, created_by, last_updated_at, last_updated_by
		FROM reports WHERE report_id = $1`, reportID,
	).Scan(
		&report.ReportID, &report.ClientID, &report.ReportType, &report.PeriodStart, &report.PeriodEnd, &payload,
		&report.CreatedAt, &report.CreatedBy, &report.LastUpdatedAt, &report.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("report %s not found", reportID))
		}
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	if err := unmarshalReportPayload(&report, payload); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *PgxReportRepository) ListReportsByClient(ctx context.Context, clientID string, limit int, offset int) ([]domain.Report, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT report_id, client_id, report_type, period_start, period_end,
			created_at, created_by, last_updated_at, last_updated_by
		FROM reports
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var report domain.Report
		err := rows.Scan(
			&report.ReportID, &report.ClientID, &report.ReportType, &report.PeriodStart, &report.PeriodEnd,
			&report.CreatedAt, &report.CreatedBy, &report.LastUpdatedAt, &report.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
