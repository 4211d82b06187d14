package dto

import (
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// TrialBalanceParams defines query parameters for the trial balance.
type TrialBalanceParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02"`
}

// TrialBalanceResponse wraps the trial balance rows with their sum, which is
// zero for a well-formed ledger.
type TrialBalanceResponse struct {
	AsOf  time.Time                `json:"asOf"`
	Rows  []domain.TrialBalanceRow `json:"rows"`
	Total int64                    `json:"total"`
}

// ReportPeriodParams defines query parameters for period reports.
type ReportPeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	Save bool      `form:"save"` // persist the generated report as a snapshot
}

// BalanceSheetParams defines query parameters for the balance sheet.
type BalanceSheetParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02"`
	Save bool      `form:"save"`
}

// ReportSummaryResponse lists a stored report without its payload.
type ReportSummaryResponse struct {
	ReportID    string            `json:"reportID"`
	ClientID    string            `json:"clientID"`
	ReportType  domain.ReportType `json:"reportType"`
	PeriodStart time.Time         `json:"periodStart"`
	PeriodEnd   time.Time         `json:"periodEnd"`
	CreatedAt   time.Time         `json:"createdAt"`
	CreatedBy   string            `json:"createdBy"`
}

// ToReportSummaryResponse converts a domain.Report to its summary DTO.
func ToReportSummaryResponse(r *domain.Report) ReportSummaryResponse {
	return ReportSummaryResponse{
		ReportID:    r.ReportID,
		ClientID:    r.ClientID,
		ReportType:  r.ReportType,
		PeriodStart: r.PeriodStart,
		PeriodEnd:   r.PeriodEnd,
		CreatedAt:   r.CreatedAt,
		CreatedBy:   r.CreatedBy,
	}
}

// ToListReportsResponse converts stored reports to their summary DTOs.
func ToListReportsResponse(reports []domain.Report) []ReportSummaryResponse {
	res := make([]ReportSummaryResponse, len(reports))
	for i, r := range reports {
		res[i] = ToReportSummaryResponse(&r)
	}
	return res
}
