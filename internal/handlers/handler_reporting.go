package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
)

// reportingHandler handles balance queries and financial statement
// generation.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers reporting routes, scoped under a client.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("", h.listReports)
		reports.GET("/:report_id", h.getReport)
	}
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("client_id")
	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf := params.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	rows, err := h.reportingService.GetTrialBalance(c.Request.Context(), clientID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build trial balance")
		return
	}

	var total int64
	for _, row := range rows {
		total += row.Balance
	}
	c.JSON(http.StatusOK, dto.TrialBalanceResponse{AsOf: asOf, Rows: rows, Total: total})
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("client_id")
	var params dto.BalanceSheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf := params.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	report, err := h.reportingService.GenerateBalanceSheet(c.Request.Context(), clientID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build balance sheet")
		return
	}
	h.respondReport(c, logger, report, params.Save)
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("client_id")
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.GenerateProfitAndLoss(c.Request.Context(), clientID, params.From, params.To)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build profit and loss")
		return
	}
	h.respondReport(c, logger, report, params.Save)
}

func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("client_id")
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.GenerateCashFlow(c.Request.Context(), clientID, params.From, params.To)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build cash flow statement")
		return
	}
	h.respondReport(c, logger, report, params.Save)
}

// respondReport optionally persists the generated report before returning
// it.
func (h *reportingHandler) respondReport(c *gin.Context, logger *slog.Logger, report *domain.Report, save bool) {
	if save {
		userID, ok := requireUserID(c, logger)
		if !ok {
			return
		}
		saved, err := h.reportingService.SaveReport(c.Request.Context(), *report, userID)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to save report")
			return
		}
		report = saved
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("client_id")
	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	reports, err := h.reportingService.ListReports(c.Request.Context(), clientID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list reports")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": dto.ToListReportsResponse(reports)})
}

func (h *reportingHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("client_id")
	reportID := c.Param("report_id")

	report, err := h.reportingService.GetReportByID(c.Request.Context(), clientID, reportID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve report")
		return
	}
	c.JSON(http.StatusOK, report)
}
