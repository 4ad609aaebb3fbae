package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/response"
)

// ReportHandler handles sales reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary handles the headline dashboard figures
func (h *ReportHandler) Summary(c *gin.Context) {
	start, end, err := dateRangeParams(c)
	if err != nil {
		response.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	stats, err := h.reportService.GetSummary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", stats)
}

// DailySales handles the per-day sales series
func (h *ReportHandler) DailySales(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	results, err := h.reportService.GetDailySales(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales retrieved successfully", results)
}

// MethodBreakdown handles revenue grouped by payment method
func (h *ReportHandler) MethodBreakdown(c *gin.Context) {
	start, end, err := dateRangeParams(c)
	if err != nil {
		response.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	results, err := h.reportService.GetMethodBreakdown(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment breakdown retrieved successfully", results)
}

// TopStaff handles the staff revenue ranking
func (h *ReportHandler) TopStaff(c *gin.Context) {
	start, end, err := dateRangeParams(c)
	if err != nil {
		response.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := h.reportService.GetTopStaff(c.Request.Context(), start, end, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top staff retrieved successfully", results)
}

// Export streams the sales report as an xlsx workbook
func (h *ReportHandler) Export(c *gin.Context) {
	start, end, err := dateRangeParams(c)
	if err != nil {
		response.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	buf, filename, err := h.reportService.ExportSales(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
