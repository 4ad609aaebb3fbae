package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/response"
)

// BillHandler exposes read access to finalized bills
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// List handles listing bills with filters
func (h *BillHandler) List(c *gin.Context) {
	params := &repository.BillFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
	}

	if raw := c.Query("customer_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			params.CustomerID = &id
		}
	}
	if raw := c.Query("start_date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			params.StartDate = &parsed
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			end := parsed.Add(24*time.Hour - time.Nanosecond)
			params.EndDate = &end
		}
	}

	result, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get handles retrieving a bill by ID or bill number
func (h *BillHandler) Get(c *gin.Context) {
	raw := c.Param("id")
	if id, err := uuid.Parse(raw); err == nil {
		bill, err := h.billService.GetBill(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Bill retrieved successfully", bill)
		return
	}

	bill, err := h.billService.GetBillByNo(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill retrieved successfully", bill)
}
