package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk-api/internal/application/billing"
	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/request"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/response"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
)

// BillingHandler handles live billing session HTTP requests. Every
// mutating endpoint responds with the full session view so the front
// desk always renders fresh totals.
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Open handles opening a billing session
func (h *BillingHandler) Open(c *gin.Context) {
	var req request.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.billingService.OpenSession(c.Request.Context(), &service.OpenSessionInput{
		CustomerID:    parseOptionalUUID(req.CustomerID),
		AppointmentID: parseOptionalUUID(req.AppointmentID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Billing session opened", view)
}

// Get handles retrieving the current session state
func (h *BillingHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	view, err := h.billingService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", view)
}

// Picker returns the live catalog snapshot for one item kind
func (h *BillingHandler) Picker(c *gin.Context) {
	value, err := strconv.Atoi(c.DefaultQuery("kind", "0"))
	if err != nil || value < 0 || value > 2 {
		response.BadRequest(c, "Invalid kind")
		return
	}

	response.OK(c, "Catalog retrieved successfully", h.billingService.CatalogPicker(enum.ItemKind(value)))
}

// StaffPicker returns the live staff snapshot
func (h *BillingHandler) StaffPicker(c *gin.Context) {
	response.OK(c, "Staff retrieved successfully", h.billingService.StaffPicker())
}

// AddItem handles adding a catalog entry to the session ledger
func (h *BillingHandler) AddItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.billingService.AddItem(id, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", view)
}

// UpdateItem handles a single-field edit on one ledger line
func (h *BillingHandler) UpdateItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.Error(c, apperror.NewValidationError(errs))
		return
	}

	update, err := itemUpdateFromRequest(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.billingService.UpdateItem(id, itemID, update)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated", view)
}

// itemUpdateFromRequest maps the single set DTO field onto a typed edit
func itemUpdateFromRequest(req *request.UpdateItemRequest) (billing.ItemUpdate, error) {
	switch {
	case req.Quantity != nil:
		return billing.SetQuantity{Quantity: *req.Quantity}, nil
	case req.UnitPrice != nil:
		return billing.SetUnitPrice{UnitPrice: *req.UnitPrice}, nil
	case req.Discount != nil:
		return billing.SetDiscount{Discount: *req.Discount}, nil
	case req.TaxAmount != nil:
		return billing.SetTaxAmount{TaxAmount: *req.TaxAmount}, nil
	case req.StaffID != nil:
		staffID, err := uuid.Parse(*req.StaffID)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid staff ID")
		}
		return billing.SetStaff{StaffID: &staffID}, nil
	case req.ClearStaff:
		return billing.SetStaff{StaffID: nil}, nil
	case req.Description != nil:
		return billing.SetDescription{Description: *req.Description}, nil
	}
	return nil, apperror.NewBadRequestError("No field to update")
}

// RemoveItem handles removing one ledger line
func (h *BillingHandler) RemoveItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	view, err := h.billingService.RemoveItem(id, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", view)
}

// OpenPayment handles entering the settle step
func (h *BillingHandler) OpenPayment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	view, err := h.billingService.OpenPayment(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment opened", view)
}

// SetSplitMode handles toggling split-tender entry
func (h *BillingHandler) SetSplitMode(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.SetSplitModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.billingService.SetSplitMode(id, *req.Enabled)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Split mode updated", view)
}

// AddTender handles adding a tender
func (h *BillingHandler) AddTender(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.AddTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, ok := enum.ParseTenderMethod(req.Method)
	if !ok {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	view, err := h.billingService.AddTender(id, method)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tender added", view)
}

// UpdateTender handles a single-field edit on one tender
func (h *BillingHandler) UpdateTender(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}
	tenderID, ok := pathUUID(c, "tenderId")
	if !ok {
		response.BadRequest(c, "Invalid tender ID")
		return
	}

	var req request.UpdateTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.Error(c, apperror.NewValidationError(errs))
		return
	}

	var update billing.TenderUpdate
	switch {
	case req.Amount != nil:
		update = billing.SetTenderAmount{Amount: *req.Amount}
	case req.Method != nil:
		method, ok := enum.ParseTenderMethod(*req.Method)
		if !ok {
			response.BadRequest(c, "Unknown payment method")
			return
		}
		update = billing.SetTenderMethod{Method: method}
	case req.CardLast4 != nil:
		update = billing.SetTenderCardLast4{CardLast4: *req.CardLast4}
	}

	view, err := h.billingService.UpdateTender(id, tenderID, update)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tender updated", view)
}

// RemoveTender handles removing one tender
func (h *BillingHandler) RemoveTender(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}
	tenderID, ok := pathUUID(c, "tenderId")
	if !ok {
		response.BadRequest(c, "Invalid tender ID")
		return
	}

	view, err := h.billingService.RemoveTender(id, tenderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tender removed", view)
}

// RequestConfirm handles opening the settle confirmation
func (h *BillingHandler) RequestConfirm(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	view, err := h.billingService.RequestConfirm(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Confirmation requested", view)
}

// CancelConfirm handles abandoning the settle confirmation
func (h *BillingHandler) CancelConfirm(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	view, err := h.billingService.CancelConfirm(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Confirmation cancelled", view)
}

// Finalize handles committing the session as an immutable bill
func (h *BillingHandler) Finalize(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	bill, err := h.billingService.Finalize(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill finalized", bill)
}

// Abandon handles discarding a live session
func (h *BillingHandler) Abandon(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	if err := h.billingService.AbandonSession(id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
