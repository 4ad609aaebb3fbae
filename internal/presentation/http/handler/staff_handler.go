package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/request"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/response"
)

// StaffHandler handles staff-related HTTP requests
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// List handles listing staff
func (h *StaffHandler) List(c *gin.Context) {
	result, err := h.staffService.ListStaff(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Staff retrieved successfully", result)
}

// Create handles creating a staff member
func (h *StaffHandler) Create(c *gin.Context) {
	var req request.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), &service.CreateStaffInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff member created successfully", staff)
}

// Get handles retrieving a staff member
func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member retrieved successfully", staff)
}

// Update handles updating a staff member
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	var req request.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), &service.UpdateStaffInput{
		ID:     id,
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Role:   req.Role,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member updated successfully", staff)
}

// Delete handles deleting a staff member
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	if err := h.staffService.DeleteStaff(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
