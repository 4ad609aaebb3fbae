package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/request"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/response"
)

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func parseOptionalUUID(raw *string) *uuid.UUID {
	if raw == nil {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}

// List handles listing appointments with filters
func (h *AppointmentHandler) List(c *gin.Context) {
	params := &repository.AppointmentFilterParams{Pagination: pageParams(c)}

	if raw := c.Query("customer_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			params.CustomerID = &id
		}
	}
	if raw := c.Query("staff_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			params.StaffID = &id
		}
	}
	if raw := c.Query("status"); raw != "" {
		if status, ok := parseAppointmentStatus(raw); ok {
			params.Status = &status
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

	result, err := h.appointmentService.ListAppointments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Appointments retrieved successfully", result)
}

// Day handles the calendar day view
func (h *AppointmentHandler) Day(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	appointments, err := h.appointmentService.DayView(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointments retrieved successfully", appointments)
}

// Create handles booking an appointment
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req request.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	appointment, err := h.appointmentService.BookAppointment(c.Request.Context(), &service.BookAppointmentInput{
		CustomerID:      customerID,
		StaffID:         parseOptionalUUID(req.StaffID),
		CatalogItemID:   parseOptionalUUID(req.CatalogItemID),
		StartsAt:        req.StartsAt,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Appointment booked successfully", appointment)
}

// Get handles retrieving an appointment
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment retrieved successfully", appointment)
}

// Reschedule handles moving or reassigning an appointment
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	appointment, err := h.appointmentService.RescheduleAppointment(c.Request.Context(), &service.RescheduleAppointmentInput{
		ID:              id,
		StartsAt:        req.StartsAt,
		DurationMinutes: req.DurationMinutes,
		StaffID:         parseOptionalUUID(req.StaffID),
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment rescheduled successfully", appointment)
}

// UpdateStatus handles the booked -> completed/cancelled/no-show transition
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, ok := parseAppointmentStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Invalid status")
		return
	}

	appointment, err := h.appointmentService.UpdateAppointmentStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment updated successfully", appointment)
}

// Delete handles deleting an appointment
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func parseAppointmentStatus(raw string) (enum.AppointmentStatus, bool) {
	switch raw {
	case "booked":
		return enum.AppointmentStatusBooked, true
	case "completed":
		return enum.AppointmentStatusCompleted, true
	case "cancelled":
		return enum.AppointmentStatusCancelled, true
	case "no_show":
		return enum.AppointmentStatusNoShow, true
	}
	return enum.AppointmentStatusBooked, false
}
