package request

import "time"

// BookAppointmentRequest represents a book appointment request
type BookAppointmentRequest struct {
	CustomerID      string    `json:"customer_id" binding:"required,uuid"`
	StaffID         *string   `json:"staff_id" binding:"omitempty,uuid"`
	CatalogItemID   *string   `json:"catalog_item_id" binding:"omitempty,uuid"`
	StartsAt        time.Time `json:"starts_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"gte=0"`
	Notes           *string   `json:"notes"`
}

// RescheduleAppointmentRequest represents a reschedule request
type RescheduleAppointmentRequest struct {
	StartsAt        *time.Time `json:"starts_at"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,gt=0"`
	StaffID         *string    `json:"staff_id" binding:"omitempty,uuid"`
	Notes           *string    `json:"notes"`
}

// UpdateAppointmentStatusRequest represents a status transition request.
// Status accepts "completed", "cancelled" or "no_show".
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled no_show"`
}
