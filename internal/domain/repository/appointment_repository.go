package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
)

// AppointmentFilterParams holds filter parameters for listing appointments
type AppointmentFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	StaffID    *uuid.UUID
	Status     *enum.AppointmentStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *AppointmentFilterParams) ([]entity.Appointment, int64, error)
	// ListForDay returns all appointments starting within the given calendar day.
	ListForDay(ctx context.Context, day time.Time) ([]entity.Appointment, error)
}
