package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
)

// AppointmentService handles appointment booking and lifecycle operations
type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
	customerRepo    repository.CustomerRepository
	staffRepo       repository.StaffRepository
	catalogRepo     repository.CatalogRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	staffRepo repository.StaffRepository,
	catalogRepo repository.CatalogRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		staffRepo:       staffRepo,
		catalogRepo:     catalogRepo,
	}
}

// BookAppointmentInput represents the book appointment input
type BookAppointmentInput struct {
	CustomerID      uuid.UUID
	StaffID         *uuid.UUID
	CatalogItemID   *uuid.UUID
	StartsAt        time.Time
	DurationMinutes int
	Notes           *string
}

// BookAppointment books a new appointment. When a catalog item is given
// and no duration is set, the item's duration is used.
func (s *AppointmentService) BookAppointment(ctx context.Context, input *BookAppointmentInput) (*entity.Appointment, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.StaffID != nil {
		staff, err := s.staffRepo.GetByID(ctx, *input.StaffID)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			return nil, apperror.NewNotFoundError("Staff member")
		}
		if !staff.Active {
			return nil, apperror.NewBadRequestError("Staff member is not active")
		}
	}

	duration := input.DurationMinutes
	if input.CatalogItemID != nil {
		item, err := s.catalogRepo.GetByID(ctx, *input.CatalogItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, apperror.NewNotFoundError("Catalog item")
		}
		if duration == 0 {
			duration = item.DurationMinutes
		}
	}
	if duration == 0 {
		duration = 30
	}

	appointment := &entity.Appointment{
		CustomerID:      input.CustomerID,
		StaffID:         input.StaffID,
		CatalogItemID:   input.CatalogItemID,
		StartsAt:        input.StartsAt,
		DurationMinutes: duration,
		Status:          enum.AppointmentStatusBooked,
		Notes:           input.Notes,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	return s.appointmentRepo.GetByID(ctx, appointment.ID)
}

// GetAppointment retrieves an appointment by ID
func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	return appointment, nil
}

// ListAppointments lists appointments with filters
func (s *AppointmentService) ListAppointments(ctx context.Context, params *repository.AppointmentFilterParams) (*pagination.PaginatedResult[entity.Appointment], error) {
	appointments, total, err := s.appointmentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(appointments, pag), nil
}

// DayView returns all appointments for one calendar day
func (s *AppointmentService) DayView(ctx context.Context, day time.Time) ([]entity.Appointment, error) {
	return s.appointmentRepo.ListForDay(ctx, day)
}

// RescheduleAppointmentInput represents the reschedule input
type RescheduleAppointmentInput struct {
	ID              uuid.UUID
	StartsAt        *time.Time
	DurationMinutes *int
	StaffID         *uuid.UUID
	Notes           *string
}

// RescheduleAppointment moves or reassigns a booked appointment
func (s *AppointmentService) RescheduleAppointment(ctx context.Context, input *RescheduleAppointmentInput) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	if appointment.Status != enum.AppointmentStatusBooked {
		return nil, apperror.NewBadRequestError("Only booked appointments can be rescheduled")
	}

	if input.StartsAt != nil {
		appointment.StartsAt = *input.StartsAt
	}
	if input.DurationMinutes != nil {
		appointment.DurationMinutes = *input.DurationMinutes
	}
	if input.StaffID != nil {
		staff, err := s.staffRepo.GetByID(ctx, *input.StaffID)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			return nil, apperror.NewNotFoundError("Staff member")
		}
		appointment.StaffID = input.StaffID
	}
	if input.Notes != nil {
		appointment.Notes = input.Notes
	}

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	return s.appointmentRepo.GetByID(ctx, appointment.ID)
}

// UpdateAppointmentStatus transitions an appointment to the given status.
// Booked appointments may be completed, cancelled or marked no-show; all
// other transitions are rejected.
func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}

	if appointment.Status != enum.AppointmentStatusBooked {
		return nil, apperror.NewBadRequestError("Appointment is no longer booked")
	}
	switch status {
	case enum.AppointmentStatusCompleted, enum.AppointmentStatusCancelled, enum.AppointmentStatusNoShow:
	default:
		return nil, apperror.NewBadRequestError("Invalid appointment status transition")
	}

	appointment.Status = status
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	return s.appointmentRepo.GetByID(ctx, appointment.ID)
}

// AttachBill links a finalized bill to a completed appointment
func (s *AppointmentService) AttachBill(ctx context.Context, id uuid.UUID, billID uuid.UUID) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return apperror.NewNotFoundError("Appointment")
	}

	appointment.BillID = &billID
	return s.appointmentRepo.Update(ctx, appointment)
}

// DeleteAppointment deletes an appointment
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return apperror.NewNotFoundError("Appointment")
	}
	return s.appointmentRepo.Delete(ctx, id)
}
