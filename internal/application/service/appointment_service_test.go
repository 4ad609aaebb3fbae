package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

func newTestAppointmentService() (*AppointmentService, *fakeCustomerRepo, *fakeStaffRepo, *fakeCatalogRepo, *fakeAppointmentRepo) {
	appointmentRepo := newFakeAppointmentRepo()
	customerRepo := newFakeCustomerRepo()
	staffRepo := newFakeStaffRepo()
	catalogRepo := newFakeCatalogRepo()
	svc := NewAppointmentService(appointmentRepo, customerRepo, staffRepo, catalogRepo)
	return svc, customerRepo, staffRepo, catalogRepo, appointmentRepo
}

func TestBookAppointmentUsesItemDuration(t *testing.T) {
	svc, customerRepo, _, catalogRepo, _ := newTestAppointmentService()
	ctx := context.Background()

	customer := &entity.Customer{Name: "Amina Diallo"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	item := &entity.CatalogItem{
		Code:            "SRV-CUT",
		Name:            "Classic Haircut",
		Kind:            enum.ItemKindService,
		DurationMinutes: 45,
		Active:          true,
	}
	require.NoError(t, catalogRepo.Create(ctx, item))

	appointment, err := svc.BookAppointment(ctx, &BookAppointmentInput{
		CustomerID:    customer.ID,
		CatalogItemID: &item.ID,
		StartsAt:      time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 45, appointment.DurationMinutes)
	assert.Equal(t, enum.AppointmentStatusBooked, appointment.Status)
	assert.Equal(t, time.Date(2026, 3, 14, 10, 45, 0, 0, time.UTC), appointment.EndsAt())
}

func TestBookAppointmentUnknownCustomer(t *testing.T) {
	svc, _, _, _, _ := newTestAppointmentService()

	_, err := svc.BookAppointment(context.Background(), &BookAppointmentInput{
		CustomerID: entityUUID(),
		StartsAt:   time.Now(),
	})
	assert.Error(t, err)
}

func TestBookAppointmentInactiveStaff(t *testing.T) {
	svc, customerRepo, staffRepo, _, _ := newTestAppointmentService()
	ctx := context.Background()

	customer := &entity.Customer{Name: "Amina Diallo"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	staff := &entity.Staff{Name: "Lena", Active: false}
	require.NoError(t, staffRepo.Create(ctx, staff))

	_, err := svc.BookAppointment(ctx, &BookAppointmentInput{
		CustomerID: customer.ID,
		StaffID:    &staff.ID,
		StartsAt:   time.Now(),
	})
	assert.Error(t, err)
}

func TestStatusTransitionsFromBookedOnly(t *testing.T) {
	svc, customerRepo, _, _, _ := newTestAppointmentService()
	ctx := context.Background()

	customer := &entity.Customer{Name: "Amina Diallo"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	appointment, err := svc.BookAppointment(ctx, &BookAppointmentInput{
		CustomerID: customer.ID,
		StartsAt:   time.Now(),
	})
	require.NoError(t, err)

	completed, err := svc.UpdateAppointmentStatus(ctx, appointment.ID, enum.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, enum.AppointmentStatusCompleted, completed.Status)

	// a completed appointment cannot be cancelled
	_, err = svc.UpdateAppointmentStatus(ctx, appointment.ID, enum.AppointmentStatusCancelled)
	assert.Error(t, err)
}

func TestRescheduleOnlyBooked(t *testing.T) {
	svc, customerRepo, _, _, _ := newTestAppointmentService()
	ctx := context.Background()

	customer := &entity.Customer{Name: "Amina Diallo"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	appointment, err := svc.BookAppointment(ctx, &BookAppointmentInput{
		CustomerID: customer.ID,
		StartsAt:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	newStart := time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC)
	moved, err := svc.RescheduleAppointment(ctx, &RescheduleAppointmentInput{
		ID:       appointment.ID,
		StartsAt: &newStart,
	})
	require.NoError(t, err)
	assert.Equal(t, newStart, moved.StartsAt)

	_, err = svc.UpdateAppointmentStatus(ctx, appointment.ID, enum.AppointmentStatusCancelled)
	require.NoError(t, err)

	_, err = svc.RescheduleAppointment(ctx, &RescheduleAppointmentInput{
		ID:       appointment.ID,
		StartsAt: &newStart,
	})
	assert.Error(t, err)
}
