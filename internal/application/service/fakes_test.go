package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
)

// In-memory repository fakes backed by maps. They mirror the gorm
// implementations' not-found contract: (nil, nil) when nothing matches.

func entityUUID() uuid.UUID {
	return uuid.New()
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	clone := *c
	f.customers[c.ID] = &clone
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.Phone != nil && *c.Phone == phone {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	clone := *c
	f.customers[c.ID] = &clone
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range f.customers {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

type fakeStaffRepo struct {
	staff map[uuid.UUID]*entity.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[uuid.UUID]*entity.Staff)}
}

func (f *fakeStaffRepo) Create(_ context.Context, s *entity.Staff) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	clone := *s
	f.staff[s.ID] = &clone
	return nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (f *fakeStaffRepo) Update(_ context.Context, s *entity.Staff) error {
	clone := *s
	f.staff[s.ID] = &clone
	return nil
}

func (f *fakeStaffRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.staff, id)
	return nil
}

func (f *fakeStaffRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Staff, int64, error) {
	var out []entity.Staff
	for _, s := range f.staff {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStaffRepo) ListActive(_ context.Context) ([]entity.Staff, error) {
	var out []entity.Staff
	for _, s := range f.staff {
		if s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeCatalogRepo struct {
	items map[uuid.UUID]*entity.CatalogItem
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{items: make(map[uuid.UUID]*entity.CatalogItem)}
}

func (f *fakeCatalogRepo) Create(_ context.Context, item *entity.CatalogItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CatalogItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (f *fakeCatalogRepo) GetByCode(_ context.Context, code string) (*entity.CatalogItem, error) {
	for _, item := range f.items {
		if item.Code == code {
			clone := *item
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) Update(_ context.Context, item *entity.CatalogItem) error {
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeCatalogRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeCatalogRepo) List(_ context.Context, _ *pagination.PaginationParams, kind *enum.ItemKind, _ string) ([]entity.CatalogItem, int64, error) {
	var out []entity.CatalogItem
	for _, item := range f.items {
		if kind == nil || item.Kind == *kind {
			out = append(out, *item)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCatalogRepo) ListActiveByKind(_ context.Context, kind enum.ItemKind) ([]entity.CatalogItem, error) {
	var out []entity.CatalogItem
	for _, item := range f.items {
		if item.Active && item.Kind == kind {
			out = append(out, *item)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	appointments  map[uuid.UUID]*entity.Appointment
	failingUpdate bool
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	clone := *a
	f.appointments[a.ID] = &clone
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, a *entity.Appointment) error {
	if f.failingUpdate {
		return errors.New("database unavailable")
	}
	clone := *a
	f.appointments[a.ID] = &clone
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, params *repository.AppointmentFilterParams) ([]entity.Appointment, int64, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if params.Status != nil && a.Status != *params.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAppointmentRepo) ListForDay(_ context.Context, day time.Time) ([]entity.Appointment, error) {
	var out []entity.Appointment
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	for _, a := range f.appointments {
		if !a.StartsAt.Before(start) && a.StartsAt.Before(end) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeBillRepo struct {
	bills   map[uuid.UUID]*entity.Bill
	failing bool
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: make(map[uuid.UUID]*entity.Bill)}
}

func (f *fakeBillRepo) Create(_ context.Context, bill *entity.Bill) error {
	if f.failing {
		return errors.New("database unavailable")
	}
	clone := *bill
	f.bills[bill.ID] = &clone
	return nil
}

func (f *fakeBillRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, ok := f.bills[id]
	if !ok {
		return nil, nil
	}
	clone := *bill
	return &clone, nil
}

func (f *fakeBillRepo) GetByBillNo(_ context.Context, billNo string) (*entity.Bill, error) {
	for _, bill := range f.bills {
		if bill.BillNo == billNo {
			clone := *bill
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeBillRepo) List(_ context.Context, _ *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	var out []entity.Bill
	for _, bill := range f.bills {
		out = append(out, *bill)
	}
	return out, int64(len(out)), nil
}
