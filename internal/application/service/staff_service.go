package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk-api/internal/application/billing"
	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
)

// StaffService handles staff-related operations and feeds the live staff
// directory consumed by billing sessions.
type StaffService struct {
	staffRepo repository.StaffRepository
	feed      *billing.Feed[billing.StaffRecord]
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repository.StaffRepository) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		feed:      billing.NewFeed[billing.StaffRecord](),
	}
}

// Directory exposes the push-based staff snapshot feed
func (s *StaffService) Directory() billing.StaffDirectory {
	return s.feed
}

// RefreshDirectory re-publishes the active staff snapshot to subscribers
func (s *StaffService) RefreshDirectory(ctx context.Context) {
	staff, err := s.staffRepo.ListActive(ctx)
	if err != nil {
		log.Printf("staff: failed to refresh directory: %v", err)
		return
	}
	records := make([]billing.StaffRecord, 0, len(staff))
	for _, member := range staff {
		records = append(records, billing.StaffRecord{ID: member.ID, Name: member.Name})
	}
	s.feed.Publish(records)
}

// CreateStaffInput represents the create staff input
type CreateStaffInput struct {
	Name  string
	Phone *string
	Email *string
	Role  *string
}

// CreateStaff creates a new staff member
func (s *StaffService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.Staff, error) {
	staff := &entity.Staff{
		Name:   input.Name,
		Phone:  input.Phone,
		Email:  input.Email,
		Role:   input.Role,
		Active: true,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	s.RefreshDirectory(ctx)
	return staff, nil
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff member")
	}
	return staff, nil
}

// ListStaff lists staff with optional search
func (s *StaffService) ListStaff(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Staff], error) {
	staff, total, err := s.staffRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(staff, pag), nil
}

// UpdateStaffInput represents the update staff input
type UpdateStaffInput struct {
	ID     uuid.UUID
	Name   *string
	Phone  *string
	Email  *string
	Role   *string
	Active *bool
}

// UpdateStaff updates a staff member
func (s *StaffService) UpdateStaff(ctx context.Context, input *UpdateStaffInput) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff member")
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Phone != nil {
		staff.Phone = input.Phone
	}
	if input.Email != nil {
		staff.Email = input.Email
	}
	if input.Role != nil {
		staff.Role = input.Role
	}
	if input.Active != nil {
		staff.Active = *input.Active
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}

	s.RefreshDirectory(ctx)
	return staff, nil
}

// DeleteStaff deletes a staff member
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if staff == nil {
		return apperror.NewNotFoundError("Staff member")
	}

	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.RefreshDirectory(ctx)
	return nil
}
