package request

import "time"

// CreateCustomerRequest represents a create customer request
type CreateCustomerRequest struct {
	Name      string     `json:"name" binding:"required,max=255"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	Phone     *string    `json:"phone" binding:"omitempty,max=50"`
	Gender    *string    `json:"gender" binding:"omitempty,max=20"`
	BirthDate *time.Time `json:"birth_date"`
	Address   *string    `json:"address"`
	Notes     *string    `json:"notes"`
}

// UpdateCustomerRequest represents an update customer request
type UpdateCustomerRequest struct {
	Name      *string    `json:"name" binding:"omitempty,max=255"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	Phone     *string    `json:"phone" binding:"omitempty,max=50"`
	Gender    *string    `json:"gender" binding:"omitempty,max=20"`
	BirthDate *time.Time `json:"birth_date"`
	Address   *string    `json:"address"`
	Notes     *string    `json:"notes"`
}

// CreateStaffRequest represents a create staff request
type CreateStaffRequest struct {
	Name  string  `json:"name" binding:"required,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role" binding:"omitempty,max=100"`
}

// UpdateStaffRequest represents an update staff request
type UpdateStaffRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=255"`
	Phone  *string `json:"phone" binding:"omitempty,max=50"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Role   *string `json:"role" binding:"omitempty,max=100"`
	Active *bool   `json:"active"`
}
