package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

// Appointment represents a booked slot for a customer with a staff member
type Appointment struct {
	ID              uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID      uuid.UUID              `gorm:"type:uuid;not null;index" json:"customer_id"`
	StaffID         *uuid.UUID             `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	CatalogItemID   *uuid.UUID             `gorm:"type:uuid;index" json:"catalog_item_id,omitempty"`
	StartsAt        time.Time              `gorm:"not null;index" json:"starts_at"`
	DurationMinutes int                    `gorm:"default:30" json:"duration_minutes"`
	Status          enum.AppointmentStatus `gorm:"default:0;index" json:"status"`
	Notes           *string                `gorm:"type:text" json:"notes,omitempty"`
	BillID          *uuid.UUID             `gorm:"type:uuid;index" json:"bill_id,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	DeletedAt       gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	Customer    Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Staff       *Staff       `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	CatalogItem *CatalogItem `gorm:"foreignKey:CatalogItemID" json:"catalog_item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// EndsAt returns the scheduled end time of the appointment
func (a *Appointment) EndsAt() time.Time {
	return a.StartsAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
