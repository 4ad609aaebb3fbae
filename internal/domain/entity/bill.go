package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

// Bill represents a finalized point-of-sale transaction. Bills are
// append-only: once created they are never updated through this API.
type Bill struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillNo        string          `gorm:"size:100;unique;not null" json:"bill_no"`
	BillDate      time.Time       `gorm:"type:date;not null;index" json:"bill_date"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName  string          `gorm:"size:255;not null" json:"customer_name"`
	SubTotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sub_total"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"total_discount"`
	TotalTax      decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"total_tax"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"grand_total"`
	PaymentMethod string          `gorm:"size:50;not null" json:"payment_method"`
	CreatedByID   *uuid.UUID      `gorm:"type:uuid;index" json:"created_by_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Customer *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []BillItem   `gorm:"foreignKey:BillID" json:"items,omitempty"`
	Tenders  []BillTender `gorm:"foreignKey:BillID" json:"tenders,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem is the persisted snapshot of one ledger line at finalization time
type BillItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"bill_id"`
	StaffID     *uuid.UUID      `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    int             `gorm:"default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Discount    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"tax_amount"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"line_total"`

	Staff *Staff `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (i *BillItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}

// BillTender is the persisted record of one payment-method/amount pair
type BillTender struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BillID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"bill_id"`
	Method    enum.TenderMethod `gorm:"size:50;not null" json:"method"`
	Amount    decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"amount"`
	CardLast4 *string           `gorm:"size:4" json:"card_last4,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill tender
func (t *BillTender) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillTender model
func (BillTender) TableName() string {
	return "bill_tenders"
}
