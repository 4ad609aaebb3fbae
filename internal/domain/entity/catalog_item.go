package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

// CatalogItem represents a sellable service, retail product or package
type CatalogItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Code            string          `gorm:"size:100;unique;not null" json:"code"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Description     *string         `gorm:"type:text" json:"description,omitempty"`
	Kind            enum.ItemKind   `gorm:"default:0;index" json:"kind"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(5,4);default:0" json:"tax_rate"`
	DurationMinutes int             `gorm:"default:0" json:"duration_minutes"`
	Active          bool            `gorm:"default:true" json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new catalog item
func (i *CatalogItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CatalogItem model
func (CatalogItem) TableName() string {
	return "catalog_items"
}
