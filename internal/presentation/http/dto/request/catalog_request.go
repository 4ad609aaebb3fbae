package request

import (
	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk-api/pkg/apperror"
)

// CreateCatalogItemRequest represents a create catalog item request.
// Kind: 0 = service, 1 = product, 2 = package.
type CreateCatalogItemRequest struct {
	Code            string          `json:"code" binding:"omitempty,max=100"`
	Name            string          `json:"name" binding:"required,max=255"`
	Description     *string         `json:"description"`
	Kind            int             `json:"kind" binding:"gte=0,lte=2"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	DurationMinutes int             `json:"duration_minutes" binding:"gte=0"`
}

// Validate enforces the numeric ranges the binding tags cannot express
func (r *CreateCatalogItemRequest) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if r.UnitPrice.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "unit_price", Message: "must not be negative"})
	}
	if r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		errs = append(errs, apperror.FieldError{Field: "tax_rate", Message: "must be between 0 and 1"})
	}
	return errs
}

// UpdateCatalogItemRequest represents an update catalog item request
type UpdateCatalogItemRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=255"`
	Description     *string          `json:"description"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	TaxRate         *decimal.Decimal `json:"tax_rate"`
	DurationMinutes *int             `json:"duration_minutes" binding:"omitempty,gte=0"`
	Active          *bool            `json:"active"`
}

// Validate enforces the numeric ranges the binding tags cannot express
func (r *UpdateCatalogItemRequest) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if r.UnitPrice != nil && r.UnitPrice.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "unit_price", Message: "must not be negative"})
	}
	if r.TaxRate != nil && (r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(decimal.NewFromInt(1))) {
		errs = append(errs, apperror.FieldError{Field: "tax_rate", Message: "must be between 0 and 1"})
	}
	return errs
}
