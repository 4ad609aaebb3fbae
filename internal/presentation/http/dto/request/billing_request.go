package request

import (
	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk-api/pkg/apperror"
)

// OpenSessionRequest represents an open billing session request. Both
// fields are optional; with neither the session belongs to a walk-in.
type OpenSessionRequest struct {
	CustomerID    *string `json:"customer_id" binding:"omitempty,uuid"`
	AppointmentID *string `json:"appointment_id" binding:"omitempty,uuid"`
}

// AddItemRequest adds one catalog entry to the session ledger
type AddItemRequest struct {
	Code string `json:"code" binding:"required,max=100"`
}

// UpdateItemRequest carries exactly one field edit for a ledger line.
// Exactly one of the pointers must be set.
type UpdateItemRequest struct {
	Quantity    *int             `json:"quantity" binding:"omitempty,gte=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Discount    *decimal.Decimal `json:"discount"`
	TaxAmount   *decimal.Decimal `json:"tax_amount"`
	StaffID     *string          `json:"staff_id" binding:"omitempty,uuid"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
	ClearStaff  bool             `json:"clear_staff"`
}

// Validate enforces single-field semantics and the non-negative ranges
// the binding tags cannot express.
func (r *UpdateItemRequest) Validate() []apperror.FieldError {
	var errs []apperror.FieldError

	set := 0
	for _, present := range []bool{
		r.Quantity != nil,
		r.UnitPrice != nil,
		r.Discount != nil,
		r.TaxAmount != nil,
		r.StaffID != nil,
		r.Description != nil,
		r.ClearStaff,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		errs = append(errs, apperror.FieldError{Field: "body", Message: "exactly one field must be set"})
		return errs
	}

	if r.UnitPrice != nil && r.UnitPrice.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "unit_price", Message: "must not be negative"})
	}
	if r.Discount != nil && r.Discount.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "discount", Message: "must not be negative"})
	}
	if r.TaxAmount != nil && r.TaxAmount.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "tax_amount", Message: "must not be negative"})
	}
	return errs
}

// SetSplitModeRequest toggles split-tender entry
type SetSplitModeRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// AddTenderRequest adds a tender of the given method
type AddTenderRequest struct {
	Method string `json:"method" binding:"required,max=50"`
}

// UpdateTenderRequest carries exactly one field edit for a tender
type UpdateTenderRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	Method    *string          `json:"method" binding:"omitempty,max=50"`
	CardLast4 *string          `json:"card_last4" binding:"omitempty,len=4,numeric"`
}

// Validate enforces single-field semantics and non-negative amounts
func (r *UpdateTenderRequest) Validate() []apperror.FieldError {
	var errs []apperror.FieldError

	set := 0
	for _, present := range []bool{r.Amount != nil, r.Method != nil, r.CardLast4 != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		errs = append(errs, apperror.FieldError{Field: "body", Message: "exactly one field must be set"})
		return errs
	}

	if r.Amount != nil && r.Amount.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "amount", Message: "must not be negative"})
	}
	return errs
}
