package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one editable entry in the in-progress bill. Description,
// price and tax are copied from the catalog at add-time and thereafter
// edited independently.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	StaffID     *uuid.UUID      `json:"staff_id,omitempty"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// LineTotal returns quantity*unitPrice - discount. A line may go negative;
// only the bill-level grand total is clamped at zero.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))).Sub(li.Discount)
}

// ItemUpdate is a closed set of single-field edits applied to a line item
type ItemUpdate interface {
	apply(*LineItem)
}

// SetQuantity replaces the quantity
type SetQuantity struct{ Quantity int }

// SetUnitPrice replaces the unit price
type SetUnitPrice struct{ UnitPrice decimal.Decimal }

// SetDiscount replaces the absolute discount amount
type SetDiscount struct{ Discount decimal.Decimal }

// SetTaxAmount replaces the stored tax amount
type SetTaxAmount struct{ TaxAmount decimal.Decimal }

// SetStaff replaces the assigned staff member; nil unassigns
type SetStaff struct{ StaffID *uuid.UUID }

// SetDescription replaces the description text
type SetDescription struct{ Description string }

func (u SetQuantity) apply(li *LineItem)    { li.Quantity = u.Quantity }
func (u SetUnitPrice) apply(li *LineItem)   { li.UnitPrice = u.UnitPrice }
func (u SetDiscount) apply(li *LineItem)    { li.Discount = u.Discount }
func (u SetTaxAmount) apply(li *LineItem)   { li.TaxAmount = u.TaxAmount }
func (u SetStaff) apply(li *LineItem)       { li.StaffID = u.StaffID }
func (u SetDescription) apply(li *LineItem) { li.Description = u.Description }

// Ledger holds the ordered list of line items for one in-progress bill.
// Every mutation returns freshly computed totals so callers never read a
// stale grand total. Not safe for concurrent use.
type Ledger struct {
	items []LineItem
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// AddItem appends a new line for the chosen catalog entry with quantity 1
// and no discount. The tax amount is seeded from unitPrice*taxRate and is
// an independently editable stored amount from then on. Duplicate entries
// produce separate lines, never a quantity bump.
func (l *Ledger) AddItem(entry CatalogEntry) (LineItem, Totals) {
	item := LineItem{
		ID:          uuid.New(),
		Code:        entry.Code,
		Description: entry.Description,
		Quantity:    1,
		UnitPrice:   entry.UnitPrice,
		Discount:    decimal.Zero,
		TaxAmount:   entry.UnitPrice.Mul(entry.TaxRate).Round(2),
	}
	l.items = append(l.items, item)
	return item, Calculate(l.items)
}

// Apply applies one typed field update to the matching line. An unknown id
// is a silent no-op. Numeric values are accepted as supplied; range
// enforcement lives at the API edge.
func (l *Ledger) Apply(id uuid.UUID, update ItemUpdate) Totals {
	for i := range l.items {
		if l.items[i].ID == id {
			update.apply(&l.items[i])
			break
		}
	}
	return Calculate(l.items)
}

// RemoveItem deletes the matching line; the ledger may become empty
func (l *Ledger) RemoveItem(id uuid.UUID) Totals {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	return Calculate(l.items)
}

// Items returns a copy of the current lines in order
func (l *Ledger) Items() []LineItem {
	return append([]LineItem(nil), l.items...)
}

// Len returns the number of lines
func (l *Ledger) Len() int {
	return len(l.items)
}

// Totals recomputes and returns the current totals
func (l *Ledger) Totals() Totals {
	return Calculate(l.items)
}
