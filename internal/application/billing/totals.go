package billing

import "github.com/shopspring/decimal"

// Totals holds the derived amounts for the current ledger state. Totals are
// never stored as mutable state; they are recomputed on every ledger
// mutation and only snapshotted into the finalized bill.
type Totals struct {
	SubTotal      decimal.Decimal `json:"sub_total"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Calculate derives totals from a ledger snapshot. Discount is applied
// before tax, and the zero floor applies only to the discounted subtotal:
// tax is never discounted away.
func Calculate(items []LineItem) Totals {
	sub := decimal.Zero
	disc := decimal.Zero
	tax := decimal.Zero

	for _, item := range items {
		sub = sub.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		disc = disc.Add(item.Discount)
		tax = tax.Add(item.TaxAmount)
	}

	discounted := sub.Sub(disc)
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}

	return Totals{
		SubTotal:      sub,
		TotalDiscount: disc,
		TotalTax:      tax,
		GrandTotal:    discounted.Add(tax),
	}
}
