package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateEmptyLedger(t *testing.T) {
	totals := Calculate(nil)

	assert.True(t, totals.SubTotal.IsZero())
	assert.True(t, totals.TotalDiscount.IsZero())
	assert.True(t, totals.TotalTax.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestCalculateScenario(t *testing.T) {
	// 2 x 50 with no discount/tax, plus 1 x 100 with 10 discount and 5 tax
	items := []LineItem{
		{Quantity: 2, UnitPrice: dec("50"), Discount: decimal.Zero, TaxAmount: decimal.Zero},
		{Quantity: 1, UnitPrice: dec("100"), Discount: dec("10"), TaxAmount: dec("5")},
	}

	totals := Calculate(items)

	assert.True(t, totals.SubTotal.Equal(dec("200")), "sub total %s", totals.SubTotal)
	assert.True(t, totals.TotalDiscount.Equal(dec("10")), "discount %s", totals.TotalDiscount)
	assert.True(t, totals.TotalTax.Equal(dec("5")), "tax %s", totals.TotalTax)
	assert.True(t, totals.GrandTotal.Equal(dec("195")), "grand total %s", totals.GrandTotal)
}

func TestCalculateFloorAppliesBeforeTax(t *testing.T) {
	// Discount exceeds subtotal: discounted amount floors at zero but tax
	// is still added in full.
	items := []LineItem{
		{Quantity: 1, UnitPrice: dec("20"), Discount: dec("50"), TaxAmount: dec("3")},
	}

	totals := Calculate(items)

	assert.True(t, totals.GrandTotal.Equal(dec("3")), "grand total %s", totals.GrandTotal)
}

func TestCalculateInvariantUnderMutationOrder(t *testing.T) {
	// grandTotal = max(0, sub - disc) + tax must hold no matter how the
	// ledger got into its current shape.
	ledger := NewLedger()
	entry := CatalogEntry{Code: "SRV-01", Description: "Swedish Massage", UnitPrice: dec("80"), TaxRate: dec("0.1")}

	first, _ := ledger.AddItem(entry)
	second, _ := ledger.AddItem(entry)
	ledger.Apply(first.ID, SetDiscount{Discount: dec("200")})
	ledger.Apply(second.ID, SetQuantity{Quantity: 3})
	totals := ledger.RemoveItem(second.ID)

	sub := totals.SubTotal.Sub(totals.TotalDiscount)
	if sub.IsNegative() {
		sub = decimal.Zero
	}
	assert.True(t, totals.GrandTotal.Equal(sub.Add(totals.TotalTax)))
}

func TestLineTotalMayGoNegative(t *testing.T) {
	li := LineItem{Quantity: 1, UnitPrice: dec("10"), Discount: dec("25")}
	assert.True(t, li.LineTotal().Equal(dec("-15")))
}
