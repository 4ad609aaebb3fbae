package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manicureEntry() CatalogEntry {
	return CatalogEntry{
		Code:        "SRV-MAN-01",
		Description: "Classic Manicure",
		UnitPrice:   dec("35.00"),
		TaxRate:     dec("0.08"),
	}
}

func TestAddItemCopiesCatalogValues(t *testing.T) {
	ledger := NewLedger()

	item, totals := ledger.AddItem(manicureEntry())

	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.Discount.IsZero())
	assert.True(t, item.UnitPrice.Equal(dec("35.00")))
	// tax seeded from price * rate at add-time
	assert.True(t, item.TaxAmount.Equal(dec("2.80")), "tax %s", item.TaxAmount)
	assert.True(t, totals.SubTotal.Equal(dec("35.00")))
}

func TestDuplicateAddsProduceSeparateLines(t *testing.T) {
	ledger := NewLedger()

	first, _ := ledger.AddItem(manicureEntry())
	second, _ := ledger.AddItem(manicureEntry())

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, ledger.Len())
}

func TestAddThenRemoveRoundTrips(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(manicureEntry())
	before := ledger.Items()
	beforeTotals := ledger.Totals()

	added, _ := ledger.AddItem(CatalogEntry{Code: "PRD-01", Description: "Argan Oil", UnitPrice: dec("18.50")})
	totals := ledger.RemoveItem(added.ID)

	assert.Equal(t, before, ledger.Items())
	assert.True(t, totals.GrandTotal.Equal(beforeTotals.GrandTotal))
}

func TestApplyTypedUpdates(t *testing.T) {
	ledger := NewLedger()
	item, _ := ledger.AddItem(manicureEntry())
	staffID := uuid.New()

	ledger.Apply(item.ID, SetQuantity{Quantity: 3})
	ledger.Apply(item.ID, SetDiscount{Discount: dec("5")})
	ledger.Apply(item.ID, SetStaff{StaffID: &staffID})
	totals := ledger.Apply(item.ID, SetUnitPrice{UnitPrice: dec("40")})

	got := ledger.Items()[0]
	assert.Equal(t, 3, got.Quantity)
	assert.True(t, got.Discount.Equal(dec("5")))
	require.NotNil(t, got.StaffID)
	assert.Equal(t, staffID, *got.StaffID)
	assert.True(t, totals.SubTotal.Equal(dec("120")), "sub %s", totals.SubTotal)
}

func TestApplyUnknownIDIsNoOp(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(manicureEntry())
	before := ledger.Items()

	totals := ledger.Apply(uuid.New(), SetQuantity{Quantity: 99})

	assert.Equal(t, before, ledger.Items())
	assert.True(t, totals.SubTotal.Equal(dec("35.00")))
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(manicureEntry())

	ledger.RemoveItem(uuid.New())

	assert.Equal(t, 1, ledger.Len())
}

func TestLedgerMayBecomeEmpty(t *testing.T) {
	ledger := NewLedger()
	item, _ := ledger.AddItem(manicureEntry())

	totals := ledger.RemoveItem(item.ID)

	assert.Equal(t, 0, ledger.Len())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestNegativeValuesAcceptedBeforeEdgeValidation(t *testing.T) {
	// The ledger itself does not enforce ranges; the HTTP DTO layer does.
	ledger := NewLedger()
	item, _ := ledger.AddItem(manicureEntry())

	ledger.Apply(item.ID, SetQuantity{Quantity: -2})

	assert.Equal(t, -2, ledger.Items()[0].Quantity)
}

func TestTaxAmountNotRecomputedOnPriceEdit(t *testing.T) {
	ledger := NewLedger()
	item, _ := ledger.AddItem(manicureEntry())
	seeded := ledger.Items()[0].TaxAmount

	ledger.Apply(item.ID, SetUnitPrice{UnitPrice: dec("100")})

	assert.True(t, ledger.Items()[0].TaxAmount.Equal(seeded))
}
