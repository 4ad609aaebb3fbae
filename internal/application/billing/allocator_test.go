package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

func openAllocator(t *testing.T, grand string) *Allocator {
	t.Helper()
	a := NewAllocator()
	a.Initialize(dec(grand))
	return a
}

func TestInitializeSeedsSingleCashTender(t *testing.T) {
	a := openAllocator(t, "195")

	tenders := a.Tenders()
	require.Len(t, tenders, 1)
	assert.Equal(t, enum.TenderCash, tenders[0].Method)
	assert.True(t, tenders[0].Amount.Equal(dec("195")))
	assert.Equal(t, StateOpen, a.State())
	assert.False(t, a.SplitMode())
	assert.True(t, a.Reconciled())
}

func TestMutationRequiresOpenAllocator(t *testing.T) {
	a := NewAllocator()

	_, err := a.AddTender(enum.TenderEWallet)
	assert.ErrorIs(t, err, ErrAllocatorNotOpen)
	assert.ErrorIs(t, a.SetSplitMode(true), ErrAllocatorNotOpen)
	assert.False(t, a.Reconciled())
}

func TestNonSplitAddReplacesTenderList(t *testing.T) {
	a := openAllocator(t, "80")

	tender, err := a.AddTender(enum.TenderCardVisa)
	require.NoError(t, err)

	tenders := a.Tenders()
	require.Len(t, tenders, 1)
	assert.Equal(t, tender.ID, tenders[0].ID)
	assert.Equal(t, enum.TenderCardVisa, tenders[0].Method)
	assert.True(t, tenders[0].Amount.Equal(dec("80")))
}

func TestSplitAddPrefillsRemainder(t *testing.T) {
	a := openAllocator(t, "195")
	require.NoError(t, a.SetSplitMode(true))

	cash := a.Tenders()[0]
	require.NoError(t, a.UpdateTender(cash.ID, SetTenderAmount{Amount: dec("100")}))

	wallet, err := a.AddTender(enum.TenderEWallet)
	require.NoError(t, err)
	assert.True(t, wallet.Amount.Equal(dec("95")), "prefill %s", wallet.Amount)
	assert.True(t, a.Reconciled())
	assert.Equal(t, "Split", a.PaymentMethod())
}

func TestSplitPrefillFloorsAtZero(t *testing.T) {
	a := openAllocator(t, "50")
	require.NoError(t, a.SetSplitMode(true))

	cash := a.Tenders()[0]
	require.NoError(t, a.UpdateTender(cash.ID, SetTenderAmount{Amount: dec("70")}))

	extra, err := a.AddTender(enum.TenderFinance)
	require.NoError(t, err)
	assert.True(t, extra.Amount.IsZero())
}

func TestSplitToggleOffCollapsesToCash(t *testing.T) {
	a := openAllocator(t, "195")
	require.NoError(t, a.SetSplitMode(true))
	_, err := a.AddTender(enum.TenderCardAmex)
	require.NoError(t, err)
	require.Len(t, a.Tenders(), 2)

	require.NoError(t, a.SetSplitMode(false))

	tenders := a.Tenders()
	require.Len(t, tenders, 1)
	assert.Equal(t, enum.TenderCash, tenders[0].Method)
	assert.True(t, tenders[0].Amount.Equal(dec("195")))
}

func TestRemoveTenderDoesNotRebalance(t *testing.T) {
	a := openAllocator(t, "195")
	require.NoError(t, a.SetSplitMode(true))
	cash := a.Tenders()[0]
	require.NoError(t, a.UpdateTender(cash.ID, SetTenderAmount{Amount: dec("100")}))
	wallet, err := a.AddTender(enum.TenderEWallet)
	require.NoError(t, err)

	before := a.Allocated()
	require.NoError(t, a.RemoveTender(wallet.ID))

	// the sum drops by exactly the removed tender's amount
	assert.True(t, a.Allocated().Equal(before.Sub(wallet.Amount)))
	tenders := a.Tenders()
	require.Len(t, tenders, 1)
	assert.True(t, tenders[0].Amount.Equal(dec("100")))
}

func TestUpdateUnknownTenderIsNoOp(t *testing.T) {
	a := openAllocator(t, "60")
	before := a.Tenders()

	require.NoError(t, a.UpdateTender(uuid.New(), SetTenderAmount{Amount: dec("1")}))

	assert.Equal(t, before, a.Tenders())
}

func TestReconciliationToleranceBoundary(t *testing.T) {
	a := openAllocator(t, "100")
	cash := a.Tenders()[0]

	// exactly 0.05 off is still reconciled
	require.NoError(t, a.UpdateTender(cash.ID, SetTenderAmount{Amount: dec("99.95")}))
	assert.True(t, a.Reconciled())

	// just beyond the tolerance is not
	require.NoError(t, a.UpdateTender(cash.ID, SetTenderAmount{Amount: dec("99.9499999")}))
	assert.False(t, a.Reconciled())

	// over-tender is held to the same tolerance
	require.NoError(t, a.UpdateTender(cash.ID, SetTenderAmount{Amount: dec("100.0500001")}))
	assert.False(t, a.Reconciled())
}

func TestRequestConfirmBlockedWhenNotReconciled(t *testing.T) {
	a := openAllocator(t, "100")
	cash := a.Tenders()[0]
	require.NoError(t, a.UpdateTender(cash.ID, SetTenderAmount{Amount: dec("40")}))

	assert.ErrorIs(t, a.RequestConfirm(), ErrNotReconciled)
	assert.Equal(t, StateEditing, a.State())
}

func TestConfirmFlow(t *testing.T) {
	a := openAllocator(t, "100")

	require.NoError(t, a.RequestConfirm())
	assert.Equal(t, StatePendingConfirm, a.State())

	// tender mutation is locked while a confirmation is pending
	_, err := a.AddTender(enum.TenderEWallet)
	assert.ErrorIs(t, err, ErrConfirmInProgress)

	require.NoError(t, a.CancelConfirm())
	assert.Equal(t, StateEditing, a.State())

	require.NoError(t, a.RequestConfirm())
	require.NoError(t, a.finalize())
	assert.Equal(t, StateFinalized, a.State())
	assert.ErrorIs(t, a.finalize(), ErrAlreadyFinalized)
}

func TestFinalizeUnreachableWithoutConfirm(t *testing.T) {
	a := openAllocator(t, "100")

	assert.ErrorIs(t, a.finalize(), ErrNoPendingConfirm)
}

func TestCardLast4OnlyForCardMethods(t *testing.T) {
	a := openAllocator(t, "50")
	tender, err := a.AddTender(enum.TenderCardMasterCard)
	require.NoError(t, err)

	require.NoError(t, a.UpdateTender(tender.ID, SetTenderCardLast4{CardLast4: "4242"}))
	assert.Equal(t, "4242", a.Tenders()[0].CardLast4)

	// switching to a non-card method clears the digits
	require.NoError(t, a.UpdateTender(tender.ID, SetTenderMethod{Method: enum.TenderCash}))
	assert.Empty(t, a.Tenders()[0].CardLast4)

	require.NoError(t, a.UpdateTender(tender.ID, SetTenderCardLast4{CardLast4: "4242"}))
	assert.Empty(t, a.Tenders()[0].CardLast4)
}

func TestPaymentMethodNaming(t *testing.T) {
	a := openAllocator(t, "90")
	assert.Equal(t, "Cash", a.PaymentMethod())

	_, err := a.AddTender(enum.TenderCardMaestro)
	require.NoError(t, err)
	assert.Equal(t, "Card-Maestro", a.PaymentMethod())

	require.NoError(t, a.SetSplitMode(true))
	_, err = a.AddTender(enum.TenderEWallet)
	require.NoError(t, err)
	assert.Equal(t, "Split", a.PaymentMethod())
}
