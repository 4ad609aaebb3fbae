package service

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/glowdesk-api/internal/application/billing"
	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

func newTestBillingService(t *testing.T) (*BillingService, *fakeBillRepo, *fakeCustomerRepo, *fakeAppointmentRepo, *billing.Feed[billing.CatalogEntry], *billing.Feed[billing.StaffRecord]) {
	t.Helper()

	billRepo := newFakeBillRepo()
	customerRepo := newFakeCustomerRepo()
	appointmentRepo := newFakeAppointmentRepo()

	catalogFeed := billing.NewFeed[billing.CatalogEntry]()
	staffFeed := billing.NewFeed[billing.StaffRecord]()

	svc := NewBillingService(billRepo, customerRepo, appointmentRepo,
		map[enum.ItemKind]billing.CatalogProvider{enum.ItemKindService: catalogFeed}, staffFeed)

	return svc, billRepo, customerRepo, appointmentRepo, catalogFeed, staffFeed
}

func publishHaircut(feed *billing.Feed[billing.CatalogEntry]) {
	feed.Publish([]billing.CatalogEntry{
		{
			Code:        "SRV-HAIRCUT",
			Description: "Classic Haircut",
			UnitPrice:   decimal.RequireFromString("50.00"),
			TaxRate:     decimal.RequireFromString("0.10"),
			Kind:        enum.ItemKindService,
		},
		{
			Code:        "SRV-COLOR",
			Description: "Full Colour",
			UnitPrice:   decimal.RequireFromString("120.00"),
			TaxRate:     decimal.Zero,
			Kind:        enum.ItemKindService,
		},
	})
}

func TestOpenSessionWalkIn(t *testing.T) {
	svc, _, _, _, _, _ := newTestBillingService(t)

	view, err := svc.OpenSession(context.Background(), &OpenSessionInput{})
	require.NoError(t, err)

	assert.Equal(t, billing.WalkInCustomerName, view.Customer.Name)
	assert.Nil(t, view.Customer.ID)
	assert.Empty(t, view.Items)
	assert.Equal(t, billing.StateIdle, view.AllocatorState)
}

func TestOpenSessionResolvesCustomer(t *testing.T) {
	svc, _, customerRepo, _, _, _ := newTestBillingService(t)

	customer := &entity.Customer{Name: "Amina Diallo"}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	view, err := svc.OpenSession(context.Background(), &OpenSessionInput{CustomerID: &customer.ID})
	require.NoError(t, err)

	assert.Equal(t, "Amina Diallo", view.Customer.Name)
	require.NotNil(t, view.Customer.ID)
	assert.Equal(t, customer.ID, *view.Customer.ID)
}

func TestOpenSessionUnknownCustomer(t *testing.T) {
	svc, _, _, _, _, _ := newTestBillingService(t)

	id := entityUUID()
	_, err := svc.OpenSession(context.Background(), &OpenSessionInput{CustomerID: &id})
	assert.Error(t, err)
}

func TestAddItemUnknownCode(t *testing.T) {
	svc, _, _, _, feed, _ := newTestBillingService(t)
	publishHaircut(feed)

	view, err := svc.OpenSession(context.Background(), &OpenSessionInput{})
	require.NoError(t, err)

	_, err = svc.AddItem(view.ID, "SRV-NOPE")
	assert.Error(t, err)
}

func TestFullSettlementFlow(t *testing.T) {
	svc, billRepo, customerRepo, _, feed, _ := newTestBillingService(t)
	publishHaircut(feed)

	ctx := context.Background()
	customer := &entity.Customer{Name: "Amina Diallo"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	view, err := svc.OpenSession(ctx, &OpenSessionInput{CustomerID: &customer.ID})
	require.NoError(t, err)

	view, err = svc.AddItem(view.ID, "SRV-HAIRCUT")
	require.NoError(t, err)
	view, err = svc.AddItem(view.ID, "SRV-COLOR")
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	// 50 + 120 subtotal, 5.00 tax on the haircut
	assert.True(t, view.Totals.GrandTotal.Equal(decimal.RequireFromString("175.00")),
		"grand total %s", view.Totals.GrandTotal)

	view, err = svc.OpenPayment(view.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.StateOpen, view.AllocatorState)
	require.Len(t, view.Tenders, 1)
	assert.Equal(t, enum.TenderCash, view.Tenders[0].Method)

	view, err = svc.SetSplitMode(view.ID, true)
	require.NoError(t, err)

	cashID := view.Tenders[0].ID
	view, err = svc.UpdateTender(view.ID, cashID, billing.SetTenderAmount{Amount: decimal.RequireFromString("100.00")})
	require.NoError(t, err)

	view, err = svc.AddTender(view.ID, enum.TenderCardVisa)
	require.NoError(t, err)
	require.Len(t, view.Tenders, 2)
	assert.Equal(t, "75.00", view.Tenders[1].Amount.StringFixed(2))

	view, err = svc.UpdateTender(view.ID, view.Tenders[1].ID, billing.SetTenderCardLast4{CardLast4: "4242"})
	require.NoError(t, err)
	assert.True(t, view.Reconciled)

	view, err = svc.RequestConfirm(view.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.StatePendingConfirm, view.AllocatorState)

	bill, err := svc.Finalize(ctx, view.ID, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, bill.BillNo)
	assert.Equal(t, "Amina Diallo", bill.CustomerName)
	assert.Equal(t, "Split", bill.PaymentMethod)
	require.Len(t, bill.Tenders, 2)
	require.NotNil(t, bill.Tenders[1].CardLast4)
	assert.Equal(t, "4242", *bill.Tenders[1].CardLast4)
	assert.Len(t, billRepo.bills, 1)

	// the session is gone once finalized
	_, err = svc.GetSession(view.ID)
	assert.Error(t, err)
}

func TestFinalizeFailurePreservesSession(t *testing.T) {
	svc, billRepo, _, _, feed, _ := newTestBillingService(t)
	publishHaircut(feed)

	ctx := context.Background()
	view, err := svc.OpenSession(ctx, &OpenSessionInput{})
	require.NoError(t, err)

	_, err = svc.AddItem(view.ID, "SRV-HAIRCUT")
	require.NoError(t, err)
	_, err = svc.OpenPayment(view.ID)
	require.NoError(t, err)
	_, err = svc.RequestConfirm(view.ID)
	require.NoError(t, err)

	billRepo.failing = true
	_, err = svc.Finalize(ctx, view.ID, nil)
	require.Error(t, err)

	// session survives with its tenders, ready for a retry
	saved, err := svc.GetSession(view.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.StatePendingConfirm, saved.AllocatorState)
	assert.Len(t, saved.Items, 1)

	billRepo.failing = false
	bill, err := svc.Finalize(ctx, view.ID, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, bill.BillNo)
}

func TestFinalizeRequiresConfirmation(t *testing.T) {
	svc, _, _, _, feed, _ := newTestBillingService(t)
	publishHaircut(feed)

	ctx := context.Background()
	view, err := svc.OpenSession(ctx, &OpenSessionInput{})
	require.NoError(t, err)

	_, err = svc.AddItem(view.ID, "SRV-HAIRCUT")
	require.NoError(t, err)
	_, err = svc.OpenPayment(view.ID)
	require.NoError(t, err)

	_, err = svc.Finalize(ctx, view.ID, nil)
	assert.Error(t, err)
}

func TestAppointmentSessionAttachesBill(t *testing.T) {
	svc, _, customerRepo, appointmentRepo, feed, _ := newTestBillingService(t)
	publishHaircut(feed)

	ctx := context.Background()
	customer := &entity.Customer{Name: "Amina Diallo"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	appointment := &entity.Appointment{
		CustomerID: customer.ID,
		Status:     enum.AppointmentStatusBooked,
	}
	require.NoError(t, appointmentRepo.Create(ctx, appointment))

	view, err := svc.OpenSession(ctx, &OpenSessionInput{AppointmentID: &appointment.ID})
	require.NoError(t, err)
	assert.Equal(t, "Amina Diallo", view.Customer.Name)

	_, err = svc.AddItem(view.ID, "SRV-HAIRCUT")
	require.NoError(t, err)
	_, err = svc.OpenPayment(view.ID)
	require.NoError(t, err)
	_, err = svc.RequestConfirm(view.ID)
	require.NoError(t, err)

	bill, err := svc.Finalize(ctx, view.ID, nil)
	require.NoError(t, err)

	updated, err := appointmentRepo.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.BillID)
	assert.Equal(t, bill.ID, *updated.BillID)
	assert.Equal(t, enum.AppointmentStatusCompleted, updated.Status)
}

func TestFinalizeSurvivesFailedAppointmentAttach(t *testing.T) {
	svc, billRepo, customerRepo, appointmentRepo, feed, _ := newTestBillingService(t)
	publishHaircut(feed)

	ctx := context.Background()
	customer := &entity.Customer{Name: "Amina Diallo"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	appointment := &entity.Appointment{
		CustomerID: customer.ID,
		Status:     enum.AppointmentStatusBooked,
	}
	require.NoError(t, appointmentRepo.Create(ctx, appointment))

	view, err := svc.OpenSession(ctx, &OpenSessionInput{AppointmentID: &appointment.ID})
	require.NoError(t, err)
	_, err = svc.AddItem(view.ID, "SRV-HAIRCUT")
	require.NoError(t, err)
	_, err = svc.OpenPayment(view.ID)
	require.NoError(t, err)
	_, err = svc.RequestConfirm(view.ID)
	require.NoError(t, err)

	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	appointmentRepo.failingUpdate = true
	bill, err := svc.Finalize(ctx, view.ID, nil)
	require.NoError(t, err)

	// the sale is committed even though the attach failed
	assert.Len(t, billRepo.bills, 1)
	assert.Contains(t, logged.String(), "failed to attach bill "+bill.ID.String())

	stale, err := appointmentRepo.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Nil(t, stale.BillID)
}

func TestOpenSessionLeavesInputUntouched(t *testing.T) {
	svc, _, customerRepo, appointmentRepo, _, _ := newTestBillingService(t)

	ctx := context.Background()
	customer := &entity.Customer{Name: "Amina Diallo"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	appointment := &entity.Appointment{
		CustomerID: customer.ID,
		Status:     enum.AppointmentStatusBooked,
	}
	require.NoError(t, appointmentRepo.Create(ctx, appointment))

	input := &OpenSessionInput{AppointmentID: &appointment.ID}
	view, err := svc.OpenSession(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, "Amina Diallo", view.Customer.Name)
	assert.Nil(t, input.CustomerID)
}

func TestOpenSessionRejectsBilledAppointment(t *testing.T) {
	svc, _, customerRepo, appointmentRepo, _, _ := newTestBillingService(t)

	ctx := context.Background()
	customer := &entity.Customer{Name: "Amina Diallo"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	billID := entityUUID()
	appointment := &entity.Appointment{
		CustomerID: customer.ID,
		Status:     enum.AppointmentStatusCompleted,
		BillID:     &billID,
	}
	require.NoError(t, appointmentRepo.Create(ctx, appointment))

	_, err := svc.OpenSession(ctx, &OpenSessionInput{AppointmentID: &appointment.ID})
	assert.Error(t, err)
}

func TestUpdateItemRejectsUnknownStaff(t *testing.T) {
	svc, _, _, _, feed, staffFeed := newTestBillingService(t)
	publishHaircut(feed)

	known := entityUUID()
	staffFeed.Publish([]billing.StaffRecord{{ID: known, Name: "Lena"}})

	ctx := context.Background()
	view, err := svc.OpenSession(ctx, &OpenSessionInput{})
	require.NoError(t, err)
	view, err = svc.AddItem(view.ID, "SRV-HAIRCUT")
	require.NoError(t, err)

	itemID := view.Items[0].ID

	unknown := entityUUID()
	_, err = svc.UpdateItem(view.ID, itemID, billing.SetStaff{StaffID: &unknown})
	assert.Error(t, err)

	view, err = svc.UpdateItem(view.ID, itemID, billing.SetStaff{StaffID: &known})
	require.NoError(t, err)
	require.NotNil(t, view.Items[0].StaffID)
	assert.Equal(t, known, *view.Items[0].StaffID)
}

func TestLedgerEditResetsOpenAllocator(t *testing.T) {
	svc, _, _, _, feed, _ := newTestBillingService(t)
	publishHaircut(feed)

	ctx := context.Background()
	view, err := svc.OpenSession(ctx, &OpenSessionInput{})
	require.NoError(t, err)
	view, err = svc.AddItem(view.ID, "SRV-HAIRCUT")
	require.NoError(t, err)

	view, err = svc.OpenPayment(view.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.StateOpen, view.AllocatorState)

	view, err = svc.AddItem(view.ID, "SRV-COLOR")
	require.NoError(t, err)
	assert.Equal(t, billing.StateIdle, view.AllocatorState)
	assert.Empty(t, view.Tenders)
}

func TestEmptyCatalogSnapshotClearsKind(t *testing.T) {
	svc, _, _, _, feed, _ := newTestBillingService(t)
	publishHaircut(feed)

	ctx := context.Background()
	view, err := svc.OpenSession(ctx, &OpenSessionInput{})
	require.NoError(t, err)

	// the last item of the kind goes away, so nothing stays sellable
	feed.Publish(nil)

	assert.Empty(t, svc.CatalogPicker(enum.ItemKindService))
	_, err = svc.AddItem(view.ID, "SRV-HAIRCUT")
	assert.Error(t, err)
}

func TestCatalogSnapshotReplacesKind(t *testing.T) {
	svc, _, _, _, feed, _ := newTestBillingService(t)
	publishHaircut(feed)

	feed.Publish([]billing.CatalogEntry{
		{
			Code:        "SRV-TRIM",
			Description: "Beard Trim",
			UnitPrice:   decimal.RequireFromString("20.00"),
			Kind:        enum.ItemKindService,
		},
	})

	picker := svc.CatalogPicker(enum.ItemKindService)
	require.Len(t, picker, 1)
	assert.Equal(t, "SRV-TRIM", picker[0].Code)
}

func TestAbandonSession(t *testing.T) {
	svc, billRepo, _, _, feed, _ := newTestBillingService(t)
	publishHaircut(feed)

	ctx := context.Background()
	view, err := svc.OpenSession(ctx, &OpenSessionInput{})
	require.NoError(t, err)
	_, err = svc.AddItem(view.ID, "SRV-HAIRCUT")
	require.NoError(t, err)

	require.NoError(t, svc.AbandonSession(view.ID))
	_, err = svc.GetSession(view.ID)
	assert.Error(t, err)
	assert.Empty(t, billRepo.bills)

	assert.Error(t, svc.AbandonSession(view.ID))
}
