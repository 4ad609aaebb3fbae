package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk-api/internal/application/billing"
	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
	"github.com/glowdesk/glowdesk-api/pkg/utils"
)

// BillingService owns the live billing sessions. Each session wraps one
// in-memory ledger and payment allocator; nothing touches the database
// until a session finalizes. Sessions are serialized through the registry
// lock since a single front-desk operator drives each one.
type BillingService struct {
	billRepo        repository.BillRepository
	customerRepo    repository.CustomerRepository
	appointmentRepo repository.AppointmentRepository

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry

	catalogMu sync.RWMutex
	catalog   map[string]billing.CatalogEntry

	staffMu sync.RWMutex
	staff   map[uuid.UUID]billing.StaffRecord
}

type sessionEntry struct {
	session       *billing.Session
	appointmentID *uuid.UUID
}

// NewBillingService creates a new billing service and subscribes to the
// given catalog streams and staff directory for live picker snapshots.
// Providers are keyed by item kind so that an empty snapshot still clears
// the right slice of the code lookup.
func NewBillingService(
	billRepo repository.BillRepository,
	customerRepo repository.CustomerRepository,
	appointmentRepo repository.AppointmentRepository,
	providers map[enum.ItemKind]billing.CatalogProvider,
	directory billing.StaffDirectory,
) *BillingService {
	s := &BillingService{
		billRepo:        billRepo,
		customerRepo:    customerRepo,
		appointmentRepo: appointmentRepo,
		sessions:        make(map[uuid.UUID]*sessionEntry),
		catalog:         make(map[string]billing.CatalogEntry),
		staff:           make(map[uuid.UUID]billing.StaffRecord),
	}

	for kind, provider := range providers {
		provider.Subscribe(func(entries []billing.CatalogEntry) {
			s.onCatalogSnapshot(kind, entries)
		})
	}
	if directory != nil {
		directory.Subscribe(s.onStaffSnapshot)
	}

	return s
}

// onCatalogSnapshot replaces one kind's slice of the code lookup with the
// snapshot. An empty snapshot leaves the kind with no sellable entries.
func (s *BillingService) onCatalogSnapshot(kind enum.ItemKind, entries []billing.CatalogEntry) {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()
	for code, entry := range s.catalog {
		if entry.Kind == kind {
			delete(s.catalog, code)
		}
	}
	for _, entry := range entries {
		s.catalog[entry.Code] = entry
	}
}

func (s *BillingService) onStaffSnapshot(staff []billing.StaffRecord) {
	s.staffMu.Lock()
	defer s.staffMu.Unlock()
	s.staff = make(map[uuid.UUID]billing.StaffRecord, len(staff))
	for _, record := range staff {
		s.staff[record.ID] = record
	}
}

func (s *BillingService) lookupEntry(code string) (billing.CatalogEntry, bool) {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	entry, ok := s.catalog[code]
	return entry, ok
}

func (s *BillingService) knownStaff(id uuid.UUID) bool {
	s.staffMu.RLock()
	defer s.staffMu.RUnlock()
	_, ok := s.staff[id]
	return ok
}

func (s *BillingService) get(id uuid.UUID) (*sessionEntry, error) {
	entry, ok := s.sessions[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Billing session")
	}
	return entry, nil
}

// SessionView is the full read model of one live session
type SessionView struct {
	ID             uuid.UUID              `json:"id"`
	Customer       billing.CustomerRef    `json:"customer"`
	AppointmentID  *uuid.UUID             `json:"appointment_id,omitempty"`
	Items          []billing.LineItem     `json:"items"`
	Totals         billing.Totals         `json:"totals"`
	AllocatorState billing.AllocatorState `json:"allocator_state"`
	SplitMode      bool                   `json:"split_mode"`
	Tenders        []billing.Tender       `json:"tenders"`
	Allocated      string                 `json:"allocated"`
	Remaining      string                 `json:"remaining"`
	Reconciled     bool                   `json:"reconciled"`
	CreatedAt      time.Time              `json:"created_at"`
}

func (s *BillingService) view(entry *sessionEntry) *SessionView {
	session := entry.session
	allocator := session.Allocator()
	return &SessionView{
		ID:             session.ID,
		Customer:       session.Customer(),
		AppointmentID:  entry.appointmentID,
		Items:          session.Items(),
		Totals:         session.Totals(),
		AllocatorState: allocator.State(),
		SplitMode:      allocator.SplitMode(),
		Tenders:        allocator.Tenders(),
		Allocated:      allocator.Allocated().StringFixed(2),
		Remaining:      allocator.Remaining().StringFixed(2),
		Reconciled:     allocator.Reconciled(),
		CreatedAt:      session.CreatedAt(),
	}
}

// OpenSessionInput represents the open session input. Both fields are
// optional: with neither, the session belongs to a walk-in.
type OpenSessionInput struct {
	CustomerID    *uuid.UUID
	AppointmentID *uuid.UUID
}

// OpenSession opens a new billing session. When an appointment is given
// its customer is used and its catalog item, if any, is pre-added to the
// ledger.
func (s *BillingService) OpenSession(ctx context.Context, input *OpenSessionInput) (*SessionView, error) {
	customer := billing.CustomerRef{}
	var appointment *entity.Appointment

	customerID := input.CustomerID
	if input.AppointmentID != nil {
		var err error
		appointment, err = s.appointmentRepo.GetByID(ctx, *input.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			return nil, apperror.NewNotFoundError("Appointment")
		}
		if appointment.BillID != nil {
			return nil, apperror.NewConflictError("Appointment is already billed")
		}
		customerID = &appointment.CustomerID
	}

	if customerID != nil {
		record, err := s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customer = billing.CustomerRef{ID: &record.ID, Name: record.Name}
	}

	session := billing.NewSession(customer)
	entry := &sessionEntry{session: session, appointmentID: input.AppointmentID}

	if appointment != nil && appointment.CatalogItem != nil {
		if catalogEntry, ok := s.lookupEntry(appointment.CatalogItem.Code); ok {
			if _, _, err := session.AddItem(catalogEntry); err != nil {
				return nil, err
			}
		}
	}

	s.mu.Lock()
	s.sessions[session.ID] = entry
	s.mu.Unlock()

	return s.view(entry), nil
}

// GetSession returns the current state of one live session
func (s *BillingService) GetSession(id uuid.UUID) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.view(entry), nil
}

// CatalogPicker returns the live picker snapshot for one item kind
func (s *BillingService) CatalogPicker(kind enum.ItemKind) []billing.CatalogEntry {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	entries := make([]billing.CatalogEntry, 0)
	for _, entry := range s.catalog {
		if entry.Kind == kind {
			entries = append(entries, entry)
		}
	}
	return entries
}

// StaffPicker returns the live staff snapshot
func (s *BillingService) StaffPicker() []billing.StaffRecord {
	s.staffMu.RLock()
	defer s.staffMu.RUnlock()
	records := make([]billing.StaffRecord, 0, len(s.staff))
	for _, record := range s.staff {
		records = append(records, record)
	}
	return records
}

// AddItem adds the catalog entry with the given code to the session ledger
func (s *BillingService) AddItem(sessionID uuid.UUID, code string) (*SessionView, error) {
	entry, ok := s.lookupEntry(code)
	if !ok {
		return nil, apperror.NewNotFoundError("Catalog entry")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, _, err := se.session.AddItem(entry); err != nil {
		return nil, billingError(err)
	}
	return s.view(se), nil
}

// UpdateItem applies one typed field update to a ledger line
func (s *BillingService) UpdateItem(sessionID, itemID uuid.UUID, update billing.ItemUpdate) (*SessionView, error) {
	if assign, ok := update.(billing.SetStaff); ok && assign.StaffID != nil {
		if !s.knownStaff(*assign.StaffID) {
			return nil, apperror.NewNotFoundError("Staff member")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := se.session.UpdateItem(itemID, update); err != nil {
		return nil, billingError(err)
	}
	return s.view(se), nil
}

// RemoveItem removes one ledger line
func (s *BillingService) RemoveItem(sessionID, itemID uuid.UUID) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := se.session.RemoveItem(itemID); err != nil {
		return nil, billingError(err)
	}
	return s.view(se), nil
}

// OpenPayment seeds the payment allocator with the current grand total
func (s *BillingService) OpenPayment(sessionID uuid.UUID) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := se.session.OpenPayment(); err != nil {
		return nil, billingError(err)
	}
	return s.view(se), nil
}

// SetSplitMode toggles split-tender entry for the session
func (s *BillingService) SetSplitMode(sessionID uuid.UUID, enabled bool) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := se.session.Allocator().SetSplitMode(enabled); err != nil {
		return nil, billingError(err)
	}
	return s.view(se), nil
}

// AddTender adds a tender of the given method
func (s *BillingService) AddTender(sessionID uuid.UUID, method enum.TenderMethod) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := se.session.Allocator().AddTender(method); err != nil {
		return nil, billingError(err)
	}
	return s.view(se), nil
}

// UpdateTender applies one typed field update to a tender
func (s *BillingService) UpdateTender(sessionID, tenderID uuid.UUID, update billing.TenderUpdate) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := se.session.Allocator().UpdateTender(tenderID, update); err != nil {
		return nil, billingError(err)
	}
	return s.view(se), nil
}

// RemoveTender removes one tender
func (s *BillingService) RemoveTender(sessionID, tenderID uuid.UUID) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := se.session.Allocator().RemoveTender(tenderID); err != nil {
		return nil, billingError(err)
	}
	return s.view(se), nil
}

// RequestConfirm opens the settle confirmation step
func (s *BillingService) RequestConfirm(sessionID uuid.UUID) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := se.session.Allocator().RequestConfirm(); err != nil {
		return nil, billingError(err)
	}
	return s.view(se), nil
}

// CancelConfirm abandons the pending confirmation
func (s *BillingService) CancelConfirm(sessionID uuid.UUID) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := se.session.Allocator().CancelConfirm(); err != nil {
		return nil, billingError(err)
	}
	return s.view(se), nil
}

// Finalize persists the session as an immutable bill. On success the
// session is removed from the registry and the linked appointment, if
// any, gets the bill attached. On a store failure the session and all of
// its state survive for a retry.
func (s *BillingService) Finalize(ctx context.Context, sessionID uuid.UUID, operatorID *uuid.UUID) (*entity.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	store := &billStore{repo: s.billRepo, createdBy: operatorID}
	if _, err := se.session.Finalize(ctx, store); err != nil {
		return nil, billingError(err)
	}

	if se.appointmentID != nil {
		s.attachBill(ctx, *se.appointmentID, store.saved.ID)
	}

	delete(s.sessions, sessionID)
	return store.saved, nil
}

// attachBill links the persisted bill back onto its appointment. The bill
// is already committed at this point, so a failed attach cannot undo the
// sale; it is logged for manual reconciliation instead.
func (s *BillingService) attachBill(ctx context.Context, appointmentID, billID uuid.UUID) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil || appointment == nil {
		log.Printf("billing: failed to load appointment %s for bill %s: %v", appointmentID, billID, err)
		return
	}

	appointment.BillID = &billID
	if appointment.Status == enum.AppointmentStatusBooked {
		appointment.Status = enum.AppointmentStatusCompleted
	}
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		log.Printf("billing: failed to attach bill %s to appointment %s: %v", billID, appointmentID, err)
	}
}

// AbandonSession discards a live session and all of its in-memory state
func (s *BillingService) AbandonSession(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return apperror.NewNotFoundError("Billing session")
	}
	delete(s.sessions, id)
	return nil
}

// billStore adapts the bill repository to the snapshot the billing core
// hands over at finalization.
type billStore struct {
	repo      repository.BillRepository
	createdBy *uuid.UUID
	saved     *entity.Bill
}

func (b *billStore) CreateBill(ctx context.Context, bill billing.Bill) (uuid.UUID, error) {
	record := &entity.Bill{
		ID:            bill.ID,
		BillNo:        utils.GenerateBillNo(),
		BillDate:      bill.BillDate,
		CustomerID:    bill.Customer.ID,
		CustomerName:  bill.Customer.Name,
		SubTotal:      bill.Totals.SubTotal,
		TotalDiscount: bill.Totals.TotalDiscount,
		TotalTax:      bill.Totals.TotalTax,
		GrandTotal:    bill.Totals.GrandTotal,
		PaymentMethod: bill.PaymentMethod,
		CreatedByID:   b.createdBy,
	}

	for _, item := range bill.Items {
		record.Items = append(record.Items, entity.BillItem{
			BillID:      bill.ID,
			StaffID:     item.StaffID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			TaxAmount:   item.TaxAmount,
			LineTotal:   item.LineTotal(),
		})
	}

	for _, tender := range bill.Tenders {
		var last4 *string
		if tender.CardLast4 != "" {
			value := tender.CardLast4
			last4 = &value
		}
		record.Tenders = append(record.Tenders, entity.BillTender{
			BillID:    bill.ID,
			Method:    tender.Method,
			Amount:    tender.Amount,
			CardLast4: last4,
		})
	}

	if err := b.repo.Create(ctx, record); err != nil {
		return uuid.Nil, err
	}
	b.saved = record
	return record.ID, nil
}

// billingError maps billing core errors onto API errors so handlers can
// return proper status codes.
func billingError(err error) error {
	switch err {
	case billing.ErrSessionClosed,
		billing.ErrAllocatorNotOpen,
		billing.ErrNotReconciled,
		billing.ErrNoPendingConfirm,
		billing.ErrAlreadyFinalized,
		billing.ErrConfirmInProgress:
		return apperror.NewConflictStateError(err)
	default:
		return err
	}
}
