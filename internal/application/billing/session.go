package billing

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// WalkInCustomerName is the placeholder identity used when no customer
// record is attached to the session.
const WalkInCustomerName = "Walk-in"

// Session errors
var (
	ErrSessionClosed = errors.New("billing session is closed")
)

// CustomerRef is a pre-resolved customer identity. ID is nil for walk-ins.
type CustomerRef struct {
	ID   *uuid.UUID `json:"id,omitempty"`
	Name string     `json:"name"`
}

// Bill is the immutable snapshot persisted at finalization
type Bill struct {
	ID            uuid.UUID  `json:"id"`
	BillDate      time.Time  `json:"bill_date"`
	Customer      CustomerRef `json:"customer"`
	Items         []LineItem `json:"items"`
	Totals        Totals     `json:"totals"`
	PaymentMethod string     `json:"payment_method"`
	Tenders       []Tender   `json:"tenders"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BillStore persists finalized bills. Append-only: no update or delete is
// ever issued through this interface.
type BillStore interface {
	CreateBill(ctx context.Context, bill Bill) (uuid.UUID, error)
}

// Session owns one ledger and one payment allocator for the lifetime of a
// single in-progress bill. Nothing is persisted until Finalize succeeds;
// abandoning the session discards all state. Not safe for concurrent use.
type Session struct {
	ID        uuid.UUID
	customer  CustomerRef
	ledger    *Ledger
	allocator *Allocator
	closed    bool
	createdAt time.Time
}

// NewSession opens a billing session for the given customer, falling back
// to the walk-in placeholder when no name was resolved.
func NewSession(customer CustomerRef) *Session {
	if customer.Name == "" {
		customer.Name = WalkInCustomerName
	}
	return &Session{
		ID:        uuid.New(),
		customer:  customer,
		ledger:    NewLedger(),
		allocator: NewAllocator(),
		createdAt: time.Now(),
	}
}

// Customer returns the session's customer identity
func (s *Session) Customer() CustomerRef {
	return s.customer
}

// CreatedAt returns when the session was opened
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Closed reports whether the session has finalized
func (s *Session) Closed() bool {
	return s.closed
}

// ledgerChanged invalidates any in-progress payment allocation, since its
// grand total no longer matches the ledger.
func (s *Session) ledgerChanged() {
	if s.allocator.State() != StateIdle {
		s.allocator.Reset()
	}
}

// AddItem appends a catalog entry to the ledger and returns the new line
// together with the recomputed totals.
func (s *Session) AddItem(entry CatalogEntry) (LineItem, Totals, error) {
	if s.closed {
		return LineItem{}, Totals{}, ErrSessionClosed
	}
	item, totals := s.ledger.AddItem(entry)
	s.ledgerChanged()
	return item, totals, nil
}

// UpdateItem applies a typed field update to one ledger line
func (s *Session) UpdateItem(id uuid.UUID, update ItemUpdate) (Totals, error) {
	if s.closed {
		return Totals{}, ErrSessionClosed
	}
	totals := s.ledger.Apply(id, update)
	s.ledgerChanged()
	return totals, nil
}

// RemoveItem deletes one ledger line
func (s *Session) RemoveItem(id uuid.UUID) (Totals, error) {
	if s.closed {
		return Totals{}, ErrSessionClosed
	}
	totals := s.ledger.RemoveItem(id)
	s.ledgerChanged()
	return totals, nil
}

// Items returns the current ledger lines
func (s *Session) Items() []LineItem {
	return s.ledger.Items()
}

// Totals recomputes and returns the current bill totals
func (s *Session) Totals() Totals {
	return s.ledger.Totals()
}

// OpenPayment seeds the allocator with the current grand total
func (s *Session) OpenPayment() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.allocator.Initialize(s.ledger.Totals().GrandTotal)
	return nil
}

// Allocator exposes the session's payment allocator
func (s *Session) Allocator() *Allocator {
	return s.allocator
}

// Finalize converts the session into an immutable bill and persists it.
// Only reachable from the allocator's PendingConfirm state. On a store
// failure the error is logged and every piece of in-memory state is left
// intact so the operator can retry without re-entering line items.
func (s *Session) Finalize(ctx context.Context, store BillStore) (Bill, error) {
	if s.closed {
		return Bill{}, ErrSessionClosed
	}
	if s.allocator.State() != StatePendingConfirm {
		return Bill{}, ErrNoPendingConfirm
	}

	now := time.Now()
	bill := Bill{
		ID:            uuid.New(),
		BillDate:      now,
		Customer:      s.customer,
		Items:         s.ledger.Items(),
		Totals:        s.ledger.Totals(),
		PaymentMethod: s.allocator.PaymentMethod(),
		Tenders:       s.allocator.Tenders(),
		CreatedAt:     now,
	}

	if _, err := store.CreateBill(ctx, bill); err != nil {
		log.Printf("billing: failed to persist bill for session %s: %v", s.ID, err)
		return Bill{}, err
	}

	if err := s.allocator.finalize(); err != nil {
		return Bill{}, err
	}
	s.closed = true
	return bill, nil
}
