package billing

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

// CatalogEntry is the read-only view of a sellable item as seen by a
// billing session. Values are copied into line items at add-time and are
// never re-synced if the underlying catalog changes mid-session.
type CatalogEntry struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Kind        enum.ItemKind   `json:"kind"`
}

// StaffRecord is the read-only view of an assignable staff member
type StaffRecord struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CatalogProvider supplies live catalog snapshots. Subscribers receive the
// current snapshot immediately and every subsequent one until cancelled.
type CatalogProvider interface {
	Subscribe(fn func(entries []CatalogEntry)) (cancel func())
}

// StaffDirectory supplies live staff snapshots
type StaffDirectory interface {
	Subscribe(fn func(staff []StaffRecord)) (cancel func())
}

// Feed is a push-based snapshot feed. Publish replaces the current
// snapshot and notifies all subscribers; Subscribe delivers the current
// snapshot right away when one exists.
type Feed[T any] struct {
	mu     sync.Mutex
	latest []T
	seeded bool
	nextID int
	subs   map[int]func([]T)
}

// NewFeed creates an empty feed
func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]func([]T))}
}

// Publish stores a copy of the snapshot and notifies subscribers
func (f *Feed[T]) Publish(snapshot []T) {
	f.mu.Lock()
	f.latest = append([]T(nil), snapshot...)
	f.seeded = true
	fns := make([]func([]T), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	current := f.latest
	f.mu.Unlock()

	for _, fn := range fns {
		fn(current)
	}
}

// Subscribe registers fn and returns a cancel function. If a snapshot has
// already been published, fn is invoked with it before Subscribe returns.
func (f *Feed[T]) Subscribe(fn func([]T)) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	seeded := f.seeded
	current := f.latest
	f.mu.Unlock()

	if seeded {
		fn(current)
	}

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Latest returns the most recently published snapshot
func (f *Feed[T]) Latest() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]T(nil), f.latest...)
}
