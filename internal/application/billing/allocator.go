package billing

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

// Allocator errors
var (
	ErrAllocatorNotOpen  = errors.New("payment allocator is not open")
	ErrNotReconciled     = errors.New("tendered amount does not match grand total")
	ErrNoPendingConfirm  = errors.New("no confirmation pending")
	ErrAlreadyFinalized  = errors.New("payment already finalized")
	ErrConfirmInProgress = errors.New("confirmation in progress")
)

// reconcileTolerance is the fixed epsilon absorbing rounding drift between
// the tendered sum and the grand total.
var reconcileTolerance = decimal.New(5, -2) // 0.05

// AllocatorState identifies where the allocator is in its lifecycle
type AllocatorState int

const (
	StateIdle AllocatorState = iota
	StateOpen
	StateEditing
	StatePendingConfirm
	StateFinalized
)

func (s AllocatorState) String() string {
	names := [...]string{"Idle", "Open", "Editing", "PendingConfirm", "Finalized"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Idle"
	}
	return names[s]
}

// Tender is a single payment-method/amount pair contributed toward
// settling the bill.
type Tender struct {
	ID        uuid.UUID         `json:"id"`
	Method    enum.TenderMethod `json:"method"`
	Amount    decimal.Decimal   `json:"amount"`
	CardLast4 string            `json:"card_last4,omitempty"`
}

// TenderUpdate is a closed set of single-field edits applied to a tender
type TenderUpdate interface {
	applyTender(*Tender)
}

// SetTenderAmount replaces the tendered amount
type SetTenderAmount struct{ Amount decimal.Decimal }

// SetTenderMethod replaces the payment method
type SetTenderMethod struct{ Method enum.TenderMethod }

// SetTenderCardLast4 replaces the card digits; ignored for non-card methods
type SetTenderCardLast4 struct{ CardLast4 string }

func (u SetTenderAmount) applyTender(t *Tender) { t.Amount = u.Amount }
func (u SetTenderMethod) applyTender(t *Tender) {
	t.Method = u.Method
	if !u.Method.IsCard() {
		t.CardLast4 = ""
	}
}
func (u SetTenderCardLast4) applyTender(t *Tender) {
	if t.Method.IsCard() {
		t.CardLast4 = u.CardLast4
	}
}

// Allocator collects tenders whose amounts must reconcile against the
// grand total before the bill may be finalized. Not safe for concurrent
// use; the owning session serializes access.
type Allocator struct {
	state   AllocatorState
	grand   decimal.Decimal
	split   bool
	tenders []Tender
}

// NewAllocator creates an allocator in the Idle state
func NewAllocator() *Allocator {
	return &Allocator{state: StateIdle}
}

// Initialize resets the allocator for a new or changed bill amount: a
// single Cash tender covering the full grand total, split mode off.
func (a *Allocator) Initialize(grandTotal decimal.Decimal) {
	a.grand = grandTotal
	a.split = false
	a.tenders = []Tender{{
		ID:     uuid.New(),
		Method: enum.TenderCash,
		Amount: grandTotal,
	}}
	a.state = StateOpen
}

// Reset returns the allocator to Idle, discarding all tender state
func (a *Allocator) Reset() {
	a.state = StateIdle
	a.grand = decimal.Zero
	a.split = false
	a.tenders = nil
}

func (a *Allocator) mutable() error {
	switch a.state {
	case StateOpen, StateEditing:
		return nil
	case StatePendingConfirm:
		return ErrConfirmInProgress
	case StateFinalized:
		return ErrAlreadyFinalized
	default:
		return ErrAllocatorNotOpen
	}
}

// SetSplitMode toggles split-tender entry. Toggling off is destructive:
// any partial split data is discarded and the allocator collapses back to
// a single full-amount Cash tender.
func (a *Allocator) SetSplitMode(enabled bool) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if a.split == enabled {
		return nil
	}
	a.split = enabled
	if !enabled {
		a.tenders = []Tender{{
			ID:     uuid.New(),
			Method: enum.TenderCash,
			Amount: a.grand,
		}}
	}
	a.state = StateEditing
	return nil
}

// AddTender adds a tender for the chosen method. In split mode the new
// tender is pre-filled with the remaining unallocated amount; otherwise
// the entire list is replaced by one full-amount tender of that method.
func (a *Allocator) AddTender(method enum.TenderMethod) (Tender, error) {
	if err := a.mutable(); err != nil {
		return Tender{}, err
	}

	tender := Tender{ID: uuid.New(), Method: method}
	if a.split {
		tender.Amount = a.Remaining()
		a.tenders = append(a.tenders, tender)
	} else {
		tender.Amount = a.grand
		a.tenders = []Tender{tender}
	}
	a.state = StateEditing
	return tender, nil
}

// UpdateTender applies one typed field update to the matching tender.
// Unknown ids are a silent no-op. Other tenders are never rebalanced.
func (a *Allocator) UpdateTender(id uuid.UUID, update TenderUpdate) error {
	if err := a.mutable(); err != nil {
		return err
	}
	for i := range a.tenders {
		if a.tenders[i].ID == id {
			update.applyTender(&a.tenders[i])
			break
		}
	}
	a.state = StateEditing
	return nil
}

// RemoveTender deletes the matching tender without adjusting the rest
func (a *Allocator) RemoveTender(id uuid.UUID) error {
	if err := a.mutable(); err != nil {
		return err
	}
	for i := range a.tenders {
		if a.tenders[i].ID == id {
			a.tenders = append(a.tenders[:i], a.tenders[i+1:]...)
			break
		}
	}
	a.state = StateEditing
	return nil
}

// Allocated returns the sum of all tender amounts
func (a *Allocator) Allocated() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range a.tenders {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// Remaining returns the unallocated amount, floored at zero
func (a *Allocator) Remaining() decimal.Decimal {
	rem := a.grand.Sub(a.Allocated())
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// Reconciled reports whether the tendered sum is within tolerance of the
// grand total. Finalization is permitted only while this holds.
func (a *Allocator) Reconciled() bool {
	switch a.state {
	case StateIdle, StateFinalized:
		return false
	}
	diff := a.Allocated().Sub(a.grand).Abs()
	return diff.Cmp(reconcileTolerance) <= 0
}

// RequestConfirm opens the secondary confirmation step. It is the only
// path to finalization, so a single mis-click can never commit the bill.
func (a *Allocator) RequestConfirm() error {
	if err := a.mutable(); err != nil {
		return err
	}
	if !a.Reconciled() {
		return ErrNotReconciled
	}
	a.state = StatePendingConfirm
	return nil
}

// CancelConfirm abandons the pending confirmation and returns to editing
func (a *Allocator) CancelConfirm() error {
	if a.state != StatePendingConfirm {
		return ErrNoPendingConfirm
	}
	a.state = StateEditing
	return nil
}

// finalize marks the allocator terminal. Reachable only from
// PendingConfirm; callers go through Session.Finalize.
func (a *Allocator) finalize() error {
	if a.state == StateFinalized {
		return ErrAlreadyFinalized
	}
	if a.state != StatePendingConfirm {
		return ErrNoPendingConfirm
	}
	a.state = StateFinalized
	return nil
}

// State returns the current lifecycle state
func (a *Allocator) State() AllocatorState {
	return a.state
}

// SplitMode reports whether split-tender entry is enabled
func (a *Allocator) SplitMode() bool {
	return a.split
}

// GrandTotal returns the amount the tenders must reconcile against
func (a *Allocator) GrandTotal() decimal.Decimal {
	return a.grand
}

// Tenders returns a copy of the current tenders in order
func (a *Allocator) Tenders() []Tender {
	return append([]Tender(nil), a.tenders...)
}

// PaymentMethod names how the bill was settled: "Split" when more than
// one tender is present, otherwise the single tender's method.
func (a *Allocator) PaymentMethod() string {
	if len(a.tenders) > 1 {
		return "Split"
	}
	if len(a.tenders) == 1 {
		return a.tenders[0].Method.String()
	}
	return ""
}
