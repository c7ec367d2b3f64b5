package order

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wizzzlaundry/backend/internal/metrics"
)

// CreateSpec carries everything Store.Create needs to persist a new order.
type CreateSpec struct {
	UserID       string
	Items        []CartItem
	TotalAmount  decimal.Decimal
	PickupDate   time.Time
	DeliveryDate time.Time
	Address      string
}

// Store owns the canonical order records. All mutations go through its API
// and all reads return copies, so no caller ever holds a mutable alias into
// the collection. Orders are retained for history and never deleted.
type Store struct {
	mu      sync.RWMutex
	orders  []*Order // most-recently-created first
	byID    map[string]*Order
	timeNow func() time.Time
	randN   func(n int) int
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[string]*Order),
		timeNow: func() time.Time { return time.Now().UTC() },
		randN:   rand.Intn,
	}
}

// Create validates the spec, assigns a fresh id and inserts the order in
// status Pending at the front of the retrieval order. The returned value is
// a full copy of the stored record.
func (s *Store) Create(spec CreateSpec) (Order, error) {
	if len(spec.Items) == 0 {
		return Order{}, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for _, item := range spec.Items {
		if item.Quantity < 1 {
			return Order{}, fmt.Errorf("%w: item %q has quantity %d", ErrValidation, item.ServiceID, item.Quantity)
		}
	}
	if spec.TotalAmount.IsNegative() {
		return Order{}, fmt.Errorf("%w: total amount is negative", ErrValidation)
	}
	if spec.DeliveryDate.Before(spec.PickupDate) {
		return Order{}, fmt.Errorf("%w: delivery date is before pickup date", ErrValidation)
	}
	if spec.Address == "" {
		return Order{}, fmt.Errorf("%w: address is empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o := &Order{
		ID:           s.newID(),
		UserID:       spec.UserID,
		Status:       StatusPending,
		Items:        copyItems(spec.Items),
		TotalAmount:  spec.TotalAmount,
		PickupDate:   spec.PickupDate,
		DeliveryDate: spec.DeliveryDate,
		CreatedAt:    s.timeNow(),
		Address:      spec.Address,
	}

	s.orders = append([]*Order{o}, s.orders...)
	s.byID[o.ID] = o
	metrics.ActiveOrders.Inc()

	return copyOrder(o), nil
}

// newID generates an "ORD-<n>" identifier, regenerating on collision with any
// existing order. Caller must hold the lock.
func (s *Store) newID() string {
	for {
		id := fmt.Sprintf("ORD-%04d", s.randN(10000))
		if _, exists := s.byID[id]; !exists {
			return id
		}
	}
}

// Get returns a copy of the order, if present.
func (s *Store) Get(orderID string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.byID[orderID]
	if !ok {
		return Order{}, false
	}
	return copyOrder(o), true
}

// List returns the given user's orders, most-recently-created first, as
// copies consistent with the latest committed mutation.
func (s *Store) List(userID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, copyOrder(o))
		}
	}
	return out
}

// SetStatus overwrites the order's status and reports whether the write was
// applied. A missing order or one already Cancelled is a silent no-op: the
// scheduler's timers rely on this guard instead of cancellation bookkeeping.
func (s *Store) SetStatus(orderID string, status Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.byID[orderID]
	if !ok || o.Status == StatusCancelled {
		return false
	}

	wasTerminal := o.Status.Terminal()
	o.Status = status
	if !wasTerminal && status.Terminal() {
		metrics.ActiveOrders.Dec()
	}
	return true
}

// Cancel moves the order to Cancelled. Cancelling an already-cancelled order
// is an idempotent no-op success; Processing and Delivered orders reject the
// cancel with ErrInvalidState.
func (s *Store) Cancel(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.byID[orderID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	if o.Status == StatusCancelled {
		return nil
	}
	if !o.Status.Cancellable() {
		return fmt.Errorf("%w: order %s is %s", ErrInvalidState, orderID, o.Status)
	}

	o.Status = StatusCancelled
	metrics.ActiveOrders.Dec()
	return nil
}

// Seed installs pre-existing orders, newest first, preserving the given ids
// and statuses. Used to load demo data at boot.
func (s *Store) Seed(orders []Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range orders {
		o := copyOrder(&orders[i])
		if _, exists := s.byID[o.ID]; exists {
			continue
		}
		s.orders = append(s.orders, &o)
		s.byID[o.ID] = &o
		if !o.Status.Terminal() {
			metrics.ActiveOrders.Inc()
		}
	}
}

func copyOrder(o *Order) Order {
	out := *o
	out.Items = copyItems(o.Items)
	return out
}

func copyItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
