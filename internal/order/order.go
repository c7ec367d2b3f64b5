package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wizzzlaundry/backend/internal/catalog"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("order not found")
	ErrInvalidState = errors.New("cannot cancel order at this stage")
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusScheduled  Status = "Scheduled"
	StatusPickedUp   Status = "Picked Up"
	StatusProcessing Status = "Processing"
	StatusReady      Status = "Ready"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// Terminal reports whether no further status mutation is permitted.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Cancellable reports whether a user-initiated cancel is allowed from this
// status. Processing orders are already in the wash and cannot be recalled.
func (s Status) Cancellable() bool {
	return s != StatusProcessing && !s.Terminal()
}

// CartItem is a catalog service plus the quantity the user selected. Line
// items are fixed once the order is created.
type CartItem struct {
	ServiceID string           `json:"id"`
	Name      string           `json:"name"`
	UnitPrice decimal.Decimal  `json:"price"`
	Category  catalog.Category `json:"category"`
	Quantity  int              `json:"quantity"`
}

// Order is the central entity, tracked through the fixed status lifecycle.
// totalAmount is computed at creation and never recomputed on later reads.
type Order struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Status       Status          `json:"status"`
	Items        []CartItem      `json:"items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PickupDate   time.Time       `json:"pickup_date"`
	DeliveryDate time.Time       `json:"delivery_date"`
	CreatedAt    time.Time       `json:"created_at"`
	Address      string          `json:"address"`
}

// Selection is a caller-supplied line item request. Prices are deliberately
// absent: the service re-derives them from the catalog by id.
type Selection struct {
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
}
