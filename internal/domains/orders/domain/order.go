package domain

import (
	"errors"
	"time"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
)

var (
	ErrInvalidStore    = errors.New("store id must be greater than zero")
	ErrEmptyItems      = errors.New("order must contain at least one item")
	ErrInvalidProduct  = errors.New("product id must be greater than zero")
	ErrInvalidQuantity = errors.New("quantity requested must be greater than zero")
	ErrInvalidStatus   = errors.New("order status is invalid")
	ErrOrderFrozen     = errors.New("order status is final and cannot change")
)

// Order is the ledger record of a placement attempt. Once it leaves
// Pending it is frozen: a Confirmed or Rejected order never mutates again.
type Order struct {
	ID        int64
	StoreID   int64
	Status    Status
	Lines     []OrderLine
	CreatedAt time.Time
}

// OrderLine records one requested item exactly as the caller asked for it.
// Lines are created together with the order and never updated afterwards.
type OrderLine struct {
	ID                int64
	OrderID           int64
	ProductID         int64
	QuantityRequested int64
}

// NewOrder validates and constructs a pending order with its lines.
func NewOrder(storeID int64, lines []OrderLine) (*Order, error) {
	order := &Order{
		StoreID: storeID,
		Status:  StatusPending,
		Lines:   append([]OrderLine(nil), lines...),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces the aggregate invariants.
func (o *Order) Validate() error {
	if o.StoreID <= 0 {
		return ErrInvalidStore
	}
	if len(o.Lines) == 0 {
		return ErrEmptyItems
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	for _, line := range o.Lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single line invariant.
func (l OrderLine) Validate() error {
	if l.ProductID <= 0 {
		return ErrInvalidProduct
	}
	if l.QuantityRequested <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Finalize moves a pending order to its terminal status.
func (o *Order) Finalize(status Status) error {
	if o.Status != StatusPending {
		return ErrOrderFrozen
	}
	if status != StatusConfirmed && status != StatusRejected {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// TotalItems returns the number of lines on the order.
func (o *Order) TotalItems() int {
	return len(o.Lines)
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusRejected:
		return true
	default:
		return false
	}
}
