package ports

import (
	"context"

	"github.com/mercora/retail-api/internal/domains/orders/domain"
)

// RequestedItem is one entry of an incoming placement request.
type RequestedItem struct {
	ProductID         int64
	QuantityRequested int64
}

// PlaceOrderInput carries a placement request for a single store.
type PlaceOrderInput struct {
	StoreID int64
	Items   []RequestedItem
}

// PlaceOrderResult is the outcome of a placement attempt. A rejected order
// is a normal result, not an error; Shortfalls lists every product that
// could not be covered.
type PlaceOrderResult struct {
	Order      *domain.Order
	StoreName  string
	Shortfalls []domain.Shortfall
}

// Service defines the order use cases exposed to adapters (driving port).
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListStoreOrders(ctx context.Context, storeID int64) ([]*domain.Order, error)
}
