package ports

import (
	"context"
	"errors"

	"github.com/mercora/retail-api/internal/domains/orders/domain"
)

var (
	// ErrNotFound signals an unknown order id.
	ErrNotFound = errors.New("order not found")
	// ErrConflict signals a concurrent stock update detected by the
	// persistence layer; the surrounding transaction must abort.
	ErrConflict = errors.New("conflicting concurrent stock update")
)

// Ledger is the append-only order record. CreateOrder persists the order in
// Pending state together with all of its lines; SetStatus moves it to its
// terminal status. Both are called only inside a TxScope. Rejected orders
// may carry the shortfalled product ids for audit.
type Ledger interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	SetStatus(ctx context.Context, orderID int64, status domain.Status, shortfallProductIDs ...int64) error
}

// OrderReader serves the read endpoints outside the transactional scope.
type OrderReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// ListByStore returns the store's orders newest first, lines populated.
	ListByStore(ctx context.Context, storeID int64) ([]*domain.Order, error)
}
