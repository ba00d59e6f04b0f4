package ports

import (
	"context"

	"github.com/mercora/retail-api/internal/domains/stores/domain"
)

// InventoryItem is one row of the store inventory view, product data
// resolved.
type InventoryItem struct {
	ProductID int64   `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Quantity  int64   `json:"quantity"`
	InStock   bool    `json:"inStock"`
}

// InventoryView is the listing response for one store, sorted by product
// title. FromCache marks a cache-aside hit.
type InventoryView struct {
	StoreID   int64
	StoreName string
	Items     []InventoryItem
	FromCache bool
}

// Service defines the stores use cases exposed to adapters (driving port).
type Service interface {
	CreateStore(ctx context.Context, store *domain.Store) (*domain.Store, error)
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	ListStores(ctx context.Context) ([]*domain.Store, error)
	AddInventory(ctx context.Context, record domain.InventoryRecord) error
	ListInventory(ctx context.Context, storeID int64) (*InventoryView, error)
}
