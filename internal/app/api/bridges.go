package api

import (
	"context"
	"errors"

	catalogports "github.com/mercora/retail-api/internal/domains/catalog/ports"
	ordersmemory "github.com/mercora/retail-api/internal/domains/orders/adapters/memory"
	ordersports "github.com/mercora/retail-api/internal/domains/orders/ports"
	storesdomain "github.com/mercora/retail-api/internal/domains/stores/domain"
	storesports "github.com/mercora/retail-api/internal/domains/stores/ports"
)

// productDirectory resolves product ids for inventory listings against the
// catalog repository.
type productDirectory struct {
	catalog catalogports.Repository
}

func (d *productDirectory) GetProducts(ctx context.Context, ids []int64) (map[int64]storesports.ProductRef, error) {
	products, err := d.catalog.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	refs := make(map[int64]storesports.ProductRef, len(products))
	for _, product := range products {
		refs[product.ID] = storesports.ProductRef{
			ID:       product.ID,
			Title:    product.Title,
			Price:    product.Price,
			Category: product.Category.Name,
		}
	}
	return refs, nil
}

// storeDirectory lets the order coordinator resolve store ids without
// importing the stores context directly.
type storeDirectory struct {
	stores storesports.Repository
}

func (d *storeDirectory) GetStore(ctx context.Context, id int64) (*ordersports.StoreRef, error) {
	store, err := d.stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storesports.ErrNotFound) {
			return nil, ordersports.ErrStoreNotFound
		}
		return nil, err
	}
	return &ordersports.StoreRef{ID: store.ID, Name: store.Name}, nil
}

// memoryInventoryRepository serves the stores context from the order
// backend's inventory state so in-memory placements and listings agree.
type memoryInventoryRepository struct {
	backend *ordersmemory.Backend
}

func (r *memoryInventoryRepository) CreateRecord(ctx context.Context, record storesdomain.InventoryRecord) error {
	created, err := r.backend.CreateInventoryRecord(ctx, record.StoreID, record.ProductID, record.Quantity)
	if err != nil {
		return err
	}
	if !created {
		return storesports.ErrDuplicateRecord
	}
	return nil
}

func (r *memoryInventoryRepository) ListByStore(ctx context.Context, storeID int64) ([]storesdomain.InventoryRecord, error) {
	quantities, err := r.backend.InventoryQuantities(ctx, storeID)
	if err != nil {
		return nil, err
	}
	records := make([]storesdomain.InventoryRecord, 0, len(quantities))
	for productID, quantity := range quantities {
		records = append(records, storesdomain.InventoryRecord{
			StoreID:   storeID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}
	return records, nil
}

// memoryStockDirectory answers search stock lookups from the order backend.
type memoryStockDirectory struct {
	backend *ordersmemory.Backend
}

func (d *memoryStockDirectory) Quantities(ctx context.Context, storeID int64) (map[int64]int64, error) {
	if storeID > 0 {
		return d.backend.InventoryQuantities(ctx, storeID)
	}
	return d.backend.AggregateQuantities(ctx)
}

var (
	_ storesports.ProductDirectory    = (*productDirectory)(nil)
	_ ordersports.StoreDirectory      = (*storeDirectory)(nil)
	_ storesports.InventoryRepository = (*memoryInventoryRepository)(nil)
	_ catalogports.StockDirectory     = (*memoryStockDirectory)(nil)
)
