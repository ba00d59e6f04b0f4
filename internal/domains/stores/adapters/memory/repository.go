package memory

import (
	"context"
	"sync"

	"github.com/mercora/retail-api/internal/domains/stores/domain"
	"github.com/mercora/retail-api/internal/domains/stores/ports"
)

var (
	_ ports.Repository          = (*Repository)(nil)
	_ ports.InventoryRepository = (*InventoryRepository)(nil)
)

// Repository is an in-memory store persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	stores map[int64]*domain.Store
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{stores: map[int64]*domain.Store{}}
}

func (r *Repository) Save(_ context.Context, store *domain.Store) (*domain.Store, error) {
	clone := *store
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.stores[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	store, ok := r.stores[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *store
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Store, 0, len(r.stores))
	for _, store := range r.stores {
		clone := *store
		list = append(list, &clone)
	}
	return list, nil
}

type invKey struct {
	storeID   int64
	productID int64
}

// InventoryRepository is an in-memory inventory record adapter used by the
// stores service tests.
type InventoryRepository struct {
	mu      sync.RWMutex
	records map[invKey]int64
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{records: map[invKey]int64{}}
}

func (r *InventoryRepository) CreateRecord(_ context.Context, record domain.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := invKey{storeID: record.StoreID, productID: record.ProductID}
	if _, exists := r.records[key]; exists {
		return ports.ErrDuplicateRecord
	}
	r.records[key] = record.Quantity
	return nil
}

func (r *InventoryRepository) ListByStore(_ context.Context, storeID int64) ([]domain.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []domain.InventoryRecord
	for key, qty := range r.records {
		if key.storeID == storeID {
			records = append(records, domain.InventoryRecord{
				StoreID:   key.storeID,
				ProductID: key.productID,
				Quantity:  qty,
			})
		}
	}
	return records, nil
}
