package application

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mercora/retail-api/internal/domains/stores/domain"
	"github.com/mercora/retail-api/internal/domains/stores/ports"
)

// Service orchestrates the stores bounded context use cases.
type Service struct {
	stores    ports.Repository
	inventory ports.InventoryRepository
	products  ports.ProductDirectory
	cache     ports.SnapshotCache
	logger    *slog.Logger
}

type Option func(*Service)

// WithCache enables cache-aside reads of the inventory listing.
func WithCache(cache ports.SnapshotCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService wires the stores service with its dependencies.
func NewService(stores ports.Repository, inventory ports.InventoryRepository, products ports.ProductDirectory, opts ...Option) *Service {
	s := &Service{
		stores:    stores,
		inventory: inventory,
		products:  products,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) CreateStore(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if store == nil {
		return nil, mapError(domain.ErrEmptyName)
	}
	if err := store.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.stores.Save(ctx, store)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return store, nil
}

func (s *Service) ListStores(ctx context.Context) ([]*domain.Store, error) {
	stores, err := s.stores.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return stores, nil
}

// AddInventory creates the single record for a (store, product) pair.
// A second record for the same pair is rejected.
func (s *Service) AddInventory(ctx context.Context, record domain.InventoryRecord) error {
	if err := record.Validate(); err != nil {
		return mapError(err)
	}
	if _, err := s.stores.GetByID(ctx, record.StoreID); err != nil {
		return mapError(err)
	}
	return mapError(s.inventory.CreateRecord(ctx, record))
}

// ListInventory returns the store's inventory sorted by product title,
// served from the snapshot cache when a fresh entry exists.
func (s *Service) ListInventory(ctx context.Context, storeID int64) (*ports.InventoryView, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, mapError(err)
	}

	if s.cache != nil {
		items, ok, err := s.cache.GetInventory(ctx, storeID)
		if err != nil {
			s.logger.Warn("inventory cache read failed", slog.Int64("store.id", storeID), slog.String("error", err.Error()))
		} else if ok {
			return &ports.InventoryView{StoreID: store.ID, StoreName: store.Name, Items: items, FromCache: true}, nil
		}
	}

	records, err := s.inventory.ListByStore(ctx, storeID)
	if err != nil {
		return nil, mapError(err)
	}
	ids := make([]int64, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ProductID)
	}
	refs, err := s.products.GetProducts(ctx, ids)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]ports.InventoryItem, 0, len(records))
	for _, record := range records {
		ref := refs[record.ProductID]
		items = append(items, ports.InventoryItem{
			ProductID: record.ProductID,
			Title:     ref.Title,
			Price:     ref.Price,
			Category:  ref.Category,
			Quantity:  record.Quantity,
			InStock:   record.InStock(),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })

	if s.cache != nil {
		if err := s.cache.SetInventory(ctx, storeID, items); err != nil {
			s.logger.Warn("inventory cache write failed", slog.Int64("store.id", storeID), slog.String("error", err.Error()))
		}
	}

	return &ports.InventoryView{StoreID: store.ID, StoreName: store.Name, Items: items}, nil
}

var _ ports.Service = (*Service)(nil)
