package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	storesmemory "github.com/mercora/retail-api/internal/domains/stores/adapters/memory"
	"github.com/mercora/retail-api/internal/domains/stores/domain"
	"github.com/mercora/retail-api/internal/domains/stores/ports"
)

type productDirectoryStub struct {
	refs map[int64]ports.ProductRef
}

func (d *productDirectoryStub) GetProducts(_ context.Context, ids []int64) (map[int64]ports.ProductRef, error) {
	out := make(map[int64]ports.ProductRef, len(ids))
	for _, id := range ids {
		if ref, ok := d.refs[id]; ok {
			out[id] = ref
		}
	}
	return out, nil
}

type cacheStub struct {
	entries map[int64][]ports.InventoryItem
	getErr  error
	setErr  error
	hits    int
	misses  int
	writes  int
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: map[int64][]ports.InventoryItem{}}
}

func (c *cacheStub) GetInventory(_ context.Context, storeID int64) ([]ports.InventoryItem, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	items, ok := c.entries[storeID]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return items, ok, nil
}

func (c *cacheStub) SetInventory(_ context.Context, storeID int64, items []ports.InventoryItem) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.writes++
	c.entries[storeID] = items
	return nil
}

func newTestService(t *testing.T, opts ...Option) (*Service, *storesmemory.Repository) {
	t.Helper()
	repo := storesmemory.NewRepository()
	inventory := storesmemory.NewInventoryRepository()
	products := &productDirectoryStub{refs: map[int64]ports.ProductRef{
		10: {ID: 10, Title: "Espresso Beans", Price: 12.5, Category: "Coffee"},
		20: {ID: 20, Title: "Aeropress", Price: 35, Category: "Gear"},
	}}
	return NewService(repo, inventory, products, opts...), repo
}

func TestCreateStore_Valid(t *testing.T) {
	svc, _ := newTestService(t)

	store, err := svc.CreateStore(context.Background(), &domain.Store{Name: "Downtown", Location: "5th Ave"})

	require.NoError(t, err)
	require.NotZero(t, store.ID)
	require.Equal(t, "Downtown", store.Name)
}

func TestCreateStore_InvalidInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateStore(context.Background(), &domain.Store{Location: "5th Ave"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddInventory_UnknownStore(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.AddInventory(context.Background(), domain.InventoryRecord{StoreID: 42, ProductID: 10, Quantity: 3})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAddInventory_DuplicatePair(t *testing.T) {
	svc, _ := newTestService(t)
	store, err := svc.CreateStore(context.Background(), &domain.Store{Name: "Downtown", Location: "5th Ave"})
	require.NoError(t, err)

	record := domain.InventoryRecord{StoreID: store.ID, ProductID: 10, Quantity: 3}
	require.NoError(t, svc.AddInventory(context.Background(), record))
	require.ErrorIs(t, svc.AddInventory(context.Background(), record), ports.ErrDuplicateRecord)
}

func TestAddInventory_NegativeQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	store, err := svc.CreateStore(context.Background(), &domain.Store{Name: "Downtown", Location: "5th Ave"})
	require.NoError(t, err)

	err = svc.AddInventory(context.Background(), domain.InventoryRecord{StoreID: store.ID, ProductID: 10, Quantity: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListInventory_SortedByTitleWithProductData(t *testing.T) {
	svc, _ := newTestService(t)
	store, err := svc.CreateStore(context.Background(), &domain.Store{Name: "Downtown", Location: "5th Ave"})
	require.NoError(t, err)
	require.NoError(t, svc.AddInventory(context.Background(), domain.InventoryRecord{StoreID: store.ID, ProductID: 10, Quantity: 3}))
	require.NoError(t, svc.AddInventory(context.Background(), domain.InventoryRecord{StoreID: store.ID, ProductID: 20, Quantity: 0}))

	view, err := svc.ListInventory(context.Background(), store.ID)

	require.NoError(t, err)
	require.False(t, view.FromCache)
	require.Equal(t, store.ID, view.StoreID)
	require.Equal(t, "Downtown", view.StoreName)
	require.Len(t, view.Items, 2)
	require.Equal(t, "Aeropress", view.Items[0].Title)
	require.False(t, view.Items[0].InStock)
	require.Equal(t, "Espresso Beans", view.Items[1].Title)
	require.True(t, view.Items[1].InStock)
	require.Equal(t, int64(3), view.Items[1].Quantity)
}

func TestListInventory_CacheAside(t *testing.T) {
	cache := newCacheStub()
	svc, _ := newTestService(t, WithCache(cache))
	store, err := svc.CreateStore(context.Background(), &domain.Store{Name: "Downtown", Location: "5th Ave"})
	require.NoError(t, err)
	require.NoError(t, svc.AddInventory(context.Background(), domain.InventoryRecord{StoreID: store.ID, ProductID: 10, Quantity: 3}))

	first, err := svc.ListInventory(context.Background(), store.ID)
	require.NoError(t, err)
	require.False(t, first.FromCache)
	require.Equal(t, 1, cache.misses)
	require.Equal(t, 1, cache.writes)

	second, err := svc.ListInventory(context.Background(), store.ID)
	require.NoError(t, err)
	require.True(t, second.FromCache)
	require.Equal(t, 1, cache.hits)
	require.Equal(t, first.Items, second.Items)
}

func TestListInventory_CacheFailuresFallThrough(t *testing.T) {
	cache := newCacheStub()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc, _ := newTestService(t, WithCache(cache))
	store, err := svc.CreateStore(context.Background(), &domain.Store{Name: "Downtown", Location: "5th Ave"})
	require.NoError(t, err)
	require.NoError(t, svc.AddInventory(context.Background(), domain.InventoryRecord{StoreID: store.ID, ProductID: 10, Quantity: 3}))

	view, err := svc.ListInventory(context.Background(), store.ID)
	require.NoError(t, err)
	require.False(t, view.FromCache)
	require.Len(t, view.Items, 1)
}

func TestListInventory_UnknownStore(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListInventory(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
