package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	ordersmemory "github.com/mercora/retail-api/internal/domains/orders/adapters/memory"
	"github.com/mercora/retail-api/internal/domains/orders/domain"
	"github.com/mercora/retail-api/internal/domains/orders/ports"
)

type storeDirectoryStub struct {
	stores map[int64]string
}

func (d *storeDirectoryStub) GetStore(_ context.Context, id int64) (*ports.StoreRef, error) {
	name, ok := d.stores[id]
	if !ok {
		return nil, ports.ErrStoreNotFound
	}
	return &ports.StoreRef{ID: id, Name: name}, nil
}

type notifierRecorder struct {
	mu      sync.Mutex
	notices []ports.ConfirmationNotice
	err     error
}

func (n *notifierRecorder) EnqueueConfirmation(_ context.Context, notice ports.ConfirmationNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.notices = append(n.notices, notice)
	return nil
}

func (n *notifierRecorder) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

func newTestService(t *testing.T, notifier ports.Notifier) (*Service, *ordersmemory.Backend) {
	t.Helper()
	backend := ordersmemory.NewBackend()
	stores := &storeDirectoryStub{stores: map[int64]string{1: "Downtown"}}
	return NewService(stores, backend, backend, notifier), backend
}

func seedInventory(t *testing.T, backend *ordersmemory.Backend, storeID, productID, quantity int64) {
	t.Helper()
	created, err := backend.CreateInventoryRecord(context.Background(), storeID, productID, quantity)
	require.NoError(t, err)
	require.True(t, created)
}

func quantityOf(t *testing.T, backend *ordersmemory.Backend, storeID, productID int64) int64 {
	t.Helper()
	quantities, err := backend.InventoryQuantities(context.Background(), storeID)
	require.NoError(t, err)
	return quantities[productID]
}

func TestPlaceOrder_ConfirmsAndDecrements(t *testing.T) {
	notifier := &notifierRecorder{}
	svc, backend := newTestService(t, notifier)
	seedInventory(t, backend, 1, 10, 10)
	seedInventory(t, backend, 1, 20, 5)

	result, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 1,
		Items: []ports.RequestedItem{
			{ProductID: 10, QuantityRequested: 2},
			{ProductID: 20, QuantityRequested: 1},
		},
	})

	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, result.Order.Status)
	require.Equal(t, "Downtown", result.StoreName)
	require.Empty(t, result.Shortfalls)
	require.Equal(t, int64(8), quantityOf(t, backend, 1, 10))
	require.Equal(t, int64(4), quantityOf(t, backend, 1, 20))
	require.Equal(t, 1, notifier.count())
}

func TestPlaceOrder_RejectsOnShortfall(t *testing.T) {
	notifier := &notifierRecorder{}
	svc, backend := newTestService(t, notifier)
	seedInventory(t, backend, 1, 10, 10)

	result, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 1,
		Items:   []ports.RequestedItem{{ProductID: 10, QuantityRequested: 15}},
	})

	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, result.Order.Status)
	require.Len(t, result.Shortfalls, 1)
	require.Equal(t, domain.Shortfall{ProductID: 10, Available: 10, Requested: 15}, result.Shortfalls[0])
	require.Equal(t, int64(10), quantityOf(t, backend, 1, 10))
	require.Zero(t, notifier.count())
}

func TestPlaceOrder_PartialShortfallRejectsWholeOrder(t *testing.T) {
	notifier := &notifierRecorder{}
	svc, backend := newTestService(t, notifier)
	seedInventory(t, backend, 1, 10, 10)
	seedInventory(t, backend, 1, 20, 1)
	seedInventory(t, backend, 1, 30, 0)

	result, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 1,
		Items: []ports.RequestedItem{
			{ProductID: 10, QuantityRequested: 2},
			{ProductID: 20, QuantityRequested: 3},
			{ProductID: 30, QuantityRequested: 1},
		},
	})

	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, result.Order.Status)
	require.Len(t, result.Shortfalls, 2)
	require.Equal(t, int64(20), result.Shortfalls[0].ProductID)
	require.Equal(t, int64(30), result.Shortfalls[1].ProductID)

	// None of the sufficient lines were touched either.
	require.Equal(t, int64(10), quantityOf(t, backend, 1, 10))
	require.Equal(t, int64(1), quantityOf(t, backend, 1, 20))
	require.Zero(t, notifier.count())
}

func TestPlaceOrder_UnknownProductIsZeroStock(t *testing.T) {
	notifier := &notifierRecorder{}
	svc, _ := newTestService(t, notifier)

	result, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 1,
		Items:   []ports.RequestedItem{{ProductID: 99, QuantityRequested: 1}},
	})

	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, result.Order.Status)
	require.Equal(t, domain.Shortfall{ProductID: 99, Available: 0, Requested: 1}, result.Shortfalls[0])
}

func TestPlaceOrder_InvalidInputCreatesNoOrder(t *testing.T) {
	notifier := &notifierRecorder{}
	svc, backend := newTestService(t, notifier)
	seedInventory(t, backend, 1, 10, 10)

	cases := []ports.PlaceOrderInput{
		{StoreID: 0, Items: []ports.RequestedItem{{ProductID: 10, QuantityRequested: 1}}},
		{StoreID: 1},
		{StoreID: 1, Items: []ports.RequestedItem{{ProductID: 0, QuantityRequested: 1}}},
		{StoreID: 1, Items: []ports.RequestedItem{{ProductID: 10, QuantityRequested: 0}}},
		{StoreID: 1, Items: []ports.RequestedItem{{ProductID: 10, QuantityRequested: -3}}},
	}
	for _, input := range cases {
		_, err := svc.PlaceOrder(context.Background(), input)
		require.ErrorIs(t, err, ErrInvalidInput)
	}

	orders, err := svc.ListStoreOrders(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, orders)
	require.Equal(t, int64(10), quantityOf(t, backend, 1, 10))
}

func TestPlaceOrder_UnknownStoreCreatesNoOrder(t *testing.T) {
	notifier := &notifierRecorder{}
	svc, _ := newTestService(t, notifier)

	_, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 42,
		Items:   []ports.RequestedItem{{ProductID: 10, QuantityRequested: 1}},
	})
	require.ErrorIs(t, err, ports.ErrStoreNotFound)
	require.Zero(t, notifier.count())
}

func TestPlaceOrder_DuplicateProductLastRequestWins(t *testing.T) {
	notifier := &notifierRecorder{}
	svc, backend := newTestService(t, notifier)
	seedInventory(t, backend, 1, 10, 10)

	result, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 1,
		Items: []ports.RequestedItem{
			{ProductID: 10, QuantityRequested: 8},
			{ProductID: 10, QuantityRequested: 3},
		},
	})

	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, result.Order.Status)
	// Only the last requested quantity is checked and decremented, but the
	// ledger keeps both lines as asked.
	require.Equal(t, int64(7), quantityOf(t, backend, 1, 10))
	require.Len(t, result.Order.Lines, 2)
}

func TestPlaceOrder_NotifierFailureDoesNotAffectOrder(t *testing.T) {
	notifier := &notifierRecorder{err: errors.New("queue unavailable")}
	svc, backend := newTestService(t, notifier)
	seedInventory(t, backend, 1, 10, 10)

	result, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 1,
		Items:   []ports.RequestedItem{{ProductID: 10, QuantityRequested: 1}},
	})

	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, result.Order.Status)
	require.Equal(t, int64(9), quantityOf(t, backend, 1, 10))
}

func TestPlaceOrder_ResubmissionAfterRejection(t *testing.T) {
	notifier := &notifierRecorder{}
	svc, backend := newTestService(t, notifier)
	seedInventory(t, backend, 1, 10, 5)

	rejected, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 1,
		Items:   []ports.RequestedItem{{ProductID: 10, QuantityRequested: 8}},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, rejected.Order.Status)

	confirmed, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 1,
		Items:   []ports.RequestedItem{{ProductID: 10, QuantityRequested: 5}},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, confirmed.Order.Status)
	require.NotEqual(t, rejected.Order.ID, confirmed.Order.ID)

	orders, err := svc.ListStoreOrders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
}

func TestPlaceOrder_ConcurrentPlacementsNeverOversell(t *testing.T) {
	const stock = 5
	const attempts = 8

	notifier := &notifierRecorder{}
	svc, backend := newTestService(t, notifier)
	seedInventory(t, backend, 1, 10, stock)

	var wg sync.WaitGroup
	results := make([]*ports.PlaceOrderResult, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
				StoreID: 1,
				Items:   []ports.RequestedItem{{ProductID: 10, QuantityRequested: 1}},
			})
			require.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	confirmed := 0
	for _, result := range results {
		if result.Order.Status == domain.StatusConfirmed {
			confirmed++
		}
	}
	require.Equal(t, stock, confirmed)
	require.Equal(t, int64(0), quantityOf(t, backend, 1, 10))
	require.Equal(t, stock, notifier.count())
}

func TestGetOrder_NotFound(t *testing.T) {
	svc, _ := newTestService(t, &notifierRecorder{})

	_, err := svc.GetOrder(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListStoreOrders_UnknownStore(t *testing.T) {
	svc, _ := newTestService(t, &notifierRecorder{})

	_, err := svc.ListStoreOrders(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrStoreNotFound)
}
