package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mercora/retail-api/internal/domains/orders/domain"
	"github.com/mercora/retail-api/internal/domains/orders/ports"
)

func TestExecute_CommitsOnSuccess(t *testing.T) {
	backend := NewBackend()
	_, err := backend.CreateInventoryRecord(context.Background(), 1, 10, 5)
	require.NoError(t, err)

	err = backend.Execute(context.Background(), func(tx ports.TxRepositories) error {
		ok, err := tx.Inventory().DecrementIfSufficient(context.Background(), 1, 10, 3)
		require.NoError(t, err)
		require.True(t, ok)
		return nil
	})
	require.NoError(t, err)

	quantities, err := backend.InventoryQuantities(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), quantities[10])
}

func TestExecute_RollsBackOnError(t *testing.T) {
	backend := NewBackend()
	_, err := backend.CreateInventoryRecord(context.Background(), 1, 10, 5)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = backend.Execute(context.Background(), func(tx ports.TxRepositories) error {
		ok, err := tx.Inventory().DecrementIfSufficient(context.Background(), 1, 10, 3)
		require.NoError(t, err)
		require.True(t, ok)

		order, _ := domain.NewOrder(1, []domain.OrderLine{{ProductID: 10, QuantityRequested: 3}})
		_, err = tx.Ledger().CreateOrder(context.Background(), order)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Neither the decrement nor the order survived the failed scope.
	quantities, err := backend.InventoryQuantities(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(5), quantities[10])

	_, err = backend.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCreateInventoryRecord_DuplicatePair(t *testing.T) {
	backend := NewBackend()

	created, err := backend.CreateInventoryRecord(context.Background(), 1, 10, 5)
	require.NoError(t, err)
	require.True(t, created)

	created, err = backend.CreateInventoryRecord(context.Background(), 1, 10, 9)
	require.NoError(t, err)
	require.False(t, created)

	quantities, err := backend.InventoryQuantities(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(5), quantities[10])
}

func TestAggregateQuantities_SumsAcrossStores(t *testing.T) {
	backend := NewBackend()
	_, err := backend.CreateInventoryRecord(context.Background(), 1, 10, 5)
	require.NoError(t, err)
	_, err = backend.CreateInventoryRecord(context.Background(), 2, 10, 7)
	require.NoError(t, err)

	totals, err := backend.AggregateQuantities(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(12), totals[10])
}
