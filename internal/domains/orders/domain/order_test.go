package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOrder_Valid(t *testing.T) {
	order, err := NewOrder(1, []OrderLine{{ProductID: 7, QuantityRequested: 2}})

	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)
	require.Equal(t, int64(1), order.StoreID)
	require.Equal(t, 1, order.TotalItems())
}

func TestNewOrder_InvalidStore(t *testing.T) {
	_, err := NewOrder(0, []OrderLine{{ProductID: 7, QuantityRequested: 2}})
	require.ErrorIs(t, err, ErrInvalidStore)
}

func TestNewOrder_EmptyItems(t *testing.T) {
	_, err := NewOrder(1, nil)
	require.ErrorIs(t, err, ErrEmptyItems)
}

func TestNewOrder_InvalidLine(t *testing.T) {
	_, err := NewOrder(1, []OrderLine{{ProductID: 0, QuantityRequested: 2}})
	require.ErrorIs(t, err, ErrInvalidProduct)

	_, err = NewOrder(1, []OrderLine{{ProductID: 7, QuantityRequested: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestFinalize_TerminalTransitions(t *testing.T) {
	order, err := NewOrder(1, []OrderLine{{ProductID: 7, QuantityRequested: 2}})
	require.NoError(t, err)

	require.NoError(t, order.Finalize(StatusConfirmed))
	require.Equal(t, StatusConfirmed, order.Status)

	require.ErrorIs(t, order.Finalize(StatusRejected), ErrOrderFrozen)
	require.Equal(t, StatusConfirmed, order.Status)
}

func TestFinalize_RejectsNonTerminalTarget(t *testing.T) {
	order, err := NewOrder(1, []OrderLine{{ProductID: 7, QuantityRequested: 2}})
	require.NoError(t, err)

	require.ErrorIs(t, order.Finalize(StatusPending), ErrInvalidStatus)
	require.Equal(t, StatusPending, order.Status)
}
