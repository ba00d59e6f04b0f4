package ports

import "context"

// InventoryStore exposes per-(store, product) stock to the coordinator.
// Both methods are only called inside a TxScope so the read used for the
// shortfall report and the decrement observe the same snapshot.
type InventoryStore interface {
	// GetQuantity returns the quantity on hand, 0 when no record exists.
	GetQuantity(ctx context.Context, storeID, productID int64) (int64, error)
	// DecrementIfSufficient atomically subtracts amount when at least that
	// much is available. It returns false without mutating anything when
	// stock is insufficient or the record is absent.
	DecrementIfSufficient(ctx context.Context, storeID, productID, amount int64) (bool, error)
}
