package ports

import "context"

// SnapshotCache holds inventory listings for the read endpoint. Entries
// expire on their own; there is no explicit invalidation.
type SnapshotCache interface {
	GetInventory(ctx context.Context, storeID int64) ([]InventoryItem, bool, error)
	SetInventory(ctx context.Context, storeID int64, items []InventoryItem) error
}
