package ports

import "context"

// TxScope runs a function inside one atomic persistence scope. Everything
// the function writes through the bound repositories becomes durable
// together on success, or not at all when it returns an error. Concurrent
// scopes touching the same (store, product) rows serialize their
// check-and-decrement sequence.
type TxScope interface {
	Execute(ctx context.Context, fn func(tx TxRepositories) error) error
}

// TxRepositories gives access to the repositories bound to one transaction.
type TxRepositories interface {
	Inventory() InventoryStore
	Ledger() Ledger
}
