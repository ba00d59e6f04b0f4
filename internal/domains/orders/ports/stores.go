package ports

import (
	"context"
	"errors"
)

// ErrStoreNotFound signals the requested store does not exist.
var ErrStoreNotFound = errors.New("store not found")

// StoreRef is the slice of store data the coordinator needs.
type StoreRef struct {
	ID   int64
	Name string
}

// StoreDirectory resolves store ids before any mutation happens.
type StoreDirectory interface {
	GetStore(ctx context.Context, id int64) (*StoreRef, error)
}
