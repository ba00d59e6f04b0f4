package ports

import "context"

// ProductRef is the slice of catalog data needed to render inventory rows.
type ProductRef struct {
	ID       int64
	Title    string
	Price    float64
	Category string
}

// ProductDirectory resolves product ids against the catalog.
type ProductDirectory interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductRef, error)
}
