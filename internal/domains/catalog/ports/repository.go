package ports

import (
	"context"
	"errors"

	"github.com/mercora/retail-api/internal/domains/catalog/domain"
)

var (
	// ErrNotFound signals an unknown product or category id.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateCategory signals the category name is already taken.
	ErrDuplicateCategory = errors.New("category name already exists")
)

// Filter narrows a catalog query. Keyword matching is plain substring
// search over title, description, and category name; relevance ranking is
// out of scope.
type Filter struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
}

// Sort orders accepted by Filter.SortBy.
const (
	SortByTitle  = "title"
	SortByPrice  = "price"
	SortByNewest = "newest"
)

// Repository persists the catalog.
type Repository interface {
	SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetProducts(ctx context.Context, ids []int64) ([]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// Find returns every product matching the filter, already sorted.
	Find(ctx context.Context, filter Filter) ([]*domain.Product, error)
	// MatchTitlePrefix returns products whose title starts with q, sorted
	// by title.
	MatchTitlePrefix(ctx context.Context, q string, limit int) ([]*domain.Product, error)
	// MatchTitleSubstring returns products whose title contains q anywhere,
	// excluding the given ids, sorted by title.
	MatchTitleSubstring(ctx context.Context, q string, exclude []int64, limit int) ([]*domain.Product, error)
}

// StockDirectory exposes inventory quantities to search. With a store id
// it returns that store's quantities; with zero it sums across stores.
type StockDirectory interface {
	Quantities(ctx context.Context, storeID int64) (map[int64]int64, error)
}
