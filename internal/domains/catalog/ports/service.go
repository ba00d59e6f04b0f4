package ports

import (
	"context"

	"github.com/mercora/retail-api/internal/domains/catalog/domain"
)

// SearchQuery is the full search request including stock filtering and
// pagination.
type SearchQuery struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	StoreID  int64
	InStock  bool
	SortBy   string
	Page     int
	PageSize int
}

// SearchResultItem is one matched product; inventory fields are populated
// only when the query names a store.
type SearchResultItem struct {
	Product           *domain.Product
	InventoryQuantity *int64
	InStock           *bool
}

// Pagination describes the returned page.
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalResults int
	PageSize     int
	HasNext      bool
	HasPrevious  bool
}

// SearchResult is the paginated search response with the applied filters
// echoed back.
type SearchResult struct {
	Results    []SearchResultItem
	Pagination Pagination
	Filters    SearchQuery
}

// Suggestion is one autocomplete candidate; MatchType is "prefix" or
// "general".
type Suggestion struct {
	ID        int64
	Title     string
	Category  string
	Price     float64
	MatchType string
}

// Service defines the catalog use cases exposed to adapters (driving port).
type Service interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, query SearchQuery) (*SearchResult, error)
	Autocomplete(ctx context.Context, q string) ([]Suggestion, error)
}
