package application

import (
	"context"

	"github.com/mercora/retail-api/internal/domains/catalog/domain"
	"github.com/mercora/retail-api/internal/domains/catalog/ports"
)

const (
	defaultPageSize    = 20
	autocompleteMinLen = 3
	autocompleteLimit  = 10
	autocompleteSplit  = 5
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo  ports.Repository
	stock ports.StockDirectory
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository, stock ports.StockDirectory) *Service {
	return &Service{repo: repo, stock: stock}
}

func (s *Service) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, mapError(domain.ErrEmptyCategoryName)
	}
	if err := category.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.SaveCategory(ctx, category)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, mapError(domain.ErrEmptyTitle)
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.SaveProduct(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

// Search filters, sorts, and paginates the catalog. When the query names a
// store, each result carries that store's quantity and in-stock flag.
func (s *Service) Search(ctx context.Context, query ports.SearchQuery) (*ports.SearchResult, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = defaultPageSize
	}

	matched, err := s.repo.Find(ctx, ports.Filter{
		Query:    query.Query,
		Category: query.Category,
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
		SortBy:   query.SortBy,
	})
	if err != nil {
		return nil, mapError(err)
	}

	var quantities map[int64]int64
	if query.InStock || query.StoreID > 0 {
		quantities, err = s.stock.Quantities(ctx, query.StoreID)
		if err != nil {
			return nil, mapError(err)
		}
	}
	if query.InStock {
		filtered := matched[:0]
		for _, product := range matched {
			if quantities[product.ID] > 0 {
				filtered = append(filtered, product)
			}
		}
		matched = filtered
	}

	total := len(matched)
	pagination := paginate(total, query.Page, query.PageSize)
	start := (pagination.CurrentPage - 1) * query.PageSize
	end := start + query.PageSize
	if end > total {
		end = total
	}

	results := make([]ports.SearchResultItem, 0, end-start)
	for _, product := range matched[start:end] {
		item := ports.SearchResultItem{Product: product}
		if query.StoreID > 0 {
			qty := quantities[product.ID]
			inStock := qty > 0
			item.InventoryQuantity = &qty
			item.InStock = &inStock
		}
		results = append(results, item)
	}

	return &ports.SearchResult{Results: results, Pagination: pagination, Filters: query}, nil
}

// Autocomplete suggests up to ten titles, prefix matches ahead of general
// substring matches. Queries shorter than three characters are rejected.
func (s *Service) Autocomplete(ctx context.Context, q string) ([]ports.Suggestion, error) {
	if len(q) < autocompleteMinLen {
		return nil, mapError(ErrQueryTooShort)
	}

	prefix, err := s.repo.MatchTitlePrefix(ctx, q, autocompleteSplit)
	if err != nil {
		return nil, mapError(err)
	}
	exclude := make([]int64, 0, len(prefix))
	for _, product := range prefix {
		exclude = append(exclude, product.ID)
	}
	general, err := s.repo.MatchTitleSubstring(ctx, q, exclude, autocompleteSplit)
	if err != nil {
		return nil, mapError(err)
	}

	suggestions := make([]ports.Suggestion, 0, autocompleteLimit)
	for _, product := range prefix {
		suggestions = append(suggestions, toSuggestion(product, "prefix"))
	}
	for _, product := range general {
		if len(suggestions) == autocompleteLimit {
			break
		}
		suggestions = append(suggestions, toSuggestion(product, "general"))
	}
	return suggestions, nil
}

func paginate(total, page, pageSize int) ports.Pagination {
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = 1
	}
	return ports.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalResults: total,
		PageSize:     pageSize,
		HasNext:      page < totalPages,
		HasPrevious:  page > 1,
	}
}

func toSuggestion(product *domain.Product, matchType string) ports.Suggestion {
	return ports.Suggestion{
		ID:        product.ID,
		Title:     product.Title,
		Category:  product.Category.Name,
		Price:     product.Price,
		MatchType: matchType,
	}
}

var _ ports.Service = (*Service)(nil)
