package mapper

import (
	"github.com/mercora/retail-api/internal/domains/catalog/domain"
	catalogports "github.com/mercora/retail-api/internal/domains/catalog/ports"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"categoryId" binding:"required"`
}

type ProductResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type SearchFiltersResponse struct {
	Query    string   `json:"query"`
	Category string   `json:"category,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	StoreID  int64    `json:"storeId,omitempty"`
	InStock  bool     `json:"inStockOnly"`
	SortBy   string   `json:"sortBy,omitempty"`
}

type SearchItemResponse struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Quantity *int64  `json:"quantity,omitempty"`
	InStock  *bool   `json:"inStock,omitempty"`
}

type PaginationResponse struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalResults int  `json:"totalResults"`
	PageSize     int  `json:"pageSize"`
	HasNext      bool `json:"hasNext"`
	HasPrevious  bool `json:"hasPrevious"`
}

type SearchResponse struct {
	Results    []SearchItemResponse  `json:"results"`
	Pagination PaginationResponse    `json:"pagination"`
	Filters    SearchFiltersResponse `json:"filters"`
}

type SuggestionResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	MatchType string  `json:"matchType"`
}

type AutocompleteResponse struct {
	Query       string               `json:"query"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

func FromDomainCategory(category *domain.Category) CategoryResponse {
	return CategoryResponse{ID: category.ID, Name: category.Name}
}

func ToDomainProduct(request CreateProductRequest) *domain.Product {
	return &domain.Product{
		Title:       request.Title,
		Description: request.Description,
		Price:       request.Price,
		Category:    domain.Category{ID: request.CategoryID},
	}
}

func FromDomainProduct(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category.Name,
	}
}

func FromSearchResult(result *catalogports.SearchResult) SearchResponse {
	items := make([]SearchItemResponse, 0, len(result.Results))
	for _, item := range result.Results {
		items = append(items, SearchItemResponse{
			ID:       item.Product.ID,
			Title:    item.Product.Title,
			Price:    item.Product.Price,
			Category: item.Product.Category.Name,
			Quantity: item.InventoryQuantity,
			InStock:  item.InStock,
		})
	}
	return SearchResponse{
		Results: items,
		Pagination: PaginationResponse{
			CurrentPage:  result.Pagination.CurrentPage,
			TotalPages:   result.Pagination.TotalPages,
			TotalResults: result.Pagination.TotalResults,
			PageSize:     result.Pagination.PageSize,
			HasNext:      result.Pagination.HasNext,
			HasPrevious:  result.Pagination.HasPrevious,
		},
		Filters: SearchFiltersResponse{
			Query:    result.Filters.Query,
			Category: result.Filters.Category,
			MinPrice: result.Filters.MinPrice,
			MaxPrice: result.Filters.MaxPrice,
			StoreID:  result.Filters.StoreID,
			InStock:  result.Filters.InStock,
			SortBy:   result.Filters.SortBy,
		},
	}
}

func FromSuggestions(query string, suggestions []catalogports.Suggestion) AutocompleteResponse {
	items := make([]SuggestionResponse, 0, len(suggestions))
	for _, suggestion := range suggestions {
		items = append(items, SuggestionResponse{
			ID:        suggestion.ID,
			Title:     suggestion.Title,
			Category:  suggestion.Category,
			Price:     suggestion.Price,
			MatchType: suggestion.MatchType,
		})
	}
	return AutocompleteResponse{Query: query, Suggestions: items}
}
