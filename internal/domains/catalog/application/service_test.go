package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/mercora/retail-api/internal/domains/catalog/adapters/memory"
	"github.com/mercora/retail-api/internal/domains/catalog/domain"
	"github.com/mercora/retail-api/internal/domains/catalog/ports"
)

type stockDirectoryStub struct {
	perStore  map[int64]map[int64]int64
	aggregate map[int64]int64
}

func (d *stockDirectoryStub) Quantities(_ context.Context, storeID int64) (map[int64]int64, error) {
	if storeID > 0 {
		return d.perStore[storeID], nil
	}
	return d.aggregate, nil
}

func newTestService(t *testing.T) (*Service, *stockDirectoryStub) {
	t.Helper()
	repo := catalogmemory.NewRepository()
	stock := &stockDirectoryStub{perStore: map[int64]map[int64]int64{}, aggregate: map[int64]int64{}}
	svc := NewService(repo, stock)

	coffee, err := svc.CreateCategory(context.Background(), &domain.Category{Name: "Coffee"})
	require.NoError(t, err)
	gear, err := svc.CreateCategory(context.Background(), &domain.Category{Name: "Gear"})
	require.NoError(t, err)

	products := []*domain.Product{
		{Title: "Espresso Beans", Description: "dark roast", Price: 12.5, Category: *coffee},
		{Title: "Espresso Cups", Description: "set of four", Price: 18, Category: *gear},
		{Title: "Aeropress", Description: "portable espresso maker", Price: 35, Category: *gear},
		{Title: "Grinder", Description: "burr grinder", Price: 60, Category: *gear},
		{Title: "Mini Espresso Machine", Description: "countertop machine", Price: 90, Category: *gear},
	}
	for _, product := range products {
		_, err := svc.CreateProduct(context.Background(), product)
		require.NoError(t, err)
	}
	return svc, stock
}

func TestCreateCategory_Duplicate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateCategory(context.Background(), &domain.Category{Name: "Coffee"})
	require.ErrorIs(t, err, ports.ErrDuplicateCategory)
}

func TestCreateProduct_InvalidInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), &domain.Product{Price: 5, Category: domain.Category{ID: 1}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(context.Background(), &domain.Product{Title: "Scale", Price: -1, Category: domain.Category{ID: 1}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearch_KeywordMatchesTitleDescriptionAndCategory(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Search(context.Background(), ports.SearchQuery{Query: "espresso"})

	require.NoError(t, err)
	// Three title matches plus the Aeropress description match.
	require.Equal(t, 4, result.Pagination.TotalResults)
	titles := make([]string, 0, len(result.Results))
	for _, item := range result.Results {
		titles = append(titles, item.Product.Title)
	}
	require.Equal(t, []string{"Aeropress", "Espresso Beans", "Espresso Cups", "Mini Espresso Machine"}, titles)
}

func TestSearch_PriceAndCategoryFilters(t *testing.T) {
	svc, _ := newTestService(t)

	minPrice := 15.0
	maxPrice := 40.0
	result, err := svc.Search(context.Background(), ports.SearchQuery{
		Category: "Gear",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})

	require.NoError(t, err)
	require.Equal(t, 2, result.Pagination.TotalResults)
	for _, item := range result.Results {
		require.Equal(t, "Gear", item.Product.Category.Name)
		require.GreaterOrEqual(t, item.Product.Price, minPrice)
		require.LessOrEqual(t, item.Product.Price, maxPrice)
	}
}

func TestSearch_Pagination(t *testing.T) {
	svc, _ := newTestService(t)

	page1, err := svc.Search(context.Background(), ports.SearchQuery{Page: 1, PageSize: 3})
	require.NoError(t, err)
	require.Len(t, page1.Results, 3)
	require.Equal(t, 2, page1.Pagination.TotalPages)
	require.True(t, page1.Pagination.HasNext)
	require.False(t, page1.Pagination.HasPrevious)

	page2, err := svc.Search(context.Background(), ports.SearchQuery{Page: 2, PageSize: 3})
	require.NoError(t, err)
	require.Len(t, page2.Results, 2)
	require.False(t, page2.Pagination.HasNext)
	require.True(t, page2.Pagination.HasPrevious)

	// A page past the end falls back to the first page.
	overflow, err := svc.Search(context.Background(), ports.SearchQuery{Page: 9, PageSize: 3})
	require.NoError(t, err)
	require.Equal(t, 1, overflow.Pagination.CurrentPage)
	require.Len(t, overflow.Results, 3)
}

func TestSearch_StoreAnnotationsAndInStockFilter(t *testing.T) {
	svc, stock := newTestService(t)
	stock.perStore[1] = map[int64]int64{1: 4, 2: 0}

	annotated, err := svc.Search(context.Background(), ports.SearchQuery{StoreID: 1})
	require.NoError(t, err)
	for _, item := range annotated.Results {
		require.NotNil(t, item.InventoryQuantity)
		require.NotNil(t, item.InStock)
	}

	inStock, err := svc.Search(context.Background(), ports.SearchQuery{StoreID: 1, InStock: true})
	require.NoError(t, err)
	require.Equal(t, 1, inStock.Pagination.TotalResults)
	require.Equal(t, int64(1), inStock.Results[0].Product.ID)
	require.Equal(t, int64(4), *inStock.Results[0].InventoryQuantity)
	require.True(t, *inStock.Results[0].InStock)
}

func TestSearch_InStockAcrossStoresUsesAggregate(t *testing.T) {
	svc, stock := newTestService(t)
	stock.aggregate = map[int64]int64{3: 2}

	result, err := svc.Search(context.Background(), ports.SearchQuery{InStock: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.Pagination.TotalResults)
	require.Equal(t, int64(3), result.Results[0].Product.ID)
	// Without a store there is no per-store annotation.
	require.Nil(t, result.Results[0].InventoryQuantity)
}

func TestAutocomplete_PrefixBeforeGeneral(t *testing.T) {
	svc, _ := newTestService(t)

	suggestions, err := svc.Autocomplete(context.Background(), "esp")

	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	require.Equal(t, "Espresso Beans", suggestions[0].Title)
	require.Equal(t, "prefix", suggestions[0].MatchType)
	require.Equal(t, "Espresso Cups", suggestions[1].Title)
	require.Equal(t, "prefix", suggestions[1].MatchType)
	require.Equal(t, "Mini Espresso Machine", suggestions[2].Title)
	require.Equal(t, "general", suggestions[2].MatchType)
}

func TestAutocomplete_QueryTooShort(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Autocomplete(context.Background(), "es")
	require.ErrorIs(t, err, ErrQueryTooShort)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAutocomplete_NoMatches(t *testing.T) {
	svc, _ := newTestService(t)

	suggestions, err := svc.Autocomplete(context.Background(), "teapot")
	require.NoError(t, err)
	require.Empty(t, suggestions)
}
