package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mercora/retail-api/internal/domains/catalog/domain"
	"github.com/mercora/retail-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu         sync.RWMutex
	categories map[int64]*domain.Category
	products   map[int64]*domain.Product
	nextCat    int64
	nextProd   int64
}

func NewRepository() *Repository {
	return &Repository{
		categories: map[int64]*domain.Category{},
		products:   map[int64]*domain.Product{},
	}
}

func (r *Repository) SaveCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	clone := *category
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Name == clone.Name && existing.ID != clone.ID {
			return nil, ports.ErrDuplicateCategory
		}
	}
	if clone.ID == 0 {
		r.nextCat++
		clone.ID = r.nextCat
	} else if clone.ID > r.nextCat {
		r.nextCat = clone.ID
	}
	r.categories[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *Repository) SaveProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if category, ok := r.categories[clone.Category.ID]; ok {
		clone.Category = *category
	}
	if clone.ID == 0 {
		r.nextProd++
		clone.ID = r.nextProd
	} else if clone.ID > r.nextProd {
		r.nextProd = clone.ID
	}
	r.products[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *Repository) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) GetProducts(_ context.Context, ids []int64) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			clone := *product
			products = append(products, &clone)
		}
	}
	return products, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	return r.Find(context.Background(), ports.Filter{})
}

func (r *Repository) Find(_ context.Context, filter ports.Filter) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*domain.Product
	needle := strings.ToLower(filter.Query)
	category := strings.ToLower(filter.Category)
	for _, product := range r.products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(product.Title), needle) &&
			!strings.Contains(strings.ToLower(product.Description), needle) &&
			!strings.Contains(strings.ToLower(product.Category.Name), needle) {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(product.Category.Name), category) {
			continue
		}
		if filter.MinPrice != nil && product.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && product.Price > *filter.MaxPrice {
			continue
		}
		clone := *product
		matched = append(matched, &clone)
	}
	switch filter.SortBy {
	case ports.SortByPrice:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case ports.SortByNewest:
		sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	}
	return matched, nil
}

func (r *Repository) MatchTitlePrefix(_ context.Context, q string, limit int) ([]*domain.Product, error) {
	return r.matchTitles(q, nil, limit, true)
}

func (r *Repository) MatchTitleSubstring(_ context.Context, q string, exclude []int64, limit int) ([]*domain.Product, error) {
	return r.matchTitles(q, exclude, limit, false)
}

func (r *Repository) matchTitles(q string, exclude []int64, limit int, prefix bool) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	excluded := make(map[int64]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	needle := strings.ToLower(q)
	var matched []*domain.Product
	for _, product := range r.products {
		if _, skip := excluded[product.ID]; skip {
			continue
		}
		title := strings.ToLower(product.Title)
		if prefix && !strings.HasPrefix(title, needle) {
			continue
		}
		if !prefix && !strings.Contains(title, needle) {
			continue
		}
		clone := *product
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
