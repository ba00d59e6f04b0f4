package domain

import "errors"

var (
	ErrEmptyTitle        = errors.New("product title must not be empty")
	ErrInvalidPrice      = errors.New("product price must not be negative")
	ErrEmptyCategoryName = errors.New("category name must not be empty")
	ErrInvalidCategory   = errors.New("category id must be greater than zero")
)

// Category groups products. Names are unique.
type Category struct {
	ID   int64
	Name string
}

func NewCategory(id int64, name string) (*Category, error) {
	category := &Category{ID: id, Name: name}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	return category, nil
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	return nil
}

// Product is a catalog item sellable across stores. The order path treats
// it as read-only input.
type Product struct {
	ID          int64
	Title       string
	Description string
	Price       float64
	Category    Category
}

func NewProduct(id int64, title, description string, price float64, category Category) (*Product, error) {
	product := &Product{
		ID:          id,
		Title:       title,
		Description: description,
		Price:       price,
		Category:    category,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Category.ID <= 0 {
		return ErrInvalidCategory
	}
	return nil
}
