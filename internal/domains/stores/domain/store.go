package domain

import "errors"

var (
	ErrEmptyName        = errors.New("store name must not be empty")
	ErrEmptyLocation    = errors.New("store location must not be empty")
	ErrInvalidStore     = errors.New("store id must be greater than zero")
	ErrInvalidProduct   = errors.New("product id must be greater than zero")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// Store is a sales location holding its own inventory.
type Store struct {
	ID       int64
	Name     string
	Location string
}

// NewStore validates and constructs a store.
func NewStore(id int64, name, location string) (*Store, error) {
	store := &Store{ID: id, Name: name, Location: location}
	if err := store.Validate(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) Validate() error {
	if s.Name == "" {
		return ErrEmptyName
	}
	if s.Location == "" {
		return ErrEmptyLocation
	}
	return nil
}

// InventoryRecord is the quantity of one product at one store. There is at
// most one record per (store, product) pair and quantity never goes below
// zero.
type InventoryRecord struct {
	StoreID   int64
	ProductID int64
	Quantity  int64
}

func (r InventoryRecord) Validate() error {
	if r.StoreID <= 0 {
		return ErrInvalidStore
	}
	if r.ProductID <= 0 {
		return ErrInvalidProduct
	}
	if r.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// InStock reports whether any units remain.
func (r InventoryRecord) InStock() bool {
	return r.Quantity > 0
}
