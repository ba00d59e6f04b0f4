package ports

import (
	"context"
	"errors"

	"github.com/mercora/retail-api/internal/domains/stores/domain"
)

var (
	// ErrNotFound signals an unknown store id.
	ErrNotFound = errors.New("store not found")
	// ErrDuplicateRecord signals an inventory record already exists for the
	// (store, product) pair.
	ErrDuplicateRecord = errors.New("inventory record already exists")
)

// Repository persists stores.
type Repository interface {
	Save(ctx context.Context, store *domain.Store) (*domain.Store, error)
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
}

// InventoryRepository persists per-(store, product) quantity records. The
// order coordinator mutates the same records through its own transactional
// scope; this port only covers creation and listing.
type InventoryRepository interface {
	CreateRecord(ctx context.Context, record domain.InventoryRecord) error
	ListByStore(ctx context.Context, storeID int64) ([]domain.InventoryRecord, error)
}
