package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mercora/retail-api/internal/domains/stores/domain"
	"github.com/mercora/retail-api/internal/domains/stores/ports"
)

var (
	_ ports.Repository          = (*Repository)(nil)
	_ ports.InventoryRepository = (*InventoryRepository)(nil)
)

type storeRecord struct {
	ID       int64  `gorm:"primaryKey;column:id"`
	Name     string `gorm:"column:name;index"`
	Location string `gorm:"column:location"`
}

func (storeRecord) TableName() string { return "stores" }

// inventoryRecord shares the table mutated by the order transaction scope.
type inventoryRecord struct {
	ID        int64 `gorm:"primaryKey;column:id"`
	StoreID   int64 `gorm:"column:store_id;uniqueIndex:idx_inventories_store_product"`
	ProductID int64 `gorm:"column:product_id;uniqueIndex:idx_inventories_store_product"`
	Quantity  int64 `gorm:"column:quantity"`
}

func (inventoryRecord) TableName() string { return "inventories" }

// Repository persists stores in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&storeRecord{})
	}
	return repo
}

func (r *Repository) Save(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	record := storeRecord{ID: store.ID, Name: store.Name, Location: store.Location}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record storeRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []storeRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	stores := make([]*domain.Store, 0, len(records))
	for i := range records {
		stores = append(stores, records[i].toDomain())
	}
	return stores, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres store repository not configured")
	}
	return nil
}

func (r storeRecord) toDomain() *domain.Store {
	return &domain.Store{ID: r.ID, Name: r.Name, Location: r.Location}
}

// InventoryRepository creates and lists inventory records in PostgreSQL.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	repo := &InventoryRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&inventoryRecord{})
	}
	return repo
}

// CreateRecord inserts the single record for a (store, product) pair. The
// insert is a no-op on conflict with the unique pair index, which is
// reported as ErrDuplicateRecord.
func (r *InventoryRepository) CreateRecord(ctx context.Context, record domain.InventoryRecord) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	row := inventoryRecord{StoreID: record.StoreID, ProductID: record.ProductID, Quantity: record.Quantity}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).Create(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrDuplicateRecord
	}
	return nil
}

func (r *InventoryRepository) ListByStore(ctx context.Context, storeID int64) ([]domain.InventoryRecord, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []inventoryRecord
	if err := r.db.WithContext(ctx).Where("store_id = ?", storeID).Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]domain.InventoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.InventoryRecord{
			StoreID:   row.StoreID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
		})
	}
	return records, nil
}

func (r *InventoryRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres inventory repository not configured")
	}
	return nil
}
