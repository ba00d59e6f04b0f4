package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mercora/retail-api/internal/domains/orders/domain"
	"github.com/mercora/retail-api/internal/domains/orders/ports"
)

var (
	_ ports.TxScope     = (*TxScope)(nil)
	_ ports.OrderReader = (*Reader)(nil)
)

// orderRecord maps the order aggregate to a relational table. Rejected
// orders keep the shortfalled product ids for audit.
type orderRecord struct {
	ID                  int64             `gorm:"primaryKey;column:id"`
	StoreID             int64             `gorm:"column:store_id;index:idx_orders_store_created"`
	Status              string            `gorm:"column:status;type:varchar(20);index"`
	ShortfallProductIDs pq.Int64Array     `gorm:"column:shortfall_product_ids;type:bigint[]"`
	CreatedAt           time.Time         `gorm:"column:created_at;index:idx_orders_store_created"`
	Lines               []orderLineRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderRecord) TableName() string { return "orders" }

type orderLineRecord struct {
	ID                int64 `gorm:"primaryKey;column:id"`
	OrderID           int64 `gorm:"column:order_id;index"`
	ProductID         int64 `gorm:"column:product_id"`
	QuantityRequested int64 `gorm:"column:quantity_requested"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

type inventoryRecord struct {
	ID        int64 `gorm:"primaryKey;column:id"`
	StoreID   int64 `gorm:"column:store_id;uniqueIndex:idx_inventories_store_product"`
	ProductID int64 `gorm:"column:product_id;uniqueIndex:idx_inventories_store_product"`
	Quantity  int64 `gorm:"column:quantity"`
}

func (inventoryRecord) TableName() string { return "inventories" }

// TxScope runs order placements inside one PostgreSQL transaction. Stock
// reads take row-level locks so the shortfall check and the decrement see
// the same snapshot under concurrency.
type TxScope struct {
	db *gorm.DB
}

// NewTxScope wires the transactional scope. Caller manages DB lifecycle.
func NewTxScope(db *gorm.DB) *TxScope {
	scope := &TxScope{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderLineRecord{}, &inventoryRecord{})
	}
	return scope
}

func (s *TxScope) Execute(ctx context.Context, fn func(tx ports.TxRepositories) error) error {
	if s == nil || s.db == nil {
		return errors.New("postgres order tx scope not configured")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{db: tx})
	})
}

type txRepositories struct {
	db *gorm.DB
}

func (t *txRepositories) Inventory() ports.InventoryStore { return &inventoryStore{db: t.db} }
func (t *txRepositories) Ledger() ports.Ledger            { return &ledger{db: t.db} }

type inventoryStore struct {
	db *gorm.DB
}

// GetQuantity reads the quantity on hand with SELECT ... FOR UPDATE.
// An absent record is zero available stock, not an error.
func (s *inventoryStore) GetQuantity(ctx context.Context, storeID, productID int64) (int64, error) {
	var record inventoryRecord
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "store_id = ? AND product_id = ?", storeID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return record.Quantity, nil
}

// DecrementIfSufficient issues a conditional decrement; zero rows affected
// means insufficient stock or a lost race, and nothing was changed.
func (s *inventoryStore) DecrementIfSufficient(ctx context.Context, storeID, productID, amount int64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&inventoryRecord{}).
		Where("store_id = ? AND product_id = ? AND quantity >= ?", storeID, productID, amount).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

type ledger struct {
	db *gorm.DB
}

func (l *ledger) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	record := orderRecord{
		StoreID: order.StoreID,
		Status:  string(order.Status),
		Lines:   make([]orderLineRecord, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		record.Lines = append(record.Lines, orderLineRecord{
			ProductID:         line.ProductID,
			QuantityRequested: line.QuantityRequested,
		})
	}
	if err := l.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (l *ledger) SetStatus(ctx context.Context, orderID int64, status domain.Status, shortfallProductIDs ...int64) error {
	updates := map[string]any{"status": string(status)}
	if len(shortfallProductIDs) > 0 {
		updates["shortfall_product_ids"] = pq.Int64Array(shortfallProductIDs)
	}
	result := l.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", orderID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Reader serves order lookups outside the transactional scope.
type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

func (r *Reader) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).Preload("Lines").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Reader) ListByStore(ctx context.Context, storeID int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("store_id = ?", storeID).
		Order("created_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Reader) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order reader not configured")
	}
	return nil
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:        r.ID,
		StoreID:   r.StoreID,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
		Lines:     make([]domain.OrderLine, 0, len(r.Lines)),
	}
	for _, line := range r.Lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:                line.ID,
			OrderID:           line.OrderID,
			ProductID:         line.ProductID,
			QuantityRequested: line.QuantityRequested,
		})
	}
	return order
}
