package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&storeRecord{},
		&categoryRecord{},
		&productRecord{},
		&inventoryRecord{},
		&orderRecord{},
		&orderLineRecord{},
	)
}

// Store schema mirrors the stores Postgres adapter.
type storeRecord struct {
	ID       int64  `gorm:"primaryKey;column:id"`
	Name     string `gorm:"column:name;index"`
	Location string `gorm:"column:location"`
}

func (storeRecord) TableName() string { return "stores" }

// Category and product schemas mirror the catalog Postgres adapter.
type categoryRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (categoryRecord) TableName() string { return "categories" }

type productRecord struct {
	ID          int64   `gorm:"primaryKey;column:id"`
	Title       string  `gorm:"column:title;index"`
	Description string  `gorm:"column:description"`
	Price       float64 `gorm:"column:price;index"`
	CategoryID  int64   `gorm:"column:category_id"`
}

func (productRecord) TableName() string { return "products" }

// Inventory schema is shared by the stores adapter and the order
// transaction scope.
type inventoryRecord struct {
	ID        int64 `gorm:"primaryKey;column:id"`
	StoreID   int64 `gorm:"column:store_id;uniqueIndex:idx_inventories_store_product"`
	ProductID int64 `gorm:"column:product_id;uniqueIndex:idx_inventories_store_product"`
	Quantity  int64 `gorm:"column:quantity"`
}

func (inventoryRecord) TableName() string { return "inventories" }

// Order schemas mirror the orders Postgres adapter.
type orderRecord struct {
	ID                  int64         `gorm:"primaryKey;column:id"`
	StoreID             int64         `gorm:"column:store_id;index:idx_orders_store_created"`
	Status              string        `gorm:"column:status;type:varchar(20);index"`
	ShortfallProductIDs pq.Int64Array `gorm:"column:shortfall_product_ids;type:bigint[]"`
	CreatedAt           time.Time     `gorm:"column:created_at;index:idx_orders_store_created"`
}

func (orderRecord) TableName() string { return "orders" }

type orderLineRecord struct {
	ID                int64 `gorm:"primaryKey;column:id"`
	OrderID           int64 `gorm:"column:order_id;index"`
	ProductID         int64 `gorm:"column:product_id"`
	QuantityRequested int64 `gorm:"column:quantity_requested"`
}

func (orderLineRecord) TableName() string { return "order_lines" }
