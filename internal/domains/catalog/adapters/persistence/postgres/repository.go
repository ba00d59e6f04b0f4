package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mercora/retail-api/internal/domains/catalog/domain"
	"github.com/mercora/retail-api/internal/domains/catalog/ports"
)

var (
	_ ports.Repository     = (*Repository)(nil)
	_ ports.StockDirectory = (*StockDirectory)(nil)
)

type categoryRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (categoryRecord) TableName() string { return "categories" }

type productRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	Title       string         `gorm:"column:title;index"`
	Description string         `gorm:"column:description"`
	Price       float64        `gorm:"column:price;index"`
	CategoryID  int64          `gorm:"column:category_id"`
	Category    categoryRecord `gorm:"foreignKey:CategoryID"`
}

func (productRecord) TableName() string { return "products" }

// Repository persists the catalog in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&categoryRecord{}, &productRecord{})
	}
	return repo
}

func (r *Repository) SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := categoryRecord{ID: category.ID, Name: category.Name}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrDuplicateCategory
	}
	return &domain.Category{ID: record.ID, Name: record.Name}, nil
}

func (r *Repository) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := productRecord{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		CategoryID:  product.Category.ID,
	}
	if err := r.db.WithContext(ctx).Omit("Category").Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, record.ID)
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).Preload("Category").First(&record, "products.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetProducts(ctx context.Context, ids []int64) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(records), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Preload("Category").Order("title").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(records), nil
}

// Find applies keyword, category, and price filters in SQL. Keyword match
// is a plain ILIKE over title, description, and category name.
func (r *Repository) Find(ctx context.Context, filter ports.Filter) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{}).Joins("Category")
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(`products.title ILIKE ? OR products.description ILIKE ? OR "Category".name ILIKE ?`, pattern, pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where(`"Category".name ILIKE ?`, "%"+filter.Category+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	switch filter.SortBy {
	case ports.SortByPrice:
		query = query.Order("products.price")
	case ports.SortByNewest:
		query = query.Order("products.id DESC")
	default:
		query = query.Order("products.title")
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(records), nil
}

func (r *Repository) MatchTitlePrefix(ctx context.Context, q string, limit int) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("title ILIKE ?", q+"%").
		Order("title").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(records), nil
}

func (r *Repository) MatchTitleSubstring(ctx context.Context, q string, exclude []int64, limit int) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).
		Preload("Category").
		Where("title ILIKE ?", "%"+q+"%")
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}
	var records []productRecord
	if err := query.Order("title").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    domain.Category{ID: r.Category.ID, Name: r.Category.Name},
	}
}

func toDomainSlice(records []productRecord) []*domain.Product {
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products
}

// StockDirectory reads inventory quantities for search annotations.
type StockDirectory struct {
	db *gorm.DB
}

func NewStockDirectory(db *gorm.DB) *StockDirectory {
	return &StockDirectory{db: db}
}

func (d *StockDirectory) Quantities(ctx context.Context, storeID int64) (map[int64]int64, error) {
	if d == nil || d.db == nil {
		return nil, errors.New("postgres stock directory not configured")
	}
	type row struct {
		ProductID int64
		Quantity  int64
	}
	var rows []row
	query := d.db.WithContext(ctx).Table("inventories")
	if storeID > 0 {
		query = query.Select("product_id, quantity").Where("store_id = ?", storeID)
	} else {
		query = query.Select("product_id, SUM(quantity) AS quantity").Group("product_id")
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	quantities := make(map[int64]int64, len(rows))
	for _, r := range rows {
		quantities[r.ProductID] = r.Quantity
	}
	return quantities, nil
}
