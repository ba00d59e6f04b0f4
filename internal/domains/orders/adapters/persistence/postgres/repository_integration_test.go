//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	ordersapp "github.com/mercora/retail-api/internal/domains/orders/application"
	"github.com/mercora/retail-api/internal/domains/orders/domain"
	"github.com/mercora/retail-api/internal/domains/orders/ports"
	"github.com/mercora/retail-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("retail_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// Run migrations
	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

type fixedStoreDirectory struct{}

func (fixedStoreDirectory) GetStore(_ context.Context, id int64) (*ports.StoreRef, error) {
	return &ports.StoreRef{ID: id, Name: "Integration Store"}, nil
}

type noopNotifier struct{}

func (noopNotifier) EnqueueConfirmation(context.Context, ports.ConfirmationNotice) error { return nil }

func seedInventory(t *testing.T, db *gorm.DB, storeID, productID, quantity int64) {
	t.Helper()
	require.NoError(t, db.Create(&inventoryRecord{StoreID: storeID, ProductID: productID, Quantity: quantity}).Error)
}

func inventoryQuantity(t *testing.T, db *gorm.DB, storeID, productID int64) int64 {
	t.Helper()
	var record inventoryRecord
	require.NoError(t, db.First(&record, "store_id = ? AND product_id = ?", storeID, productID).Error)
	return record.Quantity
}

func TestTxScope_ConfirmedPlacementDecrements(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	seedInventory(t, db, 1, 10, 5)
	svc := ordersapp.NewService(fixedStoreDirectory{}, NewTxScope(db), NewReader(db), noopNotifier{})

	result, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 1,
		Items:   []ports.RequestedItem{{ProductID: 10, QuantityRequested: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, result.Order.Status)
	assert.Equal(t, int64(2), inventoryQuantity(t, db, 1, 10))

	// The reader sees the committed order with its lines.
	stored, err := NewReader(db).GetByID(context.Background(), result.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, int64(3), stored.Lines[0].QuantityRequested)
}

func TestTxScope_RejectedPlacementKeepsStockAndShortfalls(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	seedInventory(t, db, 1, 10, 5)
	svc := ordersapp.NewService(fixedStoreDirectory{}, NewTxScope(db), NewReader(db), noopNotifier{})

	result, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		StoreID: 1,
		Items: []ports.RequestedItem{
			{ProductID: 10, QuantityRequested: 2},
			{ProductID: 20, QuantityRequested: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, result.Order.Status)
	assert.Equal(t, int64(5), inventoryQuantity(t, db, 1, 10))

	var record orderRecord
	require.NoError(t, db.First(&record, "id = ?", result.Order.ID).Error)
	assert.Equal(t, string(domain.StatusRejected), record.Status)
	assert.Equal(t, pq.Int64Array{20}, record.ShortfallProductIDs)
}

func TestTxScope_ConcurrentPlacementsNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	const stock = 5
	const attempts = 8
	seedInventory(t, db, 1, 10, stock)
	svc := ordersapp.NewService(fixedStoreDirectory{}, NewTxScope(db), NewReader(db), noopNotifier{})

	var wg sync.WaitGroup
	statuses := make([]domain.Status, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
				StoreID: 1,
				Items:   []ports.RequestedItem{{ProductID: 10, QuantityRequested: 1}},
			})
			require.NoError(t, err)
			statuses[i] = result.Order.Status
		}(i)
	}
	wg.Wait()

	confirmed := 0
	for _, status := range statuses {
		if status == domain.StatusConfirmed {
			confirmed++
		}
	}
	assert.Equal(t, stock, confirmed)
	assert.Equal(t, int64(0), inventoryQuantity(t, db, 1, 10))
}
