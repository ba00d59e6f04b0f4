package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	cataloghttp "github.com/mercora/retail-api/internal/domains/catalog/adapters/http"
	catalogmemory "github.com/mercora/retail-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/mercora/retail-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/mercora/retail-api/internal/domains/catalog/application"
	catalogports "github.com/mercora/retail-api/internal/domains/catalog/ports"

	storescache "github.com/mercora/retail-api/internal/domains/stores/adapters/cache"
	storeshttp "github.com/mercora/retail-api/internal/domains/stores/adapters/http"
	storesmemory "github.com/mercora/retail-api/internal/domains/stores/adapters/memory"
	storespostgres "github.com/mercora/retail-api/internal/domains/stores/adapters/persistence/postgres"
	storesapp "github.com/mercora/retail-api/internal/domains/stores/application"
	storesports "github.com/mercora/retail-api/internal/domains/stores/ports"

	ordershttp "github.com/mercora/retail-api/internal/domains/orders/adapters/http"
	ordersmemory "github.com/mercora/retail-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/mercora/retail-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/mercora/retail-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/mercora/retail-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/mercora/retail-api/internal/domains/orders/application"
	ordersports "github.com/mercora/retail-api/internal/domains/orders/ports"

	platformmigrations "github.com/mercora/retail-api/internal/platform/migrations"
	platformobservability "github.com/mercora/retail-api/internal/platform/observability"
	platformpostgres "github.com/mercora/retail-api/internal/platform/postgres"
	platformratelimit "github.com/mercora/retail-api/internal/platform/ratelimit"
	platformredis "github.com/mercora/retail-api/internal/platform/redis"
)

// Run boots the retail HTTP API with observability, repositories, caching,
// and the confirmation workflow dispatcher wired.
func Run(ctx context.Context) error {
	const serviceName = "retail-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	redisClient, cleanupRedis := platformredis.ConnectFromEnv(ctx, logger)
	defer cleanupRedis()

	catalogRepo, stockDir, storeRepo, inventoryRepo, txScope, orderReader := buildRepositories(db, logger)

	catalogService := catalogapp.NewService(catalogRepo, stockDir)

	storeOpts := []storesapp.Option{storesapp.WithLogger(logger)}
	if redisClient != nil {
		storeOpts = append(storeOpts, storesapp.WithCache(storescache.NewRedisSnapshotCache(redisClient, cfg.InventoryCacheTTL)))
	}
	storeService := storesapp.NewService(storeRepo, inventoryRepo, &productDirectory{catalog: catalogRepo}, storeOpts...)

	var notifier ordersports.Notifier = ordersworkflows.NewInlineDispatcher(logger)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, logging confirmations inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		notifier = ordersworkflows.NewTemporalDispatcher(temporalClient)
		logger.Info("Temporal confirmation workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	storeDir := &storeDirectory{stores: storeRepo}
	orderService := ordersobs.New(
		ordersapp.NewService(storeDir, txScope, orderReader, notifier, ordersapp.WithLogger(logger)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	limiter := platformratelimit.NewLimiter(redisClient, logger, "ratelimit:autocomplete", cfg.AutocompleteLimit, cfg.AutocompleteWindow)

	router := NewRouter(routerDeps{
		serviceName:      serviceName,
		catalog:          cataloghttp.NewHandler(catalogService),
		stores:           storeshttp.NewHandler(storeService),
		orders:           ordershttp.NewHandler(orderService, storeDir),
		autocompleteGate: limiter.Middleware(),
	})

	addr := ":" + cfg.Port
	logger.Info("retail API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("retail API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepositories wires the persistence adapters. With PostgreSQL absent,
// every context falls back to memory, and the stores and catalog contexts
// read stock through the order backend so placements stay visible.
func buildRepositories(db *gorm.DB, logger *slog.Logger) (
	catalogports.Repository,
	catalogports.StockDirectory,
	storesports.Repository,
	storesports.InventoryRepository,
	ordersports.TxScope,
	ordersports.OrderReader,
) {
	if db != nil {
		logger.Info("repositories configured with postgres")
		return catalogpostgres.NewRepository(db),
			catalogpostgres.NewStockDirectory(db),
			storespostgres.NewRepository(db),
			storespostgres.NewInventoryRepository(db),
			orderspostgres.NewTxScope(db),
			orderspostgres.NewReader(db)
	}
	backend := ordersmemory.NewBackend()
	return catalogmemory.NewRepository(),
		&memoryStockDirectory{backend: backend},
		storesmemory.NewRepository(),
		&memoryInventoryRepository{backend: backend},
		backend,
		backend
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
