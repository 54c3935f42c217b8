package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/damon-houk/forex-bureau-dashboard/internal/application/service"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/repository"
	domainsvc "github.com/damon-houk/forex-bureau-dashboard/internal/domain/service"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/api"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/auth"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/cache"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/config"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/db"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/handler"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/middleware"
)

func main() {
	log := logger.NewJSONLogger(os.Stdout, logger.InfoLevel)

	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Failed to load configuration", map[string]interface{}{"error": err.Error()})
	}

	log = logger.NewJSONLogger(os.Stdout, cfg.LogLevel)
	logger.SetDefaultLogger(log)

	log.Info("Starting forex bureau dashboard", map[string]interface{}{
		"port":         cfg.Port,
		"store_driver": cfg.StoreDriver,
		"auth_enabled": cfg.AuthEnabled(),
	})

	// Initialize repositories
	invRepo, txRepo, closeStores := openStores(cfg, log)
	defer closeStores()

	// Initialize rate providers, tried in this order
	httpClient := &http.Client{}
	providers := []domainsvc.RateProvider{
		api.NewExchangeRateV6Client(cfg.ExchangeRateAPIKey, cfg.ExchangeRateV6URL, httpClient, cfg.ProviderTimeout),
		api.NewFrankfurterClient(cfg.FrankfurterURL, httpClient, cfg.ProviderTimeout),
		api.NewExchangeRateFreeClient(cfg.ExchangeRateV4URL, httpClient, cfg.ProviderTimeout),
	}

	// Initialize services
	rateService := service.NewRateService(providers, cache.NewRateTableCache(cfg.RateCacheTTL), log)
	inventoryService := service.NewInventoryService(invRepo)
	transactionService := service.NewTransactionService(txRepo)
	conversionService := service.NewConversionService(rateService, log)
	dashboardService := service.NewDashboardService(txRepo, invRepo, rateService, log)

	// Identity gate for mutating routes
	var checker domainsvc.IdentityChecker
	var gate handler.Middleware
	if cfg.AuthEnabled() {
		checker = auth.NewJWTIdentityChecker(cfg.AuthJWTSecret, log)
		gate = middleware.RequireAuth(log)
	}

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		log.Fatal("Invalid RATE_LIMIT", map[string]interface{}{
			"value": cfg.RateLimit,
			"error": err.Error(),
		})
	}

	// Setup router
	router := mux.NewRouter()
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.RateLimitMiddleware(limiter, log),
		middleware.IdentityMiddleware(checker),
	)

	handler.NewRatesHandler(rateService, conversionService, log).RegisterRoutes(router)
	handler.NewDashboardHandler(dashboardService, log).RegisterRoutes(router)
	handler.NewInventoryHandler(inventoryService, log).RegisterRoutes(router, gate)
	handler.NewTransactionHandler(transactionService, log).RegisterRoutes(router, gate)

	// Start server
	log.Info("Server listening", map[string]interface{}{"addr": ":" + cfg.Port})
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}

// openStores builds the inventory and transaction stores for the configured driver
func openStores(cfg *config.Config, log logger.Logger) (repository.InventoryRepository, repository.TransactionRepository, func()) {
	ctx := context.Background()

	switch cfg.StoreDriver {
	case config.DriverBadger:
		badgerDB, err := db.OpenBadger(cfg.BadgerPath)
		if err != nil {
			log.Fatal("Failed to open badger", map[string]interface{}{"error": err.Error(), "path": cfg.BadgerPath})
		}

		invRepo := db.NewBadgerInventoryStore(badgerDB)
		txRepo := db.NewBadgerTransactionStore(badgerDB)
		if err := invRepo.Seed(ctx, db.SeedInventory()...); err != nil {
			log.Fatal("Failed to seed inventory", map[string]interface{}{"error": err.Error()})
		}
		if err := txRepo.Seed(ctx, db.SeedTransactions()...); err != nil {
			log.Fatal("Failed to seed transactions", map[string]interface{}{"error": err.Error()})
		}

		return invRepo, txRepo, func() {
			if err := badgerDB.Close(); err != nil {
				log.Error("Error closing BadgerDB", map[string]interface{}{"error": err.Error()})
			}
		}

	case config.DriverPostgres:
		if err := db.Migrate(cfg.DatabaseURL, log); err != nil {
			log.Fatal("Failed to migrate database", map[string]interface{}{"error": err.Error()})
		}

		pool, err := db.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database", map[string]interface{}{"error": err.Error()})
		}

		return db.NewPostgresInventoryStore(pool), db.NewPostgresTransactionStore(pool), pool.Close

	default:
		log.Warn("Using in-memory stores, data is lost on restart", nil)
		return db.NewMemoryStore(db.SeedInventory()...), db.NewMemoryStore(db.SeedTransactions()...), func() {}
	}
}
