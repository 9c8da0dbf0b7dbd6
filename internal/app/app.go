// Package app wires configuration into repositories, services and handlers.
// Both the HTTP server and the maintenance CLI build on it.
package app

import (
	"go-inventory-history/config"
	"go-inventory-history/internal/broker"
	"go-inventory-history/internal/cache"
	"go-inventory-history/internal/repository"
	"go-inventory-history/internal/service"
	"go-inventory-history/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	DB        *gorm.DB
	Inventory service.InventoryService
	Dashboard service.DashboardService
	Publisher broker.Publisher

	closers []func() error
}

// New connects the database, runs migrations and builds the services.
// Redis and Kafka are only used when configured.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}

	return Build(db, cfg, log), nil
}

// Build wires services on an already opened database.
func Build(db *gorm.DB, cfg *config.Config, log *zap.Logger) *App {
	a := &App{DB: db}
	a.closers = append(a.closers, func() error { return database.Close(db) })

	var categoryCache cache.CategoryCache = cache.NopCategoryCache{}
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis unavailable, category cache disabled", zap.Error(err))
		} else {
			categoryCache = cache.NewRedisCategoryCache(rdb, cfg.Redis.CategoryCacheTTL, log)
			a.closers = append(a.closers, rdb.Close)
			log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	a.Publisher = broker.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		a.Publisher = broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicStock, log)
		a.closers = append(a.closers, a.Publisher.Close)
		log.Info("Kafka publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	productRepo := repository.NewProductRepo(db)
	historyRepo := repository.NewHistoryRepo(db)

	a.Inventory = service.NewInventoryService(productRepo, historyRepo, db, service.InventoryDeps{
		CategoryCache:   categoryCache,
		Publisher:       a.Publisher,
		Logger:          log,
		DefaultPageSize: cfg.Inventory.DefaultPageSize,
	})
	a.Dashboard = service.NewDashboardService(productRepo, historyRepo, cfg.Inventory.LowStockThreshold)
	return a
}

// Close releases connections in reverse order of creation.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
