// Package app assembles the product store, dashboard metrics, cache and
// importer from configuration. The HTTP server and the CLI share it.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rogerio-castellano/pos-dashboard/internal/config"
	"github.com/rogerio-castellano/pos-dashboard/internal/db"
	"github.com/rogerio-castellano/pos-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
	"github.com/rogerio-castellano/pos-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

const topProducts = 5

type App struct {
	Config   *config.Config
	Products repo.ProductStore
	Metrics  repo.MetricsRepository
	Importer *ingest.Importer
	// Redis is nil when no redis address is configured.
	Redis *redissvc.RedisService

	database *sql.DB
	rdb      *redis.Client
	log      *logrus.Entry
}

// New connects the configured backends. The caller must Close the result.
func New(ctx context.Context, cfg *config.Config, log *logrus.Entry) (*App, error) {
	a := &App{Config: cfg, log: log}

	switch cfg.Store.Driver {
	case "memory":
		store := repo.NewInMemoryProductRepository()
		a.Products = store
		a.Metrics = repo.NewStoreMetricsRepository(store, topProducts)
	default:
		database, err := db.Connect(cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.database = database
		if err := db.Migrate(ctx, database); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		a.Products = repo.NewPostgresProductRepository(database)
		a.Metrics = repo.NewPostgresMetricsRepository(database, topProducts)
	}
	log.WithField("driver", cfg.Store.Driver).Info("product store ready")

	var observers []ingest.ImportObserver
	if cfg.Redis.Addr != "" {
		a.rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.Redis = redissvc.NewRedisService(a.rdb, cfg.Redis.DashboardTTL, cfg.Redis.HistorySize, log)
		a.Metrics = redissvc.NewCachedMetricsRepository(a.Metrics, a.Redis)
		observers = append(observers, a.Redis)
		log.WithField("addr", cfg.Redis.Addr).Info("dashboard cache enabled")
	}

	opts, err := ingest.OptionsFromConfig(cfg.Ingest)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Importer = ingest.NewImporter(a.Products, opts, log, observers...)
	return a, nil
}

// ServerOptions returns the handler options matching the configured backends.
func (a *App) ServerOptions() []handlers.Option {
	opts := []handlers.Option{
		handlers.WithMaxUploadBytes(a.Config.Server.MaxUploadBytes),
	}
	if aliases, err := ingest.DefaultAliases().With(a.Config.Ingest.Aliases); err == nil {
		opts = append(opts, handlers.WithTemplateAliases(aliases.ByField()))
	}
	if a.database != nil {
		opts = append(opts, handlers.WithHealthCheck("database", handlers.PingFunc(a.database.PingContext)))
	}
	if a.Redis != nil {
		opts = append(opts,
			handlers.WithHealthCheck("redis", a.Redis),
			handlers.WithImportHistory(a.Redis),
		)
	}
	return opts
}

func (a *App) Close() error {
	var errs []error
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.database != nil {
		errs = append(errs, a.database.Close())
	}
	return errors.Join(errs...)
}
