// Package storage abre la variante de persistencia elegida con STORAGE_BACKEND.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/stylelane-api/internal/application/inventory"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/memstore"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/stylelane-api/pkg/config"
)

// Backend repositorios de la variante abierta.
type Backend struct {
	Stores    repository.StoreRepository
	Users     repository.UserRepository
	Products  repository.ProductRepository
	Inventory repository.InventoryRepository
	Sales     repository.SaleRepository
	Restocks  repository.RestockRepository
	Analytics repository.AnalyticsRepository
	Tx        inventory.TxRunner
	Close     func()
}

// Open conecta (y migra, en postgres) el backend configurado. memory no persiste entre reinicios.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Stores:    postgres.NewStoreRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			Inventory: postgres.NewInventoryRepository(pool),
			Sales:     postgres.NewSaleRepository(pool),
			Restocks:  postgres.NewRestockRepository(pool),
			Analytics: postgres.NewAnalyticsRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			Close:     pool.Close,
		}, nil

	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		r := redisstore.NewDB(client, redisstore.DefaultPrefix, cfg.Redis.TxMaxRetries).Repos()
		return &Backend{
			Stores:    r.Stores,
			Users:     r.Users,
			Products:  r.Products,
			Inventory: r.Inventory,
			Sales:     r.Sales,
			Restocks:  r.Restocks,
			Analytics: r.Analytics,
			Tx:        r.Tx,
			Close:     func() { _ = client.Close() },
		}, nil

	default:
		r := memstore.NewDB().Repos()
		return &Backend{
			Stores:    r.Stores,
			Users:     r.Users,
			Products:  r.Products,
			Inventory: r.Inventory,
			Sales:     r.Sales,
			Restocks:  r.Restocks,
			Analytics: r.Analytics,
			Tx:        r.Tx,
			Close:     func() {},
		}, nil
	}
}
