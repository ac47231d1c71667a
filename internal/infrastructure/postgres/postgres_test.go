package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
	"github.com/jhoicas/stylelane-api/pkg/config"
)

// ── Helpers puros ─────────────────────────────────────────────────────────────

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestInsertErr_TraduceConflicto(t *testing.T) {
	err := insertErr("insert store", "tienda X", &pgconn.PgError{Code: "23505"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	err = insertErr("insert store", "tienda X", errors.New("boom"))
	assert.False(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "insert store")
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "abc", nullable("abc"))
}

func TestIsNoRows_IncluyeUUIDMalformado(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", &pgconn.PgError{Code: "22P02"})))
	assert.False(t, isNoRows(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isNoRows(errors.New("timeout")))
}

func TestValidIDs(t *testing.T) {
	id := uuid.New().String()
	assert.True(t, validIDs(id))
	assert.True(t, validIDs(id, uuid.New().String()))
	assert.False(t, validIDs("abc"))
	assert.False(t, validIDs(id, "no-existe"))
	assert.False(t, validIDs(""))
}

func TestBuildPoolConfig_AplicaConfiguracion(t *testing.T) {
	cfg := config.DBConfig{
		Host: "localhost", Port: 5432, User: "app", Password: "secret", DBName: "stylelane", SSLMode: "disable",
		MaxConns: 12, MinConns: 3, MaxConnLifetime: 20 * time.Minute, MaxConnIdleTime: 5 * time.Minute, HealthCheckPeriod: 15 * time.Second,
	}
	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(12), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 20*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, 15*time.Second, pc.HealthCheckPeriod)
	assert.Equal(t, "localhost", pc.ConnConfig.Host)
	assert.NotNil(t, pc.AfterConnect)
}

func TestBuildPoolConfig_CerosConservanDSN(t *testing.T) {
	pc, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://app@db:5432/stylelane?pool_max_conns=7"})
	require.NoError(t, err)
	assert.Equal(t, int32(7), pc.MaxConns)
}

func TestLikeEscape(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, likeEscape(`50%_off\`))
}

// ── Integración (requiere TEST_DATABASE_URL) ─────────────────────────────────

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	if err != nil {
		t.Skipf("PostgreSQL no disponible: %v", err)
	}
	t.Cleanup(pool.Close)
	require.NoError(t, Migrate(ctx, pool))
	return pool
}

func TestIntegracion_FlujoInventarioYVentas(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	suffix := uuid.New().String()[:8]

	stores := NewStoreRepository(pool)
	products := NewProductRepository(pool)
	inventory := NewInventoryRepository(pool)

	store := entity.Store{ID: uuid.New().String(), Name: "Store " + suffix, Location: "Downtown", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, stores.Create(ctx, &store))
	dup := store
	dup.ID = uuid.New().String()
	assert.True(t, errors.Is(stores.Create(ctx, &dup), domain.ErrConflict))

	price := decimal.RequireFromString("29.99")
	product := entity.Product{ID: uuid.New().String(), Name: "Tee " + suffix, SKU: "TEE-" + suffix, Category: "Tops", Size: "M", Color: "White", Price: &price, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, &product))

	got, err := products.GetBySKU(ctx, product.SKU)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Price)
	assert.True(t, price.Equal(*got.Price))
	assert.Nil(t, got.CostPrice)

	found, err := products.Search(ctx, repository.ProductFilter{Query: suffix, Color: "whi"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	rec := entity.InventoryRecord{ID: uuid.New().String(), StoreID: store.ID, ProductID: product.ID, Quantity: 12, LowStockThreshold: 10, UpdatedAt: now}
	require.NoError(t, inventory.Create(ctx, &rec))

	err = NewTxRunner(pool).Run(ctx, func(inv repository.InventoryRepository, _ repository.RestockRepository, _ repository.ShipmentRepository, sales repository.SaleRepository) error {
		locked, err := inv.GetForUpdate(ctx, rec.ID)
		if err != nil {
			return err
		}
		locked.Quantity -= 3
		locked.UpdatedAt = now
		if err := inv.Update(ctx, locked); err != nil {
			return err
		}
		return sales.Create(ctx, &entity.Sale{
			ID: uuid.New().String(), InventoryID: rec.ID, StoreID: store.ID, ProductID: product.ID,
			Quantity: 3, UnitPrice: price, TotalAmount: price.Mul(decimal.NewFromInt(3)), Timestamp: now,
		})
	})
	require.NoError(t, err)

	after, err := inventory.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, after.Quantity)

	low, err := inventory.ListItems(ctx, repository.InventoryFilter{StoreID: store.ID, LowOnly: true})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, store.Name, low[0].StoreName)

	lines, err := NewSaleRepository(pool).List(ctx, repository.SaleFilter{StoreID: store.ID})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, product.SKU, lines[0].SKU)
}

func TestIntegracion_RollbackDeshaceCambios(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	now := time.Now().UTC()
	suffix := uuid.New().String()[:8]

	store := entity.Store{ID: uuid.New().String(), Name: "Rollback " + suffix, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewStoreRepository(pool).Create(ctx, &store))
	product := entity.Product{ID: uuid.New().String(), Name: "P " + suffix, SKU: "RB-" + suffix, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewProductRepository(pool).Create(ctx, &product))
	rec := entity.InventoryRecord{ID: uuid.New().String(), StoreID: store.ID, ProductID: product.ID, Quantity: 5, LowStockThreshold: 1, UpdatedAt: now}
	require.NoError(t, NewInventoryRepository(pool).Create(ctx, &rec))

	boom := errors.New("boom")
	err := NewTxRunner(pool).Run(ctx, func(inv repository.InventoryRepository, _ repository.RestockRepository, _ repository.ShipmentRepository, _ repository.SaleRepository) error {
		locked, err := inv.GetForUpdate(ctx, rec.ID)
		if err != nil {
			return err
		}
		locked.Quantity = 0
		if err := inv.Update(ctx, locked); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := NewInventoryRepository(pool).GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, after.Quantity)
}

func TestIntegracion_IDMalformadoEsNoEncontrado(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	p, err := NewProductRepository(pool).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)
	s, err := NewStoreRepository(pool).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, s)
	u, err := NewUserRepository(pool).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, u)

	// dentro de la tx el id malformado no aborta la transacción
	err = NewTxRunner(pool).Run(ctx, func(inv repository.InventoryRepository, rr repository.RestockRepository, _ repository.ShipmentRepository, _ repository.SaleRepository) error {
		req, err := rr.GetForUpdate(ctx, "abc")
		if err != nil {
			return err
		}
		assert.Nil(t, req)
		rec, err := inv.GetForUpdate(ctx, "no-existe")
		if err != nil {
			return err
		}
		assert.Nil(t, rec)
		missing, err := rr.GetByID(ctx, uuid.New().String())
		assert.Nil(t, missing)
		return err
	})
	require.NoError(t, err)
}
