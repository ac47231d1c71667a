package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/event"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// recordingNotifier guarda los eventos publicados.
type recordingNotifier struct {
	mu     sync.Mutex
	events []event.Event
}

func (n *recordingNotifier) Publish(_ context.Context, ev event.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

func (n *recordingNotifier) types() []event.Type {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]event.Type, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}

// fixture tienda con manager, supplier y una fila de inventario.
type fixture struct {
	repos    memstore.Repositories
	store    entity.Store
	other    entity.Store
	product  entity.Product
	inv      entity.InventoryRecord
	manager  entity.Actor
	supplier entity.Actor
	admin    entity.Actor
	notifier *recordingNotifier
}

func newFixture(t *testing.T, quantity, threshold int) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := memstore.NewDB().Repos()
	now := time.Now()

	store := entity.Store{ID: uuid.New().String(), Name: "Flagship Store", Location: "Downtown", CreatedAt: now}
	other := entity.Store{ID: uuid.New().String(), Name: "Outlet", Location: "Mall", CreatedAt: now}
	require.NoError(t, repos.Stores.Create(ctx, &store))
	require.NoError(t, repos.Stores.Create(ctx, &other))

	price := decimal.RequireFromString("29.99")
	product := entity.Product{ID: uuid.New().String(), Name: "Classic Tee", SKU: "TEE-001", Category: "Tops", Size: "M", Color: "White", Price: &price, CreatedAt: now}
	require.NoError(t, repos.Products.Create(ctx, &product))

	inv := entity.InventoryRecord{ID: uuid.New().String(), StoreID: store.ID, ProductID: product.ID, Quantity: quantity, LowStockThreshold: threshold, UpdatedAt: now}
	require.NoError(t, repos.Inventory.Create(ctx, &inv))

	supplier := entity.User{ID: uuid.New().String(), Username: "supplier1", Role: entity.RoleSupplier, SupplierName: "Universal Fashions", CreatedAt: now}
	require.NoError(t, repos.Users.Create(ctx, &supplier))

	return &fixture{
		repos:    repos,
		store:    store,
		other:    other,
		product:  product,
		inv:      inv,
		manager:  entity.Actor{UserID: uuid.New().String(), Role: entity.RoleManager, StoreID: store.ID},
		supplier: entity.Actor{UserID: supplier.ID, Role: entity.RoleSupplier},
		admin:    entity.Actor{UserID: uuid.New().String(), Role: entity.RoleAdmin},
		notifier: &recordingNotifier{},
	}
}

func (f *fixture) quantity(t *testing.T) int {
	t.Helper()
	rec, err := f.repos.Inventory.GetByID(context.Background(), f.inv.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec.Quantity
}
