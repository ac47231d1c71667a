package seed_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stylelane-api/internal/application/seed"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/memstore"
)

func newSeeder() (*seed.Seeder, memstore.Repositories) {
	repos := memstore.NewDB().Repos()
	return seed.NewSeeder(repos.Stores, repos.Users, repos.Products, repos.Inventory), repos
}

// ── Run ──────────────────────────────────────────────────────────────────────

func TestSeed_CreaDatosDeDemostracion(t *testing.T) {
	s, repos := newSeeder()
	ctx := context.Background()

	res, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.UsersCreated)
	assert.Equal(t, 3, res.ProductsCreated)

	manager, err := repos.Users.GetByUsername(ctx, "manager1")
	require.NoError(t, err)
	require.NotNil(t, manager)
	assert.Equal(t, res.StoreID, manager.StoreID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(manager.PasswordHash), []byte("manager123")))

	supplier, err := repos.Users.GetByUsername(ctx, "supplier1")
	require.NoError(t, err)
	assert.Equal(t, "Universal Fashions", supplier.SupplierName)
	assert.Empty(t, supplier.StoreID)

	items, err := repos.Inventory.ListItems(ctx, repository.InventoryFilter{StoreID: res.StoreID})
	require.NoError(t, err)
	got := map[string][2]int{}
	for _, it := range items {
		got[it.Product.SKU] = [2]int{it.Record.Quantity, it.Record.LowStockThreshold}
	}
	assert.Equal(t, map[string][2]int{
		"TEE-001": {25, 5},
		"JNS-001": {15, 5},
		"JKT-001": {8, 3},
	}, got)
}

func TestSeed_EsIdempotente(t *testing.T) {
	s, repos := newSeeder()
	ctx := context.Background()

	first, err := s.Run(ctx)
	require.NoError(t, err)
	second, err := s.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.StoreID, second.StoreID)
	assert.Zero(t, second.UsersCreated)
	assert.Zero(t, second.ProductsCreated)

	stores, err := repos.Stores.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 1)
	items, err := repos.Inventory.ListItems(ctx, repository.InventoryFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

// ── ImportCatalog ────────────────────────────────────────────────────────────

func TestImportCatalog_UTF8ConEncabezado(t *testing.T) {
	s, repos := newSeeder()
	ctx := context.Background()
	res, err := s.Run(ctx)
	require.NoError(t, err)

	csv := "sku;name;category;size;color;price;cost_price\n" +
		"SKT-001;Falda Plisada;Bottoms;S;Verde;39,90;15.50\n" +
		"TEE-001;Classic Tee;;;;31.00;\n"
	out, err := s.ImportCatalog(ctx, strings.NewReader(csv), res.StoreID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Created)
	assert.Equal(t, 1, out.Updated)

	skirt, err := repos.Products.GetBySKU(ctx, "SKT-001")
	require.NoError(t, err)
	require.NotNil(t, skirt)
	assert.Equal(t, "39.9", skirt.Price.String())
	assert.Equal(t, "15.5", skirt.CostPrice.String())

	rec, err := repos.Inventory.GetByStoreAndProduct(ctx, res.StoreID, skirt.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 0, rec.Quantity)
	assert.Equal(t, entity.DefaultLowStockThreshold, rec.LowStockThreshold)

	// el SKU existente conserva lo no informado y su stock
	tee, err := repos.Products.GetBySKU(ctx, "TEE-001")
	require.NoError(t, err)
	assert.Equal(t, "31", tee.Price.String())
	assert.Equal(t, "Tops", tee.Category)
	teeRec, err := repos.Inventory.GetByStoreAndProduct(ctx, res.StoreID, tee.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, teeRec.Quantity)
}

func TestImportCatalog_ISO88591(t *testing.T) {
	s, repos := newSeeder()
	ctx := context.Background()
	res, err := s.Run(ctx)
	require.NoError(t, err)

	// "Añil" en ISO-8859-1: ñ = 0xF1
	raw := []byte("BLU-001;Blusa A\xf1il;Tops;M;A\xf1il;25;10\n")
	out, err := s.ImportCatalog(ctx, strings.NewReader(string(raw)), res.StoreID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Created)

	p, err := repos.Products.GetBySKU(ctx, "BLU-001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Blusa Añil", p.Name)
	assert.Equal(t, "Añil", p.Color)
}

func TestImportCatalog_PrecioInvalido(t *testing.T) {
	s, _ := newSeeder()
	ctx := context.Background()
	res, err := s.Run(ctx)
	require.NoError(t, err)

	_, err = s.ImportCatalog(ctx, strings.NewReader("X-1;Algo;;;;abc;\n"), res.StoreID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestImportCatalog_FilaSinNombre(t *testing.T) {
	s, _ := newSeeder()
	ctx := context.Background()
	res, err := s.Run(ctx)
	require.NoError(t, err)

	_, err = s.ImportCatalog(ctx, strings.NewReader("X-1;;Tops\n"), res.StoreID)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
