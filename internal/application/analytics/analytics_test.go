package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/internal/application/analytics"
	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type world struct {
	repos  memstore.Repositories
	north  entity.Store
	south  entity.Store
	tee    entity.Product
	jeans  entity.Product
	teeInv entity.InventoryRecord
}

func newWorld(t *testing.T) *world {
	t.Helper()
	ctx := context.Background()
	repos := memstore.NewDB().Repos()
	now := time.Now()

	w := &world{repos: repos}
	w.north = entity.Store{ID: uuid.New().String(), Name: "North", CreatedAt: now}
	w.south = entity.Store{ID: uuid.New().String(), Name: "South", CreatedAt: now}
	require.NoError(t, repos.Stores.Create(ctx, &w.north))
	require.NoError(t, repos.Stores.Create(ctx, &w.south))

	w.tee = entity.Product{ID: uuid.New().String(), Name: "Classic Tee", SKU: "TEE-001", Category: "Tops", CreatedAt: now}
	w.jeans = entity.Product{ID: uuid.New().String(), Name: "Slim Jeans", SKU: "JEA-001", CreatedAt: now}
	require.NoError(t, repos.Products.Create(ctx, &w.tee))
	require.NoError(t, repos.Products.Create(ctx, &w.jeans))

	w.teeInv = entity.InventoryRecord{ID: uuid.New().String(), StoreID: w.north.ID, ProductID: w.tee.ID, Quantity: 3, LowStockThreshold: 5, UpdatedAt: now}
	require.NoError(t, repos.Inventory.Create(ctx, &w.teeInv))
	jeansInv := entity.InventoryRecord{ID: uuid.New().String(), StoreID: w.south.ID, ProductID: w.jeans.ID, Quantity: 40, LowStockThreshold: 10, UpdatedAt: now}
	require.NoError(t, repos.Inventory.Create(ctx, &jeansInv))
	return w
}

func (w *world) sale(t *testing.T, store entity.Store, p entity.Product, qty int, unit string, at time.Time) {
	t.Helper()
	price := decimal.RequireFromString(unit)
	s := entity.Sale{
		ID:          uuid.New().String(),
		StoreID:     store.ID,
		ProductID:   p.ID,
		Quantity:    qty,
		UnitPrice:   price,
		TotalAmount: price.Mul(decimal.NewFromInt(int64(qty))),
		Timestamp:   at,
	}
	require.NoError(t, w.repos.Sales.Create(context.Background(), &s))
}

type fakePDF struct {
	got *dto.SalesReportResponse
}

func (f *fakePDF) GenerateSalesReport(r *dto.SalesReportResponse) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Analytics
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalytics_AgregaPorProductoTiendaYCategoria(t *testing.T) {
	w := newWorld(t)
	now := time.Now().UTC()
	w.sale(t, w.north, w.tee, 2, "10.00", now)
	w.sale(t, w.south, w.jeans, 1, "50.00", now.AddDate(0, 0, -2))
	w.sale(t, w.north, w.tee, 1, "10.00", now.AddDate(0, 0, -30))

	uc := analytics.NewAnalyticsUseCase(w.repos.Analytics, w.repos.Sales)
	out, err := uc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalSales)
	assert.True(t, decimal.RequireFromString("80").Equal(out.TotalRevenue))

	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "JEA-001", out.TopProducts[0].SKU)
	assert.Equal(t, 3, out.TopProducts[1].UnitsSold)

	require.Len(t, out.SalesByStore, 2)
	require.Len(t, out.SalesByCategory, 2)
	cats := map[string]int{}
	for _, c := range out.SalesByCategory {
		cats[c.Category] = c.UnitsSold
	}
	assert.Equal(t, 3, cats["Tops"])
	assert.Equal(t, 1, cats["Uncategorized"])
}

func TestAnalytics_VentanaDiariaRellenaSieteDias(t *testing.T) {
	w := newWorld(t)
	now := time.Now().UTC()
	w.sale(t, w.north, w.tee, 2, "10.00", now)
	w.sale(t, w.south, w.jeans, 1, "50.00", now.AddDate(0, 0, -30))

	out, err := analytics.NewAnalyticsUseCase(w.repos.Analytics, w.repos.Sales).Get(context.Background())
	require.NoError(t, err)

	require.Len(t, out.DailySales, 7)
	last := out.DailySales[6]
	assert.Equal(t, now.Format("2006-01-02"), last.Date)
	assert.Equal(t, 1, last.Sales)
	assert.True(t, decimal.RequireFromString("20").Equal(last.Revenue))
	for _, d := range out.DailySales[:6] {
		assert.Zero(t, d.Sales)
		assert.True(t, d.Revenue.IsZero())
	}
}

func TestAnalytics_SinVentas(t *testing.T) {
	w := newWorld(t)
	out, err := analytics.NewAnalyticsUseCase(w.repos.Analytics, w.repos.Sales).Get(context.Background())
	require.NoError(t, err)

	assert.Empty(t, out.TopProducts)
	assert.Len(t, out.DailySales, 7)
	assert.Zero(t, out.TotalSales)
	assert.True(t, out.TotalRevenue.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesReport_FiltraPeriodoConFinInclusivo(t *testing.T) {
	w := newWorld(t)
	day := func(s string, h int) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d.Add(time.Duration(h) * time.Hour)
	}
	w.sale(t, w.north, w.tee, 1, "10.00", day("2024-03-01", 9))
	w.sale(t, w.north, w.tee, 2, "10.00", day("2024-03-05", 23))
	w.sale(t, w.south, w.jeans, 1, "50.00", day("2024-03-06", 1))

	uc := analytics.NewReportUseCase(w.repos.Sales, &fakePDF{})
	out, err := uc.SalesReport(context.Background(), dto.SalesReportRequest{StartDate: "2024-03-01", EndDate: "2024-03-05"})
	require.NoError(t, err)

	require.Len(t, out.Lines, 2)
	assert.Equal(t, 2, out.Lines[0].Quantity, "más reciente primero")
	assert.Equal(t, 3, out.TotalUnits)
	assert.True(t, decimal.RequireFromString("30").Equal(out.TotalRevenue))
	assert.Equal(t, "2024-03-01", out.StartDate)
	assert.Equal(t, "2024-03-05", out.EndDate)
}

func TestSalesReport_FechaInvalidaSeIgnora(t *testing.T) {
	w := newWorld(t)
	now := time.Now().UTC()
	w.sale(t, w.north, w.tee, 1, "10.00", now.AddDate(-1, 0, 0))
	w.sale(t, w.north, w.tee, 1, "10.00", now)

	uc := analytics.NewReportUseCase(w.repos.Sales, &fakePDF{})
	out, err := uc.SalesReport(context.Background(), dto.SalesReportRequest{StartDate: "ayer", EndDate: "31/12/2099"})
	require.NoError(t, err)

	assert.Len(t, out.Lines, 2)
	assert.Empty(t, out.StartDate)
	assert.Empty(t, out.EndDate)
}

func TestSalesReportPDF_DelegaEnGenerador(t *testing.T) {
	w := newWorld(t)
	w.sale(t, w.north, w.tee, 1, "10.00", time.Now())
	pdf := &fakePDF{}

	b, err := analytics.NewReportUseCase(w.repos.Sales, pdf).SalesReportPDF(context.Background(), dto.SalesReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "%PDF-fake", string(b))
	require.NotNil(t, pdf.got)
	assert.Len(t, pdf.got.Lines, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard del administrador
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_AdminVeResumenGlobal(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	require.NoError(t, w.repos.Users.Create(ctx, &entity.User{ID: uuid.New().String(), Username: "m1", Role: entity.RoleManager, StoreID: w.north.ID}))
	require.NoError(t, w.repos.Users.Create(ctx, &entity.User{ID: uuid.New().String(), Username: "s1", Role: entity.RoleSupplier, SupplierName: "Universal Fashions"}))
	w.sale(t, w.north, w.tee, 2, "10.00", time.Now())

	uc := analytics.NewDashboardUseCase(w.repos.Stores, w.repos.Users, w.repos.Inventory, w.repos.Sales)
	out, err := uc.GetSummary(ctx, entity.Actor{UserID: "admin", Role: entity.RoleAdmin})
	require.NoError(t, err)

	assert.Len(t, out.Stores, 2)
	assert.Len(t, out.Managers, 1)
	assert.Len(t, out.Suppliers, 1)
	assert.Len(t, out.Inventory, 2)
	assert.Equal(t, 1, out.LowStockCount)
	assert.Equal(t, 1, out.SalesCount)
	assert.True(t, decimal.RequireFromString("20").Equal(out.SalesTotal))
}

func TestDashboard_ManagerRechazado(t *testing.T) {
	w := newWorld(t)
	uc := analytics.NewDashboardUseCase(w.repos.Stores, w.repos.Users, w.repos.Inventory, w.repos.Sales)

	_, err := uc.GetSummary(context.Background(), entity.Actor{UserID: "m", Role: entity.RoleManager, StoreID: w.north.ID})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
