package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductSales ventas agregadas por producto.
type ProductSales struct {
	ProductID string
	SKU       string
	Name      string
	Units     int
	Revenue   decimal.Decimal
}

// StoreSales ventas agregadas por tienda.
type StoreSales struct {
	StoreID   string
	StoreName string
	Units     int
	Revenue   decimal.Decimal
}

// DailyRevenue ingreso de un día (fecha en formato YYYY-MM-DD, UTC).
type DailyRevenue struct {
	Day     string
	Revenue decimal.Decimal
	Sales   int
}

// CategorySales ventas agregadas por categoría de producto.
type CategorySales struct {
	Category string
	Units    int
	Revenue  decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para analítica de ventas.
// Las implementaciones son read-only (no modifican datos). since nil = todo el histórico.
type AnalyticsRepository interface {
	// TopProducts devuelve los productos con mayor ingreso, descendente.
	TopProducts(ctx context.Context, since *time.Time, limit int) ([]ProductSales, error)
	// UnitsSoldSince devuelve productos con al menos minUnits unidades vendidas desde since.
	UnitsSoldSince(ctx context.Context, since time.Time, minUnits int) ([]ProductSales, error)
	SalesByStore(ctx context.Context) ([]StoreSales, error)
	// DailyRevenueSince devuelve solo los días con ventas, ascendente.
	DailyRevenueSince(ctx context.Context, since time.Time) ([]DailyRevenue, error)
	SalesByCategory(ctx context.Context) ([]CategorySales, error)
}
