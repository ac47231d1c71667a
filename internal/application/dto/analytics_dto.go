package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Analítica ─────────────────────────────────────────────────────────────────

// ProductSalesDTO ventas agregadas por producto.
type ProductSalesDTO struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// StoreSalesDTO ventas agregadas por tienda.
type StoreSalesDTO struct {
	StoreID   string          `json:"store_id"`
	StoreName string          `json:"store_name"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DailySalesDTO ingreso de un día.
type DailySalesDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Sales   int             `json:"sales"`
}

// CategorySalesDTO ventas agregadas por categoría.
type CategorySalesDTO struct {
	Category  string          `json:"category"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// AnalyticsResponse respuesta de GET /api/analytics.
type AnalyticsResponse struct {
	TopProducts     []ProductSalesDTO  `json:"top_products"`
	SalesByStore    []StoreSalesDTO    `json:"sales_by_store"`
	DailySales      []DailySalesDTO    `json:"daily_sales"` // últimos 7 días, incluye días sin ventas
	SalesByCategory []CategorySalesDTO `json:"sales_by_category"`
	TotalRevenue    decimal.Decimal    `json:"total_revenue"`
	TotalSales      int                `json:"total_sales"`
}

// ── Reporte de ventas ─────────────────────────────────────────────────────────

// SalesReportRequest parámetros de GET /api/reports/sales.
type SalesReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; inválida se ignora
	EndDate   string `query:"end_date"`   // YYYY-MM-DD inclusive; inválida se ignora
}

// SalesReportLine una venta del reporte.
type SalesReportLine struct {
	SaleID      string          `json:"sale_id"`
	Timestamp   time.Time       `json:"timestamp"`
	StoreName   string          `json:"store_name"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SalesReportResponse reporte de ventas del período.
type SalesReportResponse struct {
	StartDate    string            `json:"start_date,omitempty"`
	EndDate      string            `json:"end_date,omitempty"`
	Lines        []SalesReportLine `json:"lines"`
	TotalUnits   int               `json:"total_units"`
	TotalRevenue decimal.Decimal   `json:"total_revenue"`
	GeneratedAt  time.Time         `json:"generated_at"`
}
