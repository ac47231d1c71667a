package dto

import "github.com/shopspring/decimal"

// AdminDashboardDTO respuesta de GET /api/admin/dashboard.
type AdminDashboardDTO struct {
	Stores        []StoreResponse         `json:"stores"`
	Managers      []UserResponse          `json:"managers"`
	Suppliers     []UserResponse          `json:"suppliers"`
	Inventory     []InventoryItemResponse `json:"inventory"`
	SalesTotal    decimal.Decimal         `json:"sales_total"`
	SalesCount    int                     `json:"sales_count"`
	LowStockCount int                     `json:"low_stock_count"`
}
