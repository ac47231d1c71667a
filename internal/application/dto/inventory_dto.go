package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItemResponse fila de inventario con datos de producto.
type InventoryItemResponse struct {
	ID                string           `json:"id"`
	StoreID           string           `json:"store_id"`
	StoreName         string           `json:"store_name,omitempty"`
	ProductID         string           `json:"product_id"`
	SKU               string           `json:"sku"`
	ProductName       string           `json:"product_name"`
	Category          string           `json:"category"`
	Size              string           `json:"size"`
	Color             string           `json:"color"`
	Price             *decimal.Decimal `json:"price"`
	Quantity          int              `json:"quantity"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	IsLow             bool             `json:"is_low"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// UpdateThresholdRequest body de PATCH /api/manager/inventory/:id/threshold.
type UpdateThresholdRequest struct {
	LowStockThreshold int `json:"low_stock_threshold" validate:"min=0"`
}

// RecordSaleRequest body de POST /api/manager/sales.
type RecordSaleRequest struct {
	InventoryID string          `json:"inventory_id" validate:"required,uuid"`
	Quantity    int             `json:"quantity" validate:"min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// SaleResponse salida de una venta registrada.
type SaleResponse struct {
	ID                string          `json:"id"`
	InventoryID       string          `json:"inventory_id"`
	StoreID           string          `json:"store_id"`
	ProductID         string          `json:"product_id"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	SoldBy            string          `json:"sold_by"`
	Timestamp         time.Time       `json:"timestamp"`
	RemainingQuantity int             `json:"remaining_quantity"`
	IsLow             bool            `json:"is_low"`
}

// CreateRestockRequest body de POST /api/manager/restock-requests.
type CreateRestockRequest struct {
	InventoryID string `json:"inventory_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"min=1"`
	Notes       string `json:"notes"`
}

// TransitionRequest body de POST /api/supplier/restock-requests/:id/transition.
type TransitionRequest struct {
	Action       string `json:"action" validate:"required,oneof=accept reject ship"`
	TrackingInfo string `json:"tracking_info"`
}

// ShipmentResponse despacho asociado a una solicitud.
type ShipmentResponse struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	TrackingInfo string    `json:"tracking_info"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RestockResponse salida de una solicitud de reposición.
type RestockResponse struct {
	ID                string            `json:"id"`
	InventoryID       string            `json:"inventory_id"`
	StoreID           string            `json:"store_id"`
	StoreName         string            `json:"store_name,omitempty"`
	ProductID         string            `json:"product_id"`
	SKU               string            `json:"sku,omitempty"`
	ProductName       string            `json:"product_name,omitempty"`
	QuantityRequested int               `json:"quantity_requested"`
	Status            string            `json:"status"`
	ManagerID         string            `json:"manager_id"`
	SupplierID        string            `json:"supplier_id,omitempty"`
	Notes             string            `json:"notes"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Shipment          *ShipmentResponse `json:"shipment,omitempty"`
}

// LowStockStoreDTO tienda donde un producto está en stock bajo.
type LowStockStoreDTO struct {
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"low_stock_threshold"`
}

// RestockSuggestionDTO producto con alta rotación reciente y stock bajo en alguna tienda.
type RestockSuggestionDTO struct {
	ProductID         string             `json:"product_id"`
	SKU               string             `json:"sku"`
	ProductName       string             `json:"product_name"`
	UnitsSoldLast30d  int                `json:"units_sold_last_30d"`
	LowStockStores    []LowStockStoreDTO `json:"low_stock_stores"`
	SuggestedQuantity int                `json:"suggested_quantity"`
	Priority          int                `json:"priority"` // 1 = más urgente
}

// RecommendationsResponse respuesta de GET /api/recommendations.
type RecommendationsResponse struct {
	Restock     []RestockSuggestionDTO `json:"restock"`
	TopProducts []ProductSalesDTO      `json:"top_products"`
}
