package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddProductRequest entrada para crear un producto o actualizar el existente con ese SKU.
// En actualización solo se modifican los campos informados.
type AddProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	SKU         string           `json:"sku" validate:"required,min=1,max=100"`
	Category    *string          `json:"category"`
	Size        *string          `json:"size"`
	Color       *string          `json:"color"`
	Price       *decimal.Decimal `json:"price"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	ImageURL    *string          `json:"image_url"`
	Description *string          `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string           `json:"id"`
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Size         string           `json:"size"`
	Color        string           `json:"color"`
	Price        *decimal.Decimal `json:"price"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	ProfitMargin decimal.Decimal  `json:"profit_margin"` // %
	ImageURL     string           `json:"image_url"`
	Description  string           `json:"description"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// AddProductResponse producto y fila de inventario asegurada en la tienda del manager.
type AddProductResponse struct {
	Product   ProductResponse       `json:"product"`
	Inventory InventoryItemResponse `json:"inventory"`
	Created   bool                  `json:"created"` // false = SKU existente actualizado
}

// ProductSearchRequest parámetros de GET /api/products/search.
type ProductSearchRequest struct {
	Query    string `query:"q"`
	Category string `query:"category"`
	Size     string `query:"size"`
	Color    string `query:"color"`
}

// StoreStockDTO stock de un producto en una tienda.
type StoreStockDTO struct {
	InventoryID string `json:"inventory_id"`
	StoreID     string `json:"store_id"`
	StoreName   string `json:"store_name"`
	Quantity    int    `json:"quantity"`
	IsLow       bool   `json:"is_low"`
}

// ProductSearchItem producto con su stock por tienda.
type ProductSearchItem struct {
	Product   ProductResponse `json:"product"`
	Inventory []StoreStockDTO `json:"inventory"`
}

// FacetsDTO valores distintos del catálogo para filtros.
type FacetsDTO struct {
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
}

// ProductSearchResponse resultado de búsqueda con facetas.
type ProductSearchResponse struct {
	Items  []ProductSearchItem `json:"items"`
	Facets FacetsDTO           `json:"facets"`
}
