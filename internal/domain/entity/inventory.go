package entity

import "time"

// DefaultLowStockThreshold umbral usado cuando el manager no indica uno.
const DefaultLowStockThreshold = 10

// InventoryRecord stock de un producto en una tienda (par único store+product).
// Quantity solo cambia por una venta (resta, con piso en cero) o por el despacho
// de una solicitud de reposición (suma, una única vez por solicitud).
type InventoryRecord struct {
	ID                string
	StoreID           string
	ProductID         string
	Quantity          int
	LowStockThreshold int
	UpdatedAt         time.Time
}

// IsLow indica stock bajo: cantidad actual menor o igual al umbral.
func (r *InventoryRecord) IsLow() bool {
	return r.Quantity <= r.LowStockThreshold
}
