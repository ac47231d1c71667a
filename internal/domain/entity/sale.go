package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registro inmutable de una venta en punto de venta.
// Quantity conserva lo vendido aunque el inventario se haya recortado a cero.
type Sale struct {
	ID          string
	InventoryID string
	StoreID     string
	ProductID   string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal // Quantity * UnitPrice
	SoldBy      string          // UserID del manager
	Timestamp   time.Time
}
