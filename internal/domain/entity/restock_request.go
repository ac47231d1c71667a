package entity

import "time"

// Estados de una solicitud de reposición.
const (
	RestockStatusPending  = "pending"
	RestockStatusApproved = "approved"
	RestockStatusRejected = "rejected" // terminal
	RestockStatusShipped  = "shipped"  // terminal
)

// RestockRequest solicitud de reposición creada por un manager y atendida por un supplier.
// QuantityRequested queda fija desde la creación.
type RestockRequest struct {
	ID                string
	InventoryID       string
	StoreID           string
	ProductID         string
	QuantityRequested int
	Status            string
	ManagerID         string
	SupplierID        string // vacío hasta la primera acción de un supplier
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Shipment *Shipment // nil hasta el despacho
}
