package entity

import "time"

// Estados de Shipment.
const (
	ShipmentStatusPreparing = "preparing"
	ShipmentStatusShipped   = "shipped"
)

// Shipment despacho 1:1 con una RestockRequest; se crea al pasar la solicitud a shipped.
type Shipment struct {
	ID               string
	RestockRequestID string
	Status           string
	TrackingInfo     string
	UpdatedAt        time.Time
}
