// Package event define las notificaciones que emite el motor de inventario.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Type nombre del evento; se usa también como sufijo del routing key.
type Type string

const (
	RestockSubmitted Type = "restock.submitted"
	RestockApproved  Type = "restock.approved"
	RestockRejected  Type = "restock.rejected"
	RestockShipped   Type = "restock.shipped"
	LowStock         Type = "inventory.low_stock"
)

// Event notificación publicada después de confirmar la transacción.
type Event struct {
	ID         string         `json:"id"`
	Type       Type           `json:"event_type"`
	StoreID    string         `json:"store_id,omitempty"`
	ActorID    string         `json:"actor_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// New crea un evento con ID y fecha asignados.
func New(t Type, storeID, actorID string, payload map[string]any) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       t,
		StoreID:    storeID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// RoutingKey clave de enrutamiento en el exchange topic.
func (e Event) RoutingKey() string {
	return "stylelane." + string(e.Type)
}
