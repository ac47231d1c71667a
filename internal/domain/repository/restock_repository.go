package repository

import (
	"context"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

// RestockFilter criterios de listado. Statuses vacío no filtra.
type RestockFilter struct {
	StoreID  string
	Statuses []string
}

// RestockItem solicitud con datos descriptivos (incluye su Shipment si existe).
type RestockItem struct {
	Request     entity.RestockRequest
	ProductName string
	SKU         string
	StoreName   string
}

// RestockRepository define el puerto de persistencia para RestockRequest.
type RestockRepository interface {
	Create(ctx context.Context, req *entity.RestockRequest) error
	// GetByID incluye el Shipment asociado si existe.
	GetByID(ctx context.Context, id string) (*entity.RestockRequest, error)
	// GetForUpdate obtiene la solicitud y la bloquea hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.RestockRequest, error)
	// Update persiste status, supplier_id y updated_at.
	Update(ctx context.Context, req *entity.RestockRequest) error
	// List devuelve las solicitudes más recientes primero.
	List(ctx context.Context, filter RestockFilter) ([]RestockItem, error)
}

// ShipmentRepository define el puerto de persistencia para Shipment (1:1 con RestockRequest).
type ShipmentRepository interface {
	GetByRequestID(ctx context.Context, requestID string) (*entity.Shipment, error)
	// Upsert inserta o actualiza por restock_request_id.
	Upsert(ctx context.Context, shipment *entity.Shipment) error
}
