package repository

import (
	"context"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

// InventoryItem fila de inventario enriquecida con datos de producto y tienda (solo lectura).
type InventoryItem struct {
	Record    entity.InventoryRecord
	StoreName string
	Product   entity.Product
}

// InventoryFilter criterios para ListItems. Campos vacíos no filtran.
type InventoryFilter struct {
	StoreID   string
	ProductID string
	LowOnly   bool
}

// InventoryRepository define el puerto de persistencia para InventoryRecord.
// Usado dentro de transacciones para garantizar consistencia de cantidades.
type InventoryRepository interface {
	// Create devuelve domain.ErrConflict si ya existe el par tienda+producto.
	Create(ctx context.Context, rec *entity.InventoryRecord) error
	GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error)
	// GetForUpdate obtiene la fila y la bloquea hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error)
	GetByStoreAndProduct(ctx context.Context, storeID, productID string) (*entity.InventoryRecord, error)
	// Update persiste quantity, low_stock_threshold y updated_at.
	Update(ctx context.Context, rec *entity.InventoryRecord) error
	// ListItems ordena por tienda y nombre de producto.
	ListItems(ctx context.Context, filter InventoryFilter) ([]InventoryItem, error)
}
