package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

// SaleFilter rango de fechas [From, To). Nil = sin límite.
type SaleFilter struct {
	From    *time.Time
	To      *time.Time
	StoreID string
}

// SaleLine venta con datos descriptivos para reportes.
type SaleLine struct {
	Sale        entity.Sale
	ProductName string
	SKU         string
	StoreName   string
}

// SaleRepository define el puerto de persistencia para Sale. Las ventas no se modifican.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// List devuelve las ventas más recientes primero.
	List(ctx context.Context, filter SaleFilter) ([]SaleLine, error)
	// Totals devuelve ingreso total y número de ventas.
	Totals(ctx context.Context) (revenue decimal.Decimal, count int, err error)
}
