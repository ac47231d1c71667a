package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/application/inventory"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/event"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

func TestRecordSale_DescuentaInventario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 25, 5)
	uc := inventory.NewSaleUseCase(f.repos.Tx, f.notifier)

	sale, err := uc.RecordSale(ctx, f.manager, dto.RecordSaleRequest{
		InventoryID: f.inv.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("29.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, sale.Quantity)
	assert.True(t, decimal.RequireFromString("89.97").Equal(sale.TotalAmount))
	assert.Equal(t, 22, sale.RemainingQuantity)
	assert.False(t, sale.IsLow)
	assert.Equal(t, f.manager.UserID, sale.SoldBy)
	assert.Equal(t, 22, f.quantity(t))
	assert.Empty(t, f.notifier.types())
}

func TestRecordSale_VentaMayorAlStockQuedaEnCero(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3, 5)
	uc := inventory.NewSaleUseCase(f.repos.Tx, f.notifier)

	sale, err := uc.RecordSale(ctx, f.manager, dto.RecordSaleRequest{
		InventoryID: f.inv.ID, Quantity: 10, UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, sale.Quantity, "la venta conserva la cantidad completa")
	assert.True(t, decimal.NewFromInt(100).Equal(sale.TotalAmount))
	assert.Equal(t, 0, f.quantity(t))
	assert.True(t, sale.IsLow)

	lines, err := f.repos.Sales.List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 10, lines[0].Sale.Quantity)
	assert.Equal(t, "TEE-001", lines[0].SKU)

	assert.Equal(t, []event.Type{event.LowStock}, f.notifier.types())
}

func TestRecordSale_TiendaDistintaEsConflicto(t *testing.T) {
	f := newFixture(t, 10, 5)
	uc := inventory.NewSaleUseCase(f.repos.Tx, f.notifier)
	outsider := entity.Actor{UserID: "m2", Role: entity.RoleManager, StoreID: f.other.ID}

	_, err := uc.RecordSale(context.Background(), outsider, dto.RecordSaleRequest{
		InventoryID: f.inv.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 10, f.quantity(t))

	lines, err := f.repos.Sales.List(context.Background(), repository.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, lines, "un conflicto no deja ventas registradas")
}

func TestRecordSale_Validaciones(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10, 5)
	uc := inventory.NewSaleUseCase(f.repos.Tx, f.notifier)

	_, err := uc.RecordSale(ctx, f.manager, dto.RecordSaleRequest{InventoryID: f.inv.ID, Quantity: 0, UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.RecordSale(ctx, f.manager, dto.RecordSaleRequest{InventoryID: f.inv.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.RecordSale(ctx, f.manager, dto.RecordSaleRequest{InventoryID: "no-existe", Quantity: 1, UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RecordSale(ctx, f.supplier, dto.RecordSaleRequest{InventoryID: f.inv.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, 10, f.quantity(t))
}
