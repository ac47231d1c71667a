package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/event"
	"github.com/jhoicas/stylelane-api/internal/domain/inventory"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// SaleUseCase registra ventas de punto de venta contra el inventario de la tienda.
type SaleUseCase struct {
	txRunner TxRunner
	notifier Notifier
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, notifier Notifier) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, notifier: notifier}
}

// RecordSale bloquea la fila de inventario, descuenta lo vendido con piso en cero y guarda
// la venta con la cantidad completa. Si la fila queda en stock bajo se emite inventory.low_stock.
func (uc *SaleUseCase) RecordSale(ctx context.Context, actor entity.Actor, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if err := actor.Require(entity.RoleManager); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.InventoryID) == "" {
		return nil, fmt.Errorf("%w: inventory_id es obligatorio", domain.ErrValidation)
	}
	if err := inventory.ValidateSale(in.Quantity, in.UnitPrice); err != nil {
		return nil, err
	}

	var sale *entity.Sale
	var rec *entity.InventoryRecord

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		_ repository.RestockRepository,
		_ repository.ShipmentRepository,
		saleRepo repository.SaleRepository,
	) error {
		inv, err := invRepo.GetForUpdate(ctx, in.InventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: inventario %s", domain.ErrNotFound, in.InventoryID)
		}
		if inv.StoreID != actor.StoreID {
			return fmt.Errorf("%w: el inventario pertenece a otra tienda", domain.ErrConflict)
		}

		now := time.Now()
		inv.Quantity = inventory.ApplySale(inv.Quantity, in.Quantity)
		inv.UpdatedAt = now
		if err := invRepo.Update(ctx, inv); err != nil {
			return err
		}

		s := &entity.Sale{
			ID:          uuid.New().String(),
			InventoryID: inv.ID,
			StoreID:     inv.StoreID,
			ProductID:   inv.ProductID,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalAmount: inventory.SaleTotal(in.Quantity, in.UnitPrice),
			SoldBy:      actor.UserID,
			Timestamp:   now,
		}
		if err := saleRepo.Create(ctx, s); err != nil {
			return err
		}
		sale, rec = s, inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rec.IsLow() {
		notify(ctx, uc.notifier, event.New(event.LowStock, rec.StoreID, actor.UserID, map[string]any{
			"inventory_id":        rec.ID,
			"product_id":          rec.ProductID,
			"quantity":            rec.Quantity,
			"low_stock_threshold": rec.LowStockThreshold,
		}))
	}

	return &dto.SaleResponse{
		ID:                sale.ID,
		InventoryID:       sale.InventoryID,
		StoreID:           sale.StoreID,
		ProductID:         sale.ProductID,
		Quantity:          sale.Quantity,
		UnitPrice:         sale.UnitPrice,
		TotalAmount:       sale.TotalAmount,
		SoldBy:            sale.SoldBy,
		Timestamp:         sale.Timestamp,
		RemainingQuantity: rec.Quantity,
		IsLow:             rec.IsLow(),
	}, nil
}
