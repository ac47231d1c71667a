package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// DashboardUseCase panel del administrador: tiendas, usuarios, inventario global y totales.
//
// Fuente de datos: repositorios de solo lectura; no modifica nada.
type DashboardUseCase struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
	invRepo   repository.InventoryRepository
	saleRepo  repository.SaleRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	invRepo repository.InventoryRepository,
	saleRepo repository.SaleRepository,
) *DashboardUseCase {
	return &DashboardUseCase{storeRepo: storeRepo, userRepo: userRepo, invRepo: invRepo, saleRepo: saleRepo}
}

// GetSummary construye el AdminDashboardDTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actor entity.Actor) (*dto.AdminDashboardDTO, error) {
	if err := actor.Require(entity.RoleAdmin); err != nil {
		return nil, err
	}
	stores, err := uc.storeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: tiendas: %w", err)
	}
	managers, err := uc.userRepo.ListByRole(ctx, entity.RoleManager)
	if err != nil {
		return nil, fmt.Errorf("dashboard: managers: %w", err)
	}
	suppliers, err := uc.userRepo.ListByRole(ctx, entity.RoleSupplier)
	if err != nil {
		return nil, fmt.Errorf("dashboard: suppliers: %w", err)
	}
	items, err := uc.invRepo.ListItems(ctx, repository.InventoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", err)
	}
	revenue, count, err := uc.saleRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", err)
	}

	out := &dto.AdminDashboardDTO{
		Stores:     make([]dto.StoreResponse, 0, len(stores)),
		Managers:   make([]dto.UserResponse, 0, len(managers)),
		Suppliers:  make([]dto.UserResponse, 0, len(suppliers)),
		Inventory:  make([]dto.InventoryItemResponse, 0, len(items)),
		SalesTotal: revenue.Round(2),
		SalesCount: count,
	}
	for _, s := range stores {
		out.Stores = append(out.Stores, dto.ToStoreResponse(s))
	}
	for _, u := range managers {
		out.Managers = append(out.Managers, dto.ToUserResponse(u))
	}
	for _, u := range suppliers {
		out.Suppliers = append(out.Suppliers, dto.ToUserResponse(u))
	}
	for _, it := range items {
		row := dto.ToInventoryItemResponse(it)
		if row.IsLow {
			out.LowStockCount++
		}
		out.Inventory = append(out.Inventory, row)
	}
	return out, nil
}
