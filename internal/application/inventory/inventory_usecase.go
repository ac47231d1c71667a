package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// InventoryUseCase operaciones del manager sobre el catálogo y el inventario de su tienda.
// La cantidad nunca se sobrescribe aquí: solo ventas y despachos la modifican.
type InventoryUseCase struct {
	txRunner    TxRunner
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:    txRunner,
		invRepo:     invRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
	}
}

// ListStoreInventory lista el inventario de la tienda del manager con datos de producto.
func (uc *InventoryUseCase) ListStoreInventory(ctx context.Context, actor entity.Actor) ([]dto.InventoryItemResponse, error) {
	if err := actor.Require(entity.RoleManager); err != nil {
		return nil, err
	}
	if actor.StoreID == "" {
		return nil, fmt.Errorf("%w: el manager no tiene tienda asignada", domain.ErrConflict)
	}
	items, err := uc.invRepo.ListItems(ctx, repository.InventoryFilter{StoreID: actor.StoreID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToInventoryItemResponse(it))
	}
	return out, nil
}

// AddProduct crea el producto o completa el SKU existente con los campos no vacíos (el nombre
// de un SKU existente no cambia), y asegura una fila de inventario (cantidad 0, umbral por
// defecto) en la tienda del manager.
func (uc *InventoryUseCase) AddProduct(ctx context.Context, actor entity.Actor, in dto.AddProductRequest) (*dto.AddProductResponse, error) {
	if err := actor.Require(entity.RoleManager); err != nil {
		return nil, err
	}
	if actor.StoreID == "" {
		return nil, fmt.Errorf("%w: el manager no tiene tienda asignada", domain.ErrConflict)
	}
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, fmt.Errorf("%w: name y sku son obligatorios", domain.ErrValidation)
	}
	if (in.Price != nil && in.Price.IsNegative()) || (in.CostPrice != nil && in.CostPrice.IsNegative()) {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrValidation)
	}

	store, err := uc.storeRepo.GetByID(ctx, actor.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, actor.StoreID)
	}

	now := time.Now()
	product, err := uc.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	created := product == nil
	if created {
		product = &entity.Product{ID: uuid.New().String(), SKU: sku, Name: name, CreatedAt: now}
	}
	applyProductFields(product, in)
	product.UpdatedAt = now

	if created {
		if err := uc.productRepo.Create(ctx, product); err != nil {
			return nil, err
		}
	} else if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	rec, err := uc.ensureInventory(ctx, store.ID, product.ID, now)
	if err != nil {
		return nil, err
	}

	return &dto.AddProductResponse{
		Product:   dto.ToProductResponse(product),
		Inventory: dto.ToInventoryItemResponse(repository.InventoryItem{Record: *rec, StoreName: store.Name, Product: *product}),
		Created:   created,
	}, nil
}

func (uc *InventoryUseCase) ensureInventory(ctx context.Context, storeID, productID string, now time.Time) (*entity.InventoryRecord, error) {
	rec, err := uc.invRepo.GetByStoreAndProduct(ctx, storeID, productID)
	if err != nil || rec != nil {
		return rec, err
	}
	rec = &entity.InventoryRecord{
		ID:                uuid.New().String(),
		StoreID:           storeID,
		ProductID:         productID,
		Quantity:          0,
		LowStockThreshold: entity.DefaultLowStockThreshold,
		UpdatedAt:         now,
	}
	if err := uc.invRepo.Create(ctx, rec); err != nil {
		// Otra petición creó la fila en paralelo
		if errors.Is(err, domain.ErrConflict) {
			return uc.invRepo.GetByStoreAndProduct(ctx, storeID, productID)
		}
		return nil, err
	}
	return rec, nil
}

// applyProductFields copia los campos informados; un texto vacío no borra el valor actual.
func applyProductFields(p *entity.Product, in dto.AddProductRequest) {
	setText(&p.Category, in.Category)
	setText(&p.Size, in.Size)
	setText(&p.Color, in.Color)
	if in.Price != nil {
		v := *in.Price
		p.Price = &v
	}
	if in.CostPrice != nil {
		v := *in.CostPrice
		p.CostPrice = &v
	}
	setText(&p.ImageURL, in.ImageURL)
	setText(&p.Description, in.Description)
}

func setText(dst *string, v *string) {
	if v == nil {
		return
	}
	if t := strings.TrimSpace(*v); t != "" {
		*dst = t
	}
}

// UpdateThreshold cambia el umbral de stock bajo de una fila de la tienda del manager.
// Se bloquea la fila para no pisar una venta o despacho concurrente.
func (uc *InventoryUseCase) UpdateThreshold(ctx context.Context, actor entity.Actor, inventoryID string, in dto.UpdateThresholdRequest) (*dto.InventoryItemResponse, error) {
	if err := actor.Require(entity.RoleManager); err != nil {
		return nil, err
	}
	if strings.TrimSpace(inventoryID) == "" {
		return nil, fmt.Errorf("%w: id de inventario obligatorio", domain.ErrValidation)
	}
	if in.LowStockThreshold < 0 {
		return nil, fmt.Errorf("%w: el umbral no puede ser negativo", domain.ErrValidation)
	}

	var rec *entity.InventoryRecord
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		_ repository.RestockRepository,
		_ repository.ShipmentRepository,
		_ repository.SaleRepository,
	) error {
		inv, err := invRepo.GetForUpdate(ctx, inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: inventario %s", domain.ErrNotFound, inventoryID)
		}
		if inv.StoreID != actor.StoreID {
			return fmt.Errorf("%w: el inventario pertenece a otra tienda", domain.ErrConflict)
		}
		inv.LowStockThreshold = in.LowStockThreshold
		inv.UpdatedAt = time.Now()
		if err := invRepo.Update(ctx, inv); err != nil {
			return err
		}
		rec = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	items, err := uc.invRepo.ListItems(ctx, repository.InventoryFilter{StoreID: rec.StoreID, ProductID: rec.ProductID})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		out := dto.ToInventoryItemResponse(repository.InventoryItem{Record: *rec})
		return &out, nil
	}
	out := dto.ToInventoryItemResponse(items[0])
	return &out, nil
}
