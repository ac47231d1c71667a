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
	"github.com/jhoicas/stylelane-api/internal/domain/restock"
)

// openStatuses estados visibles para los suppliers.
var openStatuses = []string{
	entity.RestockStatusPending,
	entity.RestockStatusApproved,
	entity.RestockStatusShipped,
}

// RestockUseCase motor de solicitudes de reposición: creación por el manager y
// transiciones (accept/reject/ship) por el supplier, con bloqueo de fila y Commit/Rollback.
type RestockUseCase struct {
	txRunner    TxRunner
	invRepo     repository.InventoryRepository
	restockRepo repository.RestockRepository
	notifier    Notifier
}

// NewRestockUseCase construye el caso de uso.
func NewRestockUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	restockRepo repository.RestockRepository,
	notifier Notifier,
) *RestockUseCase {
	return &RestockUseCase{
		txRunner:    txRunner,
		invRepo:     invRepo,
		restockRepo: restockRepo,
		notifier:    notifier,
	}
}

// SubmitRestock crea una solicitud pending para una fila de inventario de la tienda del manager.
func (uc *RestockUseCase) SubmitRestock(ctx context.Context, actor entity.Actor, in dto.CreateRestockRequest) (*dto.RestockResponse, error) {
	if err := actor.Require(entity.RoleManager); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.InventoryID) == "" {
		return nil, fmt.Errorf("%w: inventory_id es obligatorio", domain.ErrValidation)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad solicitada debe ser mayor a cero", domain.ErrValidation)
	}

	inv, err := uc.invRepo.GetByID(ctx, in.InventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: inventario %s", domain.ErrNotFound, in.InventoryID)
	}
	if inv.StoreID != actor.StoreID {
		return nil, fmt.Errorf("%w: el inventario pertenece a otra tienda", domain.ErrConflict)
	}

	now := time.Now()
	req := &entity.RestockRequest{
		ID:                uuid.New().String(),
		InventoryID:       inv.ID,
		StoreID:           inv.StoreID,
		ProductID:         inv.ProductID,
		QuantityRequested: in.Quantity,
		Status:            entity.RestockStatusPending,
		ManagerID:         actor.UserID,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.restockRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, event.New(event.RestockSubmitted, req.StoreID, actor.UserID, map[string]any{
		"restock_request_id": req.ID,
		"inventory_id":       req.InventoryID,
		"product_id":         req.ProductID,
		"quantity_requested": req.QuantityRequested,
	}))

	out := dto.ToRestockResponse(req)
	return &out, nil
}

// Transition aplica una acción del supplier sobre la solicitud.
// Dentro de la transacción: bloquea la solicitud, evalúa la tabla de transiciones y, en ship,
// bloquea el inventario, suma la cantidad y crea/actualiza el Shipment. Orden de bloqueo:
// solicitud y luego inventario.
func (uc *RestockUseCase) Transition(ctx context.Context, actor entity.Actor, requestID string, in dto.TransitionRequest) (*dto.RestockResponse, error) {
	if err := actor.Require(entity.RoleSupplier); err != nil {
		return nil, err
	}
	if strings.TrimSpace(requestID) == "" {
		return nil, fmt.Errorf("%w: id de solicitud obligatorio", domain.ErrValidation)
	}
	action, err := restock.ParseAction(in.Action)
	if err != nil {
		return nil, err
	}

	var result *entity.RestockRequest
	var restocked *entity.InventoryRecord

	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		restockRepo repository.RestockRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.SaleRepository,
	) error {
		result, restocked = nil, nil

		req, err := restockRepo.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return fmt.Errorf("%w: solicitud %s", domain.ErrNotFound, requestID)
		}
		rule, err := restock.Next(req.Status, action)
		if err != nil {
			return err
		}

		now := time.Now()
		if rule.Effect == restock.EffectFulfill {
			inv, err := invRepo.GetForUpdate(ctx, req.InventoryID)
			if err != nil {
				return err
			}
			if inv == nil {
				return fmt.Errorf("%w: el inventario de la solicitud ya no existe", domain.ErrValidation)
			}
			inv.Quantity = inventory.ApplyRestock(inv.Quantity, req.QuantityRequested)
			inv.UpdatedAt = now
			if err := invRepo.Update(ctx, inv); err != nil {
				return err
			}

			shipment, err := shipmentRepo.GetByRequestID(ctx, req.ID)
			if err != nil {
				return err
			}
			if shipment == nil {
				shipment = &entity.Shipment{
					ID:               uuid.New().String(),
					RestockRequestID: req.ID,
					Status:           entity.ShipmentStatusPreparing,
				}
			}
			shipment.Status = entity.ShipmentStatusShipped
			if tracking := strings.TrimSpace(in.TrackingInfo); tracking != "" {
				shipment.TrackingInfo = tracking
			}
			shipment.UpdatedAt = now
			if err := shipmentRepo.Upsert(ctx, shipment); err != nil {
				return err
			}
			req.Shipment = shipment
			restocked = inv
		}

		req.Status = rule.Next
		req.SupplierID = actor.UserID
		req.UpdatedAt = now
		if err := restockRepo.Update(ctx, req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"restock_request_id": result.ID,
		"inventory_id":       result.InventoryID,
		"product_id":         result.ProductID,
		"quantity_requested": result.QuantityRequested,
		"status":             result.Status,
	}
	if result.Shipment != nil {
		payload["tracking_info"] = result.Shipment.TrackingInfo
	}
	if restocked != nil {
		payload["new_quantity"] = restocked.Quantity
	}
	notify(ctx, uc.notifier, event.New(event.Type(restock.EventType(result.Status)), result.StoreID, actor.UserID, payload))

	out := dto.ToRestockResponse(result)
	return &out, nil
}

// ListStoreRestocks lista las solicitudes de la tienda del manager (más recientes primero).
func (uc *RestockUseCase) ListStoreRestocks(ctx context.Context, actor entity.Actor) ([]dto.RestockResponse, error) {
	if err := actor.Require(entity.RoleManager); err != nil {
		return nil, err
	}
	items, err := uc.restockRepo.List(ctx, repository.RestockFilter{StoreID: actor.StoreID})
	if err != nil {
		return nil, err
	}
	return toRestockResponses(items), nil
}

// ListOpenRequests lista las solicitudes pending, approved y shipped para los suppliers.
func (uc *RestockUseCase) ListOpenRequests(ctx context.Context, actor entity.Actor) ([]dto.RestockResponse, error) {
	if err := actor.Require(entity.RoleSupplier, entity.RoleAdmin); err != nil {
		return nil, err
	}
	items, err := uc.restockRepo.List(ctx, repository.RestockFilter{Statuses: openStatuses})
	if err != nil {
		return nil, err
	}
	return toRestockResponses(items), nil
}

func toRestockResponses(items []repository.RestockItem) []dto.RestockResponse {
	out := make([]dto.RestockResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToRestockItemResponse(it))
	}
	return out
}
