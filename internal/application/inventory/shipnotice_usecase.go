package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// ShipNotice datos del aviso de despacho (ASN) de una solicitud ya despachada.
type ShipNotice struct {
	RequestID    string
	ShipmentID   string
	TrackingInfo string
	ShippedAt    time.Time
	Quantity     int
	Store        entity.Store
	Product      entity.Product
	Supplier     *entity.User // nil si el supplier ya no existe
}

// ShipNoticeDocument documento XML generado y su digest sobre la forma canónica.
type ShipNoticeDocument struct {
	Filename string
	XML      []byte
	Digest   string // base64(SHA-256(C14N(xml)))
}

// ShipNoticeBuilder genera el XML del ASN (implementación en infrastructure/asn).
type ShipNoticeBuilder interface {
	Build(n ShipNotice) (*ShipNoticeDocument, error)
}

// ShipNoticeUseCase expone el ASN de un despacho a suppliers, admins y al manager de la tienda.
type ShipNoticeUseCase struct {
	restockRepo repository.RestockRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	userRepo    repository.UserRepository
	builder     ShipNoticeBuilder
}

// NewShipNoticeUseCase construye el caso de uso.
func NewShipNoticeUseCase(
	restockRepo repository.RestockRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	builder ShipNoticeBuilder,
) *ShipNoticeUseCase {
	return &ShipNoticeUseCase{
		restockRepo: restockRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		userRepo:    userRepo,
		builder:     builder,
	}
}

// Generate construye el ASN de la solicitud. Conflict si aún no fue despachada.
func (uc *ShipNoticeUseCase) Generate(ctx context.Context, actor entity.Actor, requestID string) (*ShipNoticeDocument, error) {
	if err := actor.Require(entity.RoleSupplier, entity.RoleAdmin, entity.RoleManager); err != nil {
		return nil, err
	}
	req, err := uc.restockRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: solicitud %s", domain.ErrNotFound, requestID)
	}
	if actor.Is(entity.RoleManager) && actor.StoreID != req.StoreID {
		return nil, fmt.Errorf("%w: la solicitud pertenece a otra tienda", domain.ErrForbidden)
	}
	if req.Status != entity.RestockStatusShipped || req.Shipment == nil {
		return nil, fmt.Errorf("%w: la solicitud no ha sido despachada", domain.ErrConflict)
	}

	product, err := uc.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, req.ProductID)
	}
	store, err := uc.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, req.StoreID)
	}
	var supplier *entity.User
	if req.SupplierID != "" {
		if supplier, err = uc.userRepo.GetByID(ctx, req.SupplierID); err != nil {
			return nil, err
		}
	}

	return uc.builder.Build(ShipNotice{
		RequestID:    req.ID,
		ShipmentID:   req.Shipment.ID,
		TrackingInfo: req.Shipment.TrackingInfo,
		ShippedAt:    req.Shipment.UpdatedAt,
		Quantity:     req.QuantityRequested,
		Store:        *store,
		Product:      *product,
		Supplier:     supplier,
	})
}
