package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/application/inventory"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/event"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

func newRestockUC(f *fixture) *inventory.RestockUseCase {
	return inventory.NewRestockUseCase(f.repos.Tx, f.repos.Inventory, f.repos.Restocks, f.notifier)
}

// ── Flujo completo ────────────────────────────────────────────────────────────

func TestRestock_SolicitarYDespachar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 5)
	uc := newRestockUC(f)

	rec, err := f.repos.Inventory.GetByID(ctx, f.inv.ID)
	require.NoError(t, err)
	assert.True(t, rec.IsLow(), "5 unidades con umbral 5 es stock bajo")

	req, err := uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 20, Notes: " urgente "})
	require.NoError(t, err)
	assert.Equal(t, entity.RestockStatusPending, req.Status)
	assert.Equal(t, 20, req.QuantityRequested)
	assert.Equal(t, f.store.ID, req.StoreID)
	assert.Equal(t, f.product.ID, req.ProductID)
	assert.Equal(t, "urgente", req.Notes)
	assert.Nil(t, req.Shipment)

	shipped, err := uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "ship", TrackingInfo: "TRK123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RestockStatusShipped, shipped.Status)
	assert.Equal(t, f.supplier.UserID, shipped.SupplierID)
	require.NotNil(t, shipped.Shipment)
	assert.Equal(t, entity.ShipmentStatusShipped, shipped.Shipment.Status)
	assert.Equal(t, "TRK123", shipped.Shipment.TrackingInfo)
	assert.Equal(t, 25, f.quantity(t))

	stored, err := f.repos.Restocks.GetByID(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Shipment)
	assert.Equal(t, "TRK123", stored.Shipment.TrackingInfo)

	assert.Equal(t, []event.Type{event.RestockSubmitted, event.RestockShipped}, f.notifier.types())
}

func TestRestock_AceptarYLuegoDespachar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, 10)
	uc := newRestockUC(f)

	req, err := uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 8})
	require.NoError(t, err)

	approved, err := uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "accept"})
	require.NoError(t, err)
	assert.Equal(t, entity.RestockStatusApproved, approved.Status)
	assert.Equal(t, 2, f.quantity(t), "aceptar no modifica el inventario")

	shipped, err := uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "ship"})
	require.NoError(t, err)
	assert.Equal(t, entity.RestockStatusShipped, shipped.Status)
	assert.Equal(t, 10, f.quantity(t))
}

// ── Transiciones ilegales ─────────────────────────────────────────────────────

func TestRestock_SegundoDespachoEsConflicto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 5)
	uc := newRestockUC(f)

	req, err := uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 20})
	require.NoError(t, err)
	_, err = uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "ship", TrackingInfo: "TRK123"})
	require.NoError(t, err)

	_, err = uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "ship", TrackingInfo: "TRK999"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 25, f.quantity(t), "el inventario se incrementa una sola vez")

	stored, err := f.repos.Restocks.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "TRK123", stored.Shipment.TrackingInfo)
}

func TestRestock_RechazarDosVecesEsConflicto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 5)
	uc := newRestockUC(f)

	req, err := uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 3})
	require.NoError(t, err)

	rejected, err := uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "reject"})
	require.NoError(t, err)
	assert.Equal(t, entity.RestockStatusRejected, rejected.Status)

	_, err = uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "reject"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "ship"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 5, f.quantity(t))
}

func TestRestock_AprobadaNoSePuedeAceptarDeNuevo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 5)
	uc := newRestockUC(f)

	req, err := uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 3})
	require.NoError(t, err)
	_, err = uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "accept"})
	require.NoError(t, err)

	_, err = uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "accept"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ── Concurrencia ──────────────────────────────────────────────────────────────

func TestRestock_DespachosConcurrentesIncrementanUnaVez(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 5)
	uc := newRestockUC(f)

	req, err := uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 20})
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, conflicts := 0, 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "ship", TrackingInfo: "TRK"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 25, f.quantity(t))
}

// ── Validaciones y autorización ──────────────────────────────────────────────

func TestRestock_TiendaDistintaEsConflicto(t *testing.T) {
	f := newFixture(t, 5, 5)
	uc := newRestockUC(f)
	outsider := entity.Actor{UserID: "m2", Role: entity.RoleManager, StoreID: f.other.ID}

	_, err := uc.SubmitRestock(context.Background(), outsider, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.notifier.types())
}

func TestRestock_Validaciones(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 5)
	uc := newRestockUC(f)

	_, err := uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: "", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: "no-existe", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.SubmitRestock(ctx, f.supplier, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	req, err := uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 3})
	require.NoError(t, err)

	_, err = uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "cancel"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Transition(ctx, f.supplier, "no-existe", dto.TransitionRequest{Action: "accept"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Transition(ctx, f.manager, req.ID, dto.TransitionRequest{Action: "accept"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// inventoryGoneTx simula que la fila de inventario desapareció entre la solicitud y el despacho.
type inventoryGoneTx struct {
	inner inventory.TxRunner
}

type missingInventoryRepo struct {
	repository.InventoryRepository
}

func (missingInventoryRepo) GetForUpdate(context.Context, string) (*entity.InventoryRecord, error) {
	return nil, nil
}

func (g inventoryGoneTx) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	restockRepo repository.RestockRepository,
	shipmentRepo repository.ShipmentRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return g.inner.Run(ctx, func(inv repository.InventoryRepository, rr repository.RestockRepository, sr repository.ShipmentRepository, sales repository.SaleRepository) error {
		return fn(missingInventoryRepo{inv}, rr, sr, sales)
	})
}

func TestRestock_DespachoSinInventarioEsValidacionSinCambios(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 5)

	req, err := newRestockUC(f).SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 20})
	require.NoError(t, err)

	uc := inventory.NewRestockUseCase(inventoryGoneTx{inner: f.repos.Tx}, f.repos.Inventory, f.repos.Restocks, f.notifier)
	_, err = uc.Transition(ctx, f.supplier, req.ID, dto.TransitionRequest{Action: "ship", TrackingInfo: "TRK1"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, err := f.repos.Restocks.GetByID(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.RestockStatusPending, stored.Status)
	assert.Empty(t, stored.SupplierID)
	assert.Nil(t, stored.Shipment)
	assert.Equal(t, 5, f.quantity(t))
	assert.Equal(t, []event.Type{event.RestockSubmitted}, f.notifier.types())
}

// ── Listados ──────────────────────────────────────────────────────────────────

func TestRestock_Listados(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 5)
	uc := newRestockUC(f)

	first, err := uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 1})
	require.NoError(t, err)
	second, err := uc.SubmitRestock(ctx, f.manager, dto.CreateRestockRequest{InventoryID: f.inv.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = uc.Transition(ctx, f.supplier, first.ID, dto.TransitionRequest{Action: "reject"})
	require.NoError(t, err)

	mine, err := uc.ListStoreRestocks(ctx, f.manager)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, "TEE-001", mine[0].SKU)

	open, err := uc.ListOpenRequests(ctx, f.supplier)
	require.NoError(t, err)
	require.Len(t, open, 1, "las rechazadas no aparecen para el supplier")
	assert.Equal(t, second.ID, open[0].ID)
	assert.Equal(t, "Flagship Store", open[0].StoreName)
}
