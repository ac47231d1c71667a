package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

var (
	_ repository.RestockRepository  = (*RestockRepo)(nil)
	_ repository.ShipmentRepository = (*ShipmentRepo)(nil)
)

// RestockRepo solicitudes de reposición (usable con pool o tx).
type RestockRepo struct {
	q Querier
}

// NewRestockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRestockRepository(q Querier) *RestockRepo {
	return &RestockRepo{q: q}
}

const restockColumns = `r.id::text, r.inventory_id::text, r.store_id::text, r.product_id::text, r.quantity_requested,
	r.status, r.manager_id::text, COALESCE(r.supplier_id::text, ''), r.notes, r.created_at, r.updated_at`

func restockDest(req *entity.RestockRequest) []any {
	return []any{
		&req.ID, &req.InventoryID, &req.StoreID, &req.ProductID, &req.QuantityRequested,
		&req.Status, &req.ManagerID, &req.SupplierID, &req.Notes, &req.CreatedAt, &req.UpdatedAt,
	}
}

func (r *RestockRepo) Create(ctx context.Context, req *entity.RestockRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO restock_requests (id, inventory_id, store_id, product_id, quantity_requested, status,
			manager_id, supplier_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		req.ID, req.InventoryID, req.StoreID, req.ProductID, req.QuantityRequested, req.Status,
		req.ManagerID, nullable(req.SupplierID), req.Notes, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert restock request: %w", err)
	}
	return nil
}

// GetByID obtiene la solicitud con su despacho, si existe.
func (r *RestockRepo) GetByID(ctx context.Context, id string) (*entity.RestockRequest, error) {
	return r.getOne(ctx, "get restock request", `SELECT `+restockColumns+` FROM restock_requests r WHERE r.id = $1`, id)
}

// GetForUpdate obtiene la solicitud y bloquea la fila (SELECT FOR UPDATE).
func (r *RestockRepo) GetForUpdate(ctx context.Context, id string) (*entity.RestockRequest, error) {
	return r.getOne(ctx, "get restock request for update", `SELECT `+restockColumns+` FROM restock_requests r WHERE r.id = $1 FOR UPDATE`, id)
}

func (r *RestockRepo) getOne(ctx context.Context, op, query, id string) (*entity.RestockRequest, error) {
	if !validIDs(id) {
		return nil, nil
	}
	var req entity.RestockRequest
	if err := r.q.QueryRow(ctx, query, id).Scan(restockDest(&req)...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sh, err := NewShipmentRepository(r.q).GetByRequestID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	req.Shipment = sh
	return &req, nil
}

// Update persiste estado, supplier y fecha.
func (r *RestockRepo) Update(ctx context.Context, req *entity.RestockRequest) error {
	_, err := r.q.Exec(ctx,
		`UPDATE restock_requests SET status = $2, supplier_id = $3, updated_at = $4 WHERE id = $1`,
		req.ID, req.Status, nullable(req.SupplierID), req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update restock request: %w", err)
	}
	return nil
}

// List solicitudes con producto, tienda y despacho; más recientes primero.
func (r *RestockRepo) List(ctx context.Context, f repository.RestockFilter) ([]repository.RestockItem, error) {
	var (
		where []string
		args  []any
	)
	if f.StoreID != "" {
		args = append(args, f.StoreID)
		where = append(where, fmt.Sprintf("r.store_id = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		args = append(args, f.Statuses)
		where = append(where, fmt.Sprintf("r.status = ANY($%d)", len(args)))
	}

	query := `
		SELECT ` + restockColumns + `, p.name, p.sku, s.name,
		       sh.id::text, COALESCE(sh.status, ''), COALESCE(sh.tracking_info, ''), sh.updated_at
		FROM restock_requests r
		JOIN products p ON p.id = r.product_id
		JOIN stores   s ON s.id = r.store_id
		LEFT JOIN shipments sh ON sh.restock_request_id = r.id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list restock requests: %w", err)
	}
	defer rows.Close()

	items := make([]repository.RestockItem, 0)
	for rows.Next() {
		var (
			it        repository.RestockItem
			shID      *string
			shUpdated *time.Time
			sh        entity.Shipment
		)
		dest := append(restockDest(&it.Request), &it.ProductName, &it.SKU, &it.StoreName,
			&shID, &sh.Status, &sh.TrackingInfo, &shUpdated)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan restock request: %w", err)
		}
		if shID != nil {
			sh.ID = *shID
			if shUpdated != nil {
				sh.UpdatedAt = *shUpdated
			}
			sh.RestockRequestID = it.Request.ID
			it.Request.Shipment = &sh
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ShipmentRepo despachos, uno por solicitud.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

func (r *ShipmentRepo) GetByRequestID(ctx context.Context, requestID string) (*entity.Shipment, error) {
	var sh entity.Shipment
	err := r.q.QueryRow(ctx, `
		SELECT id::text, restock_request_id::text, status, tracking_info, updated_at
		FROM shipments WHERE restock_request_id = $1`, requestID,
	).Scan(&sh.ID, &sh.RestockRequestID, &sh.Status, &sh.TrackingInfo, &sh.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &sh, nil
}

// Upsert inserta o actualiza el despacho de la solicitud.
func (r *ShipmentRepo) Upsert(ctx context.Context, sh *entity.Shipment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO shipments (id, restock_request_id, status, tracking_info, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (restock_request_id)
		DO UPDATE SET status = EXCLUDED.status, tracking_info = EXCLUDED.tracking_info, updated_at = EXCLUDED.updated_at`,
		sh.ID, sh.RestockRequestID, sh.Status, sh.TrackingInfo, sh.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert shipment: %w", err)
	}
	return nil
}
