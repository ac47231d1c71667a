package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo inventario por tienda y producto (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id::text, store_id::text, product_id::text, quantity, low_stock_threshold, updated_at`

func scanInventory(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	if err := row.Scan(&rec.ID, &rec.StoreID, &rec.ProductID, &rec.Quantity, &rec.LowStockThreshold, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserta la fila. Par tienda+producto duplicado → domain.ErrConflict.
func (r *InventoryRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (id, store_id, product_id, quantity, low_stock_threshold, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.StoreID, rec.ProductID, rec.Quantity, rec.LowStockThreshold, rec.UpdatedAt,
	)
	if err != nil {
		return insertErr("insert inventory", "inventario del producto en la tienda", err)
	}
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	if !validIDs(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get inventory", `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id)
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	if !validIDs(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get inventory for update", `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryRepo) GetByStoreAndProduct(ctx context.Context, storeID, productID string) (*entity.InventoryRecord, error) {
	if !validIDs(storeID, productID) {
		return nil, nil
	}
	return r.getOne(ctx, "get inventory by store and product",
		`SELECT `+inventoryColumns+` FROM inventory WHERE store_id = $1 AND product_id = $2`, storeID, productID)
}

func (r *InventoryRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.InventoryRecord, error) {
	rec, err := scanInventory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

// Update persiste cantidad, umbral y fecha.
func (r *InventoryRepo) Update(ctx context.Context, rec *entity.InventoryRecord) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory SET quantity = $2, low_stock_threshold = $3, updated_at = $4 WHERE id = $1`,
		rec.ID, rec.Quantity, rec.LowStockThreshold, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// ListItems lista inventario con nombre de tienda y datos del producto.
func (r *InventoryRepo) ListItems(ctx context.Context, f repository.InventoryFilter) ([]repository.InventoryItem, error) {
	var (
		where []string
		args  []any
	)
	if f.StoreID != "" {
		args = append(args, f.StoreID)
		where = append(where, fmt.Sprintf("i.store_id = $%d", len(args)))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		where = append(where, fmt.Sprintf("i.product_id = $%d", len(args)))
	}
	if f.LowOnly {
		where = append(where, "i.quantity <= i.low_stock_threshold")
	}

	query := `
		SELECT i.id::text, i.store_id::text, i.product_id::text, i.quantity, i.low_stock_threshold, i.updated_at,
		       s.name,
		       p.id::text, p.name, p.sku, p.category, p.size, p.color, p.price, p.cost_price,
		       p.image_url, p.description, p.created_at, p.updated_at
		FROM inventory i
		JOIN stores   s ON s.id = i.store_id
		JOIN products p ON p.id = i.product_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY s.name, p.name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	items := make([]repository.InventoryItem, 0)
	for rows.Next() {
		var it repository.InventoryItem
		rec, p := &it.Record, &it.Product
		if err := rows.Scan(
			&rec.ID, &rec.StoreID, &rec.ProductID, &rec.Quantity, &rec.LowStockThreshold, &rec.UpdatedAt,
			&it.StoreName,
			&p.ID, &p.Name, &p.SKU, &p.Category, &p.Size, &p.Color, &p.Price, &p.CostPrice,
			&p.ImageURL, &p.Description, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
