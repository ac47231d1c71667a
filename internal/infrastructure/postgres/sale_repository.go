package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas registradas (solo inserción).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, inventory_id, store_id, product_id, quantity, unit_price, total_amount, sold_by, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.InventoryID, s.StoreID, s.ProductID, s.Quantity, s.UnitPrice, s.TotalAmount, nullable(s.SoldBy), s.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// List ventas del período [From, To), más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]repository.SaleLine, error) {
	var (
		where []string
		args  []any
	)
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("sa.sold_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("sa.sold_at < $%d", len(args)))
	}
	if f.StoreID != "" {
		args = append(args, f.StoreID)
		where = append(where, fmt.Sprintf("sa.store_id = $%d", len(args)))
	}

	query := `
		SELECT sa.id::text, sa.inventory_id::text, sa.store_id::text, sa.product_id::text, sa.quantity,
		       sa.unit_price, sa.total_amount, COALESCE(sa.sold_by::text, ''), sa.sold_at,
		       p.name, p.sku, s.name
		FROM sales sa
		JOIN products p ON p.id = sa.product_id
		JOIN stores   s ON s.id = sa.store_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY sa.sold_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	lines := make([]repository.SaleLine, 0)
	for rows.Next() {
		var l repository.SaleLine
		s := &l.Sale
		if err := rows.Scan(
			&s.ID, &s.InventoryID, &s.StoreID, &s.ProductID, &s.Quantity,
			&s.UnitPrice, &s.TotalAmount, &s.SoldBy, &s.Timestamp,
			&l.ProductName, &l.SKU, &l.StoreName,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Totals ingreso total y cantidad de ventas.
func (r *SaleRepo) Totals(ctx context.Context) (decimal.Decimal, int, error) {
	var (
		revenue decimal.Decimal
		count   int
	)
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM sales`).Scan(&revenue, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales totals: %w", err)
	}
	return revenue, count, nil
}
