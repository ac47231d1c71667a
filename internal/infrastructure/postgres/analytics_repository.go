package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para analítica de ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// TopProducts agrupa ventas por producto, ingreso descendente. limit <= 0 = sin límite.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, since *time.Time, limit int) ([]repository.ProductSales, error) {
	const query = `
	SELECT p.id::text, p.sku, p.name, SUM(sa.quantity) AS units, SUM(sa.total_amount) AS revenue
	FROM sales sa
	JOIN products p ON p.id = sa.product_id
	WHERE ($1::timestamptz IS NULL OR sa.sold_at >= $1)
	GROUP BY p.id, p.sku, p.name
	ORDER BY revenue DESC, p.sku
	LIMIT $2`

	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.q.Query(ctx, query, since, lim)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopProducts: %w", err)
	}
	return collectProductSales(rows)
}

// UnitsSoldSince productos con al menos minUnits unidades desde since, unidades descendente.
func (r *AnalyticsRepo) UnitsSoldSince(ctx context.Context, since time.Time, minUnits int) ([]repository.ProductSales, error) {
	const query = `
	SELECT p.id::text, p.sku, p.name, SUM(sa.quantity) AS units, SUM(sa.total_amount) AS revenue
	FROM sales sa
	JOIN products p ON p.id = sa.product_id
	WHERE sa.sold_at >= $1
	GROUP BY p.id, p.sku, p.name
	HAVING SUM(sa.quantity) >= $2
	ORDER BY units DESC, revenue DESC, p.sku`

	rows, err := r.q.Query(ctx, query, since, minUnits)
	if err != nil {
		return nil, fmt.Errorf("analytics.UnitsSoldSince: %w", err)
	}
	return collectProductSales(rows)
}

func collectProductSales(rows pgx.Rows) ([]repository.ProductSales, error) {
	defer rows.Close()
	results := make([]repository.ProductSales, 0)
	for rows.Next() {
		var ps repository.ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.SKU, &ps.Name, &ps.Units, &ps.Revenue); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		results = append(results, ps)
	}
	return results, rows.Err()
}

// SalesByStore ventas por tienda, ingreso descendente.
func (r *AnalyticsRepo) SalesByStore(ctx context.Context) ([]repository.StoreSales, error) {
	const query = `
	SELECT s.id::text, s.name, SUM(sa.quantity) AS units, SUM(sa.total_amount) AS revenue
	FROM sales sa
	JOIN stores s ON s.id = sa.store_id
	GROUP BY s.id, s.name
	ORDER BY revenue DESC, s.name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesByStore: %w", err)
	}
	defer rows.Close()

	results := make([]repository.StoreSales, 0)
	for rows.Next() {
		var row repository.StoreSales
		if err := rows.Scan(&row.StoreID, &row.StoreName, &row.Units, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan store sales: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// DailyRevenueSince ingreso por día (UTC) desde since, solo días con ventas.
func (r *AnalyticsRepo) DailyRevenueSince(ctx context.Context, since time.Time) ([]repository.DailyRevenue, error) {
	const query = `
	SELECT to_char(sa.sold_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
	       SUM(sa.total_amount) AS revenue,
	       COUNT(*)             AS sales
	FROM sales sa
	WHERE sa.sold_at >= $1
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.DailyRevenueSince: %w", err)
	}
	defer rows.Close()

	results := make([]repository.DailyRevenue, 0)
	for rows.Next() {
		var row repository.DailyRevenue
		if err := rows.Scan(&row.Day, &row.Revenue, &row.Sales); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesByCategory ventas por categoría; los productos sin categoría se agrupan en "Uncategorized".
func (r *AnalyticsRepo) SalesByCategory(ctx context.Context) ([]repository.CategorySales, error) {
	const query = `
	SELECT COALESCE(NULLIF(TRIM(p.category), ''), 'Uncategorized') AS category,
	       SUM(sa.quantity)     AS units,
	       SUM(sa.total_amount) AS revenue
	FROM sales sa
	JOIN products p ON p.id = sa.product_id
	GROUP BY 1
	ORDER BY revenue DESC, category`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesByCategory: %w", err)
	}
	defer rows.Close()

	results := make([]repository.CategorySales, 0)
	for rows.Next() {
		var row repository.CategorySales
		if err := rows.Scan(&row.Category, &row.Units, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan category sales: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
