package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id::text, name, sku, category, size, color, price, cost_price,
	image_url, description, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Size, &p.Color, &p.Price, &p.CostPrice,
		&p.ImageURL, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. SKU duplicado → domain.ErrConflict.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, sku, category, size, color, price, cost_price, image_url, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SKU, p.Category, p.Size, p.Color, p.Price, p.CostPrice,
		p.ImageURL, p.Description, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return insertErr("insert product", "SKU "+p.SKU, err)
	}
	return nil
}

// Update actualiza los atributos del producto. El SKU no cambia.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category = $3, size = $4, color = $5, price = $6, cost_price = $7,
			image_url = $8, description = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Category, p.Size, p.Color, p.Price, p.CostPrice,
		p.ImageURL, p.Description, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validIDs(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Search filtra el catálogo. Los filtros vacíos no aplican.
func (r *ProductRepo) Search(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + likeEscape(q) + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR sku ILIKE %s OR description ILIKE %s)", p, p, p))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		where = append(where, "category = "+arg(c))
	}
	if s := strings.TrimSpace(f.Size); s != "" {
		where = append(where, "size = "+arg(s))
	}
	if c := strings.TrimSpace(f.Color); c != "" {
		where = append(where, "color ILIKE "+arg("%"+likeEscape(c)+"%"))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY name, sku`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Facets devuelve los valores distintos no vacíos de categoría, talla y color.
func (r *ProductRepo) Facets(ctx context.Context) (repository.ProductFacets, error) {
	var out repository.ProductFacets
	var err error
	if out.Categories, err = r.distinct(ctx, "category"); err != nil {
		return out, err
	}
	if out.Sizes, err = r.distinct(ctx, "size"); err != nil {
		return out, err
	}
	if out.Colors, err = r.distinct(ctx, "color"); err != nil {
		return out, err
	}
	return out, nil
}

// distinct column es una constante interna, nunca entrada del usuario.
func (r *ProductRepo) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT `+column+` FROM products WHERE `+column+` <> '' ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("facets %s: %w", column, err)
	}
	defer rows.Close()
	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan facet: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func likeEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
