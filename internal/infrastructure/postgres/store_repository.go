package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

const storeColumns = `id::text, name, location, created_at, updated_at`

// Create persiste una tienda. Nombre duplicado → domain.ErrConflict.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stores (id, name, location, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Name, s.Location, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return insertErr("insert store", "tienda "+s.Name, err)
	}
	return nil
}

func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	if !validIDs(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
}

func (r *StoreRepo) GetByName(ctx context.Context, name string) (*entity.Store, error) {
	return r.getOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE name = $1`, name)
}

func (r *StoreRepo) getOne(ctx context.Context, query string, arg string) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// List devuelve todas las tiendas ordenadas por nombre.
func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Store, 0)
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
