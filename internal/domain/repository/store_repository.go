package repository

import (
	"context"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
// Create devuelve domain.ErrConflict si el nombre ya existe.
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	GetByName(ctx context.Context, name string) (*entity.Store, error)
	List(ctx context.Context) ([]*entity.Store, error)
}
