package repository

import (
	"context"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrConflict si el username ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// ListByRole lista usuarios del rol indicado; role vacío lista todos.
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
}
