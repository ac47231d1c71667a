package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// StoreUseCase alta y listado de tiendas (solo admin).
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso con el puerto de persistencia.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una tienda. Devuelve domain.ErrConflict si el nombre ya existe.
func (uc *StoreUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if err := actor.Require(entity.RoleAdmin); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre de la tienda es obligatorio", domain.ErrValidation)
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe una tienda con nombre %q", domain.ErrConflict, name)
	}
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      name,
		Location:  strings.TrimSpace(in.Location),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	out := dto.ToStoreResponse(store)
	return &out, nil
}

// List lista todas las tiendas por nombre.
func (uc *StoreUseCase) List(ctx context.Context, actor entity.Actor) ([]dto.StoreResponse, error) {
	if err := actor.Require(entity.RoleAdmin); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToStoreResponse(s))
	}
	return out, nil
}
