package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// UserUseCase alta de managers y suppliers (solo admin). El password se hashea con bcrypt.
type UserUseCase struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, storeRepo repository.StoreRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, storeRepo: storeRepo}
}

// CreateManager crea un manager asignado a una tienda existente.
func (uc *UserUseCase) CreateManager(ctx context.Context, actor entity.Actor, in dto.CreateManagerRequest) (*dto.UserResponse, error) {
	if err := actor.Require(entity.RoleAdmin); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	storeID := strings.TrimSpace(in.StoreID)
	if username == "" || in.Password == "" || storeID == "" {
		return nil, fmt.Errorf("%w: username, password y store_id son obligatorios", domain.ErrValidation)
	}
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, storeID)
	}
	return uc.create(ctx, &entity.User{Username: username, Role: entity.RoleManager, StoreID: store.ID}, in.Password)
}

// CreateSupplier crea un supplier con su nombre comercial y email de contacto.
func (uc *UserUseCase) CreateSupplier(ctx context.Context, actor entity.Actor, in dto.CreateSupplierRequest) (*dto.UserResponse, error) {
	if err := actor.Require(entity.RoleAdmin); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son obligatorios", domain.ErrValidation)
	}
	return uc.create(ctx, &entity.User{
		Username:     username,
		Role:         entity.RoleSupplier,
		SupplierName: strings.TrimSpace(in.SupplierName),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
	}, in.Password)
}

func (uc *UserUseCase) create(ctx context.Context, user *entity.User, password string) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el usuario %q ya existe", domain.ErrConflict, user.Username)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user.ID = uuid.New().String()
	user.PasswordHash = hash
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

// List lista usuarios; role vacío lista todos.
func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor, role string) ([]dto.UserResponse, error) {
	if err := actor.Require(entity.RoleAdmin); err != nil {
		return nil, err
	}
	role = strings.ToLower(strings.TrimSpace(role))
	if role != "" && !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrValidation, role)
	}
	list, err := uc.userRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// HashPassword genera el hash bcrypt de un password en texto plano.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
