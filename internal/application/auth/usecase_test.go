package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/internal/application/auth"
	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/application/usecase"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/memstore"
	"github.com/jhoicas/stylelane-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestLogin_TokenConIdentidadDelManager(t *testing.T) {
	ctx := context.Background()
	repos := memstore.NewDB().Repos()
	hash, err := usecase.HashPassword("manager123")
	require.NoError(t, err)
	require.NoError(t, repos.Users.Create(ctx, &entity.User{
		ID: "u1", Username: "manager1", PasswordHash: hash, Role: entity.RoleManager, StoreID: "store-1",
	}))

	uc := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "stylelane-test"})

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "manager1", Password: "manager123"})
	require.NoError(t, err)
	assert.Equal(t, "manager1", out.User.Username)

	id, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "store-1", id.StoreID)
	assert.Equal(t, entity.RoleManager, id.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "manager1", Password: "mal"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	me, err := uc.Me(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "store-1", me.StoreID)

	_, err = uc.Me(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
