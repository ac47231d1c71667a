package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/stylelane-api/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func TestJWT_GenerateAndParse_ConRoleYTienda(t *testing.T) {
	id := pkgjwt.Identity{UserID: "u-1", StoreID: "s-1", Role: "manager"}
	tok, err := pkgjwt.Generate(secret, id, "stylelane-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWT_SupplierSinTienda(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u-2", Role: "supplier"}, "stylelane-test", 60)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Empty(t, got.StoreID)
	assert.Equal(t, "supplier", got.Role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u-1", Role: "admin"}, "stylelane-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u-1", Role: "admin"}, "stylelane-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Identity{UserID: "u-1"}, "x", 60)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "a.b.c")
	assert.Error(t, err)
}
