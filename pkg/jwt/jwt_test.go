package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/perfumeria-api/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "Ana", "staff", "perfumeria-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "staff", claims.Role)
	assert.NotEmpty(t, claims.ID, "cada token lleva jti para poder revocarlo")
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAtTime(), time.Minute)
}

func TestGenerate_JTIUnicoPorToken(t *testing.T) {
	a, err := pkgjwt.Generate(secret, "u-1", "Ana", "admin", "x", 60)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(secret, "u-1", "Ana", "admin", "x", 60)
	require.NoError(t, err)

	ca, _ := pkgjwt.Parse(secret, a)
	cb, _ := pkgjwt.Parse(secret, b)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "Ana", "admin", "x", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "Ana", "admin", "x", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "Ana", "admin", "x", 60)
	assert.Error(t, err)
}
