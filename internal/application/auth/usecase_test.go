package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/perfumeria-api/internal/application/auth"
	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.users[id], nil
}
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) Update(_ context.Context, u *entity.User) error { m.users[u.ID] = u; return nil }
func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.users[id].PasswordHash = hash
	return nil
}
func (m *memUsers) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	m.users[id].LastLoginAt = &at
	return nil
}
func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (m *memUsers) Count(context.Context) (int, error)                     { return len(m.users), nil }
func (m *memUsers) Delete(_ context.Context, id string) error              { delete(m.users, id); return nil }

type memRevocation struct {
	revoked map[string]time.Time
}

func (r *memRevocation) Revoke(_ context.Context, jti string, exp time.Time) error {
	r.revoked[jti] = exp
	return nil
}
func (r *memRevocation) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := r.revoked[jti]
	return ok, nil
}

func setup(t *testing.T) (*auth.AuthUseCase, *memUsers) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &memUsers{users: map[string]*entity.User{
		"u1": {ID: "u1", Email: "ana@perfumeria.co", PasswordHash: string(hash), Name: "Ana", Role: entity.RoleStaff, IsActive: true},
		"u2": {ID: "u2", Email: "off@perfumeria.co", PasswordHash: string(hash), Name: "Off", Role: entity.RoleStaff, IsActive: false},
	}}
	uc := auth.NewAuthUseCase(users, &memRevocation{revoked: map[string]time.Time{}},
		auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"}, zerolog.Nop())
	return uc, users
}

func TestLogin_OK(t *testing.T) {
	uc, users := setup(t)
	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ANA@perfumeria.co", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "staff", res.User.Role)
	assert.NotNil(t, users.users["u1"].LastLoginAt)

	claims, err := uc.ValidateToken(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@perfumeria.co", Password: "otra"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@perfumeria.co", Password: "secreto123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestLogin_UsuarioDesactivado(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "off@perfumeria.co", Password: "secreto123"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestLogout_RevocaElToken(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@perfumeria.co", Password: "secreto123"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, res.Token))
	_, err = uc.ValidateToken(ctx, res.Token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	assert.NoError(t, uc.Logout(ctx, "basura"), "cerrar sesión con token inválido no falla")
}

func TestBootstrapAdmin(t *testing.T) {
	uc, users := setup(t)
	created, err := uc.BootstrapAdmin(context.Background(), "root@perfumeria.co", "secreto123", "")
	require.NoError(t, err)
	assert.False(t, created, "ya hay usuarios")

	users.users = map[string]*entity.User{}
	created, err = uc.BootstrapAdmin(context.Background(), "Root@perfumeria.co", "secreto123", "")
	require.NoError(t, err)
	assert.True(t, created)

	u, _ := users.GetByEmail(context.Background(), "root@perfumeria.co")
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, "Administrador", u.Name)
}
