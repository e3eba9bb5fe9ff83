package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/application/inventory"
	"github.com/jhoicas/perfumeria-api/internal/application/usecase"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/infrastructure/session"
	apphttp "github.com/jhoicas/perfumeria-api/internal/interfaces/http"
)

const (
	adminID  = "00000000-0000-0000-0000-0000000000a1"
	staffID  = "00000000-0000-0000-0000-0000000000b2"
	password = "secreto-123"
)

type testAPI struct {
	app      *fiber.App
	products *memProducts
	users    *memUsers
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	users := newMemUsers(
		&entity.User{ID: adminID, Email: "admin@perfumeria.test", PasswordHash: string(hash), Name: "Admin", Role: entity.RoleAdmin, IsActive: true, CreatedAt: now},
		&entity.User{ID: staffID, Email: "luis@perfumeria.test", PasswordHash: string(hash), Name: "Luis", Role: entity.RoleStaff, IsActive: true, CreatedAt: now},
	)
	products := &memProducts{byID: map[string]*entity.Product{}}
	movements := &memMovements{}
	register := inventory.NewRegisterMovementUseCase(&directTx{products: products, movements: movements}, nil, nil, zerolog.Nop())

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           newAuthUC(users, session.NewMemoryRevocationList()),
		UserUC:           usecase.NewUserUseCase(users),
		ProductUC:        usecase.NewProductUseCase(products, movements, register),
		RegisterMovement: register,
		History:          inventory.NewHistoryUseCase(movements),
		Replenishment:    inventory.NewReplenishmentUseCase(products),
	})
	return &testAPI{app: app, products: products, users: users}
}

// login devuelve la cookie de sesión del usuario.
func (a *testAPI) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"email": email, "password": password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.SessionCookie {
			assert.True(t, c.HttpOnly, "la cookie de sesión es HttpOnly")
			return c
		}
	}
	t.Fatal("login no devolvió la cookie de sesión")
	return nil
}

func (a *testAPI) do(t *testing.T, method, path string, cookie *http.Cookie, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAPI_LoginMeLogout(t *testing.T) {
	api := newTestAPI(t)
	cookie := api.login(t, "ADMIN@perfumeria.test")

	me := decode[dto.UserResponse](t, api.do(t, http.MethodGet, "/api/auth/me", cookie, nil))
	assert.Equal(t, adminID, me.ID)
	assert.Equal(t, "admin", me.Role)

	resp := api.do(t, http.MethodPost, "/api/auth/logout", cookie, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/auth/me", cookie, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "el token revocado ya no sirve")
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"email": "admin@perfumeria.test", "password": "otra-clave"})
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Code)
	assert.NotEmpty(t, body.Error)

	resp = api.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"email": "no-es-email"})
	body = decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestAPI_FlujoDeInventario(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(t, "admin@perfumeria.test")
	staff := api.login(t, "luis@perfumeria.test")

	// Solo admin crea productos.
	resp := api.do(t, http.MethodPost, "/api/inventory", staff, map[string]any{"name": "Oud Royal", "unit": "kg"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/inventory", admin, map[string]any{
		"name": "Oud Royal", "unit": "kg", "initial_stock": "1", "min_stock_level": "0.2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decode[dto.ProductResponse](t, resp)
	assert.True(t, product.CurrentStock.Equal(decimal.NewFromInt(1000)), "1 kg se guarda como 1000 g")
	assert.True(t, product.DisplayStock.Equal(decimal.NewFromInt(1)))

	// Nombre duplicado → 400.
	resp = api.do(t, http.MethodPost, "/api/inventory", admin, map[string]any{"name": "Oud Royal"})
	dup := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", dup.Code)

	// Entrada de 500 g registrada por staff.
	resp = api.do(t, http.MethodPost, "/api/shipments", staff, map[string]any{
		"product_id": product.ID, "type": "incoming", "quantity": "500", "unit": "g", "unit_cost": "2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	result := decode[dto.MovementResultResponse](t, resp)
	assert.True(t, result.Product.CurrentStock.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, "Luis", result.Movement.CreatedBy)

	// Salida mayor al stock → 400 sin efectos.
	resp = api.do(t, http.MethodPost, "/api/shipments", staff, map[string]any{
		"product_id": product.ID, "type": "outgoing", "quantity": "2", "unit": "kg",
	})
	insufficient := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", insufficient.Code)

	stored, err := api.products.GetByID(t.Context(), product.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentStock.Equal(decimal.NewFromInt(1500)))

	// Ajuste sin cantidad, con cantidad null o malformada → 400 y el stock intacto.
	for _, body := range []map[string]any{
		{"product_id": product.ID, "type": "adjustment"},
		{"product_id": product.ID, "type": "adjustment", "quantity": nil},
		{"product_id": product.ID, "type": "adjustment", "quantity": "mucho"},
	} {
		resp = api.do(t, http.MethodPost, "/api/shipments", staff, body)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%v", body)
	}
	stored, err = api.products.GetByID(t.Context(), product.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentStock.Equal(decimal.NewFromInt(1500)), stored.CurrentStock.String())

	// Unidad desconocida → 400 de validación.
	resp = api.do(t, http.MethodPost, "/api/shipments", staff, map[string]any{
		"product_id": product.ID, "type": "incoming", "quantity": "1", "unit": "lb",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Producto inexistente → 404.
	resp = api.do(t, http.MethodPost, "/api/shipments", staff, map[string]any{
		"product_id": "no-existe", "type": "incoming", "quantity": "1",
	})
	notFound := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", notFound.Code)

	// Historial: ajuste inicial y entrada, el más reciente primero.
	resp = api.do(t, http.MethodGet, "/api/shipments?product_id="+product.ID, staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decode[dto.MovementListResponse](t, resp)
	assert.Equal(t, 2, history.Total)
	require.Len(t, history.Items, 2)
	assert.Equal(t, "incoming", history.Items[0].Type)
	assert.Equal(t, "adjustment", history.Items[1].Type)

	// Detalle con movimientos recientes.
	resp = api.do(t, http.MethodGet, "/api/inventory/"+product.ID, staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[dto.ProductDetailResponse](t, resp)
	assert.Len(t, detail.RecentMovements, 2)

	// Baja lógica.
	resp = api.do(t, http.MethodDelete, "/api/inventory/"+product.ID, admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/shipments", admin, map[string]any{
		"product_id": product.ID, "type": "incoming", "quantity": "1",
	})
	inactive := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INACTIVE_PRODUCT", inactive.Code)
}

func TestAPI_UsuarioDesactivadoPierdeAcceso(t *testing.T) {
	api := newTestAPI(t)
	staff := api.login(t, "luis@perfumeria.test")

	resp := api.do(t, http.MethodGet, "/api/shipments", staff, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	api.users.setActive(staffID, false)
	resp = api.do(t, http.MethodGet, "/api/shipments", staff, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_RutasDeAdmin(t *testing.T) {
	api := newTestAPI(t)
	staff := api.login(t, "luis@perfumeria.test")
	admin := api.login(t, "admin@perfumeria.test")

	for _, path := range []string{"/api/users", "/api/notifications", "/api/push/vapid-public-key"} {
		resp := api.do(t, http.MethodGet, path, staff, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}

	resp := api.do(t, http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.UserResponse](t, resp)
	assert.Len(t, list, 2)

	// El admin no puede borrarse a sí mismo.
	resp = api.do(t, http.MethodDelete, "/api/users/"+adminID, admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_SinSesion(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodGet, "/api/inventory", nil, nil)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body.Code)
}
