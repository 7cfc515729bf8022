package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artesanica/artesanica-api/internal/domain/entity"
	apphttp "github.com/artesanica/artesanica-api/internal/interfaces/http"
	pkgjwt "github.com/artesanica/artesanica-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "artesanica-test"
	testExpMin    = 60
)

// fakeUserLookup implementa repository.UserRepository con un mapa fijo. El
// middleware solo usa GetByID; el resto está para satisfacer la interfaz.
type fakeUserLookup struct {
	users map[string]*entity.User
}

func (r *fakeUserLookup) Create(context.Context, *entity.User) error { return nil }
func (r *fakeUserLookup) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserLookup) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserLookup) GetByVerificationTokenHash(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserLookup) GetByResetTokenHash(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserLookup) Update(context.Context, *entity.User) error { return nil }

// seedUsers un usuario verificado, uno sin verificar y un admin.
func seedUsers() *fakeUserLookup {
	return &fakeUserLookup{users: map[string]*entity.User{
		"user-verificado": {ID: "user-verificado", Role: entity.RoleUser, IsEmailVerified: true},
		"user-pendiente":  {ID: "user-pendiente", Role: entity.RoleUser, IsEmailVerified: false},
		"user-admin":      {ID: "user-admin", Role: entity.RoleAdmin, IsEmailVerified: true},
	}}
}

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware (y
// opcionalmente RequireRole) frente a un handler que devuelve 200 con la
// identidad resuelta.
func buildTestApp(users *fakeUserLookup, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret, users)}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":      true,
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

// tokenFor genera un JWT de sesión para el usuario indicado.
func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doRequest lanza GET /protected con header y/o cookie opcionales.
func doRequest(t *testing.T, app *fiber.App, authHeader, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: token válido en header Bearer → 200 con la identidad en locals.
func TestAuthMiddleware_BearerValido(t *testing.T) {
	app := buildTestApp(seedUsers())
	resp := doRequest(t, app, "Bearer "+tokenFor(t, "user-verificado", entity.RoleUser), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-verificado", body["user_id"])
	assert.Equal(t, entity.RoleUser, body["role"])
}

// Caso 2: token válido solo en la cookie de sesión → 200.
func TestAuthMiddleware_CookieValida(t *testing.T) {
	app := buildTestApp(seedUsers())
	resp := doRequest(t, app, "", tokenFor(t, "user-verificado", entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"la cookie de sesión debe aceptarse como alternativa al header")
}

// Caso 2b: header Authorization malformado pero cookie válida → 200. El
// header malformado no bloquea el canal de la cookie.
func TestAuthMiddleware_HeaderMalformadoCaeACookie(t *testing.T) {
	app := buildTestApp(seedUsers())
	resp := doRequest(t, app, "Basic abc123", tokenFor(t, "user-verificado", entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un header sin esquema Bearer debe caer a la cookie de sesión")
}

// Caso 3: sin token por ningún canal → 401.
func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp(seedUsers())
	resp := doRequest(t, app, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 4: token firmado con otro secreto → 401 INVALID_TOKEN.
func TestAuthMiddleware_FirmaInvalida(t *testing.T) {
	otro, err := pkgjwt.Generate("otro-secreto", "user-verificado", entity.RoleUser, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(seedUsers())
	resp := doRequest(t, app, "Bearer "+otro, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 5: token válido de un usuario que ya no existe → 401.
func TestAuthMiddleware_UsuarioInexistente(t *testing.T) {
	app := buildTestApp(seedUsers())
	resp := doRequest(t, app, "Bearer "+tokenFor(t, "user-eliminado", entity.RoleUser), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un token firmado de un usuario eliminado no abre sesión")
}

// Caso 6: usuario existente pero con correo sin verificar → 401.
func TestAuthMiddleware_CorreoSinVerificar(t *testing.T) {
	app := buildTestApp(seedUsers())
	resp := doRequest(t, app, "Bearer "+tokenFor(t, "user-pendiente", entity.RoleUser), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "EMAIL_NOT_VERIFIED")
}

// Caso 7: el rol en locals viene de la DB, no del claim del token.
func TestAuthMiddleware_RolDesdeDB(t *testing.T) {
	app := buildTestApp(seedUsers())
	// Token con claim admin para un usuario que en DB es user normal.
	resp := doRequest(t, app, "Bearer "+tokenFor(t, "user-verificado", entity.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, entity.RoleUser, body["role"],
		"el rol efectivo es el de la DB, no el del claim")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Admin accede a ruta restringida a admin → 200.
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, "user-admin", entity.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")
}

// Usuario normal bloqueado en ruta admin → 403 FORBIDDEN.
func TestRequireRole_UsuarioBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, "user-verificado", entity.RoleUser), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"user no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}
