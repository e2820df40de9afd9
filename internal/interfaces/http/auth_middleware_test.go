package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
	apphttp "github.com/acervo/expedientes-api/internal/interfaces/http"
	pkgjwt "github.com/acervo/expedientes-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "expedientes-api-test"
)

// usuarioRepoStub implementa repository.UsuarioRepository en memoria.
// Solo GetByID importa para el middleware; el resto no se usa en estos tests.
type usuarioRepoStub struct {
	porID map[string]*entity.Usuario
}

func (s *usuarioRepoStub) Create(ctx context.Context, u *entity.Usuario) error { return nil }
func (s *usuarioRepoStub) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	return s.porID[id], nil
}
func (s *usuarioRepoStub) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	return nil, nil
}
func (s *usuarioRepoStub) Update(ctx context.Context, u *entity.Usuario) error { return nil }
func (s *usuarioRepoStub) List(ctx context.Context, f repository.UsuarioFiltro, limit, offset int) ([]*entity.Usuario, int, error) {
	return nil, 0, nil
}

// repoConUsuario devuelve un stub con un único usuario registrado.
func repoConUsuario(rol string, activo bool) *usuarioRepoStub {
	return &usuarioRepoStub{porID: map[string]*entity.Usuario{
		testUserID: {ID: testUserID, Nombre: "Prueba", Email: "p@x.com", Rol: rol, Activo: activo},
	}}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware que relee el usuario del repositorio
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(repo repository.UsuarioRepository, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, repo),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":  true,
				"rol": apphttp.GetRol(c),
			})
		},
	)
	return app
}

func tokenValido(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, 1)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func assertCodigo(t *testing.T, resp *http.Response, codigo string) {
	t.Helper()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), codigo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(repoConUsuario(entity.RolAdmin, true), entity.RolAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assertCodigo(t, resp, "MISSING_TOKEN")
}

// Caso 2: Token malformado → 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(repoConUsuario(entity.RolAdmin, true), entity.RolAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assertCodigo(t, resp, "INVALID_TOKEN")
}

// Caso 3: Token vencido → 401 TOKEN_EXPIRED, distinto de inválido.
func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp(repoConUsuario(entity.RolAdmin, true), entity.RolAdmin)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assertCodigo(t, resp, "TOKEN_EXPIRED")
}

// Caso 4: Token válido pero el usuario ya no existe → 401 INVALID_TOKEN.
func TestAuthMiddleware_UsuarioInexistente_Retorna401(t *testing.T) {
	app := buildTestApp(&usuarioRepoStub{porID: map[string]*entity.Usuario{}}, entity.RolAdmin)
	resp := doRequest(t, app, tokenValido(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assertCodigo(t, resp, "INVALID_TOKEN")
}

// Caso 5: Cuenta desactivada con token aún vigente → 401 CUENTA_INACTIVA.
func TestAuthMiddleware_CuentaInactiva_Retorna401(t *testing.T) {
	app := buildTestApp(repoConUsuario(entity.RolAdmin, false), entity.RolAdmin)
	resp := doRequest(t, app, tokenValido(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assertCodigo(t, resp, "CUENTA_INACTIVA")
}

// Caso 6: El rol sale de la base, no del token. Si el admin fue degradado a
// consulta después de emitir el token, la ruta de admin debe rechazarlo.
func TestAuthMiddleware_RolReleidoDeLaBase(t *testing.T) {
	app := buildTestApp(repoConUsuario(entity.RolConsulta, true), entity.RolAdmin)
	resp := doRequest(t, app, tokenValido(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assertCodigo(t, resp, "FORBIDDEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(repoConUsuario(entity.RolAdmin, true), entity.RolAdmin)
	resp := doRequest(t, app, tokenValido(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")
}

func TestRequireRole_UsuarioAccedeRutaEscritura(t *testing.T) {
	app := buildTestApp(repoConUsuario(entity.RolUsuario, true), entity.RolAdmin, entity.RolUsuario)
	resp := doRequest(t, app, tokenValido(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"usuario debe poder acceder a ruta que permite admin o usuario")
}

func TestRequireRole_ConsultaBloqueadaEnEscritura(t *testing.T) {
	app := buildTestApp(repoConUsuario(entity.RolConsulta, true), entity.RolAdmin, entity.RolUsuario)
	resp := doRequest(t, app, tokenValido(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"consulta no debe poder escribir")
	assertCodigo(t, resp, "FORBIDDEN")
}
