package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acervo/expedientes-api/internal/application/auth"
	"github.com/acervo/expedientes-api/internal/application/portal"
	"github.com/acervo/expedientes-api/internal/application/reporte"
	"github.com/acervo/expedientes-api/internal/application/respaldo"
	"github.com/acervo/expedientes-api/internal/application/usecase"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UsuarioUC       *usecase.UsuarioUseCase
	ExpedienteUC    *usecase.ExpedienteUseCase
	DocumentoUC     *usecase.DocumentoUseCase
	CatalogoUC      *usecase.CatalogoUseCase
	ConfiguracionUC *usecase.ConfiguracionUseCase
	AuditoriaUC     *usecase.AuditoriaUseCase
	ReporteUC       *reporte.ReporteUseCase
	RespaldoUC      *respaldo.RespaldoUseCase
	PortalUC        *portal.PortalUseCase
	UsuarioRepo     repository.UsuarioRepository
	JWTSecret       string
}

// Router registra las rutas de la API.
// Política de roles: consulta solo lee; usuario además crea y edita
// expedientes, documentos y envíos al portal; admin todo lo demás.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token; el rol se relee de la base)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.UsuarioRepo))

	soloAdmin := RequireRole(entity.RolAdmin)
	escritura := RequireRole(entity.RolAdmin, entity.RolUsuario)

	// Usuarios (solo admin)
	usuarios := protected.Group("/usuarios", soloAdmin)
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Put("/:id", usuarioHandler.Update)
	usuarios.Put("/:id/password", usuarioHandler.ChangePassword)
	usuarios.Delete("/:id", usuarioHandler.Delete)

	// Expedientes
	expedientes := protected.Group("/expedientes")
	expedienteHandler := NewExpedienteHandler(deps.ExpedienteUC)
	documentoHandler := NewDocumentoHandler(deps.DocumentoUC)
	expedientes.Get("/", expedienteHandler.List)
	expedientes.Post("/", escritura, expedienteHandler.Create)
	expedientes.Get("/:id", expedienteHandler.GetByID)
	expedientes.Put("/:id", escritura, expedienteHandler.Update)
	expedientes.Delete("/:id", soloAdmin, expedienteHandler.Delete)
	expedientes.Get("/:id/documentos", documentoHandler.ListByExpediente)

	// Documentos
	protected.Post("/uploads/expedientes/:id/documentos", escritura, documentoHandler.Upload)
	documentos := protected.Group("/documentos")
	documentos.Get("/:id/descargar", documentoHandler.Download)
	documentos.Delete("/:id", escritura, documentoHandler.Delete)

	// Catálogo (lectura para todos, mantenimiento solo admin)
	catalogo := protected.Group("/catalogo")
	catalogoHandler := NewCatalogoHandler(deps.CatalogoUC)
	catalogo.Get("/areas", catalogoHandler.ListAreas)
	catalogo.Get("/fondos", catalogoHandler.ListFondos)
	catalogo.Get("/secciones", catalogoHandler.ListSecciones)
	catalogo.Get("/series", catalogoHandler.ListSeries)
	catalogo.Get("/subseries", catalogoHandler.ListSubseries)
	catalogo.Get("/completo", catalogoHandler.Completo)
	catalogo.Get("/buscar", catalogoHandler.Buscar)
	catalogo.Post("/:nivel", soloAdmin, catalogoHandler.CreateNodo)
	catalogo.Put("/:nivel/:id", soloAdmin, catalogoHandler.UpdateNodo)
	catalogo.Delete("/:nivel/:id", soloAdmin, catalogoHandler.DeleteNodo)

	// Reportes (cualquier rol autenticado)
	reportes := protected.Group("/reportes")
	reporteHandler := NewReporteHandler(deps.ReporteUC)
	reportes.Get("/excel", reporteHandler.Excel)
	reportes.Get("/pdf", reporteHandler.PDF)
	reportes.Get("/xml", reporteHandler.XML)
	reportes.Get("/inventario-general", reporteHandler.InventarioGeneral)

	// Auditoría (solo admin)
	auditoria := protected.Group("/auditoria", soloAdmin)
	auditoriaHandler := NewAuditoriaHandler(deps.AuditoriaUC)
	auditoria.Get("/", auditoriaHandler.List)
	auditoria.Delete("/depurar", auditoriaHandler.Depurar)

	// Configuración (solo admin)
	configuracion := protected.Group("/configuracion", soloAdmin)
	configuracionHandler := NewConfiguracionHandler(deps.ConfiguracionUC)
	configuracion.Get("/", configuracionHandler.List)
	configuracion.Put("/:clave", configuracionHandler.Update)

	// Respaldos (solo admin)
	respaldos := protected.Group("/respaldos", soloAdmin)
	respaldoHandler := NewRespaldoHandler(deps.RespaldoUC)
	respaldos.Post("/", respaldoHandler.Create)
	respaldos.Get("/", respaldoHandler.List)
	respaldos.Get("/:id/descargar", respaldoHandler.Download)
	respaldos.Delete("/:id", respaldoHandler.Delete)

	// Portal externo
	portalHandler := NewPortalHandler(deps.PortalUC)
	protected.Post("/portal/enviar", escritura, portalHandler.Enviar)
}
