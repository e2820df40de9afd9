package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/acervo/expedientes-api/internal/application/auth"
	appportal "github.com/acervo/expedientes-api/internal/application/portal"
	"github.com/acervo/expedientes-api/internal/application/reporte"
	apprespaldo "github.com/acervo/expedientes-api/internal/application/respaldo"
	"github.com/acervo/expedientes-api/internal/application/usecase"
	"github.com/acervo/expedientes-api/internal/infrastructure/backup"
	"github.com/acervo/expedientes-api/internal/infrastructure/excel"
	"github.com/acervo/expedientes-api/internal/infrastructure/filestore"
	infrapdf "github.com/acervo/expedientes-api/internal/infrastructure/pdf"
	infraportal "github.com/acervo/expedientes-api/internal/infrastructure/portal"
	"github.com/acervo/expedientes-api/internal/infrastructure/postgres"
	"github.com/acervo/expedientes-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/acervo/expedientes-api/internal/interfaces/http"
	"github.com/acervo/expedientes-api/pkg/config"
	"github.com/acervo/expedientes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	expedienteRepo := postgres.NewExpedienteRepository(pool)
	catalogoRepo := postgres.NewCatalogoRepository(pool)
	documentoRepo := postgres.NewDocumentoRepository(pool)
	historialRepo := postgres.NewHistorialRepository(pool)
	configuracionRepo := postgres.NewConfiguracionRepository(pool)
	respaldoRepo := postgres.NewRespaldoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	store, err := filestore.New(cfg.Storage.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de documentos")
	}

	authUC := auth.NewAuthUseCase(usuarioRepo, historialRepo, auth.JWTConfig{
		Secret:   cfg.JWT.Secret,
		ExpHours: cfg.JWT.ExpHours,
		Issuer:   cfg.JWT.Issuer,
	}, log)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo, txRunner)
	expedienteUC := usecase.NewExpedienteUseCase(expedienteRepo, catalogoRepo, txRunner)
	documentoUC := usecase.NewDocumentoUseCase(documentoRepo, expedienteRepo, store, txRunner, cfg.Storage.MaxUploadBytes(), log)
	catalogoUC := usecase.NewCatalogoUseCase(catalogoRepo, txRunner)
	configuracionUC := usecase.NewConfiguracionUseCase(configuracionRepo, txRunner)
	auditoriaUC := usecase.NewAuditoriaUseCase(historialRepo, configuracionRepo)

	// Reportes: un generador por formato más el inventario general en PDF
	pdfGen := infrapdf.NewMarotoReporteGenerator()
	reporteUC := reporte.NewReporteUseCase(expedienteRepo, catalogoRepo, map[string]reporte.Generador{
		reporte.FormatoExcel: excel.NewExcelizeGenerator(),
		reporte.FormatoPDF:   pdfGen,
		reporte.FormatoXML:   xmlexport.NewEtreeGenerator(),
	}, pdfGen)

	pgDump := backup.NewPgDump(cfg.Respaldo.PgDumpPath, cfg.DB.ConnectionString())
	respaldoUC, err := apprespaldo.NewRespaldoUseCase(respaldoRepo, pgDump, cfg.Respaldo.Dir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de respaldos")
	}

	navegador := infraportal.NewNavegador(infraportal.Config{
		URL:      cfg.Portal.URL,
		Usuario:  cfg.Portal.Usuario,
		Password: cfg.Portal.Password,
		Headless: cfg.Portal.Headless,
	}, log)
	portalUC := appportal.NewPortalUseCase(expedienteRepo, navegador, cfg.Portal.MaxRetries, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Storage.MaxUploadBytes()) + 1024*1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Expedientes API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		UsuarioUC:       usuarioUC,
		ExpedienteUC:    expedienteUC,
		DocumentoUC:     documentoUC,
		CatalogoUC:      catalogoUC,
		ConfiguracionUC: configuracionUC,
		AuditoriaUC:     auditoriaUC,
		ReporteUC:       reporteUC,
		RespaldoUC:      respaldoUC,
		PortalUC:        portalUC,
		UsuarioRepo:     usuarioRepo,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
