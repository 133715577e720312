package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"

	_ "github.com/jhoicas/Inventario-web/docs"
	"github.com/jhoicas/Inventario-web/internal/application/order"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/internal/domain/repository"
	"github.com/jhoicas/Inventario-web/internal/infrastructure/apiclient"
	infrapdf "github.com/jhoicas/Inventario-web/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-web/internal/infrastructure/storage"
	"github.com/jhoicas/Inventario-web/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/Inventario-web/internal/interfaces/http"
	"github.com/jhoicas/Inventario-web/pkg/config"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

const (
	sweepInterval = time.Minute
	// sesiones sin actividad por más de esto se purgan del almacenamiento SQL
	sessionRetention       = 30 * 24 * time.Hour
	loginAttemptsPerMinute = 10
)

// purger lo implementan los almacenamientos SQL.
type purger interface {
	PurgeBefore(ctx context.Context, before time.Time) (int64, error)
}

// @title        Inventario Web
// @version      1.0
// @description  Endpoints JSON del front-end de inventario (salud, sesión y escáner).
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, cfg.App.Name, cfg.Telemetry, log)

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("abrir almacenamiento de sesiones")
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	api := apiclient.New(cfg.API, log)
	drafts := order.NewDrafts(cfg.Session.DraftTTL)
	pdfGenerator := infrapdf.NewMarotoOrderPDF(cfg.App.Name)

	authUC := usecase.NewAuthUseCase(api, log)
	dashboardUC := usecase.NewDashboardUseCase()
	productUC := usecase.NewProductUseCase()
	partnerUC := usecase.NewPartnerUseCase()
	orderUC := usecase.NewOrderUseCase(drafts, pdfGenerator, log)

	go sweep(ctx, drafts, store, log)

	engine := html.New(cfg.App.TemplatesDir, ".html")
	engine.AddFuncMap(httpRouter.TemplateFuncs())
	if cfg.App.Env == "development" {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        engine,
		ErrorHandler: httpRouter.ErrorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{ContextKey: httpRouter.LocalRequestID}))
	app.Use(helmet.New(helmet.Config{
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data:; style-src 'self'",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Estáticos y docs antes del router: lo que sigue queda detrás del guard de sesión.
	app.Static("/static", cfg.App.StaticDir, fiber.Static{MaxAge: 3600})
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Inventario Web",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		API:           api,
		Storage:       store,
		StorageDriver: cfg.Storage.Driver,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		ConnectURL:  cfg.API.ConnectURL,
		LoginLimit:  loginAttemptsPerMinute,
		AuthUC:      authUC,
		DashboardUC: dashboardUC,
		ProductUC:   productUC,
		PartnerUC:   partnerUC,
		OrderUC:     orderUC,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}

// sweep descarta borradores vencidos y, si el almacenamiento lo permite, sesiones abandonadas.
func sweep(ctx context.Context, drafts *order.Drafts, store repository.DurableStorage, log *logger.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	p, canPurge := store.(purger)
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := drafts.Sweep(now); n > 0 {
				log.Debug().Int("borradores", n).Msg("borradores vencidos descartados")
			}
			if !canPurge || now.Minute() != 0 {
				continue
			}
			n, err := p.PurgeBefore(ctx, now.Add(-sessionRetention))
			if err != nil {
				log.Warn().Err(err).Msg("purgar sesiones")
				continue
			}
			if n > 0 {
				log.Info().Int64("entradas", n).Msg("sesiones abandonadas purgadas")
			}
		}
	}
}
