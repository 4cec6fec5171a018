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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/inventario-monitor/internal/application/auth"
	httpRouter "github.com/jhoicas/inventario-monitor/internal/interfaces/http"
)

const swaggerFile = "./docs/swagger.json"

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Carga el baseline, arranca el refresco periódico y expone la API",
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("dataset", cfg.Dataset.Path).
		Msg("iniciando monitor de inventario")

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		// Sin baseline no hay nada que mostrar.
		log.Fatal().Err(err).Msg("carga del dataset")
	}
	defer p.close()
	flushMetricsCache(ctx, p.metricsCache, log)

	authUC := auth.NewAuthUseCase(
		auth.Credentials{Username: cfg.Admin.User, PasswordHash: cfg.Admin.PasswordHash},
		auth.JWTConfig{Secret: cfg.Admin.JWTSecret, ExpMinutes: cfg.Admin.JWTExpMin, Issuer: cfg.Admin.JWTIssuer},
	)
	if cfg.Admin.PasswordHash == "" || cfg.Admin.JWTSecret == "" {
		log.Warn().Msg("ADMIN_PASSWORD_HASH o JWT_SECRET vacíos: endpoints de administración deshabilitados")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario en vivo API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.App.Name,
			"version": p.holder.Current().Version,
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BaseCtx:     ctx,
		DashboardUC: p.dashboard,
		AuthUC:      authUC,
		Refresher:   p.refresher,
		Snapshots:   p.holder,
		Metrics:     p.collectors.Handler(),
		JWTSecret:   cfg.Admin.JWTSecret,
	})

	p.refresher.Start(ctx)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	p.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Uint64("version", p.holder.Current().Version).Msg("monitor detenido")
	return nil
}
