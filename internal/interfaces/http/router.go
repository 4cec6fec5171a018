package http

import (
	"context"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/inventario-monitor/internal/application/analytics"
	"github.com/jhoicas/inventario-monitor/internal/application/auth"
	pkgjwt "github.com/jhoicas/inventario-monitor/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	// BaseCtx contexto del proceso; el refresco reanudado por admin cuelga de él.
	BaseCtx     context.Context
	DashboardUC *appanalytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	Refresher   RefresherControl
	Snapshots   SnapshotReader
	// Metrics handler de Prometheus; nil = sin /metrics.
	Metrics   nethttp.Handler
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Lectura (público)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/status", dashboardHandler.Status)
	api.Get("/suppliers", dashboardHandler.Suppliers)
	api.Get("/inventory", dashboardHandler.Inventory)
	dashboard := api.Group("/dashboard")
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/charts", dashboardHandler.Charts)
	api.Get("/reports/inventory.pdf", dashboardHandler.Report)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Administración del refresco (Bearer Token + rol admin)
	baseCtx := deps.BaseCtx
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(pkgjwt.RoleAdmin))
	adminHandler := NewAdminHandler(baseCtx, deps.Refresher, deps.Snapshots)
	admin.Post("/refresh", adminHandler.Refresh)
	admin.Post("/refresher/stop", adminHandler.Stop)
	admin.Post("/refresher/start", adminHandler.Start)
}
