package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-monitor/internal/application/dto"
	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
)

// RefresherControl operaciones del refresco expuestas a administración (*inventory.Refresher).
type RefresherControl interface {
	Start(ctx context.Context)
	Stop()
	State() string
	RefreshNow(ctx context.Context) (*entity.LiveSnapshot, error)
}

// SnapshotReader devuelve el snapshot vigente (*inventory.SnapshotHolder).
type SnapshotReader interface {
	Current() *entity.LiveSnapshot
}

// AdminHandler controla el refresco periódico. Requiere rol admin.
type AdminHandler struct {
	refresher RefresherControl
	snapshots SnapshotReader
	// baseCtx contexto de vida del proceso: el loop reanudado no muere con la petición.
	baseCtx context.Context
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(baseCtx context.Context, refresher RefresherControl, snapshots SnapshotReader) *AdminHandler {
	return &AdminHandler{refresher: refresher, snapshots: snapshots, baseCtx: baseCtx}
}

// Refresh godoc
// @Summary      Publicar un snapshot nuevo ahora
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.RefresherStateDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/refresh [post]
func (h *AdminHandler) Refresh(c *fiber.Ctx) error {
	snap, err := h.refresher.RefreshNow(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRefresherStopped) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REFRESHER_STOPPED", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.RefresherStateDTO{State: h.refresher.State(), Version: snap.Version})
}

// Stop godoc
// @Summary      Detener el refresco periódico
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.RefresherStateDTO
// @Router       /api/admin/refresher/stop [post]
func (h *AdminHandler) Stop(c *fiber.Ctx) error {
	h.refresher.Stop()
	return c.JSON(h.state())
}

// Start godoc
// @Summary      Reanudar el refresco periódico
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.RefresherStateDTO
// @Router       /api/admin/refresher/start [post]
func (h *AdminHandler) Start(c *fiber.Ctx) error {
	h.refresher.Start(h.baseCtx)
	return c.JSON(h.state())
}

func (h *AdminHandler) state() dto.RefresherStateDTO {
	return dto.RefresherStateDTO{State: h.refresher.State(), Version: h.snapshots.Current().Version}
}
