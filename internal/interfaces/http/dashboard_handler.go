package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-monitor/internal/application/analytics"
	"github.com/jhoicas/inventario-monitor/internal/application/dto"
	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
)

// DashboardHandler maneja los endpoints de lectura del monitor de inventario.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Status godoc
// @Summary      Estado del snapshot vigente
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.StatusDTO
// @Router       /api/status [get]
func (h *DashboardHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.uc.Status())
}

// Suppliers godoc
// @Summary      Opciones de filtro (proveedores y cantidad mínima)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.SupplierOptionsDTO
// @Router       /api/suppliers [get]
func (h *DashboardHandler) Suppliers(c *fiber.Ctx) error {
	return c.JSON(h.uc.Suppliers())
}

// Inventory godoc
// @Summary      Tabla de inventario filtrada
// @Tags         dashboard
// @Produce      json
// @Param        supplier      query  string  false  "proveedor o All"
// @Param        min_quantity  query  int     false  "cantidad mínima (inclusive)"
// @Success      200  {object}  dto.InventoryViewDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *DashboardHandler) Inventory(c *fiber.Ctx) error {
	criteria, ok := parseFilter(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Inventory(c.Context(), criteria)
	if err != nil {
		return viewError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Cajas de valor del dashboard
// @Tags         dashboard
// @Produce      json
// @Param        supplier      query  string  false  "proveedor o All"
// @Param        min_quantity  query  int     false  "cantidad mínima (inclusive)"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	criteria, ok := parseFilter(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Summary(c.Context(), criteria)
	if err != nil {
		return viewError(c, err)
	}
	return c.JSON(out)
}

// Charts godoc
// @Summary      Series de los gráficos (stock bajo y valor por proveedor)
// @Tags         dashboard
// @Produce      json
// @Param        supplier      query  string  false  "proveedor o All"
// @Param        min_quantity  query  int     false  "cantidad mínima (inclusive)"
// @Success      200  {object}  dto.DashboardChartsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/charts [get]
func (h *DashboardHandler) Charts(c *fiber.Ctx) error {
	criteria, ok := parseFilter(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Charts(c.Context(), criteria)
	if err != nil {
		return viewError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF del dashboard filtrado
// @Tags         reports
// @Produce      application/pdf
// @Param        supplier      query  string  false  "proveedor o All"
// @Param        min_quantity  query  int     false  "cantidad mínima (inclusive)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.pdf [get]
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	criteria, ok := parseFilter(c)
	if !ok {
		return nil
	}
	pdf, err := h.uc.Report(c.Context(), criteria)
	if err != nil {
		return viewError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="inventario.pdf"`)
	return c.Send(pdf)
}

// parseFilter lee supplier y min_quantity. Si falla ya respondió 400 y devuelve ok=false.
func parseFilter(c *fiber.Ctx) (entity.FilterCriteria, bool) {
	var q dto.FilterQuery
	if err := c.QueryParser(&q); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_quantity debe ser un entero"})
		return entity.FilterCriteria{}, false
	}
	criteria := entity.FilterCriteria{Supplier: q.Supplier}
	if q.MinQuantity != nil {
		if *q.MinQuantity < 0 {
			_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_quantity no puede ser negativo"})
			return entity.FilterCriteria{}, false
		}
		criteria.MinQuantity = *q.MinQuantity
	}
	return criteria, true
}

func viewError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
