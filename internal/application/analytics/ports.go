package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-monitor/internal/application/dto"
)

// ReportData contenido del reporte PDF; todo sale de un mismo snapshot.
type ReportData struct {
	GeneratedAt time.Time
	Source      string
	Summary     dto.DashboardSummaryDTO
	Inventory   dto.InventoryViewDTO
	Charts      dto.DashboardChartsDTO
}

// ReportGenerator puerto de salida para el reporte imprimible (DIP).
type ReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, data ReportData) ([]byte, error)
}
