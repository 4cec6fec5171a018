// Package analytics arma las respuestas del dashboard de inventario (tabla,
// cajas de valor, gráficos y reporte PDF) a partir de la vista memoizada.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-monitor/internal/application/dto"
	appinventory "github.com/jhoicas/inventario-monitor/internal/application/inventory"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-monitor/internal/domain/inventory"
	"github.com/jhoicas/inventario-monitor/pkg/format"
)

var hundred = decimal.NewFromInt(100)

// FilterDefaults valores iniciales de los controles de filtro de la UI.
type FilterDefaults struct {
	DefaultMinQuantity int
	MaxMinQuantity     int
}

// RefreshStatus lo que el dashboard necesita saber del refresco.
type RefreshStatus interface {
	State() string
	Interval() time.Duration
}

// ViewProvider devuelve la vista vigente para un criterio (*appinventory.ViewMemo).
type ViewProvider interface {
	Get(ctx context.Context, criteria entity.FilterCriteria) (*appinventory.View, error)
}

// DashboardUseCase expone las lecturas del dashboard. Todas las piezas de una
// respuesta salen de la misma View, así que nunca mezclan snapshots.
type DashboardUseCase struct {
	store    *appinventory.Store
	holder   *appinventory.SnapshotHolder
	views    ViewProvider
	refresh  RefreshStatus
	defaults FilterDefaults
	reports  ReportGenerator
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. reports puede ser nil (reporte deshabilitado).
func NewDashboardUseCase(
	store *appinventory.Store,
	holder *appinventory.SnapshotHolder,
	views ViewProvider,
	refresh RefreshStatus,
	defaults FilterDefaults,
	reports ReportGenerator,
) *DashboardUseCase {
	return &DashboardUseCase{
		store:    store,
		holder:   holder,
		views:    views,
		refresh:  refresh,
		defaults: defaults,
		reports:  reports,
		now:      time.Now,
	}
}

// Suppliers opciones del selector de proveedor y del slider de cantidad mínima.
func (uc *DashboardUseCase) Suppliers() dto.SupplierOptionsDTO {
	return dto.SupplierOptionsDTO{
		Suppliers:          uc.store.DistinctSuppliers(),
		DefaultSupplier:    entity.AllSuppliers,
		DefaultMinQuantity: uc.defaults.DefaultMinQuantity,
		MaxMinQuantity:     uc.defaults.MaxMinQuantity,
	}
}

// Status snapshot vigente y estado del refresco.
func (uc *DashboardUseCase) Status() dto.StatusDTO {
	snap := uc.holder.Current()
	return dto.StatusDTO{
		Snapshot:        snapshotMeta(snap),
		Source:          uc.store.Source(),
		Records:         snap.Len(),
		RefreshState:    uc.refresh.State(),
		IntervalSeconds: int(uc.refresh.Interval() / time.Second),
	}
}

// Inventory tabla filtrada.
func (uc *DashboardUseCase) Inventory(ctx context.Context, criteria entity.FilterCriteria) (*dto.InventoryViewDTO, error) {
	v, err := uc.views.Get(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("inventario: %w", err)
	}
	out := inventoryDTO(v)
	return &out, nil
}

// Summary cajas de valor: registros, stock bajo y valor total.
func (uc *DashboardUseCase) Summary(ctx context.Context, criteria entity.FilterCriteria) (*dto.DashboardSummaryDTO, error) {
	v, err := uc.views.Get(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("resumen: %w", err)
	}
	out := summaryDTO(v)
	return &out, nil
}

// Charts series del gráfico de stock bajo y de la dona por proveedor.
func (uc *DashboardUseCase) Charts(ctx context.Context, criteria entity.FilterCriteria) (*dto.DashboardChartsDTO, error) {
	v, err := uc.views.Get(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("gráficos: %w", err)
	}
	out := chartsDTO(v)
	return &out, nil
}

// Report genera el PDF del dashboard filtrado.
func (uc *DashboardUseCase) Report(ctx context.Context, criteria entity.FilterCriteria) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("reporte: generador no configurado")
	}
	v, err := uc.views.Get(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("reporte: %w", err)
	}
	data := ReportData{
		GeneratedAt: uc.now(),
		Source:      uc.store.Source(),
		Summary:     summaryDTO(v),
		Inventory:   inventoryDTO(v),
		Charts:      chartsDTO(v),
	}
	pdf, err := uc.reports.GenerateInventoryReport(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("reporte: %w", err)
	}
	return pdf, nil
}

// ── Conversión a DTO ──────────────────────────────────────────────────────────

func snapshotMeta(s *entity.LiveSnapshot) dto.SnapshotMetaDTO {
	return dto.SnapshotMetaDTO{
		ID:               s.ID,
		Version:          s.Version,
		RefreshedAt:      s.RefreshedAt.Format(time.RFC3339),
		RefreshedAtLabel: format.Clock(s.RefreshedAt),
	}
}

func filterDTO(c entity.FilterCriteria) dto.FilterDTO {
	return dto.FilterDTO{Supplier: c.Supplier, MinQuantity: c.MinQuantity}
}

func inventoryDTO(v *appinventory.View) dto.InventoryViewDTO {
	items := make([]dto.InventoryRowDTO, 0, len(v.Records))
	for _, r := range v.Records {
		items = append(items, dto.InventoryRowDTO{
			ProductName:     r.ProductName,
			Supplier:        r.Supplier,
			QuantityInStock: r.QuantityInStock,
			ReorderPoint:    r.ReorderPoint,
			UnitCost:        r.UnitCost,
			Value:           r.Value(),
			LowStock:        r.IsLowStock(),
		})
	}
	return dto.InventoryViewDTO{
		Snapshot: snapshotMeta(v.Snapshot),
		Filter:   filterDTO(v.Criteria),
		Count:    len(items),
		Items:    items,
	}
}

func summaryDTO(v *appinventory.View) dto.DashboardSummaryDTO {
	return dto.DashboardSummaryDTO{
		Snapshot:            snapshotMeta(v.Snapshot),
		Filter:              filterDTO(v.Criteria),
		FilteredCount:       v.Metrics.FilteredCount,
		LowStockCount:       v.Metrics.LowStockCount,
		TotalValue:          v.Metrics.TotalValue,
		TotalValueFormatted: format.Currency(v.Metrics.TotalValue),
	}
}

func chartsDTO(v *appinventory.View) dto.DashboardChartsDTO {
	low := make([]dto.LowStockPointDTO, 0, len(v.LowStock))
	for _, r := range v.LowStock {
		low = append(low, dto.LowStockPointDTO{
			ProductName:     r.ProductName,
			QuantityInStock: r.QuantityInStock,
			ReorderPoint:    r.ReorderPoint,
		})
	}

	total := v.Metrics.TotalValue
	values := domaininv.SupplierValues(v.Metrics)
	slices := make([]dto.SupplierSliceDTO, 0, len(values))
	for _, sv := range values {
		share := decimal.Zero
		if !total.IsZero() {
			share = sv.Value.Mul(hundred).Div(total).Round(2)
		}
		slices = append(slices, dto.SupplierSliceDTO{Supplier: sv.Supplier, Value: sv.Value, Share: share})
	}

	return dto.DashboardChartsDTO{
		Snapshot:      snapshotMeta(v.Snapshot),
		Filter:        filterDTO(v.Criteria),
		LowStock:      low,
		SupplierValue: slices,
	}
}
