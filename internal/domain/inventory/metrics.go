package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
)

// ComputeMetrics calcula conteos y valores sobre una vista filtrada.
// Toda la acumulación es decimal, así que la suma por proveedor coincide
// exactamente con TotalValue.
func ComputeMetrics(view []entity.InventoryRecord) entity.MetricsResult {
	res := entity.MetricsResult{
		TotalValue:       decimal.Zero,
		PerSupplierValue: make(map[string]decimal.Decimal),
	}
	for _, rec := range view {
		res.FilteredCount++
		if rec.IsLowStock() {
			res.LowStockCount++
		}
		v := rec.Value()
		res.TotalValue = res.TotalValue.Add(v)
		if acc, ok := res.PerSupplierValue[rec.Supplier]; ok {
			res.PerSupplierValue[rec.Supplier] = acc.Add(v)
		} else {
			res.PerSupplierValue[rec.Supplier] = v
		}
	}
	return res
}

// LowStock devuelve los registros en stock bajo (serie del gráfico de barras).
func LowStock(view []entity.InventoryRecord) []entity.InventoryRecord {
	out := make([]entity.InventoryRecord, 0)
	for _, rec := range view {
		if rec.IsLowStock() {
			out = append(out, rec)
		}
	}
	return out
}

// SupplierValues convierte PerSupplierValue en una lista ordenada por proveedor.
func SupplierValues(m entity.MetricsResult) []entity.SupplierValue {
	out := make([]entity.SupplierValue, 0, len(m.PerSupplierValue))
	for s, v := range m.PerSupplierValue {
		out = append(out, entity.SupplierValue{Supplier: s, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Supplier < out[j].Supplier })
	return out
}
