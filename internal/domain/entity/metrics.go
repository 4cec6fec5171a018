package entity

import "github.com/shopspring/decimal"

// MetricsResult métricas derivadas de una vista filtrada.
// PerSupplierValue sólo contiene proveedores con al menos un registro en la vista.
type MetricsResult struct {
	FilteredCount    int
	LowStockCount    int
	TotalValue       decimal.Decimal
	PerSupplierValue map[string]decimal.Decimal
}

// SupplierValue par proveedor/valor para el gráfico de dona.
type SupplierValue struct {
	Supplier string
	Value    decimal.Decimal
}
