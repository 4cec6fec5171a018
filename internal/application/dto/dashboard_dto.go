package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary (cajas de valor).
type DashboardSummaryDTO struct {
	Snapshot            SnapshotMetaDTO `json:"snapshot"`
	Filter              FilterDTO       `json:"filter"`
	FilteredCount       int             `json:"filtered_count"`
	LowStockCount       int             `json:"low_stock_count"`
	TotalValue          decimal.Decimal `json:"total_value"`
	TotalValueFormatted string          `json:"total_value_formatted"` // ej: "$1,234.56"
}

// LowStockPointDTO barra del gráfico de stock bajo.
type LowStockPointDTO struct {
	ProductName     string `json:"product_name"`
	QuantityInStock int    `json:"quantity_in_stock"`
	ReorderPoint    int    `json:"reorder_point"`
}

// SupplierSliceDTO porción del gráfico de dona de valor por proveedor.
type SupplierSliceDTO struct {
	Supplier string          `json:"supplier"`
	Value    decimal.Decimal `json:"value"`
	Share    decimal.Decimal `json:"share"` // porcentaje del total, 2 decimales
}

// DashboardChartsDTO respuesta de GET /api/dashboard/charts.
type DashboardChartsDTO struct {
	Snapshot      SnapshotMetaDTO    `json:"snapshot"`
	Filter        FilterDTO          `json:"filter"`
	LowStock      []LowStockPointDTO `json:"low_stock"`
	SupplierValue []SupplierSliceDTO `json:"supplier_value"`
}
