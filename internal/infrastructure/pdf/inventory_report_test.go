package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-monitor/internal/application/analytics"
	"github.com/jhoicas/inventario-monitor/internal/application/dto"
	"github.com/jhoicas/inventario-monitor/internal/infrastructure/pdf"
)

func sampleReport() analytics.ReportData {
	snap := dto.SnapshotMetaDTO{ID: "s", Version: 4, RefreshedAt: "2024-05-01T12:00:00Z", RefreshedAtLabel: "12:00:00"}
	filter := dto.FilterDTO{Supplier: "All"}
	return analytics.ReportData{
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC),
		Source:      "inventory.csv",
		Summary: dto.DashboardSummaryDTO{
			Snapshot: snap, Filter: filter,
			FilteredCount: 2, LowStockCount: 1,
			TotalValue: decimal.NewFromInt(30), TotalValueFormatted: "$30.00",
		},
		Inventory: dto.InventoryViewDTO{
			Snapshot: snap, Filter: filter, Count: 2,
			Items: []dto.InventoryRowDTO{
				{ProductName: "A", Supplier: "SupplierX", QuantityInStock: 5, ReorderPoint: 10, UnitCost: decimal.NewFromInt(2), Value: decimal.NewFromInt(10), LowStock: true},
				{ProductName: "B", Supplier: "SupplierY", QuantityInStock: 20, ReorderPoint: 5, UnitCost: decimal.NewFromInt(1), Value: decimal.NewFromInt(20)},
			},
		},
		Charts: dto.DashboardChartsDTO{
			Snapshot: snap, Filter: filter,
			LowStock: []dto.LowStockPointDTO{{ProductName: "A", QuantityInStock: 5, ReorderPoint: 10}},
			SupplierValue: []dto.SupplierSliceDTO{
				{Supplier: "SupplierX", Value: decimal.NewFromInt(10), Share: decimal.RequireFromString("33.33")},
				{Supplier: "SupplierY", Value: decimal.NewFromInt(20), Share: decimal.RequireFromString("66.67")},
			},
		},
	}
}

func TestGenerateInventoryReport_DevuelvePDF(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator("").GenerateInventoryReport(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "cabecera PDF")
}

func TestGenerateInventoryReport_VistaVacia(t *testing.T) {
	data := sampleReport()
	data.Inventory.Items = nil
	data.Charts.LowStock = nil
	data.Charts.SupplierValue = nil

	out, err := pdf.NewMarotoReportGenerator("Reporte").GenerateInventoryReport(context.Background(), data)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateInventoryReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewMarotoReportGenerator("").GenerateInventoryReport(ctx, sampleReport())
	assert.ErrorIs(t, err, context.Canceled)
}
