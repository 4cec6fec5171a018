package inventory_test

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	"github.com/jhoicas/inventario-monitor/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeMetrics_TodosLosProveedores(t *testing.T) {
	view := inventory.Filter(sampleBaseline(), entity.FilterCriteria{Supplier: entity.AllSuppliers})
	m := inventory.ComputeMetrics(view)

	assert.Equal(t, 2, m.FilteredCount)
	assert.Equal(t, 1, m.LowStockCount, "sólo A está bajo su punto de reorden")
	assert.True(t, m.TotalValue.Equal(decimal.NewFromInt(30)), "total = 5*2.0 + 20*1.0")
	require.Len(t, m.PerSupplierValue, 2)
	assert.True(t, m.PerSupplierValue["SupplierX"].Equal(decimal.NewFromInt(10)))
	assert.True(t, m.PerSupplierValue["SupplierY"].Equal(decimal.NewFromInt(20)))
}

func TestComputeMetrics_UnProveedor(t *testing.T) {
	view := inventory.Filter(sampleBaseline(), entity.FilterCriteria{Supplier: "SupplierY"})
	m := inventory.ComputeMetrics(view)

	assert.Equal(t, 1, m.FilteredCount)
	assert.Equal(t, 0, m.LowStockCount, "20 >= 5 no es stock bajo")
	assert.True(t, m.TotalValue.Equal(decimal.NewFromInt(20)))
	assert.Len(t, m.PerSupplierValue, 1)
	_, hasX := m.PerSupplierValue["SupplierX"]
	assert.False(t, hasX, "los grupos vacíos no aparecen")
}

func TestComputeMetrics_VistaVacia(t *testing.T) {
	view := inventory.Filter(sampleBaseline(), entity.FilterCriteria{Supplier: entity.AllSuppliers, MinQuantity: 25})
	m := inventory.ComputeMetrics(view)

	assert.Equal(t, 0, m.FilteredCount)
	assert.Equal(t, 0, m.LowStockCount)
	assert.True(t, m.TotalValue.IsZero())
	assert.NotNil(t, m.PerSupplierValue)
	assert.Empty(t, m.PerSupplierValue)
}

func TestComputeMetrics_Nil(t *testing.T) {
	m := inventory.ComputeMetrics(nil)
	assert.Equal(t, 0, m.FilteredCount)
	assert.True(t, m.TotalValue.IsZero())
	assert.Empty(t, m.PerSupplierValue)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

func randomView(rng *rand.Rand, n int) []entity.InventoryRecord {
	suppliers := []string{"Acme", "Globex", "Initech", "Umbrella"}
	out := make([]entity.InventoryRecord, n)
	for i := range out {
		out[i] = entity.InventoryRecord{
			ProductName:     "P",
			Supplier:        suppliers[rng.IntN(len(suppliers))],
			QuantityInStock: rng.IntN(120),
			ReorderPoint:    rng.IntN(60),
			UnitCost:        decimal.New(int64(rng.IntN(100000)), -2),
		}
	}
	return out
}

func TestComputeMetrics_SumaPorProveedorIgualTotal(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 100; i++ {
		m := inventory.ComputeMetrics(randomView(rng, rng.IntN(40)))

		sum := decimal.Zero
		for _, v := range m.PerSupplierValue {
			sum = sum.Add(v)
		}
		require.True(t, sum.Equal(m.TotalValue), "suma %s != total %s", sum, m.TotalValue)
		require.LessOrEqual(t, m.LowStockCount, m.FilteredCount)
	}
}

func TestComputeMetrics_MismaEntradaMismoResultado(t *testing.T) {
	view := randomView(rand.New(rand.NewPCG(11, 13)), 30)
	a := inventory.ComputeMetrics(view)
	b := inventory.ComputeMetrics(view)
	assert.True(t, a.TotalValue.Equal(b.TotalValue))
	assert.Equal(t, a.LowStockCount, b.LowStockCount)
}

func TestLowStock(t *testing.T) {
	low := inventory.LowStock(sampleBaseline())
	if assert.Len(t, low, 1) {
		assert.Equal(t, "A", low[0].ProductName)
	}
	assert.NotNil(t, inventory.LowStock(nil))
}

func TestSupplierValues_OrdenadoPorProveedor(t *testing.T) {
	m := inventory.ComputeMetrics(sampleBaseline())
	vals := inventory.SupplierValues(m)
	require.Len(t, vals, 2)
	assert.Equal(t, "SupplierX", vals[0].Supplier)
	assert.Equal(t, "SupplierY", vals[1].Supplier)
}
