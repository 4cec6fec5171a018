package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	"github.com/jhoicas/inventario-monitor/internal/domain/inventory"
)

func TestFilter_TodosYMinimoCeroDevuelveTodo(t *testing.T) {
	snap := sampleBaseline()
	view := inventory.Filter(snap, entity.FilterCriteria{Supplier: entity.AllSuppliers, MinQuantity: 0})
	assert.Equal(t, snap, view, "mismo orden y mismo conteo")
}

func TestFilter_PorProveedor(t *testing.T) {
	view := inventory.Filter(sampleBaseline(), entity.FilterCriteria{Supplier: "SupplierY"})
	if assert.Len(t, view, 1) {
		assert.Equal(t, "B", view[0].ProductName)
	}
}

func TestFilter_MinimoInclusivo(t *testing.T) {
	view := inventory.Filter(sampleBaseline(), entity.FilterCriteria{Supplier: entity.AllSuppliers, MinQuantity: 20})
	if assert.Len(t, view, 1) {
		assert.Equal(t, "B", view[0].ProductName)
	}
}

func TestFilter_VistaVaciaNoEsNil(t *testing.T) {
	view := inventory.Filter(sampleBaseline(), entity.FilterCriteria{Supplier: entity.AllSuppliers, MinQuantity: 25})
	assert.NotNil(t, view)
	assert.Empty(t, view)
}

func TestFilter_CentinelaExacto(t *testing.T) {
	// "all" en minúsculas es un nombre de proveedor, no el centinela.
	view := inventory.Filter(sampleBaseline(), entity.FilterCriteria{Supplier: "all"})
	assert.Empty(t, view)

	// Un proveedor llamado "all" sí se filtra por igualdad.
	snap := append(sampleBaseline(), entity.InventoryRecord{ProductName: "C", Supplier: "all", QuantityInStock: 1, UnitCost: decimal.Zero})
	view = inventory.Filter(snap, entity.FilterCriteria{Supplier: "all"})
	if assert.Len(t, view, 1) {
		assert.Equal(t, "C", view[0].ProductName)
	}
}

func TestFilter_ProveedorVacioEquivaleATodos(t *testing.T) {
	view := inventory.Filter(sampleBaseline(), entity.FilterCriteria{})
	assert.Len(t, view, 2)
}

func TestFilter_Idempotente(t *testing.T) {
	criteria := entity.FilterCriteria{Supplier: "SupplierX", MinQuantity: 1}
	once := inventory.Filter(sampleBaseline(), criteria)
	twice := inventory.Filter(once, criteria)
	assert.Equal(t, once, twice)
}

func TestFilter_PreservaOrden(t *testing.T) {
	snap := []entity.InventoryRecord{
		{ProductName: "c", Supplier: "S", QuantityInStock: 9},
		{ProductName: "a", Supplier: "T", QuantityInStock: 9},
		{ProductName: "b", Supplier: "S", QuantityInStock: 9},
	}
	view := inventory.Filter(snap, entity.FilterCriteria{Supplier: "S"})
	assert.Equal(t, []string{"c", "b"}, []string{view[0].ProductName, view[1].ProductName})
}

func TestValidateCriteria(t *testing.T) {
	assert.NoError(t, inventory.ValidateCriteria(entity.FilterCriteria{MinQuantity: 0}))
	assert.NoError(t, inventory.ValidateCriteria(entity.FilterCriteria{MinQuantity: 5000}), "el core acepta valores sobre el máximo del slider")
	assert.ErrorIs(t, inventory.ValidateCriteria(entity.FilterCriteria{MinQuantity: -1}), domain.ErrInvalidInput)
}
