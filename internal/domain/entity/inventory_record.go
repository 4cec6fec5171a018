package entity

import "github.com/shopspring/decimal"

// InventoryRecord representa una fila del dataset base de inventario.
// Inmutable una vez cargado; el refresco produce copias con QuantityInStock perturbado.
type InventoryRecord struct {
	ProductName     string          // único dentro del dataset (no se valida)
	Supplier        string          // categórico, se usa para filtrar y agrupar
	QuantityInStock int             // nunca negativo
	ReorderPoint    int             // umbral de stock bajo
	UnitCost        decimal.Decimal // costo unitario, nunca negativo
}

// IsLowStock indica si el stock vivo está estrictamente por debajo del punto de reorden.
func (r InventoryRecord) IsLowStock() bool {
	return r.QuantityInStock < r.ReorderPoint
}

// Value devuelve QuantityInStock × UnitCost.
func (r InventoryRecord) Value() decimal.Decimal {
	return decimal.NewFromInt(int64(r.QuantityInStock)).Mul(r.UnitCost)
}

// WithQuantity devuelve una copia con la cantidad indicada.
func (r InventoryRecord) WithQuantity(qty int) InventoryRecord {
	r.QuantityInStock = qty
	return r
}
