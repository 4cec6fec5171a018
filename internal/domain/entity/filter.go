package entity

// AllSuppliers es el centinela exacto que representa "sin filtro de proveedor".
const AllSuppliers = "All"

// FilterCriteria criterios de filtrado elegidos por el usuario.
// Supplier vacío se trata igual que AllSuppliers.
type FilterCriteria struct {
	Supplier    string
	MinQuantity int // cota inferior inclusiva
}

// DefaultFilterCriteria devuelve el filtro que incluye todo el snapshot.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{Supplier: AllSuppliers}
}

// AllSuppliersSelected indica si el filtro de proveedor está desactivado.
func (c FilterCriteria) AllSuppliersSelected() bool {
	return c.Supplier == AllSuppliers || c.Supplier == ""
}

// Normalized reemplaza el proveedor vacío por el centinela para usarlo como clave estable.
func (c FilterCriteria) Normalized() FilterCriteria {
	if c.Supplier == "" {
		c.Supplier = AllSuppliers
	}
	return c
}

// Matches evalúa el predicado sobre un registro.
func (c FilterCriteria) Matches(r InventoryRecord) bool {
	if !c.AllSuppliersSelected() && r.Supplier != c.Supplier {
		return false
	}
	return r.QuantityInStock >= c.MinQuantity
}
