package inventory

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
)

// DistinctSuppliers devuelve las opciones del selector: el centinela AllSuppliers
// primero y luego los proveedores únicos en orden lexicográfico.
func DistinctSuppliers(records []entity.InventoryRecord) []string {
	seen := make(map[string]struct{}, len(records))
	suppliers := make([]string, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.Supplier]; ok {
			continue
		}
		seen[rec.Supplier] = struct{}{}
		suppliers = append(suppliers, rec.Supplier)
	}
	sort.Strings(suppliers)
	return append([]string{entity.AllSuppliers}, suppliers...)
}

// ValidateRecord verifica los invariantes de un registro del baseline.
// ReorderPoint o UnitCost negativos se tratan como dato inválido, no se corrigen.
func ValidateRecord(rec entity.InventoryRecord) error {
	var errs []error
	if strings.TrimSpace(rec.ProductName) == "" {
		errs = append(errs, errors.New("ProductName vacío"))
	}
	if strings.TrimSpace(rec.Supplier) == "" {
		errs = append(errs, errors.New("Supplier vacío"))
	}
	if rec.QuantityInStock < 0 {
		errs = append(errs, fmt.Errorf("QuantityInStock negativo (%d)", rec.QuantityInStock))
	}
	if rec.ReorderPoint < 0 {
		errs = append(errs, fmt.Errorf("ReorderPoint negativo (%d)", rec.ReorderPoint))
	}
	if rec.UnitCost.IsNegative() {
		errs = append(errs, fmt.Errorf("UnitCost negativo (%s)", rec.UnitCost.String()))
	}
	return errors.Join(errs...)
}
