package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
)

// Filter devuelve la subsecuencia de records que cumple criteria, en el mismo orden.
// Nunca devuelve nil: una vista vacía es un resultado válido.
func Filter(records []entity.InventoryRecord, criteria entity.FilterCriteria) []entity.InventoryRecord {
	out := make([]entity.InventoryRecord, 0, len(records))
	for _, rec := range records {
		if criteria.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// ValidateCriteria rechaza un mínimo negativo; cualquier entero no negativo es válido.
func ValidateCriteria(criteria entity.FilterCriteria) error {
	if criteria.MinQuantity < 0 {
		return fmt.Errorf("min_quantity %d: %w", criteria.MinQuantity, domain.ErrInvalidInput)
	}
	return nil
}
