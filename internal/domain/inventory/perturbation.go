// Package inventory contiene los servicios de dominio puros del monitor:
// perturbación del stock, filtrado y métricas derivadas. Ninguna función
// mantiene estado ni hace I/O.
package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
)

// Rand fuente de aleatoriedad inyectable. *math/rand/v2.Rand la satisface.
type Rand interface {
	IntN(n int) int
}

// Perturbation rango inclusivo [Min, Max] del delta aplicado a cada cantidad.
type Perturbation struct {
	Min int
	Max int
}

// DefaultPerturbation rango por defecto [-3, 3].
var DefaultPerturbation = Perturbation{Min: -3, Max: 3}

// Validate rechaza rangos invertidos.
func (p Perturbation) Validate() error {
	if p.Min > p.Max {
		return fmt.Errorf("perturbación [%d, %d]: %w", p.Min, p.Max, domain.ErrInvalidInput)
	}
	return nil
}

// Delta extrae un entero uniforme en [Min, Max] desde rng.
func (p Perturbation) Delta(rng Rand) int {
	span := p.Max - p.Min + 1
	if span <= 1 {
		return p.Min
	}
	return p.Min + rng.IntN(span)
}

// Refresh produce una copia del baseline con cada QuantityInStock reemplazado por
// max(0, baseline + delta). Cada registro recibe su propio sorteo; ReorderPoint y
// UnitCost se copian sin cambios. El baseline nunca se modifica.
func Refresh(baseline []entity.InventoryRecord, rng Rand, p Perturbation) []entity.InventoryRecord {
	out := make([]entity.InventoryRecord, len(baseline))
	for i, rec := range baseline {
		out[i] = rec.WithQuantity(ClampQuantity(rec.QuantityInStock + p.Delta(rng)))
	}
	return out
}

// ClampQuantity aplica el piso en cero.
func ClampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}
