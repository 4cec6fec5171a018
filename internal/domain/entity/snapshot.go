package entity

import "time"

// LiveSnapshot es la vista "viva" del inventario producida en cada tick de refresco.
// Se reemplaza completa en cada publicación; nunca se muta después de publicada.
type LiveSnapshot struct {
	ID          string
	Version     uint64 // 0 = baseline sin perturbar
	RefreshedAt time.Time
	Records     []InventoryRecord
}

// Len devuelve el número de registros del snapshot (0 si es nil).
func (s *LiveSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}
