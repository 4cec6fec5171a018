package inventory

import (
	"sync/atomic"

	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
)

// SnapshotHolder referencia al snapshot vigente. Los lectores nunca ven un
// snapshot a medio construir: la publicación es un único swap del puntero.
type SnapshotHolder struct {
	current atomic.Pointer[entity.LiveSnapshot]
}

// NewSnapshotHolder arranca con initial publicado (normalmente el baseline, versión 0).
func NewSnapshotHolder(initial *entity.LiveSnapshot) *SnapshotHolder {
	h := &SnapshotHolder{}
	h.current.Store(initial)
	return h
}

// Current devuelve el snapshot vigente. No modificar el resultado.
func (h *SnapshotHolder) Current() *entity.LiveSnapshot {
	return h.current.Load()
}

// Publish reemplaza el snapshot vigente.
func (h *SnapshotHolder) Publish(s *entity.LiveSnapshot) {
	h.current.Store(s)
}
