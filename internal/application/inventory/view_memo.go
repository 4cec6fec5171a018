package inventory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-monitor/internal/domain/inventory"
	"github.com/jhoicas/inventario-monitor/pkg/logger"
)

const defaultMemoEntries = 256

// Origen de una vista servida por ViewMemo.
const (
	LookupMemo     = "memo"
	LookupCache    = "cache"
	LookupComputed = "computed"
)

// View resultado derivado de un snapshot y un criterio. Inmutable: se comparte entre lectores.
type View struct {
	Snapshot *entity.LiveSnapshot
	Criteria entity.FilterCriteria
	Records  []entity.InventoryRecord
	LowStock []entity.InventoryRecord
	Metrics  entity.MetricsResult
	Source   string // memo, cache o computed
}

// ViewMemo memoiza vistas por (versión de snapshot, criterio). Al aparecer una
// versión nueva se descartan todas las entradas anteriores.
type ViewMemo struct {
	holder  *SnapshotHolder
	cache   MetricsCache
	lookups LookupObserver
	log     *logger.Logger
	max     int

	mu      sync.Mutex
	version uint64
	snapID  string
	entries map[entity.FilterCriteria]*View
}

// NewViewMemo construye el memo. cache y lookups pueden ser nil.
func NewViewMemo(holder *SnapshotHolder, cache MetricsCache, lookups LookupObserver, log *logger.Logger) *ViewMemo {
	return &ViewMemo{
		holder:  holder,
		cache:   cache,
		lookups: lookups,
		log:     log,
		max:     defaultMemoEntries,
		entries: make(map[entity.FilterCriteria]*View),
	}
}

// Get devuelve la vista del snapshot vigente para criteria.
// Criterio con MinQuantity negativo → domain.ErrInvalidInput.
func (m *ViewMemo) Get(ctx context.Context, criteria entity.FilterCriteria) (*View, error) {
	if err := domaininv.ValidateCriteria(criteria); err != nil {
		return nil, err
	}
	key := criteria.Normalized()
	snap := m.holder.Current()

	if v, ok := m.lookup(snap, key); ok {
		m.count(LookupMemo)
		return withSource(v, LookupMemo), nil
	}

	v := m.compute(ctx, snap, key)
	m.count(v.Source)
	m.store(snap, key, v)
	return v, nil
}

// Len entradas memoizadas para la versión vigente.
func (m *ViewMemo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *ViewMemo) lookup(snap *entity.LiveSnapshot, key entity.FilterCriteria) (*View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advance(snap)
	if snap.ID != m.snapID {
		return nil, false
	}
	v, ok := m.entries[key]
	return v, ok
}

func (m *ViewMemo) store(snap *entity.LiveSnapshot, key entity.FilterCriteria, v *View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advance(snap)
	// Un lector que tomó un snapshot viejo no ensucia el memo de la versión nueva.
	if snap.ID != m.snapID {
		return
	}
	if len(m.entries) >= m.max {
		m.entries = make(map[entity.FilterCriteria]*View)
	}
	m.entries[key] = v
}

// advance requiere mu. Sólo avanza hacia versiones más nuevas.
func (m *ViewMemo) advance(snap *entity.LiveSnapshot) {
	if snap.ID == m.snapID {
		return
	}
	if m.snapID != "" && snap.Version < m.version {
		return
	}
	m.version = snap.Version
	m.snapID = snap.ID
	m.entries = make(map[entity.FilterCriteria]*View)
}

func (m *ViewMemo) compute(ctx context.Context, snap *entity.LiveSnapshot, key entity.FilterCriteria) *View {
	records := domaininv.Filter(snap.Records, key)
	v := &View{
		Snapshot: snap,
		Criteria: key,
		Records:  records,
		LowStock: domaininv.LowStock(records),
		Source:   LookupComputed,
	}

	if m.cache != nil {
		cached, ok, err := m.cache.Get(ctx, snap.ID, key)
		switch {
		case err != nil:
			m.log.Warn().Err(err).Msg("caché de métricas no disponible; se calcula localmente")
		case ok:
			v.Metrics = *cached
			v.Source = LookupCache
			return v
		}
	}

	v.Metrics = domaininv.ComputeMetrics(records)
	if m.cache != nil {
		if err := m.cache.Set(ctx, snap.ID, key, v.Metrics); err != nil {
			m.log.Warn().Err(err).Msg("no se pudo guardar métricas en caché")
		}
	}
	return v
}

func (m *ViewMemo) count(result string) {
	if m.lookups != nil {
		m.lookups.ViewLookup(result)
	}
}

func withSource(v *View, source string) *View {
	out := *v
	out.Source = source
	return &out
}
