package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
)

// SnapshotObserver recibe cada snapshot publicado (métricas, logs).
// Se invoca de forma sincrónica desde el refresco: no debe bloquear.
type SnapshotObserver interface {
	SnapshotPublished(version uint64, at time.Time, records, lowStock int)
}

// LookupObserver cuenta el origen de cada vista servida: "memo", "cache" o "computed".
type LookupObserver interface {
	ViewLookup(result string)
}

// MetricsCache caché compartido opcional de métricas por snapshot y criterio.
// Un miss devuelve (nil, false, nil).
type MetricsCache interface {
	Get(ctx context.Context, snapshotID string, criteria entity.FilterCriteria) (*entity.MetricsResult, bool, error)
	Set(ctx context.Context, snapshotID string, criteria entity.FilterCriteria, result entity.MetricsResult) error
}
