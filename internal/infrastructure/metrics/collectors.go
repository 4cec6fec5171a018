// Package metrics expone contadores Prometheus del refresco y del caché de vistas.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "inventory_monitor"

// Collectors agrupa las métricas del monitor sobre un registro propio.
type Collectors struct {
	registry *prometheus.Registry

	refreshes       prometheus.Counter
	snapshotVersion prometheus.Gauge
	lastRefresh     prometheus.Gauge
	snapshotRecords prometheus.Gauge
	lowStock        prometheus.Gauge
	viewLookups     *prometheus.CounterVec
}

// New registra las métricas y los collectors de Go y proceso.
func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Snapshots publicados por el refresco periódico o manual.",
		}),
		snapshotVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_version",
			Help:      "Versión del snapshot vigente.",
		}),
		lastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time de la última publicación.",
		}),
		snapshotRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_records",
			Help:      "Registros en el snapshot vigente.",
		}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_low_stock_records",
			Help:      "Registros con stock bajo en el snapshot vigente, sin filtros.",
		}),
		viewLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_lookups_total",
			Help:      "Consultas de vistas filtradas por resultado (memo, cache, computed).",
		}, []string{"result"}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.refreshes, c.snapshotVersion, c.lastRefresh, c.snapshotRecords, c.lowStock, c.viewLookups,
	)
	return c
}

// SnapshotPublished actualiza los gauges al publicar un snapshot. Version 0 no cuenta como refresco.
func (c *Collectors) SnapshotPublished(version uint64, at time.Time, records, lowStock int) {
	if version > 0 {
		c.refreshes.Inc()
	}
	c.snapshotVersion.Set(float64(version))
	c.lastRefresh.Set(float64(at.Unix()))
	c.snapshotRecords.Set(float64(records))
	c.lowStock.Set(float64(lowStock))
}

// ViewLookup cuenta una consulta de vista: "memo", "cache" o "computed".
func (c *Collectors) ViewLookup(result string) {
	c.viewLookups.WithLabelValues(result).Inc()
}

// Registry expone el registro para tests o para colgar más collectors.
func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}

// Handler devuelve el handler HTTP de /metrics.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
