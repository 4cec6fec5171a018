package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-monitor/internal/infrastructure/metrics"
)

func gather(t *testing.T, c *metrics.Collectors, name string) float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			var total float64
			for _, m := range mf.GetMetric() {
				switch {
				case m.GetCounter() != nil:
					total += m.GetCounter().GetValue()
				case m.GetGauge() != nil:
					total += m.GetGauge().GetValue()
				}
			}
			return total
		}
	}
	t.Fatalf("métrica %s no encontrada", name)
	return 0
}

func TestSnapshotPublished_BaselineNoCuentaComoRefresco(t *testing.T) {
	c := metrics.New()
	at := time.Unix(1700000000, 0)

	c.SnapshotPublished(0, at, 10, 2)
	assert.Equal(t, 0.0, gather(t, c, "inventory_monitor_refreshes_total"))

	c.SnapshotPublished(1, at.Add(25*time.Second), 10, 3)
	c.SnapshotPublished(2, at.Add(50*time.Second), 10, 1)
	assert.Equal(t, 2.0, gather(t, c, "inventory_monitor_refreshes_total"))
	assert.Equal(t, 2.0, gather(t, c, "inventory_monitor_snapshot_version"))
	assert.Equal(t, 1.0, gather(t, c, "inventory_monitor_snapshot_low_stock_records"))
	assert.Equal(t, float64(at.Add(50*time.Second).Unix()), gather(t, c, "inventory_monitor_last_refresh_timestamp_seconds"))
}

func TestViewLookup_PorResultado(t *testing.T) {
	c := metrics.New()
	c.ViewLookup("memo")
	c.ViewLookup("memo")
	c.ViewLookup("computed")

	n, err := testutil.GatherAndCount(c.Registry(), "inventory_monitor_view_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por etiqueta")
	assert.Equal(t, 3.0, gather(t, c, "inventory_monitor_view_lookups_total"))
}
