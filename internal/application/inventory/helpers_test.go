package inventory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/inventario-monitor/internal/application/inventory"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-monitor/internal/domain/inventory"
	"github.com/jhoicas/inventario-monitor/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fixedRand siempre devuelve v (acotado a n). Con [-3,3], v=3 equivale a delta 0.
type fixedRand struct{ v int }

func (r fixedRand) IntN(n int) int { return r.v % n }

func sampleRecords() []entity.InventoryRecord {
	return []entity.InventoryRecord{
		{ProductName: "A", Supplier: "SupplierX", QuantityInStock: 5, ReorderPoint: 10, UnitCost: decimal.RequireFromString("2.0")},
		{ProductName: "B", Supplier: "SupplierY", QuantityInStock: 20, ReorderPoint: 5, UnitCost: decimal.RequireFromString("1.0")},
	}
}

// gateRand se bloquea en la primera llamada hasta que se cierre release;
// avisa por entered que el refresco ya está construyendo.
type gateRand struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGateRand() *gateRand {
	return &gateRand{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateRand) IntN(n int) int {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return 3 % n
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// newPipeline arma store + holder (baseline publicado) + refresher con rng fijo.
func newPipeline(t *testing.T, v int, interval time.Duration, opts ...appinventory.RefresherOption) (*appinventory.Store, *appinventory.SnapshotHolder, *appinventory.Refresher) {
	t.Helper()
	store := appinventory.NewStore("test", sampleRecords())
	holder := appinventory.NewSnapshotHolder(store.BaselineSnapshot("baseline", fixedNow))
	opts = append([]appinventory.RefresherOption{appinventory.WithClock(func() time.Time { return fixedNow })}, opts...)
	r, err := appinventory.NewRefresher(store, holder, fixedRand{v: v}, appinventory.RefresherConfig{
		Interval:     interval,
		Perturbation: domaininv.DefaultPerturbation,
	}, logger.Nop(), opts...)
	require.NoError(t, err)
	return store, holder, r
}

// recordingObserver guarda las versiones publicadas.
type recordingObserver struct {
	mu       sync.Mutex
	versions []uint64
	lowStock []int
}

func (o *recordingObserver) SnapshotPublished(version uint64, _ time.Time, _ int, lowStock int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.versions = append(o.versions, version)
	o.lowStock = append(o.lowStock, lowStock)
}

func (o *recordingObserver) Versions() []uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]uint64(nil), o.versions...)
}

// countingLookups cuenta consultas por origen.
type countingLookups struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingLookups) ViewLookup(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[result]++
}

func (c *countingLookups) Count(result string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[result]
}
