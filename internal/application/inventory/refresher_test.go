package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/inventario-monitor/internal/application/inventory"
	"github.com/jhoicas/inventario-monitor/internal/domain"
	domaininv "github.com/jhoicas/inventario-monitor/internal/domain/inventory"
	"github.com/jhoicas/inventario-monitor/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo y publicación
// ──────────────────────────────────────────────────────────────────────────────

func TestRefreshNow_PublicaVersionNueva(t *testing.T) {
	obs := &recordingObserver{}
	_, holder, r := newPipeline(t, 6, time.Hour, appinventory.WithObserver(obs)) // delta +3
	before := holder.Current()

	snap, err := r.RefreshNow(context.Background())
	require.NoError(t, err)

	assert.Same(t, snap, holder.Current())
	assert.Equal(t, uint64(1), snap.Version)
	assert.NotEqual(t, before.ID, snap.ID)
	assert.Equal(t, fixedNow, snap.RefreshedAt)
	assert.Equal(t, 8, snap.Records[0].QuantityInStock)
	assert.Equal(t, 23, snap.Records[1].QuantityInStock)
	assert.Equal(t, 10, snap.Records[0].ReorderPoint, "ReorderPoint no cambia")

	// El snapshot anterior sigue intacto.
	assert.Equal(t, 5, before.Records[0].QuantityInStock)
	assert.Equal(t, []uint64{1}, obs.Versions())
	assert.Equal(t, []int{1}, obs.lowStock, "A (8 < 10) sigue con stock bajo")
}

func TestRefreshNow_SiempreParteDelBaseline(t *testing.T) {
	_, holder, r := newPipeline(t, 6, time.Hour)
	for i := 0; i < 3; i++ {
		_, err := r.RefreshNow(context.Background())
		require.NoError(t, err)
	}
	snap := holder.Current()
	assert.Equal(t, uint64(3), snap.Version)
	assert.Equal(t, 8, snap.Records[0].QuantityInStock, "la perturbación no se acumula")
}

func TestRefreshNow_ContextoCanceladoNoPublica(t *testing.T) {
	_, holder, r := newPipeline(t, 0, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RefreshNow(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), holder.Current().Version)
}

func TestNewRefresher_ConfiguracionInvalida(t *testing.T) {
	store := appinventory.NewStore("x", sampleRecords())
	holder := appinventory.NewSnapshotHolder(store.BaselineSnapshot("b", fixedNow))

	_, err := appinventory.NewRefresher(store, holder, fixedRand{}, appinventory.RefresherConfig{
		Interval: 0, Perturbation: domaininv.DefaultPerturbation,
	}, logger.Nop())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = appinventory.NewRefresher(store, holder, fixedRand{}, appinventory.RefresherConfig{
		Interval: time.Second, Perturbation: domaininv.Perturbation{Min: 2, Max: 1},
	}, logger.Nop())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida del ticker
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_RefrescaDeInmediatoYLuegoPorTick(t *testing.T) {
	_, holder, r := newPipeline(t, 3, 5*time.Millisecond)
	r.Start(context.Background())
	defer r.Stop()

	require.Eventually(t, func() bool { return holder.Current().Version >= 3 }, 2*time.Second, time.Millisecond)
	assert.True(t, r.Running())
	assert.Equal(t, "running", r.State())
}

func TestStart_DosVecesNoDuplicaGoroutine(t *testing.T) {
	obs := &recordingObserver{}
	_, _, r := newPipeline(t, 3, time.Hour, appinventory.WithObserver(obs))
	r.Start(context.Background())
	r.Start(context.Background())

	require.Eventually(t, func() bool { return len(obs.Versions()) == 1 }, time.Second, time.Millisecond)
	r.Stop()
	assert.Equal(t, []uint64{1}, obs.Versions(), "un solo refresco inmediato")
}

func TestStop_NoProduceMasSnapshots(t *testing.T) {
	_, holder, r := newPipeline(t, 3, 2*time.Millisecond)
	r.Start(context.Background())
	require.Eventually(t, func() bool { return holder.Current().Version >= 2 }, 2*time.Second, time.Millisecond)

	r.Stop()
	last := holder.Current()
	time.Sleep(20 * time.Millisecond)

	assert.Same(t, last, holder.Current(), "el último snapshot sigue vigente")
	assert.False(t, r.Running())
	assert.Equal(t, "stopped", r.State())

	_, err := r.RefreshNow(context.Background())
	assert.ErrorIs(t, err, domain.ErrRefresherStopped)
	assert.Same(t, last, holder.Current())
}

func TestStop_Idempotente(t *testing.T) {
	_, _, r := newPipeline(t, 3, time.Hour)
	r.Stop() // sin haber arrancado
	r.Start(context.Background())
	r.Stop()
	r.Stop()
	assert.False(t, r.Running())
}

func TestStop_DescartaRefrescoEnCurso(t *testing.T) {
	store := appinventory.NewStore("test", sampleRecords())
	holder := appinventory.NewSnapshotHolder(store.BaselineSnapshot("baseline", fixedNow))
	gate := newGateRand()
	r, err := appinventory.NewRefresher(store, holder, gate, appinventory.RefresherConfig{
		Interval:     time.Hour,
		Perturbation: domaininv.DefaultPerturbation,
	}, logger.Nop())
	require.NoError(t, err)

	refreshErr := make(chan error, 1)
	go func() {
		_, err := r.RefreshNow(context.Background())
		refreshErr <- err
	}()
	<-gate.entered

	stopped := make(chan struct{})
	go func() {
		r.Stop()
		close(stopped)
	}()
	require.Eventually(t, func() bool { return r.State() == "stopped" }, time.Second, time.Millisecond)

	// Stop espera a la construcción en curso.
	select {
	case <-stopped:
		t.Fatal("Stop volvió con un refresco todavía en construcción")
	case <-time.After(20 * time.Millisecond):
	}

	close(gate.release)
	<-stopped

	assert.ErrorIs(t, <-refreshErr, domain.ErrRefresherStopped)
	assert.Equal(t, uint64(0), holder.Current().Version, "nada se publica después de Stop")
}

func TestStart_DespuesDeStopReanuda(t *testing.T) {
	_, holder, r := newPipeline(t, 3, time.Hour)
	r.Start(context.Background())
	require.Eventually(t, func() bool { return holder.Current().Version == 1 }, time.Second, time.Millisecond)
	r.Stop()

	r.Start(context.Background())
	defer r.Stop()
	require.Eventually(t, func() bool { return holder.Current().Version == 2 }, time.Second, time.Millisecond)

	_, err := r.RefreshNow(context.Background())
	assert.NoError(t, err)
}

func TestStart_CancelarContextoPadreDetieneElLoop(t *testing.T) {
	_, _, r := newPipeline(t, 3, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	require.Eventually(t, func() bool { return !r.Running() }, time.Second, time.Millisecond)
	r.Stop()
}

func TestLectoresConcurrentesNuncaVenSnapshotParcial(t *testing.T) {
	_, holder, r := newPipeline(t, 0, time.Millisecond) // delta -3: A queda en 2, B en 17
	r.Start(context.Background())
	defer r.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				snap := holder.Current()
				if !assert.Len(t, snap.Records, 2) {
					return
				}
				for _, rec := range snap.Records {
					assert.GreaterOrEqual(t, rec.QuantityInStock, 0)
				}
				if snap.Version > 0 {
					assert.Equal(t, 2, snap.Records[0].QuantityInStock)
					assert.Equal(t, 17, snap.Records[1].QuantityInStock)
				}
			}
		}()
	}
	wg.Wait()
}
