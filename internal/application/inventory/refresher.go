package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-monitor/internal/domain/inventory"
	"github.com/jhoicas/inventario-monitor/pkg/logger"
)

type refresherState int

const (
	stateIdle refresherState = iota
	stateRunning
	stateStopped
)

func (s refresherState) String() string {
	switch s {
	case stateRunning:
		return "running"
	case stateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// RefresherConfig período y rango de perturbación.
type RefresherConfig struct {
	Interval     time.Duration
	Perturbation domaininv.Perturbation
}

// RefresherOption ajustes opcionales del refresco.
type RefresherOption func(*Refresher)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) RefresherOption {
	return func(r *Refresher) { r.now = now }
}

// WithObserver agrega un observador de publicaciones.
func WithObserver(o SnapshotObserver) RefresherOption {
	return func(r *Refresher) { r.observers = append(r.observers, o) }
}

// Refresher es el único escritor del snapshot vigente. Separa la programación
// (ticker en una goroutine propia) del cálculo puro domaininv.Refresh.
type Refresher struct {
	store     *Store
	holder    *SnapshotHolder
	cfg       RefresherConfig
	log       *logger.Logger
	now       func() time.Time
	observers []SnapshotObserver

	// mu serializa el uso de rng y la secuencia construir → publicar.
	mu  sync.Mutex
	rng domaininv.Rand
	// halted se relee bajo mu antes de publicar; lo activa Stop.
	halted atomic.Bool

	lifeMu sync.Mutex
	state  refresherState
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher construye el refresco. rng queda en uso exclusivo del Refresher.
func NewRefresher(store *Store, holder *SnapshotHolder, rng domaininv.Rand, cfg RefresherConfig, log *logger.Logger, opts ...RefresherOption) (*Refresher, error) {
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("refresher: intervalo %s: %w", cfg.Interval, domain.ErrInvalidInput)
	}
	if err := cfg.Perturbation.Validate(); err != nil {
		return nil, fmt.Errorf("refresher: %w", err)
	}
	r := &Refresher{
		store:  store,
		holder: holder,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
		rng:    rng,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Interval período configurado.
func (r *Refresher) Interval() time.Duration { return r.cfg.Interval }

// Start lanza la goroutine del ticker; el primer refresco ocurre de inmediato.
// Llamarlo con el refresco ya corriendo no hace nada. Después de Stop vuelve a arrancar.
func (r *Refresher) Start(ctx context.Context) {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()
	if r.state == stateRunning && !r.loopExited() {
		return
	}

	r.halted.Store(false)
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.state = stateRunning
	go r.run(loopCtx, done)

	r.log.Info().Dur("interval", r.cfg.Interval).
		Int("delta_min", r.cfg.Perturbation.Min).
		Int("delta_max", r.cfg.Perturbation.Max).
		Msg("refresco periódico iniciado")
}

// Stop cancela el ticker y espera a que la goroutine termine. Idempotente.
// Un RefreshNow en curso descarta su snapshot; al volver Stop no se publica nada más.
// El último snapshot publicado sigue vigente para lectura.
func (r *Refresher) Stop() {
	r.lifeMu.Lock()
	if r.state == stateStopped {
		r.lifeMu.Unlock()
		return
	}
	r.halted.Store(true)
	if r.state == stateRunning {
		r.cancel()
		<-r.done
	}
	r.state = stateStopped
	r.lifeMu.Unlock()

	// Espera a que termine cualquier construcción en curso: ya ve halted y no publica.
	r.mu.Lock()
	r.mu.Unlock()

	r.log.Info().Uint64("version", r.holder.Current().Version).Msg("refresco periódico detenido")
}

// Running indica si la goroutine del ticker está activa.
func (r *Refresher) Running() bool {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()
	return r.state == stateRunning && !r.loopExited()
}

// State "idle", "running" o "stopped".
func (r *Refresher) State() string {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()
	if r.state == stateRunning && r.loopExited() {
		return stateStopped.String()
	}
	return r.state.String()
}

// loopExited requiere lifeMu.
func (r *Refresher) loopExited() bool {
	if r.done == nil {
		return true
	}
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// RefreshNow publica un snapshot nuevo fuera del ticker.
// Después de Stop devuelve domain.ErrRefresherStopped: no se producen más snapshots.
func (r *Refresher) RefreshNow(ctx context.Context) (*entity.LiveSnapshot, error) {
	r.lifeMu.Lock()
	stopped := r.state == stateStopped
	r.lifeMu.Unlock()
	if stopped {
		return nil, domain.ErrRefresherStopped
	}
	return r.refresh(ctx)
}

func (r *Refresher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	snap, err := r.refresh(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, domain.ErrRefresherStopped) {
			r.log.Debug().Msg("refresco cancelado antes de publicar")
			return
		}
		r.log.Error().Err(err).Msg("refresco fallido")
		return
	}
	r.log.Debug().Uint64("version", snap.Version).Int("records", snap.Len()).Msg("snapshot publicado")
}

// refresh construye el snapshot completo y recién entonces lo publica.
// Si ctx se cancela o Stop corre antes de publicar, el snapshot construido se descarta.
func (r *Refresher) refresh(ctx context.Context) (*entity.LiveSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.holder.Current()
	var next uint64
	if prev != nil {
		next = prev.Version + 1
	}
	snap := &entity.LiveSnapshot{
		ID:          uuid.NewString(),
		Version:     next,
		RefreshedAt: r.now(),
		Records:     domaininv.Refresh(r.store.baseline, r.rng, r.cfg.Perturbation),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.halted.Load() {
		return nil, domain.ErrRefresherStopped
	}
	r.holder.Publish(snap)

	lowStock := 0
	for _, rec := range snap.Records {
		if rec.IsLowStock() {
			lowStock++
		}
	}
	for _, o := range r.observers {
		o.SnapshotPublished(snap.Version, snap.RefreshedAt, snap.Len(), lowStock)
	}
	return snap, nil
}
