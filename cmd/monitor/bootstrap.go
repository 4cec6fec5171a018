package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	appanalytics "github.com/jhoicas/inventario-monitor/internal/application/analytics"
	appinventory "github.com/jhoicas/inventario-monitor/internal/application/inventory"
	domaininv "github.com/jhoicas/inventario-monitor/internal/domain/inventory"
	"github.com/jhoicas/inventario-monitor/internal/domain/repository"
	"github.com/jhoicas/inventario-monitor/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-monitor/internal/infrastructure/dataset"
	"github.com/jhoicas/inventario-monitor/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-monitor/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-monitor/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-monitor/pkg/config"
	"github.com/jhoicas/inventario-monitor/pkg/logger"
)

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	return cfg, log, nil
}

// openSource devuelve la fuente del baseline y una función para liberar recursos.
func openSource(ctx context.Context, cfg *config.Config) (repository.BaselineSource, func(), error) {
	if cfg.Dataset.Source == config.DatasetSourcePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return postgres.NewInventoryItemRepository(pool, postgres.NewTxRunner(pool)), pool.Close, nil
	}
	src, err := dataset.NewSource(cfg.Dataset, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	return src, func() {}, nil
}

// newRand PCG sembrado; seed 0 usa el reloj.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// pipeline componentes compartidos por serve, snapshot y report.
type pipeline struct {
	store        *appinventory.Store
	holder       *appinventory.SnapshotHolder
	refresher    *appinventory.Refresher
	memo         *appinventory.ViewMemo
	dashboard    *appanalytics.DashboardUseCase
	collectors   *metrics.Collectors
	metricsCache cache.MetricsCache
	close        func()
}

// buildPipeline carga el baseline, publica la versión 0 y arma refresco, memo y dashboard.
// No arranca el ticker.
func buildPipeline(ctx context.Context, cfg *config.Config, log *logger.Logger) (*pipeline, error) {
	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := appinventory.LoadStore(ctx, src, log.Component("store"))
	if err != nil {
		closeSrc()
		return nil, err
	}

	collectors := metrics.New()
	baseline := store.BaselineSnapshot(uuid.NewString(), time.Now())
	holder := appinventory.NewSnapshotHolder(baseline)
	collectors.SnapshotPublished(baseline.Version, baseline.RefreshedAt, baseline.Len(), len(domaininv.LowStock(baseline.Records)))

	refresher, err := appinventory.NewRefresher(store, holder, newRand(cfg.Refresh.Seed), appinventory.RefresherConfig{
		Interval:     cfg.Refresh.Interval,
		Perturbation: domaininv.Perturbation{Min: cfg.Refresh.DeltaMin, Max: cfg.Refresh.DeltaMax},
	}, log.Component("refresher"), appinventory.WithObserver(collectors))
	if err != nil {
		closeSrc()
		return nil, err
	}

	metricsCache, err := cache.NewMetricsCache(ctx, cfg.Cache)
	if err != nil {
		// Sin Redis el monitor sigue funcionando con el memo local.
		log.Warn().Err(err).Msg("caché de métricas no disponible, se usa solo el memo local")
		metricsCache = cache.NewNoopMetricsCache()
	}
	memo := appinventory.NewViewMemo(holder, metricsCache, collectors, log.Component("view_memo"))

	dashboard := appanalytics.NewDashboardUseCase(store, holder, memo, refresher,
		appanalytics.FilterDefaults{
			DefaultMinQuantity: cfg.Filter.DefaultMinQuantity,
			MaxMinQuantity:     cfg.Filter.MaxMinQuantity,
		},
		infrapdf.NewMarotoReportGenerator(""),
	)

	log.Info().
		Str("source", store.Source()).
		Int("records", store.Len()).
		Int("suppliers", len(store.DistinctSuppliers())-1).
		Msg("baseline cargado")

	return &pipeline{
		store:        store,
		holder:       holder,
		refresher:    refresher,
		memo:         memo,
		dashboard:    dashboard,
		collectors:   collectors,
		metricsCache: metricsCache,
		close: func() {
			if err := metricsCache.Close(); err != nil {
				log.Warn().Err(err).Msg("cierre del caché de métricas")
			}
			closeSrc()
		},
	}, nil
}

// flushMetricsCache borra las entradas de ejecuciones anteriores: sus snapshots
// tienen otro ID y nunca vuelven a leerse. Un error solo se registra.
func flushMetricsCache(ctx context.Context, c cache.MetricsCache, log *logger.Logger) {
	if err := c.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo vaciar el caché de métricas")
		return
	}
	log.Debug().Msg("caché de métricas vaciado")
}
