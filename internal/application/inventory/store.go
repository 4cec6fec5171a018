// Package inventory orquesta el ciclo vivo del monitor: baseline cargado una
// vez, refresco periódico que publica snapshots inmutables y memo de vistas.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-monitor/internal/domain/inventory"
	"github.com/jhoicas/inventario-monitor/internal/domain/repository"
	"github.com/jhoicas/inventario-monitor/pkg/logger"
)

// Store conserva el baseline inmutable y las opciones de proveedor derivadas.
type Store struct {
	source    string
	baseline  []entity.InventoryRecord
	suppliers []string
}

// LoadStore lee la fuente una sola vez. Cualquier error envuelve domain.ErrDataLoad
// y debe tratarse como fatal al arrancar.
func LoadStore(ctx context.Context, src repository.BaselineSource, log *logger.Logger) (*Store, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar baseline: %w", err)
	}
	if len(records) == 0 {
		log.Warn().Str("source", src.Name()).Msg("dataset sin registros: todas las vistas estarán vacías")
	}
	log.Info().Str("source", src.Name()).Int("records", len(records)).Msg("baseline cargado")
	return NewStore(src.Name(), records), nil
}

// NewStore construye el store sobre una copia de records.
func NewStore(source string, records []entity.InventoryRecord) *Store {
	baseline := make([]entity.InventoryRecord, len(records))
	copy(baseline, records)
	return &Store{
		source:    source,
		baseline:  baseline,
		suppliers: domaininv.DistinctSuppliers(baseline),
	}
}

// Source nombre de la fuente del baseline.
func (s *Store) Source() string { return s.source }

// Len cantidad de registros del baseline.
func (s *Store) Len() int { return len(s.baseline) }

// Records devuelve una copia del baseline.
func (s *Store) Records() []entity.InventoryRecord {
	out := make([]entity.InventoryRecord, len(s.baseline))
	copy(out, s.baseline)
	return out
}

// DistinctSuppliers "All" primero y luego los proveedores ordenados.
func (s *Store) DistinctSuppliers() []string {
	out := make([]string, len(s.suppliers))
	copy(out, s.suppliers)
	return out
}

// BaselineSnapshot arma el snapshot versión 0 con las cantidades sin perturbar.
func (s *Store) BaselineSnapshot(id string, at time.Time) *entity.LiveSnapshot {
	return &entity.LiveSnapshot{ID: id, Version: 0, RefreshedAt: at, Records: s.Records()}
}
