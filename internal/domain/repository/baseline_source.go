package repository

import (
	"context"

	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
)

// BaselineSource define el puerto de lectura del dataset base (DIP).
// Las implementaciones devuelven los registros en el orden de origen o un
// error que envuelve domain.ErrDataLoad.
type BaselineSource interface {
	Load(ctx context.Context) ([]entity.InventoryRecord, error)
	// Name identifica la fuente en logs y mensajes de error.
	Name() string
}

// BaselineWriter puerto de escritura usado para sembrar una fuente persistente.
type BaselineWriter interface {
	ReplaceAll(ctx context.Context, records []entity.InventoryRecord) error
}
