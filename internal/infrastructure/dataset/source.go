package dataset

import (
	"path/filepath"
	"strings"

	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/repository"
	"github.com/jhoicas/inventario-monitor/pkg/config"
)

// NewSource elige la fuente de archivo según la ruta: s3:// usa almacenamiento
// de objetos y la extensión .xlsx/.xlsm selecciona Excel; cualquier otra se lee como CSV.
func NewSource(cfg config.DatasetConfig, storage config.StorageConfig) (repository.BaselineSource, error) {
	path := strings.TrimSpace(cfg.Path)

	var open Opener
	if strings.HasPrefix(path, SchemeS3) {
		bucket, key, err := ParseObjectPath(path)
		if err != nil {
			return nil, domain.NewDataLoadError(path, err)
		}
		store, err := NewObjectStorage(storage)
		if err != nil {
			return nil, domain.NewDataLoadError(path, err)
		}
		open = store.Opener(bucket, key)
	} else {
		open = FileOpener(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return NewXLSXSource(path, open, cfg.Sheet), nil
	default:
		return NewCSVSource(path, open, cfg.Encoding), nil
	}
}
