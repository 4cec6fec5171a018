package dataset

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	"github.com/jhoicas/inventario-monitor/internal/domain/repository"
)

var _ repository.BaselineSource = (*XLSXSource)(nil)

// XLSXSource lee el baseline desde una hoja de Excel. Sheet vacío = primera hoja.
type XLSXSource struct {
	name  string
	open  Opener
	sheet string
}

// NewXLSXSource construye la fuente.
func NewXLSXSource(name string, open Opener, sheet string) *XLSXSource {
	return &XLSXSource{name: name, open: open, sheet: sheet}
}

func (s *XLSXSource) Name() string { return s.name }

// Load lee todas las filas de la hoja y las parsea con las mismas reglas que el CSV.
func (s *XLSXSource) Load(ctx context.Context) ([]entity.InventoryRecord, error) {
	rc, err := s.open(ctx)
	if err != nil {
		return nil, domain.NewDataLoadError(s.name, err)
	}
	defer rc.Close()

	f, err := excelize.OpenReader(rc)
	if err != nil {
		return nil, domain.NewDataLoadError(s.name, fmt.Errorf("abrir xlsx: %w", err))
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, domain.NewDataLoadError(s.name, fmt.Errorf("el libro no tiene hojas"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, domain.NewDataLoadError(s.name, fmt.Errorf("leer hoja %s: %w", sheet, err))
	}
	return parseTable(s.name, rows)
}
