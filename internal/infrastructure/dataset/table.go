// Package dataset implementa las fuentes de archivo del baseline de inventario
// (CSV y XLSX, locales o en almacenamiento de objetos).
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	"github.com/jhoicas/inventario-monitor/internal/domain/inventory"
)

// Columnas requeridas del dataset. El orden en el archivo no importa.
const (
	ColProductName     = "ProductName"
	ColSupplier        = "Supplier"
	ColQuantityInStock = "QuantityInStock"
	ColReorderPoint    = "ReorderPoint"
	ColUnitCost        = "UnitCost"
)

// RequiredColumns en el orden usado para mensajes y exportaciones.
var RequiredColumns = []string{ColProductName, ColSupplier, ColQuantityInStock, ColReorderPoint, ColUnitCost}

var errEmptySource = errors.New("el archivo no tiene fila de encabezado")

// headerIndex mapea nombre de columna requerida → posición en la fila.
type headerIndex map[string]int

// indexHeader ubica las columnas requeridas ignorando espacios, BOM y mayúsculas.
func indexHeader(source string, header []string) (headerIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}
	idx := make(headerIndex, len(RequiredColumns))
	for _, col := range RequiredColumns {
		i, ok := pos[strings.ToLower(col)]
		if !ok {
			return nil, &domain.DataLoadError{Source: source, Row: 1, Column: col, Err: errors.New("columna requerida ausente")}
		}
		idx[col] = i
	}
	return idx, nil
}

// parseTable convierte filas crudas (encabezado + datos) en registros validados.
// Las filas completamente vacías se omiten.
func parseTable(source string, rows [][]string) ([]entity.InventoryRecord, error) {
	if len(rows) == 0 {
		return nil, domain.NewDataLoadError(source, errEmptySource)
	}
	idx, err := indexHeader(source, rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]entity.InventoryRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rowNum := i + 2
		rec, err := parseRecord(source, rowNum, idx, row)
		if err != nil {
			return nil, err
		}
		if err := inventory.ValidateRecord(rec); err != nil {
			return nil, &domain.DataLoadError{Source: source, Row: rowNum, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(source string, rowNum int, idx headerIndex, row []string) (entity.InventoryRecord, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	fail := func(col string, err error) error {
		return &domain.DataLoadError{Source: source, Row: rowNum, Column: col, Err: err}
	}

	qty, err := parseInt(cell(ColQuantityInStock))
	if err != nil {
		return entity.InventoryRecord{}, fail(ColQuantityInStock, err)
	}
	reorder, err := parseInt(cell(ColReorderPoint))
	if err != nil {
		return entity.InventoryRecord{}, fail(ColReorderPoint, err)
	}
	cost, err := parseMoney(cell(ColUnitCost))
	if err != nil {
		return entity.InventoryRecord{}, fail(ColUnitCost, err)
	}

	return entity.InventoryRecord{
		ProductName:     cell(ColProductName),
		Supplier:        cell(ColSupplier),
		QuantityInStock: qty,
		ReorderPoint:    reorder,
		UnitCost:        cost,
	}, nil
}

// parseInt acepta enteros y también "12.0" (exportaciones de hojas de cálculo).
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errors.New("valor vacío")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("entero inválido %q", s)
	}
	bi := d.BigInt()
	if !bi.IsInt64() || int64(int(bi.Int64())) != bi.Int64() {
		return 0, fmt.Errorf("entero fuera de rango %q", s)
	}
	return int(bi.Int64()), nil
}

// parseMoney acepta "12.50", "$12.50" y "1,250.00".
func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, errors.New("valor vacío")
	}
	clean := strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	d, err := decimal.NewFromString(strings.TrimSpace(clean))
	if err != nil {
		return decimal.Zero, fmt.Errorf("decimal inválido %q", s)
	}
	return d, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
