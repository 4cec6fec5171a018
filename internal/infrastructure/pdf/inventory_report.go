// Package pdf genera el reporte imprimible del dashboard de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fuente    │  snapshot + fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAJAS: Registros | Stock bajo | Valor total                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Proveedor | Cant. | Reorden | Costo | $  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK BAJO: producto / cantidad / reorden                   │
//	│  VALOR POR PROVEEDOR: proveedor / valor / %                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-monitor/internal/application/analytics"
	"github.com/jhoicas/inventario-monitor/pkg/format"
)

var _ analytics.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador; title encabeza cada reporte.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Inventario en vivo"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(ctx context.Context, data analytics.ReportData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(valueBoxesRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("INVENTARIO FILTRADO"))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(data)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("PRODUCTOS CON STOCK BAJO"))
	m.AddRows(lowStockRows(data)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("VALOR POR PROVEEDOR"))
	m.AddRows(supplierRows(data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(data analytics.ReportData) core.Row {
	snap := data.Summary.Snapshot
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Fuente: "+nonEmpty(data.Source, "n/d"), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Snapshot v%d", snap.Version), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Última actualización: "+snap.RefreshedAtLabel, props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func valueBoxesRow(data analytics.ReportData) core.Row {
	s := data.Summary
	box := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: c, Top: 6}),
		)
	}
	return row.New(16).Add(
		box("Registros", strconv.Itoa(s.FilteredCount), colorPrimary),
		box("Stock bajo", strconv.Itoa(s.LowStockCount), colorAlert),
		box("Valor total", s.TotalValueFormatted, colorPrimary),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Producto", 4, align.Left),
		h("Proveedor", 3, align.Left),
		h("Cant.", 1, align.Right),
		h("Reorden", 1, align.Right),
		h("Costo", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

func tableRows(data analytics.ReportData) []core.Row {
	items := data.Inventory.Items
	if len(items) == 0 {
		return []core.Row{emptyRow("Ningún registro cumple el filtro.")}
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		c := &props.Color{}
		if it.LowStock {
			c = colorAlert
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 0.5, Left: 1, Right: 1, Color: c}))
		}
		rows = append(rows, row.New(5).Add(
			cell(it.ProductName, 4, align.Left),
			cell(it.Supplier, 3, align.Left),
			cell(strconv.Itoa(it.QuantityInStock), 1, align.Right),
			cell(strconv.Itoa(it.ReorderPoint), 1, align.Right),
			cell(format.Currency(it.UnitCost), 1, align.Right),
			cell(format.Currency(it.Value), 2, align.Right),
		))
	}
	return rows
}

func lowStockRows(data analytics.ReportData) []core.Row {
	points := data.Charts.LowStock
	if len(points) == 0 {
		return []core.Row{emptyRow("Sin productos por debajo del punto de reorden.")}
	}
	rows := make([]core.Row, 0, len(points))
	for _, p := range points {
		rows = append(rows, row.New(5).Add(
			col.New(8).Add(text.New(p.ProductName, props.Text{Size: 8, Left: 1, Top: 0.5})),
			col.New(4).Add(text.New(fmt.Sprintf("%d / %d", p.QuantityInStock, p.ReorderPoint), props.Text{
				Size: 8, Align: align.Right, Right: 1, Top: 0.5, Color: colorAlert,
			})),
		))
	}
	return rows
}

func supplierRows(data analytics.ReportData) []core.Row {
	slices := data.Charts.SupplierValue
	if len(slices) == 0 {
		return []core.Row{emptyRow("Sin valor en inventario para el filtro.")}
	}
	rows := make([]core.Row, 0, len(slices))
	for _, s := range slices {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(s.Supplier, props.Text{Size: 8, Left: 1, Top: 0.5})),
			col.New(4).Add(text.New(format.Currency(s.Value), props.Text{Size: 8, Align: align.Right, Top: 0.5})),
			col.New(2).Add(text.New(s.Share.StringFixed(2)+"%", props.Text{Size: 8, Align: align.Right, Right: 1, Top: 0.5, Color: colorGray})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
