// Package pdf genera la planilla imprimible de inventario de un centro de acopio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Centro + descripción  │  Fecha de corte            │
//	│  HORARIO: Lun 08:00-17:00 | ...                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Artículo | Cantidad | Vence | Estado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÚLTIMOS MOVIMIENTOS: Fecha | Acción | Artículo | Cantidad   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	appinventory "github.com/jhoicas/Donaciones-api/internal/application/inventory"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var dayShort = map[entity.DayOfWeek]string{
	entity.Monday: "Lun", entity.Tuesday: "Mar", entity.Wednesday: "Mié", entity.Thursday: "Jue",
	entity.Friday: "Vie", entity.Saturday: "Sáb", entity.Sunday: "Dom",
}

var _ appinventory.InventoryReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa inventory.InventoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInventoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryPDF(_ context.Context, report appinventory.InventoryReport) ([]byte, error) {
	if report.Center == nil {
		return nil, fmt.Errorf("pdf: centro requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventario "+report.Center.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(hoursRow(report.Center))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow(fmt.Sprintf("EXISTENCIAS (%d artículos)", len(report.Items))))
	m.AddRows(stockHeaderRow())
	m.AddRows(stockRows(report)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("ÚLTIMOS MOVIMIENTOS"))
	m.AddRows(ledgerHeaderRow())
	m.AddRows(ledgerRows(report.Recent)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre y descripción del centro (izq) y fecha de corte (der).
func headerRow(report appinventory.InventoryReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(report.Center.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(report.Center.Description, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("PLANILLA DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Corte: "+report.AsOf.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func hoursRow(center *entity.StorageCenter) core.Row {
	parts := make([]string, 0, len(center.Hours))
	for _, d := range center.Days() {
		h := center.Hours[d]
		parts = append(parts, fmt.Sprintf("%s %s-%s", dayShort[d], h.Start, h.End))
	}
	hours := "Sin horario registrado"
	if len(parts) > 0 {
		hours = strings.Join(parts, "  |  ")
	}
	return row.New(7).Add(col.New(12).Add(
		text.New("Horario: "+hours, props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
	}))
}

func stockHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Categoría", 2, align.Left),
		headerCell("Artículo", 5, align.Left),
		headerCell("Cantidad", 2, align.Right),
		headerCell("Vence", 2, align.Center),
		headerCell("Estado", 1, align.Center),
	)
}

func stockRows(report appinventory.InventoryReport) []core.Row {
	if len(report.Items) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("El centro no tiene existencias.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(report.Items))
	for _, it := range report.Items {
		exp := "-"
		if d := it.ExpirationDate(); d != nil {
			exp = d.Format("02/01/2006")
		}
		status, statusColor := "OK", colorGray
		if it.IsExpired(report.AsOf) {
			status, statusColor = "VENCIDO", colorAlert
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(it.Identity().Category().String(), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(it.Identity().Name(), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(exp, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(status, props.Text{Size: 7, Align: align.Center, Top: 1, Color: statusColor, Style: fontstyle.Bold})),
		))
	}
	return rows
}

func ledgerHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Fecha", 3, align.Left),
		headerCell("Acción", 2, align.Left),
		headerCell("Artículo", 5, align.Left),
		headerCell("Cantidad", 2, align.Right),
	)
}

func ledgerRows(entries []*entity.LedgerEntry) []core.Row {
	if len(entries) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin movimientos registrados.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(e.Timestamp().Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(e.Action(), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(e.ItemCategory().String()+" / "+e.ItemName(), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", e.Quantity()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}
