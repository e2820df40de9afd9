// Package pdf implementa los reportes PDF del archivo con Maroto v2.
//
// Layout de página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte + fecha de generación            │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: N° Exp | Nombre | Área | Serie | Apertura | Estado   │
//	│  ──────────────────────────────────────────────────────────  │
//	│  PIE: total de expedientes                                   │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/acervo/expedientes-api/internal/application/reporte"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 70, Green: 45, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReporteGenerator implementa reporte.Generador y
// reporte.GeneradorInventario usando Maroto v2.
type MarotoReporteGenerator struct{}

// NewMarotoReporteGenerator construye el generador.
func NewMarotoReporteGenerator() *MarotoReporteGenerator { return &MarotoReporteGenerator{} }

// ContentType devuelve el MIME type del PDF.
func (g *MarotoReporteGenerator) ContentType() string { return "application/pdf" }

// Extension devuelve la extensión de archivo.
func (g *MarotoReporteGenerator) Extension() string { return "pdf" }

// Generar produce el listado de expedientes en PDF.
func (g *MarotoReporteGenerator) Generar(titulo string, filas []reporte.Fila) ([]byte, error) {
	m := nuevoDocumento(titulo)

	m.AddRows(headerRows(titulo)...)
	m.AddRows(tableHeaderRow())
	for _, fila := range filas {
		m.AddRows(tableRow(fila))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(pieRow(len(filas)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerarInventario produce el inventario general agrupado por área: cada
// área abre con una banda de título y su propia tabla.
func (g *MarotoReporteGenerator) GenerarInventario(titulo string, grupos []reporte.GrupoArea) ([]byte, error) {
	m := nuevoDocumento(titulo)
	m.AddRows(headerRows(titulo)...)

	total := 0
	for _, grupo := range grupos {
		m.AddRows(row.New(9).Add(col.New(12).Add(
			text.New(grupo.Area, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			}),
		)))
		m.AddRows(tableHeaderRow())
		for _, fila := range grupo.Filas {
			m.AddRows(tableRow(fila))
		}
		m.AddRows(row.New(4))
		total += len(grupo.Filas)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(pieRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar inventario: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func nuevoDocumento(titulo string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(titulo, true).
		Build()
	return maroto.New(cfg)
}

// headerRows: título + fecha de generación.
func headerRows(titulo string) []core.Row {
	return []core.Row{
		row.New(14).Add(
			col.New(8).Add(
				text.New(titulo, props.Text{
					Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
				}),
			),
			col.New(4).Add(
				text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
					Size: 8, Align: align.Right, Top: 4, Color: colorGray,
				}),
			),
		),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}
}

// tableHeaderRow: cabecera de la tabla de expedientes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N° Expediente", 2, align.Left),
		h("Nombre", 3, align.Left),
		h("Serie", 2, align.Left),
		h("Apertura", 1, align.Center),
		h("Cierre", 1, align.Center),
		h("Fojas", 1, align.Center),
		h("Destino", 1, align.Center),
		h("Estado", 1, align.Center),
	)
}

// tableRow: una fila por expediente.
func tableRow(f reporte.Fila) core.Row {
	c := func(valor string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(valor, props.Text{
			Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		c(f.NumeroExpediente, 2, align.Left),
		c(f.Nombre, 3, align.Left),
		c(f.Serie, 2, align.Left),
		c(f.FechaApertura, 1, align.Center),
		c(nonEmpty(f.FechaCierre, "—"), 1, align.Center),
		c(fmt.Sprintf("%d", f.NumeroFojas), 1, align.Center),
		c(f.DestinoFinal, 1, align.Center),
		c(f.Estado, 1, align.Center),
	)
}

// pieRow: total de expedientes del reporte.
func pieRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de expedientes: %d", total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
