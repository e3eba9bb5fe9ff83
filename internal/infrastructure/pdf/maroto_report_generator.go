// Package pdf genera los reportes exportables en PDF con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por encabezado, filas alternadas        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES (opcional)                                         │
//	└─────────────────────────────────────────────────────────────┘
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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/perfumeria-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 45, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 243, Green: 238, Blue: 246}
)

const author = "Perfumería"

var _ ports.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	now   func() time.Time
	upper cases.Caser
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{now: time.Now, upper: cases.Upper(language.Spanish)}
}

func (g *MarotoReportGenerator) ContentType() string { return "application/pdf" }
func (g *MarotoReportGenerator) Extension() string   { return "pdf" }

// Generate dibuja la tabla y devuelve los bytes del PDF.
// La grilla tiene tantas columnas como encabezados, todas del mismo ancho.
func (g *MarotoReportGenerator) Generate(t ports.Table) ([]byte, error) {
	cols := len(t.Headers)
	if cols == 0 {
		return nil, fmt.Errorf("pdf: la tabla no tiene columnas")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(cols).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(t.Title, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(t.Title, cols))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(t.Headers))
	for i, r := range t.Rows {
		m.AddRows(tableRow(r, cols, i%2 == 1))
	}
	if len(t.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(cols).Add(
			text.New("Sin registros en el período.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}

	if len(t.Footer) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(footerRow(t.Footer, cols))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func (g *MarotoReportGenerator) headerRow(title string, cols int) core.Row {
	right := cols / 3
	if right == 0 {
		right = 1
	}
	left := cols - right
	if left == 0 {
		return row.New(12).Add(col.New(cols).Add(
			text.New(g.upper.String(title), props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
		))
	}
	return row.New(12).Add(
		col.New(left).Add(
			text.New(g.upper.String(title), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(right).Add(
			text.New("Generado: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: encabezados en blanco sobre el color primario.
func tableHeaderRow(headers []string) core.Row {
	cells := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		cells = append(cells, col.New(1).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow: una fila de datos; las filas impares llevan fondo suave.
func tableRow(values []string, cols int, striped bool) core.Row {
	cells := make([]core.Col, 0, cols)
	for i := 0; i < cols; i++ {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cells = append(cells, col.New(1).Add(text.New(v, props.Text{
			Size: 7.5, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cells...)
	if striped {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// footerRow: fila de totales en negrita.
func footerRow(values []string, cols int) core.Row {
	cells := make([]core.Col, 0, cols)
	for i := 0; i < cols; i++ {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cells = append(cells, col.New(1).Add(text.New(v, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...)
}
