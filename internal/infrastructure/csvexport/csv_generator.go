// Package csvexport serializa reportes tabulares como CSV.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/perfumeria-api/internal/application/ports"
)

// utf8BOM hace que Excel abra el archivo con la codificación correcta (tildes y ñ).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var _ ports.ReportGenerator = (*Generator)(nil)

// Generator implementa ports.ReportGenerator en CSV (RFC 4180).
type Generator struct {
	comma rune
}

// NewGenerator construye el generador con coma como separador.
func NewGenerator() *Generator { return &Generator{comma: ','} }

func (g *Generator) ContentType() string { return "text/csv; charset=utf-8" }
func (g *Generator) Extension() string   { return "csv" }

// Generate escribe encabezados, filas y la fila de totales si existe.
func (g *Generator) Generate(t ports.Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = g.comma
	if err := w.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("csv: encabezados: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("csv: filas: %w", err)
	}
	if len(t.Footer) > 0 {
		if err := w.Write(t.Footer); err != nil {
			return nil, fmt.Errorf("csv: totales: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}
