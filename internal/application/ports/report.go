package ports

// Table es un reporte tabular listo para exportar.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  []string // fila de totales, opcional
}

// ReportGenerator serializa una tabla en un formato de archivo.
type ReportGenerator interface {
	ContentType() string
	Extension() string
	Generate(t Table) ([]byte, error)
}
