package ports

// Resultados usados como etiqueta en las métricas.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics registra contadores de negocio. Las implementaciones deben ser seguras para uso concurrente.
type Metrics interface {
	MovementApplied(movementType, result string)
	NotificationDispatched(channel, result string)
}

// NopMetrics descarta todo.
type NopMetrics struct{}

func (NopMetrics) MovementApplied(string, string)        {}
func (NopMetrics) NotificationDispatched(string, string) {}
