package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/perfumeria-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve ventas del día y del mes, pedidos por estado, flujo de caja del mes,
// productos en stock bajo, valorización del inventario y últimos movimientos.
// GET /api/dashboard/summary
//
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
