package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/perfumeria-api/internal/application/analytics"
	"github.com/jhoicas/perfumeria-api/internal/application/dto"
)

// AnalyticsHandler maneja estadísticas y exportes.
type AnalyticsHandler struct {
	stats  *appanalytics.StatsUseCase
	export *appanalytics.ExportUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(stats *appanalytics.StatsUseCase, export *appanalytics.ExportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{stats: stats, export: export}
}

// OrderStats godoc
// @Summary      Estadísticas de pedidos
// @Description  Resumen, serie temporal, productos más pedidos y ventas por ciudad.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        from      query  string  false  "Desde (YYYY-MM-DD). Default: hace 30 días."
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD). Default: hoy."
// @Param        group_by  query  string  false  "day | month"
// @Param        top       query  int     false  "Top N (default 5, max 50)"
// @Success      200  {object}  dto.OrderStatsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders/stats [get]
func (h *AnalyticsHandler) OrderStats(c *fiber.Ctx) error {
	var in dto.StatsRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.stats.OrderStats(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TransactionStats godoc
// @Summary      Estadísticas financieras
// @Description  Totales, sumas por categoría, serie de ingresos/egresos y categorías de mayor gasto.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        from      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        group_by  query  string  false  "day | month"
// @Param        top       query  int     false  "Top N"
// @Success      200  {object}  dto.TransactionStatsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions/stats [get]
func (h *AnalyticsHandler) TransactionStats(c *fiber.Ctx) error {
	var in dto.StatsRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.stats.TransactionStats(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar datos
// @Tags         export
// @Security     Bearer
// @Produce      octet-stream
// @Param        resource  path   string  true   "orders | transactions | shipments"
// @Param        format    query  string  false  "csv | pdf"  default(csv)
// @Param        from      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/{resource} [get]
func (h *AnalyticsHandler) Export(c *fiber.Ctx) error {
	file, err := h.export.Export(c.Context(), c.Params("resource"), c.Query("format"), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}
