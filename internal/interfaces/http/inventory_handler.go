package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/application/inventory"
)

// InventoryHandler maneja los movimientos de stock (/api/shipments) y la lista de reposición.
type InventoryHandler struct {
	uc            *inventory.RegisterMovementUseCase
	history       *inventory.HistoryUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	uc *inventory.RegisterMovementUseCase,
	history *inventory.HistoryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{uc: uc, history: history, replenishment: replenishment}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Entrada, salida o ajuste. quantity y unit_cost se interpretan en la unidad indicada (g o kg).
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity, unit, unit_cost (entradas), date, notes"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        type        query  string  false  "incoming | outgoing | adjustment"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        page_size   query  int     false  "Tamaño"  default(20)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/shipments [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementFilterRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.history.List(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecentMovements godoc
// @Summary      Últimos movimientos
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        limit       query  int     false  "Cantidad"  default(5)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/shipments/recent [get]
func (h *InventoryHandler) RecentMovements(c *fiber.Ctx) error {
	out, err := h.history.Recent(c.Context(), c.Query("product_id"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MovementStats godoc
// @Summary      Estadísticas de movimientos
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        from      query  string  false  "Desde (por defecto hace 30 días)"
// @Param        to        query  string  false  "Hasta"
// @Param        group_by  query  string  false  "day | month"
// @Param        top       query  int     false  "Top N productos"
// @Success      200  {object}  dto.MovementStatsDTO
// @Router       /api/shipments/stats [get]
func (h *InventoryHandler) MovementStats(c *fiber.Ctx) error {
	var in dto.StatsRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.history.Stats(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo el mínimo con la cantidad sugerida (ideal = mínimo × 1.5)
//
//	y su costo estimado, ordenados por déficit.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
