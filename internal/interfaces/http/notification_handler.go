package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/application/usecase"
	"github.com/jhoicas/perfumeria-api/internal/infrastructure/realtime"
)

// NotificationHandler feed de administradores, websocket y suscripciones push.
type NotificationHandler struct {
	uc  *usecase.NotificationUseCase
	hub *realtime.Hub
}

// NewNotificationHandler construye el handler. hub puede ser nil (sin websocket).
func NewNotificationHandler(uc *usecase.NotificationUseCase, hub *realtime.Hub) *NotificationHandler {
	return &NotificationHandler{uc: uc, hub: hub}
}

// List godoc
// @Summary      Feed de notificaciones
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "Solo no leídas"
// @Param        limit   query  int   false  "Límite"  default(20)
// @Param        offset  query  int   false  "Offset"  default(0)
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), c.QueryBool("unread", false), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notificación leída"})
}

// MarkAllRead godoc
// @Summary      Marcar todo como leído
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"updated": n})
}

// Cleanup godoc
// @Summary      Borrar notificaciones leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        read             query  bool  true   "Debe ser true"
// @Param        older_than_days  query  int   false  "Antigüedad mínima en días"  default(0)
// @Success      200  {object}  map[string]int64
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/notifications [delete]
func (h *NotificationHandler) Cleanup(c *fiber.Ctx) error {
	if !c.QueryBool("read", false) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Error: "solo se pueden borrar notificaciones leídas (read=true)",
		})
	}
	n, err := h.uc.CleanupRead(c.Context(), c.QueryInt("older_than_days", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": n})
}

// UpgradeWS exige que la petición sea un upgrade a websocket.
func (h *NotificationHandler) UpgradeWS(c *fiber.Ctx) error {
	if h.hub == nil || !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// Stream atiende /api/notifications/ws: cada notificación nueva llega como {"type":"notification",...}.
func (h *NotificationHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals(LocalUserID).(string)
		h.hub.Serve(conn, userID)
	})
}

// VAPIDPublicKey godoc
// @Summary      Clave pública VAPID
// @Tags         push
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VAPIDKeyResponse
// @Router       /api/push/vapid-public-key [get]
func (h *NotificationHandler) VAPIDPublicKey(c *fiber.Ctx) error {
	return c.JSON(h.uc.VAPIDPublicKey())
}

// Subscribe godoc
// @Summary      Registrar suscripción push del navegador
// @Tags         push
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.PushSubscriptionRequest  true  "PushSubscription.toJSON()"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/push/subscribe [post]
func (h *NotificationHandler) Subscribe(c *fiber.Ctx) error {
	var in dto.PushSubscriptionRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Subscribe(c.Context(), GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "suscripción registrada"})
}

// Unsubscribe godoc
// @Summary      Eliminar suscripción push
// @Tags         push
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.PushUnsubscribeRequest  true  "endpoint"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/push/unsubscribe [post]
func (h *NotificationHandler) Unsubscribe(c *fiber.Ctx) error {
	var in dto.PushUnsubscribeRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Unsubscribe(c.Context(), in.Endpoint); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "suscripción eliminada"})
}
