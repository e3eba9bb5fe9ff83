package ports

import (
	"context"

	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

// NotificationEvent es lo que un caso de uso quiere avisar a los administradores.
type NotificationEvent struct {
	Type    string
	Title   string
	Message string
	Data    map[string]any
}

// Notifier despacha notificaciones sin bloquear al llamador.
// Las fallas se registran en el log y nunca se propagan al caso de uso.
type Notifier interface {
	Notify(ctx context.Context, ev NotificationEvent)
}

// Broadcaster envía una notificación ya persistida a los clientes conectados (websocket).
type Broadcaster interface {
	Broadcast(n *entity.Notification)
}

// PushSender envía una notificación Web Push a una suscripción.
// Devuelve ErrSubscriptionGone cuando el servicio push indica que la suscripción ya no existe (404/410).
type PushSender interface {
	Enabled() bool
	PublicKey() string
	Send(ctx context.Context, sub *entity.PushSubscription, payload []byte) error
}
