package repository

import (
	"context"
	"time"

	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

// NotificationRepository persiste el feed de notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, unreadOnly bool, limit, offset int) ([]*entity.Notification, int, error)
	CountUnread(ctx context.Context) (int, error)
	// MarkRead devuelve domain.ErrNotFound si no existe.
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
	// DeleteRead borra las notificaciones leídas creadas antes de olderThan.
	DeleteRead(ctx context.Context, olderThan time.Time) (int64, error)
}

// PushSubscriptionRepository persiste suscripciones Web Push.
type PushSubscriptionRepository interface {
	// Upsert crea o reasigna la suscripción por endpoint.
	Upsert(ctx context.Context, sub *entity.PushSubscription) error
	DeleteByEndpoint(ctx context.Context, endpoint string) error
	// ListByRole devuelve las suscripciones de usuarios activos con ese rol.
	ListByRole(ctx context.Context, role string) ([]*entity.PushSubscription, error)
}
