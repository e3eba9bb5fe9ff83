package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

// NotificationUseCase feed de notificaciones y suscripciones push de los administradores.
type NotificationUseCase struct {
	repo     repository.NotificationRepository
	subsRepo repository.PushSubscriptionRepository
	push     ports.PushSender
	now      func() time.Time
}

// NewNotificationUseCase construye el caso de uso. push puede ser nil (push deshabilitado).
func NewNotificationUseCase(repo repository.NotificationRepository, subsRepo repository.PushSubscriptionRepository, push ports.PushSender) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, subsRepo: subsRepo, push: push, now: time.Now}
}

// List devuelve una página del feed y el total de no leídas.
func (uc *NotificationUseCase) List(ctx context.Context, unreadOnly bool, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, unreadOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, ToNotificationResponse(n))
	}
	return &dto.NotificationListResponse{
		Items:       items,
		UnreadCount: unread,
		Page:        dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// MarkRead marca una notificación como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.repo.MarkRead(ctx, id)
}

// MarkAllRead marca todo el feed como leído y devuelve cuántas cambiaron.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context) (int64, error) {
	return uc.repo.MarkAllRead(ctx)
}

// CleanupRead borra las notificaciones ya leídas con más de olderThanDays días (0 = todas las leídas).
func (uc *NotificationUseCase) CleanupRead(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays < 0 {
		return 0, fmt.Errorf("%w: older_than_days no puede ser negativo", domain.ErrInvalidInput)
	}
	cutoff := uc.now().AddDate(0, 0, -olderThanDays)
	return uc.repo.DeleteRead(ctx, cutoff)
}

// VAPIDPublicKey clave pública para que el navegador se suscriba.
func (uc *NotificationUseCase) VAPIDPublicKey() dto.VAPIDKeyResponse {
	if uc.push == nil || !uc.push.Enabled() {
		return dto.VAPIDKeyResponse{}
	}
	return dto.VAPIDKeyResponse{PublicKey: uc.push.PublicKey(), Enabled: true}
}

// Subscribe registra (o reasigna) la suscripción push del navegador del usuario.
func (uc *NotificationUseCase) Subscribe(ctx context.Context, userID string, in dto.PushSubscriptionRequest) error {
	if in.Endpoint == "" || in.Keys.P256dh == "" || in.Keys.Auth == "" {
		return fmt.Errorf("%w: suscripción incompleta", domain.ErrInvalidInput)
	}
	return uc.subsRepo.Upsert(ctx, &entity.PushSubscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		Endpoint:  in.Endpoint,
		P256dh:    in.Keys.P256dh,
		Auth:      in.Keys.Auth,
		CreatedAt: uc.now(),
	})
}

// Unsubscribe elimina la suscripción del endpoint.
func (uc *NotificationUseCase) Unsubscribe(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: endpoint requerido", domain.ErrInvalidInput)
	}
	return uc.subsRepo.DeleteByEndpoint(ctx, endpoint)
}

// ToNotificationResponse mapea una notificación a su DTO.
func ToNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
