package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

var (
	_ repository.NotificationRepository     = (*NotificationRepo)(nil)
	_ repository.PushSubscriptionRepository = (*PushSubscriptionRepo)(nil)
)

// NotificationRepo feed de notificaciones sobre PostgreSQL.
type NotificationRepo struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	data := n.Data
	if len(data) == 0 {
		data = []byte("{}")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.Type, n.Title, n.Message, string(data), n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List página del feed, las más recientes primero.
func (r *NotificationRepo) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]*entity.Notification, int, error) {
	where := ""
	if unreadOnly {
		where = " WHERE NOT is_read"
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, title, message, data::text, is_read, created_at
		FROM notifications`+where+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		var data string
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &data, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		n.Data = []byte(data)
		list = append(list, &n)
	}
	return list, total, rows.Err()
}

// CountUnread total de no leídas.
func (r *NotificationRepo) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE NOT is_read`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca todas como leídas.
func (r *NotificationRepo) MarkAllRead(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE NOT is_read`)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteRead borra las leídas creadas antes de olderThan.
func (r *NotificationRepo) DeleteRead(ctx context.Context, olderThan time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE is_read AND created_at < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// PushSubscriptionRepo suscripciones Web Push sobre PostgreSQL.
type PushSubscriptionRepo struct {
	pool *pgxpool.Pool
}

// NewPushSubscriptionRepository construye el adaptador.
func NewPushSubscriptionRepository(pool *pgxpool.Pool) *PushSubscriptionRepo {
	return &PushSubscriptionRepo{pool: pool}
}

// Upsert crea la suscripción o la reasigna si el endpoint ya existe.
func (r *PushSubscriptionRepo) Upsert(ctx context.Context, s *entity.PushSubscription) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (endpoint) DO UPDATE
		SET user_id = EXCLUDED.user_id, p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth`,
		s.ID, s.UserID, s.Endpoint, s.P256dh, s.Auth, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert push subscription: %w", err)
	}
	return nil
}

// DeleteByEndpoint elimina la suscripción del endpoint (no falla si no existe).
func (r *PushSubscriptionRepo) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	if err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}

// ListByRole suscripciones de usuarios activos con el rol dado.
func (r *PushSubscriptionRepo) ListByRole(ctx context.Context, role string) ([]*entity.PushSubscription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.user_id, s.endpoint, s.p256dh, s.auth, s.created_at
		FROM push_subscriptions s
		JOIN users u ON u.id = s.user_id
		WHERE u.role = $1 AND u.is_active`, role)
	if err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.PushSubscription
	for rows.Next() {
		var s entity.PushSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dh, &s.Auth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan push subscription: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
