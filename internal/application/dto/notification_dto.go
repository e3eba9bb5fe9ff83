package dto

import (
	"encoding/json"
	"time"
)

// NotificationResponse salida de una notificación del feed.
type NotificationResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

// NotificationListResponse página del feed con el conteo de no leídas.
type NotificationListResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int                    `json:"unread_count"`
	Page        PageResponse           `json:"page"`
}

// PushSubscriptionRequest suscripción enviada por el navegador (PushSubscription.toJSON()).
type PushSubscriptionRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

// PushUnsubscribeRequest body de POST /api/push/unsubscribe.
type PushUnsubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
}

// VAPIDKeyResponse clave pública para PushManager.subscribe.
type VAPIDKeyResponse struct {
	PublicKey string `json:"public_key"`
	Enabled   bool   `json:"enabled"`
}
