// Package push envía notificaciones Web Push firmadas con VAPID.
package push

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/pkg/config"
)

const (
	defaultTTL  = 24 * 60 * 60 // segundos
	sendTimeout = 10 * time.Second
)

var _ ports.PushSender = (*WebPushSender)(nil)

// WebPushSender implementa ports.PushSender con webpush-go.
type WebPushSender struct {
	cfg    config.PushConfig
	client *http.Client
}

// NewWebPushSender construye el emisor. Sin llaves VAPID queda deshabilitado.
func NewWebPushSender(cfg config.PushConfig) *WebPushSender {
	return &WebPushSender{
		cfg:    cfg,
		client: &http.Client{Timeout: sendTimeout},
	}
}

func (s *WebPushSender) Enabled() bool     { return s.cfg.Enabled() }
func (s *WebPushSender) PublicKey() string { return s.cfg.PublicKey }

// Send entrega payload a la suscripción. 404 y 410 significan que el navegador
// ya no la reconoce: se devuelve ports.ErrSubscriptionGone para que el llamador la borre.
func (s *WebPushSender) Send(ctx context.Context, sub *entity.PushSubscription, payload []byte) error {
	if !s.Enabled() {
		return fmt.Errorf("push: llaves VAPID no configuradas")
	}
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.cfg.Subject,
		VAPIDPublicKey:  s.cfg.PublicKey,
		VAPIDPrivateKey: s.cfg.PrivateKey,
		TTL:             defaultTTL,
		Urgency:         webpush.UrgencyNormal,
	})
	if err != nil {
		return fmt.Errorf("push: enviar: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ports.ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push: el servicio respondió %d", resp.StatusCode)
	}
	return nil
}

// GenerateVAPIDKeys genera un par de llaves nuevo (comando de utilidad en cmd/).
func GenerateVAPIDKeys() (privateKey, publicKey string, err error) {
	return webpush.GenerateVAPIDKeys()
}
