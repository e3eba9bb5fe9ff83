// Package notify entrega las notificaciones de negocio a los administradores:
// las guarda en el feed, las difunde por websocket y las envía como Web Push.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

// Canales usados como etiqueta de métricas.
const (
	ChannelFeed      = "feed"
	ChannelWebsocket = "websocket"
	ChannelPush      = "push"
)

const dispatchTimeout = 15 * time.Second

var _ ports.Notifier = (*Dispatcher)(nil)

// Dispatcher implementa ports.Notifier. Cada Notify corre en su propia goroutine;
// ninguna falla vuelve al llamador, solo queda en el log y en las métricas.
type Dispatcher struct {
	repo        repository.NotificationRepository
	subsRepo    repository.PushSubscriptionRepository
	broadcaster ports.Broadcaster
	push        ports.PushSender
	metrics     ports.Metrics
	log         zerolog.Logger
	wg          sync.WaitGroup
}

// NewDispatcher construye el despachador. broadcaster, push y metrics pueden ser nil.
func NewDispatcher(
	repo repository.NotificationRepository,
	subsRepo repository.PushSubscriptionRepository,
	broadcaster ports.Broadcaster,
	push ports.PushSender,
	metrics ports.Metrics,
	log zerolog.Logger,
) *Dispatcher {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Dispatcher{
		repo:        repo,
		subsRepo:    subsRepo,
		broadcaster: broadcaster,
		push:        push,
		metrics:     metrics,
		log:         log,
	}
}

// Notify despacha en segundo plano y retorna de inmediato.
func (d *Dispatcher) Notify(ctx context.Context, ev ports.NotificationEvent) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error().Interface("panic", r).Str("type", ev.Type).Msg("notify: panic al despachar")
			}
		}()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
		defer cancel()
		d.Dispatch(ctx, ev)
	}()
}

// Wait bloquea hasta que terminen los despachos en curso (apagado ordenado y tests).
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Dispatch guarda, difunde y envía la notificación de forma síncrona.
func (d *Dispatcher) Dispatch(ctx context.Context, ev ports.NotificationEvent) {
	n := &entity.Notification{
		ID:        uuid.New().String(),
		Type:      ev.Type,
		Title:     ev.Title,
		Message:   ev.Message,
		CreatedAt: time.Now(),
	}
	if len(ev.Data) > 0 {
		raw, err := json.Marshal(ev.Data)
		if err != nil {
			d.log.Warn().Err(err).Str("type", ev.Type).Msg("notify: datos no serializables")
		} else {
			n.Data = raw
		}
	}

	if err := d.repo.Create(ctx, n); err != nil {
		d.metrics.NotificationDispatched(ChannelFeed, ports.ResultError)
		d.log.Error().Err(err).Str("type", ev.Type).Msg("notify: no se pudo guardar la notificación")
		return
	}
	d.metrics.NotificationDispatched(ChannelFeed, ports.ResultOK)

	if d.broadcaster != nil {
		d.broadcaster.Broadcast(n)
		d.metrics.NotificationDispatched(ChannelWebsocket, ports.ResultOK)
	}

	d.sendPush(ctx, n)
}

type pushPayload struct {
	ID    string          `json:"id"`
	Type  string          `json:"type"`
	Title string          `json:"title"`
	Body  string          `json:"body"`
	Data  json.RawMessage `json:"data,omitempty"`
	URL   string          `json:"url"`
}

func (d *Dispatcher) sendPush(ctx context.Context, n *entity.Notification) {
	if d.push == nil || !d.push.Enabled() || d.subsRepo == nil {
		return
	}
	subs, err := d.subsRepo.ListByRole(ctx, entity.RoleAdmin)
	if err != nil {
		d.metrics.NotificationDispatched(ChannelPush, ports.ResultError)
		d.log.Error().Err(err).Msg("notify: no se pudieron listar suscripciones push")
		return
	}
	if len(subs) == 0 {
		return
	}
	payload, err := json.Marshal(pushPayload{
		ID: n.ID, Type: n.Type, Title: n.Title, Body: n.Message, Data: n.Data, URL: "/notifications",
	})
	if err != nil {
		d.log.Error().Err(err).Msg("notify: payload push")
		return
	}

	for _, sub := range subs {
		err := d.push.Send(ctx, sub, payload)
		switch {
		case err == nil:
			d.metrics.NotificationDispatched(ChannelPush, ports.ResultOK)
		case errors.Is(err, ports.ErrSubscriptionGone):
			d.metrics.NotificationDispatched(ChannelPush, ports.ResultRejected)
			if derr := d.subsRepo.DeleteByEndpoint(ctx, sub.Endpoint); derr != nil {
				d.log.Warn().Err(derr).Str("user_id", sub.UserID).Msg("notify: no se pudo borrar suscripción expirada")
			} else {
				d.log.Info().Str("user_id", sub.UserID).Msg("notify: suscripción push expirada eliminada")
			}
		default:
			d.metrics.NotificationDispatched(ChannelPush, ports.ResultError)
			d.log.Warn().Err(err).Str("user_id", sub.UserID).Msg("notify: fallo al enviar push")
		}
	}
}
