package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/perfumeria-api/internal/application/notify"
	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

type fakeFeed struct {
	mu      sync.Mutex
	created []*entity.Notification
	err     error
}

func (f *fakeFeed) Create(_ context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, n)
	return nil
}
func (f *fakeFeed) List(context.Context, bool, int, int) ([]*entity.Notification, int, error) {
	return nil, 0, nil
}
func (f *fakeFeed) CountUnread(context.Context) (int, error)             { return 0, nil }
func (f *fakeFeed) MarkRead(context.Context, string) error               { return nil }
func (f *fakeFeed) MarkAllRead(context.Context) (int64, error)           { return 0, nil }
func (f *fakeFeed) DeleteRead(context.Context, time.Time) (int64, error) { return 0, nil }

type fakeSubs struct {
	mu      sync.Mutex
	subs    []*entity.PushSubscription
	deleted []string
}

func (f *fakeSubs) Upsert(context.Context, *entity.PushSubscription) error { return nil }
func (f *fakeSubs) DeleteByEndpoint(_ context.Context, endpoint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, endpoint)
	return nil
}
func (f *fakeSubs) ListByRole(_ context.Context, role string) ([]*entity.PushSubscription, error) {
	if role != entity.RoleAdmin {
		return nil, nil
	}
	return f.subs, nil
}

type fakePush struct {
	mu       sync.Mutex
	sent     map[string][]byte
	gone     map[string]bool
	failWith error
}

func (p *fakePush) Enabled() bool     { return true }
func (p *fakePush) PublicKey() string { return "pub" }
func (p *fakePush) Send(_ context.Context, sub *entity.PushSubscription, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gone[sub.Endpoint] {
		return ports.ErrSubscriptionGone
	}
	if p.failWith != nil {
		return p.failWith
	}
	if p.sent == nil {
		p.sent = map[string][]byte{}
	}
	p.sent[sub.Endpoint] = payload
	return nil
}

type fakeHub struct {
	mu  sync.Mutex
	got []*entity.Notification
}

func (h *fakeHub) Broadcast(n *entity.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.got = append(h.got, n)
}

func event() ports.NotificationEvent {
	return ports.NotificationEvent{
		Type:    entity.NotificationShipmentCreated,
		Title:   "Nuevo movimiento",
		Message: "Sofía registró una salida",
		Data:    map[string]any{"product_name": "Oud"},
	}
}

func TestDispatch_GuardaDifundeYEnviaPush(t *testing.T) {
	feed := &fakeFeed{}
	subs := &fakeSubs{subs: []*entity.PushSubscription{
		{UserID: "a1", Endpoint: "https://push.example/ok"},
		{UserID: "a2", Endpoint: "https://push.example/gone"},
	}}
	push := &fakePush{gone: map[string]bool{"https://push.example/gone": true}}
	hub := &fakeHub{}
	d := notify.NewDispatcher(feed, subs, hub, push, nil, zerolog.Nop())

	d.Dispatch(context.Background(), event())

	require.Len(t, feed.created, 1)
	n := feed.created[0]
	assert.NotEmpty(t, n.ID)
	assert.JSONEq(t, `{"product_name":"Oud"}`, string(n.Data))
	require.Len(t, hub.got, 1)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(push.sent["https://push.example/ok"], &payload))
	assert.Equal(t, "Nuevo movimiento", payload["title"])
	assert.Equal(t, []string{"https://push.example/gone"}, subs.deleted, "las suscripciones 404/410 se eliminan")
}

func TestDispatch_FallaDelFeedNoEntra(t *testing.T) {
	feed := &fakeFeed{err: errors.New("db caída")}
	hub := &fakeHub{}
	d := notify.NewDispatcher(feed, &fakeSubs{}, hub, &fakePush{}, nil, zerolog.Nop())

	assert.NotPanics(t, func() { d.Dispatch(context.Background(), event()) })
	assert.Empty(t, hub.got, "sin persistir no se difunde")
}

func TestDispatch_ErrorDePushSeRegistraYSigue(t *testing.T) {
	feed := &fakeFeed{}
	subs := &fakeSubs{subs: []*entity.PushSubscription{{Endpoint: "https://push.example/x"}}}
	d := notify.NewDispatcher(feed, subs, nil, &fakePush{failWith: errors.New("timeout")}, nil, zerolog.Nop())

	d.Dispatch(context.Background(), event())
	assert.Len(t, feed.created, 1)
	assert.Empty(t, subs.deleted, "un error transitorio no borra la suscripción")
}

func TestNotify_AsincronoConContextoCancelado(t *testing.T) {
	feed := &fakeFeed{}
	d := notify.NewDispatcher(feed, nil, nil, nil, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Notify(ctx, event())
	cancel()
	d.Wait()

	feed.mu.Lock()
	defer feed.mu.Unlock()
	assert.Len(t, feed.created, 1)
}
