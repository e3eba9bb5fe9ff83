package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── pedidos ──────────────────────────────────────────────────────────────────

type memOrders struct {
	mu      sync.Mutex
	byID    map[string]*entity.Order
	numbers map[string]bool
	// extraTaken simula números tomados por otra instancia que CountCreatedOn aún no ve.
	extraTaken []string
}

func newMemOrders() *memOrders {
	return &memOrders{byID: map[string]*entity.Order{}, numbers: map[string]bool{}}
}

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.extraTaken {
		if n == o.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	if m.numbers[o.OrderNumber] {
		return domain.ErrDuplicate
	}
	cp := *o
	m.byID[o.ID] = &cp
	m.numbers[o.OrderNumber] = true
	return nil
}
func (m *memOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}
func (m *memOrders) Update(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.byID[o.ID] = &cp
	return nil
}
func (m *memOrders) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}
func (m *memOrders) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	all, _ := m.ListAll(context.Background(), f)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if f.Offset < len(all) {
		all = all[f.Offset:]
	} else {
		all = nil
	}
	if f.Limit > 0 && len(all) > f.Limit {
		all = all[:f.Limit]
	}
	return all, total, nil
}
func (m *memOrders) ListAll(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Order
	for _, o := range m.byID {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
func (m *memOrders) CountCreatedOn(_ context.Context, t time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.byID {
		if o.CreatedAt.Format("20060102") == t.Format("20060102") {
			n++
		}
	}
	return n, nil
}

// ── transacciones ────────────────────────────────────────────────────────────

type memTransactions struct {
	byID map[string]*entity.Transaction
}

func (m *memTransactions) Create(_ context.Context, tx *entity.Transaction) error {
	cp := *tx
	m.byID[tx.ID] = &cp
	return nil
}
func (m *memTransactions) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	tx, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}
func (m *memTransactions) Update(ctx context.Context, tx *entity.Transaction) error {
	return m.Create(ctx, tx)
}
func (m *memTransactions) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}
func (m *memTransactions) List(_ context.Context, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	var out []*entity.Transaction
	for _, tx := range m.byID {
		if f.Type == "" || tx.Type == f.Type {
			out = append(out, tx)
		}
	}
	return out, len(out), nil
}
func (m *memTransactions) ListAll(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	out, _, err := m.List(ctx, f)
	return out, err
}

// ── usuarios ─────────────────────────────────────────────────────────────────

type memUsers struct {
	byID map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error { m.byID[u.ID] = u; return nil }
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) Update(_ context.Context, u *entity.User) error { m.byID[u.ID] = u; return nil }
func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.byID[id].PasswordHash = hash
	return nil
}
func (m *memUsers) TouchLastLogin(context.Context, string, time.Time) error { return nil }
func (m *memUsers) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
func (m *memUsers) Count(context.Context) (int, error)        { return len(m.byID), nil }
func (m *memUsers) Delete(_ context.Context, id string) error { delete(m.byID, id); return nil }

// ── notificaciones ───────────────────────────────────────────────────────────

type memNotifications struct {
	items   []*entity.Notification
	cutoffs []time.Time
}

func (m *memNotifications) Create(_ context.Context, n *entity.Notification) error {
	m.items = append(m.items, n)
	return nil
}
func (m *memNotifications) List(_ context.Context, unreadOnly bool, limit, offset int) ([]*entity.Notification, int, error) {
	var out []*entity.Notification
	for _, n := range m.items {
		if !unreadOnly || !n.IsRead {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}
func (m *memNotifications) CountUnread(context.Context) (int, error) {
	n := 0
	for _, it := range m.items {
		if !it.IsRead {
			n++
		}
	}
	return n, nil
}
func (m *memNotifications) MarkRead(_ context.Context, id string) error {
	for _, n := range m.items {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}
func (m *memNotifications) MarkAllRead(context.Context) (int64, error) {
	var n int64
	for _, it := range m.items {
		if !it.IsRead {
			it.IsRead = true
			n++
		}
	}
	return n, nil
}
func (m *memNotifications) DeleteRead(_ context.Context, olderThan time.Time) (int64, error) {
	m.cutoffs = append(m.cutoffs, olderThan)
	var keep []*entity.Notification
	var n int64
	for _, it := range m.items {
		if it.IsRead && it.CreatedAt.Before(olderThan) {
			n++
			continue
		}
		keep = append(keep, it)
	}
	m.items = keep
	return n, nil
}

type memSubscriptions struct {
	byEndpoint map[string]*entity.PushSubscription
}

func (m *memSubscriptions) Upsert(_ context.Context, s *entity.PushSubscription) error {
	m.byEndpoint[s.Endpoint] = s
	return nil
}
func (m *memSubscriptions) DeleteByEndpoint(_ context.Context, endpoint string) error {
	delete(m.byEndpoint, endpoint)
	return nil
}
func (m *memSubscriptions) ListByRole(context.Context, string) ([]*entity.PushSubscription, error) {
	var out []*entity.PushSubscription
	for _, s := range m.byEndpoint {
		out = append(out, s)
	}
	return out, nil
}

type stubPush struct{ enabled bool }

func (s stubPush) Enabled() bool     { return s.enabled }
func (s stubPush) PublicKey() string { return "BPub" }
func (s stubPush) Send(context.Context, *entity.PushSubscription, []byte) error {
	return nil
}

// ── productos (motor de movimientos sobre memoria) ───────────────────────────

type memProducts struct {
	byID map[string]*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	for _, other := range m.byID {
		if other.Name == p.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}
func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (m *memProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return m.GetByID(ctx, id)
}
func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}
func (m *memProducts) UpdateStock(_ context.Context, id string, stock decimal.Decimal, avg *decimal.Decimal) error {
	m.byID[id].CurrentStock = stock
	m.byID[id].AverageCostPerGram = avg
	return nil
}
func (m *memProducts) List(context.Context, repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, len(out), nil
}
func (m *memProducts) ListLowStock(context.Context) ([]*entity.Product, error) { return nil, nil }
func (m *memProducts) Deactivate(_ context.Context, id string) error {
	m.byID[id].IsActive = false
	return nil
}

type memMovements struct {
	items []*entity.InventoryMovement
}

func (m *memMovements) Create(_ context.Context, mv *entity.InventoryMovement) error {
	m.items = append(m.items, mv)
	return nil
}
func (m *memMovements) List(_ context.Context, f repository.MovementFilter, page, size int) ([]*entity.InventoryMovement, int, error) {
	var out []*entity.InventoryMovement
	for i := len(m.items) - 1; i >= 0; i-- {
		if f.ProductID == "" || m.items[i].ProductID == f.ProductID {
			out = append(out, m.items[i])
		}
	}
	total := len(out)
	if len(out) > size {
		out = out[:size]
	}
	return out, total, nil
}
func (m *memMovements) ListAll(context.Context, repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	return m.items, nil
}

// directTx ejecuta la función sobre los repos en memoria sin aislamiento (suficiente para un solo hilo).
type directTx struct {
	products  *memProducts
	movements *memMovements
}

func (d *directTx) Run(_ context.Context, fn func(repository.ProductRepository, repository.InventoryMovementRepository) error) error {
	return fn(d.products, d.movements)
}

// recordingNotifier guarda los eventos recibidos.
type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.NotificationEvent
	ctxs   []context.Context
}

func (r *recordingNotifier) Notify(ctx context.Context, ev ports.NotificationEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	r.ctxs = append(r.ctxs, ctx)
}
