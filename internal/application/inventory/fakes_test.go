package inventory_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

// memStore simula la DB: Run serializa las transacciones y descarta los cambios si fn falla.
type memStore struct {
	mu           sync.Mutex
	products     map[string]*entity.Product
	movements    []*entity.InventoryMovement
	failMovement error
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: map[string]*entity.Product{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memStore) Run(ctx context.Context, fn func(repository.ProductRepository, repository.InventoryMovementRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, products: map[string]*entity.Product{}}
	for id, p := range s.products {
		cp := *p
		tx.products[id] = &cp
	}
	if err := fn(&memProductRepo{tx: tx}, &memMovementRepo{tx: tx}); err != nil {
		return err
	}
	s.products = tx.products
	s.movements = append(s.movements, tx.movements...)
	return nil
}

func (s *memStore) product(id string) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.products[id]
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

type memTx struct {
	store     *memStore
	products  map[string]*entity.Product
	movements []*entity.InventoryMovement
}

type memProductRepo struct{ tx *memTx }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.tx.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.tx.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.tx.products[p.ID] = p
	return nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal, avg *decimal.Decimal) error {
	p := r.tx.products[id]
	p.CurrentStock = stock
	p.AverageCostPerGram = avg
	return nil
}

func (r *memProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.tx.products {
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r *memProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.tx.products {
		if p.IsActive && p.CurrentStock.LessThanOrEqual(p.MinStockLevel) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Deactivate(_ context.Context, id string) error {
	r.tx.products[id].IsActive = false
	return nil
}

type memMovementRepo struct{ tx *memTx }

var _ repository.InventoryMovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if r.tx.store.failMovement != nil {
		return r.tx.store.failMovement
	}
	r.tx.movements = append(r.tx.movements, m)
	return nil
}

func (r *memMovementRepo) all() []*entity.InventoryMovement {
	all := append([]*entity.InventoryMovement{}, r.tx.store.movements...)
	return append(all, r.tx.movements...)
}

func (r *memMovementRepo) match(f repository.MovementFilter, m *entity.InventoryMovement) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.From != nil && m.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Date.After(*f.To) {
		return false
	}
	return true
}

func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter, page, size int) ([]*entity.InventoryMovement, int, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.all() {
		if r.match(f, m) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	total := len(out)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (r *memMovementRepo) ListAll(_ context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.all() {
		if r.match(f, m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// movementReader expone el historial confirmado fuera de una transacción.
func (s *memStore) movementReader() *memMovementRepo {
	return &memMovementRepo{tx: &memTx{store: s}}
}

func (s *memStore) productReader() *memProductRepo {
	return &memProductRepo{tx: &memTx{store: s, products: s.products}}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.NotificationEvent
	ctxs   []context.Context
}

func (n *recordingNotifier) Notify(ctx context.Context, ev ports.NotificationEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	n.ctxs = append(n.ctxs, ctx)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) MovementApplied(t, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int{}
	}
	m.counts[t+"/"+result]++
}

func (m *countingMetrics) NotificationDispatched(string, string) {}

var errDB = errors.New("db caída")

func testProduct(id, name, stock, min string) *entity.Product {
	return &entity.Product{
		ID:            id,
		Name:          name,
		Unit:          "g",
		CurrentStock:  decimal.RequireFromString(stock),
		MinStockLevel: decimal.RequireFromString(min),
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
}
