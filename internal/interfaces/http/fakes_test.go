package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

// ── usuarios ─────────────────────────────────────────────────────────────────

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{byID: map[string]*entity.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.byID {
		if other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}
func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].PasswordHash = hash
	return nil
}
func (m *memUsers) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].LastLoginAt = &at
	return nil
}
func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
func (m *memUsers) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}
func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *memUsers) setActive(id string, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].IsActive = active
}

// ── productos y movimientos ──────────────────────────────────────────────────

type memProducts struct {
	mu   sync.Mutex
	byID map[string]*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}
func (m *memProducts) UpdateStock(_ context.Context, id string, stock decimal.Decimal, avg *decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].CurrentStock = stock
	m.byID[id].AverageCostPerGram = avg
	return nil
}
func (m *memProducts) List(context.Context, repository.ProductFilter) ([]*entity.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}
func (m *memProducts) ListLowStock(context.Context) ([]*entity.Product, error) { return nil, nil }
func (m *memProducts) Deactivate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.IsActive = false
	return nil
}

type memMovements struct {
	mu    sync.Mutex
	items []*entity.InventoryMovement
}

func (m *memMovements) Create(_ context.Context, mv *entity.InventoryMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, mv)
	return nil
}
func (m *memMovements) List(_ context.Context, f repository.MovementFilter, page, size int) ([]*entity.InventoryMovement, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.InventoryMovement
	for i := len(m.items) - 1; i >= 0; i-- {
		if f.ProductID == "" || m.items[i].ProductID == f.ProductID {
			out = append(out, m.items[i])
		}
	}
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
func (m *memMovements) ListAll(context.Context, repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.InventoryMovement(nil), m.items...), nil
}

// directTx serializa las transacciones con un mutex, igual que el bloqueo de fila en PostgreSQL.
type directTx struct {
	mu        sync.Mutex
	products  *memProducts
	movements *memMovements
}

func (d *directTx) Run(_ context.Context, fn func(repository.ProductRepository, repository.InventoryMovementRepository) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.products, d.movements)
}
