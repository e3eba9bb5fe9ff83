package analytics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

var errDB = errors.New("db caída")

type fakeAnalytics struct {
	revenueByDay map[string]decimal.Decimal // clave: from YYYY-MM-DD
	statuses     map[string]int
	income       decimal.Decimal
	expense      decimal.Decimal
	lowStock     int
	valuation    decimal.Decimal
	failCashflow bool
}

func (f *fakeAnalytics) GetRevenue(_ context.Context, from, _ time.Time) (decimal.Decimal, error) {
	return f.revenueByDay[from.Format("2006-01-02")], nil
}
func (f *fakeAnalytics) CountOrdersByStatus(context.Context, time.Time, time.Time) (map[string]int, error) {
	return f.statuses, nil
}
func (f *fakeAnalytics) GetCashflow(context.Context, time.Time, time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if f.failCashflow {
		return decimal.Zero, decimal.Zero, errDB
	}
	return f.income, f.expense, nil
}
func (f *fakeAnalytics) CountLowStock(context.Context) (int, error) { return f.lowStock, nil }
func (f *fakeAnalytics) GetStockValuation(context.Context) (decimal.Decimal, error) {
	return f.valuation, nil
}

type fakeMovements struct {
	items []*entity.InventoryMovement // cronológico
}

func (f *fakeMovements) Create(context.Context, *entity.InventoryMovement) error { return nil }
func (f *fakeMovements) List(_ context.Context, _ repository.MovementFilter, page, size int) ([]*entity.InventoryMovement, int, error) {
	var out []*entity.InventoryMovement
	for i := len(f.items) - 1; i >= 0; i-- {
		out = append(out, f.items[i])
	}
	start := (page - 1) * size
	if start >= len(out) {
		return nil, len(out), nil
	}
	end := start + size
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], len(f.items), nil
}
func (f *fakeMovements) ListAll(_ context.Context, filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range f.items {
		if inRange(m.Date, filter.From, filter.To) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeOrders struct {
	repository.OrderRepository
	items []*entity.Order
}

func (f *fakeOrders) ListAll(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.items {
		if inRange(o.CreatedAt, filter.From, filter.To) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeTransactions struct {
	repository.TransactionRepository
	items []*entity.Transaction
}

func (f *fakeTransactions) ListAll(_ context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range f.items {
		if inRange(tx.Date, filter.From, filter.To) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// tableGenerator serializa la tabla como texto separado por "|" para inspeccionarla.
type tableGenerator struct {
	last ports.Table
}

func (g *tableGenerator) ContentType() string { return "text/plain" }
func (g *tableGenerator) Extension() string   { return "txt" }
func (g *tableGenerator) Generate(t ports.Table) ([]byte, error) {
	g.last = t
	var b strings.Builder
	b.WriteString(strings.Join(t.Headers, "|") + "\n")
	for _, r := range t.Rows {
		b.WriteString(strings.Join(r, "|") + "\n")
	}
	return []byte(b.String()), nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}
