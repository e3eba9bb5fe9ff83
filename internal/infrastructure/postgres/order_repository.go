package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, customer_name, customer_phone, customer_email, shipping_address, city,
	items, total, status, notes, created_by, created_at, updated_at`

// OrderRepo pedidos sobre PostgreSQL. Las líneas se guardan como JSONB en la misma fila.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido. Un número repetido devuelve domain.ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.CustomerName, o.CustomerPhone, o.CustomerEmail, o.ShippingAddress, o.City,
		itemsOrEmpty(o.Items), o.Total, o.Status, o.Notes, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update reemplaza datos, líneas, total y estado.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET customer_name = $2, customer_phone = $3, customer_email = $4, shipping_address = $5,
			city = $6, items = $7, total = $8, status = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerName, o.CustomerPhone, o.CustomerEmail, o.ShippingAddress,
		o.City, itemsOrEmpty(o.Items), o.Total, o.Status, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un pedido.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func orderWhere(f repository.OrderFilter) (string, []any, int) {
	where := " WHERE TRUE"
	var args []any
	pos := 1
	if f.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, f.Status)
		pos++
	}
	if f.Search != "" {
		where += fmt.Sprintf(" AND (order_number ILIKE $%d OR customer_name ILIKE $%d OR city ILIKE $%d)", pos, pos, pos)
		args = append(args, likePattern(f.Search))
		pos++
	}
	if f.From != nil {
		where += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	return where, args, pos
}

// List página de pedidos, los más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	where, args, pos := orderWhere(f)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	page, args := pageClause(pos, f.Limit, f.Offset, args)
	list, err := r.query(ctx, `SELECT `+orderColumns+` FROM orders`+where+` ORDER BY created_at DESC`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll todos los pedidos del filtro en orden cronológico.
func (r *OrderRepo) ListAll(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	where, args, _ := orderWhere(f)
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders`+where+` ORDER BY created_at ASC`, args...)
}

// CountCreatedOn cuenta los pedidos creados el mismo día que t (zona horaria de t).
func (r *OrderRepo) CountCreatedOn(ctx context.Context, t time.Time) (int, error) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE created_at >= $1 AND created_at < $2`,
		start, start.AddDate(0, 0, 1),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders of day: %w", err)
	}
	return n, nil
}

func (r *OrderRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail,
		&o.ShippingAddress, &o.City, &o.Items, &o.Total, &o.Status, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// itemsOrEmpty evita guardar NULL en la columna JSONB.
func itemsOrEmpty(items []entity.OrderItem) []entity.OrderItem {
	if items == nil {
		return []entity.OrderItem{}
	}
	return items
}
