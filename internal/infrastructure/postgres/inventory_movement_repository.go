package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementSelect = `
	SELECT m.id, m.product_id, p.name, m.type, m.quantity_grams, m.input_quantity, m.input_unit,
		m.unit_cost, m.total_cost, m.date, m.notes, m.created_by, m.created_at
	FROM inventory_movements m
	JOIN products p ON p.id = m.product_id`

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla solo admite inserciones.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, type, quantity_grams, input_quantity, input_unit,
			unit_cost, total_cost, date, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.QuantityGrams, m.InputQuantity, m.InputUnit,
		m.UnitCost, m.TotalCost, m.Date, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

func movementWhere(f repository.MovementFilter) (string, []any, int) {
	where := " WHERE TRUE"
	var args []any
	pos := 1
	if f.ProductID != "" {
		where += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.Type != "" {
		where += fmt.Sprintf(" AND m.type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.From != nil {
		where += fmt.Sprintf(" AND m.date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND m.date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	return where, args, pos
}

// List devuelve una página, la fecha más reciente primero.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter, page, pageSize int) ([]*entity.InventoryMovement, int, error) {
	where, args, pos := movementWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_movements m`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	clause, args := pageClause(pos, pageSize, (page-1)*pageSize, args)
	list, err := r.query(ctx, movementSelect+where+` ORDER BY m.date DESC, m.created_at DESC`+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll devuelve todas las coincidencias en orden cronológico.
func (r *InventoryMovementRepo) ListAll(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	where, args, _ := movementWhere(f)
	return r.query(ctx, movementSelect+where+` ORDER BY m.date ASC, m.created_at ASC`, args...)
}

func (r *InventoryMovementRepo) query(ctx context.Context, query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.Type, &m.QuantityGrams, &m.InputQuantity,
			&m.InputUnit, &m.UnitCost, &m.TotalCost, &m.Date, &m.Notes, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
