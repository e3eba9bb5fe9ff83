package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetRevenue suma el total de los pedidos no cancelados creados en el rango.
func (r *AnalyticsRepo) GetRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0)
	FROM orders
	WHERE created_at BETWEEN $1 AND $2
	  AND status <> 'cancelled'`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetRevenue: %w", err)
	}
	return total, nil
}

// CountOrdersByStatus cuenta pedidos por estado en el rango.
func (r *AnalyticsRepo) CountOrdersByStatus(ctx context.Context, from, to time.Time) (map[string]int, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM orders
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY status`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountOrdersByStatus: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountOrdersByStatus scan: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// GetCashflow ingresos y egresos registrados en el rango.
func (r *AnalyticsRepo) GetCashflow(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	const query = `
	SELECT
	    COALESCE(SUM(amount) FILTER (WHERE type = 'income'),  0) AS income,
	    COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense
	FROM transactions
	WHERE date BETWEEN $1 AND $2`
	var income, expense decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.GetCashflow: %w", err)
	}
	return income, expense, nil
}

// CountLowStock productos activos con stock <= mínimo.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active AND current_stock <= min_stock_level`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountLowStock: %w", err)
	}
	return n, nil
}

// GetStockValuation Σ current_stock × average_cost_per_gram de productos activos con costo conocido.
func (r *AnalyticsRepo) GetStockValuation(ctx context.Context) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(current_stock * average_cost_per_gram), 0)
	FROM products
	WHERE is_active AND average_cost_per_gram IS NOT NULL`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetStockValuation: %w", err)
	}
	return total, nil
}
