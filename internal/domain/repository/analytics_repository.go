package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository define las consultas agregadas de solo lectura del dashboard.
// Las implementaciones usan COALESCE para devolver cero cuando no hay datos.
type AnalyticsRepository interface {
	// GetRevenue suma el total de pedidos no cancelados en el rango.
	GetRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// CountOrdersByStatus cuenta pedidos por estado en el rango.
	CountOrdersByStatus(ctx context.Context, from, to time.Time) (map[string]int, error)

	// GetCashflow devuelve ingresos y egresos registrados en el rango.
	GetCashflow(ctx context.Context, from, to time.Time) (income, expense decimal.Decimal, err error)

	// CountLowStock cuenta productos activos con stock <= mínimo.
	CountLowStock(ctx context.Context) (int, error)

	// GetStockValuation = Σ current_stock × average_cost_per_gram de productos activos.
	GetStockValuation(ctx context.Context) (decimal.Decimal, error)
}
