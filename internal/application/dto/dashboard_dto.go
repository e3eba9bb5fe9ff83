package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Pedidos (excluye cancelados)
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	OrdersByStatus map[string]int  `json:"orders_by_status"` // mes en curso

	// Finanzas del mes
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	MonthlyExpense decimal.Decimal `json:"monthly_expense"`
	MonthlyNet     decimal.Decimal `json:"monthly_net"`

	// Inventario
	LowStockCount   int                `json:"low_stock_count"`
	StockValuation  decimal.Decimal    `json:"stock_valuation"` // Σ stock × costo promedio
	RecentMovements []MovementResponse `json:"recent_movements"`

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}
