package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/domain/stats"
)

// StatsRequest parámetros comunes de los endpoints /stats.
type StatsRequest struct {
	From    string `query:"from"`
	To      string `query:"to"`
	GroupBy string `query:"group_by" validate:"omitempty,oneof=day month"`
	Top     int    `query:"top" validate:"min=0,max=50"`
}

// OrderStatsDTO respuesta de GET /api/orders/stats.
type OrderStatsDTO struct {
	From              string          `json:"from"`
	To                string          `json:"to"`
	GroupBy           string          `json:"group_by"`
	TotalOrders       int             `json:"total_orders"`
	ByStatus          map[string]int  `json:"by_status"`
	Revenue           decimal.Decimal `json:"revenue"` // excluye cancelados
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	Series            []stats.Point   `json:"series"`
	TopProducts       []stats.Ranked  `json:"top_products"`
	ByCity            []stats.Ranked  `json:"by_city"`
}

// TransactionStatsDTO respuesta de GET /api/transactions/stats.
type TransactionStatsDTO struct {
	From                 string          `json:"from"`
	To                   string          `json:"to"`
	GroupBy              string          `json:"group_by"`
	TotalIncome          decimal.Decimal `json:"total_income"`
	TotalExpense         decimal.Decimal `json:"total_expense"`
	Net                  decimal.Decimal `json:"net"`
	IncomeByCategory     []stats.Ranked  `json:"income_by_category"`
	ExpenseByCategory    []stats.Ranked  `json:"expense_by_category"`
	TopExpenseCategories []stats.Ranked  `json:"top_expense_categories"`
	Series               []stats.Point   `json:"series"`
}

// MovementStatsDTO respuesta de GET /api/shipments/stats.
type MovementStatsDTO struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	GroupBy       string          `json:"group_by"`
	ByType        map[string]int  `json:"by_type"`
	IncomingGrams decimal.Decimal `json:"incoming_grams"`
	OutgoingGrams decimal.Decimal `json:"outgoing_grams"`
	Series        []stats.Point   `json:"series"`
	TopProducts   []stats.Ranked  `json:"top_products"`
}
