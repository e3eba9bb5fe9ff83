package stats

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

// Nombres de las sumas usadas en las series.
const (
	SumRevenue  = "revenue"
	SumIncome   = "income"
	SumExpense  = "expense"
	SumIncoming = "incoming_grams"
	SumOutgoing = "outgoing_grams"
)

// OrderStats resumen de pedidos de un rango.
type OrderStats struct {
	TotalOrders       int
	ByStatus          map[string]int
	Revenue           decimal.Decimal // excluye cancelados
	AverageOrderValue decimal.Decimal // sobre pedidos no cancelados
	Series            []Point
	TopProducts       []Ranked // por número de pedidos que incluyen el producto
	ByCity            []Ranked
}

// SummarizeOrders agrega pedidos. Los cancelados cuentan en todos los desgloses pero no suman ingresos.
func SummarizeOrders(orders []*entity.Order, g GroupBy, topN int) OrderStats {
	st := OrderStats{ByStatus: make(map[string]int, len(entity.OrderStatuses))}
	for _, s := range entity.OrderStatuses {
		st.ByStatus[s] = 0
	}
	series := NewSeries(g)
	products := NewBreakdown()
	cities := NewBreakdown()
	billable := 0

	for _, o := range orders {
		st.TotalOrders++
		st.ByStatus[o.Status]++
		series.Count(o.CreatedAt)

		// Los cancelados cuentan en los desgloses pero no suman ingresos.
		value := o.Total
		cancelled := o.Status == entity.OrderStatusCancelled
		if cancelled {
			value = decimal.Zero
		} else {
			billable++
			st.Revenue = st.Revenue.Add(o.Total)
			series.Add(o.CreatedAt, SumRevenue, o.Total)
		}

		city := o.City
		if city == "" {
			city = "Sin ciudad"
		}
		cities.Add(city, value)

		// Un producto repetido en el mismo pedido cuenta una vez.
		seen := make(map[string]decimal.Decimal, len(o.Items))
		for _, it := range o.Items {
			sub := it.Subtotal()
			if cancelled {
				sub = decimal.Zero
			}
			seen[it.ProductName] = seen[it.ProductName].Add(sub)
		}
		for name, subtotal := range seen {
			products.Add(name, subtotal)
		}
	}

	if billable > 0 {
		st.AverageOrderValue = st.Revenue.Div(decimal.NewFromInt(int64(billable))).Round(2)
	}
	st.Series = series.Points()
	st.TopProducts = products.Top(topN, RankByCount)
	st.ByCity = cities.Top(0, RankByCount)
	return st
}

// TransactionStats resumen financiero de un rango.
type TransactionStats struct {
	TotalIncome          decimal.Decimal
	TotalExpense         decimal.Decimal
	Net                  decimal.Decimal
	IncomeByCategory     []Ranked
	ExpenseByCategory    []Ranked
	Series               []Point
	TopExpenseCategories []Ranked
}

// SummarizeTransactions agrega ingresos y egresos.
func SummarizeTransactions(txs []*entity.Transaction, g GroupBy, topN int) TransactionStats {
	var st TransactionStats
	series := NewSeries(g)
	income := NewBreakdown()
	expense := NewBreakdown()

	for _, tx := range txs {
		series.Count(tx.Date)
		switch tx.Type {
		case entity.TransactionTypeIncome:
			st.TotalIncome = st.TotalIncome.Add(tx.Amount)
			income.Add(tx.Category, tx.Amount)
			series.Add(tx.Date, SumIncome, tx.Amount)
		case entity.TransactionTypeExpense:
			st.TotalExpense = st.TotalExpense.Add(tx.Amount)
			expense.Add(tx.Category, tx.Amount)
			series.Add(tx.Date, SumExpense, tx.Amount)
		}
	}

	st.Net = st.TotalIncome.Sub(st.TotalExpense)
	st.IncomeByCategory = income.Top(0, RankByTotal)
	st.ExpenseByCategory = expense.Top(0, RankByTotal)
	st.TopExpenseCategories = expense.Top(topN, RankByTotal)
	st.Series = series.Points()
	return st
}

// MovementStats resumen de movimientos de stock de un rango.
type MovementStats struct {
	ByType        map[string]int
	IncomingGrams decimal.Decimal
	OutgoingGrams decimal.Decimal
	Series        []Point
	TopProducts   []Ranked // por número de movimientos
}

// SummarizeMovements agrega movimientos. Los ajustes guardan un valor absoluto,
// así que se cuentan pero no suman a entradas ni salidas.
func SummarizeMovements(movs []*entity.InventoryMovement, g GroupBy, topN int) MovementStats {
	st := MovementStats{ByType: map[string]int{
		entity.MovementTypeIncoming:   0,
		entity.MovementTypeOutgoing:   0,
		entity.MovementTypeAdjustment: 0,
	}}
	series := NewSeries(g)
	products := NewBreakdown()

	for _, m := range movs {
		st.ByType[m.Type]++
		series.Count(m.Date)
		products.Add(m.ProductName, m.QuantityGrams)
		switch m.Type {
		case entity.MovementTypeIncoming:
			st.IncomingGrams = st.IncomingGrams.Add(m.QuantityGrams)
			series.Add(m.Date, SumIncoming, m.QuantityGrams)
		case entity.MovementTypeOutgoing:
			st.OutgoingGrams = st.OutgoingGrams.Add(m.QuantityGrams)
			series.Add(m.Date, SumOutgoing, m.QuantityGrams)
		}
	}

	st.Series = series.Points()
	st.TopProducts = products.Top(topN, RankByCount)
	return st
}
