package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
	"github.com/jhoicas/perfumeria-api/internal/domain/stats"
)

const defaultTopN = 5

// StatsUseCase estadísticas por rango de pedidos y transacciones.
// Carga las filas del rango y delega la agregación en el paquete stats.
type StatsUseCase struct {
	orderRepo repository.OrderRepository
	txRepo    repository.TransactionRepository
	now       func() time.Time
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(orderRepo repository.OrderRepository, txRepo repository.TransactionRepository) *StatsUseCase {
	return &StatsUseCase{orderRepo: orderRepo, txRepo: txRepo, now: time.Now}
}

type statsParams struct {
	from, to time.Time
	groupBy  stats.GroupBy
	top      int
}

func (uc *StatsUseCase) params(in dto.StatsRequest) (statsParams, error) {
	from, to, err := dto.StatsRange(in.From, in.To, uc.now())
	if err != nil {
		return statsParams{}, err
	}
	g, err := stats.ParseGroupBy(in.GroupBy)
	if err != nil {
		return statsParams{}, err
	}
	top := in.Top
	if top <= 0 {
		top = defaultTopN
	}
	return statsParams{from: from, to: to, groupBy: g, top: top}, nil
}

// OrderStats resumen de pedidos del rango.
func (uc *StatsUseCase) OrderStats(ctx context.Context, in dto.StatsRequest) (*dto.OrderStatsDTO, error) {
	p, err := uc.params(in)
	if err != nil {
		return nil, err
	}
	orders, err := uc.orderRepo.ListAll(ctx, repository.OrderFilter{From: &p.from, To: &p.to})
	if err != nil {
		return nil, err
	}
	st := stats.SummarizeOrders(orders, p.groupBy, p.top)
	return &dto.OrderStatsDTO{
		From:              dto.FormatDate(p.from),
		To:                dto.FormatDate(p.to),
		GroupBy:           string(p.groupBy),
		TotalOrders:       st.TotalOrders,
		ByStatus:          st.ByStatus,
		Revenue:           st.Revenue,
		AverageOrderValue: st.AverageOrderValue,
		Series:            st.Series,
		TopProducts:       st.TopProducts,
		ByCity:            st.ByCity,
	}, nil
}

// TransactionStats resumen financiero del rango.
func (uc *StatsUseCase) TransactionStats(ctx context.Context, in dto.StatsRequest) (*dto.TransactionStatsDTO, error) {
	p, err := uc.params(in)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.ListAll(ctx, repository.TransactionFilter{From: &p.from, To: &p.to})
	if err != nil {
		return nil, err
	}
	st := stats.SummarizeTransactions(txs, p.groupBy, p.top)
	return &dto.TransactionStatsDTO{
		From:                 dto.FormatDate(p.from),
		To:                   dto.FormatDate(p.to),
		GroupBy:              string(p.groupBy),
		TotalIncome:          st.TotalIncome,
		TotalExpense:         st.TotalExpense,
		Net:                  st.Net,
		IncomeByCategory:     st.IncomeByCategory,
		ExpenseByCategory:    st.ExpenseByCategory,
		TopExpenseCategories: st.TopExpenseCategories,
		Series:               st.Series,
	}, nil
}
