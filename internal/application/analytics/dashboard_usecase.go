// Package analytics contiene los casos de uso de lectura: dashboard, estadísticas
// por rango y exportes de pedidos, transacciones y movimientos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/application/inventory"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

const dashboardRecentMovements = 5 // movimientos en el widget del dashboard

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y el almacén de movimientos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	movRepo       repository.InventoryMovementRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, movRepo repository.InventoryMovementRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, movRepo: movRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Consultas en paralelo:
//  1. GetRevenue(hoy) y GetRevenue(mes)
//  2. CountOrdersByStatus(mes)
//  3. GetCashflow(mes)
//  4. CountLowStock + GetStockValuation
//  5. últimos movimientos
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Hoy: 00:00:00 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type amountResult struct {
		value decimal.Decimal
		err   error
	}
	type statusResult struct {
		counts map[string]int
		err    error
	}
	type cashflowResult struct {
		income, expense decimal.Decimal
		err             error
	}
	type countResult struct {
		n   int
		err error
	}
	type movementsResult struct {
		items []dto.MovementResponse
		err   error
	}

	todayCh := make(chan amountResult, 1)
	monthCh := make(chan amountResult, 1)
	statusCh := make(chan statusResult, 1)
	cashCh := make(chan cashflowResult, 1)
	lowCh := make(chan countResult, 1)
	valuationCh := make(chan amountResult, 1)
	movCh := make(chan movementsResult, 1)

	go func() {
		v, err := uc.analyticsRepo.GetRevenue(ctx, todayStart, todayEnd)
		todayCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.GetRevenue(ctx, monthStart, monthEnd)
		monthCh <- amountResult{v, err}
	}()
	go func() {
		c, err := uc.analyticsRepo.CountOrdersByStatus(ctx, monthStart, monthEnd)
		statusCh <- statusResult{c, err}
	}()
	go func() {
		in, out, err := uc.analyticsRepo.GetCashflow(ctx, monthStart, monthEnd)
		cashCh <- cashflowResult{in, out, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountLowStock(ctx)
		lowCh <- countResult{n, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.GetStockValuation(ctx)
		valuationCh <- amountResult{v, err}
	}()
	go func() {
		items, _, err := uc.movRepo.List(ctx, repository.MovementFilter{}, 1, dashboardRecentMovements)
		movCh <- movementsResult{inventory.ToMovementResponses(items), err}
	}()

	today := <-todayCh
	month := <-monthCh
	status := <-statusCh
	cash := <-cashCh
	low := <-lowCh
	valuation := <-valuationCh
	movs := <-movCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", month.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos por estado: %w", status.err)
	}
	if cash.err != nil {
		return nil, fmt.Errorf("dashboard: flujo de caja: %w", cash.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if valuation.err != nil {
		return nil, fmt.Errorf("dashboard: valorización: %w", valuation.err)
	}
	if movs.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", movs.err)
	}

	if status.counts == nil {
		status.counts = map[string]int{}
	}
	if movs.items == nil {
		movs.items = []dto.MovementResponse{}
	}

	return &dto.DashboardSummaryDTO{
		TodayRevenue:    today.value.Round(2),
		MonthlyRevenue:  month.value.Round(2),
		OrdersByStatus:  status.counts,
		MonthlyIncome:   cash.income.Round(2),
		MonthlyExpense:  cash.expense.Round(2),
		MonthlyNet:      cash.income.Sub(cash.expense).Round(2),
		LowStockCount:   low.n,
		StockValuation:  valuation.value.Round(2),
		RecentMovements: movs.items,
		DateLabel:       monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
