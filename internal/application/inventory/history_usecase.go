package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
	"github.com/jhoicas/perfumeria-api/internal/domain/stats"
)

const (
	defaultPageSize    = 20
	maxPageSize        = 100
	defaultRecentLimit = 5
	defaultTopN        = 5
)

// HistoryUseCase consultas de solo lectura sobre el almacén de movimientos.
type HistoryUseCase struct {
	movRepo repository.InventoryMovementRepository
	now     func() time.Time
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(movRepo repository.InventoryMovementRepository) *HistoryUseCase {
	return &HistoryUseCase{movRepo: movRepo, now: time.Now}
}

// List devuelve una página del historial, la fecha más reciente primero.
func (uc *HistoryUseCase) List(ctx context.Context, in dto.MovementFilterRequest) (*dto.MovementListResponse, error) {
	from, to, err := dto.ParseDayRange(in.From, in.To)
	if err != nil {
		return nil, err
	}
	page, size := in.Page, in.PageSize
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	filter := repository.MovementFilter{ProductID: in.ProductID, Type: in.Type, From: from, To: to}
	items, total, err := uc.movRepo.List(ctx, filter, page, size)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Items:      ToMovementResponses(items),
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}, nil
}

// Recent devuelve los últimos limit movimientos (5 por defecto).
func (uc *HistoryUseCase) Recent(ctx context.Context, productID string, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	items, _, err := uc.movRepo.List(ctx, repository.MovementFilter{ProductID: productID}, 1, limit)
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(items), nil
}

// Stats agrupa los movimientos del rango por día o mes.
func (uc *HistoryUseCase) Stats(ctx context.Context, in dto.StatsRequest) (*dto.MovementStatsDTO, error) {
	from, to, err := dto.StatsRange(in.From, in.To, uc.now())
	if err != nil {
		return nil, err
	}
	g, err := stats.ParseGroupBy(in.GroupBy)
	if err != nil {
		return nil, err
	}
	top := in.Top
	if top <= 0 {
		top = defaultTopN
	}

	movs, err := uc.movRepo.ListAll(ctx, repository.MovementFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}
	st := stats.SummarizeMovements(movs, g, top)
	return &dto.MovementStatsDTO{
		From:          dto.FormatDate(from),
		To:            dto.FormatDate(to),
		GroupBy:       string(g),
		ByType:        st.ByType,
		IncomingGrams: st.IncomingGrams,
		OutgoingGrams: st.OutgoingGrams,
		Series:        st.Series,
		TopProducts:   st.TopProducts,
	}, nil
}
