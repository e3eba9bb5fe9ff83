package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	domaininv "github.com/jhoicas/perfumeria-api/internal/domain/inventory"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de los productos en stock bajo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos activos en o bajo su mínimo con la cantidad
// sugerida para llegar a mínimo × 1.5 y el costo estimado al costo promedio actual.
// Orden: mayor déficit primero, luego nombre.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.RestockSuggestionDTO, error) {
	products, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	type row struct {
		dto     dto.RestockSuggestionDTO
		deficit decimal.Decimal
	}
	rows := make([]row, 0, len(products))
	for _, p := range products {
		if !domaininv.IsLowStock(p) {
			continue
		}
		r := domaininv.SuggestRestock(p)
		avg := decimal.Zero
		if p.AverageCostPerGram != nil {
			avg = *p.AverageCostPerGram
		}
		rows = append(rows, row{
			deficit: r.Deficit,
			dto: dto.RestockSuggestionDTO{
				ProductID:          p.ID,
				ProductName:        p.Name,
				Category:           p.Category,
				Unit:               p.Unit,
				CurrentStock:       p.CurrentStock,
				MinStockLevel:      p.MinStockLevel,
				IdealStock:         r.IdealStock,
				SuggestedOrderQty:  r.SuggestedQty,
				AverageCostPerGram: avg,
				EstimatedOrderCost: r.EstimatedCost.Round(2),
			},
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].deficit.Equal(rows[j].deficit) {
			return rows[i].deficit.GreaterThan(rows[j].deficit)
		}
		return rows[i].dto.ProductName < rows[j].dto.ProductName
	})

	out := make([]dto.RestockSuggestionDTO, len(rows))
	for i, r := range rows {
		out[i] = r.dto
		out[i].Priority = i + 1
	}
	return out, nil
}
