package inventory

import (
	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	domaininv "github.com/jhoicas/perfumeria-api/internal/domain/inventory"
)

// ToProductResponse agrega al producto su estado derivado (stock bajo y valores en su unidad).
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		Category:             p.Category,
		Unit:                 p.Unit,
		CurrentStock:         p.CurrentStock,
		MinStockLevel:        p.MinStockLevel,
		DisplayStock:         domaininv.DisplayStock(p),
		DisplayMinStockLevel: domaininv.DisplayMinStock(p),
		AverageCostPerGram:   p.AverageCostPerGram,
		IsLowStock:           domaininv.IsLowStock(p),
		IsActive:             p.IsActive,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// ToMovementResponse mapea un movimiento a su DTO.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		Type:          m.Type,
		QuantityGrams: m.QuantityGrams,
		InputQuantity: m.InputQuantity,
		InputUnit:     m.InputUnit,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		Date:          m.Date,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// ToMovementResponses mapea una lista; nunca devuelve nil.
func ToMovementResponses(list []*entity.InventoryMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
