package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/shipments.
// Date acepta YYYY-MM-DD o RFC3339; vacío es ahora.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Type      string           `json:"type" validate:"required,oneof=incoming outgoing adjustment"`
	Quantity  *decimal.Decimal `json:"quantity" validate:"omitempty,gte=0"` // obligatorio; 0 solo tiene sentido en ajustes
	Unit      string           `json:"unit" validate:"omitempty,oneof=g kg"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty" validate:"omitempty,gte=0"`
	Date      string           `json:"date,omitempty"`
	Notes     string           `json:"notes,omitempty" validate:"max=1000"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	ProductName   string           `json:"product_name,omitempty"`
	Type          string           `json:"type"`
	QuantityGrams decimal.Decimal  `json:"quantity_grams"`
	InputQuantity decimal.Decimal  `json:"input_quantity"`
	InputUnit     string           `json:"input_unit"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost     *decimal.Decimal `json:"total_cost,omitempty"`
	Date          time.Time        `json:"date"`
	Notes         string           `json:"notes,omitempty"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
}

// MovementResultResponse resultado de aplicar un movimiento.
type MovementResultResponse struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
}

// MovementFilterRequest filtros de GET /api/shipments (page desde 1).
type MovementFilterRequest struct {
	ProductID string `query:"product_id"`
	Type      string `query:"type" validate:"omitempty,oneof=incoming outgoing adjustment"`
	From      string `query:"from"`
	To        string `query:"to"`
	Page      int    `query:"page" validate:"min=0"`
	PageSize  int    `query:"page_size" validate:"min=0,max=100"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Items      []MovementResponse `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
}

// RestockSuggestionDTO sugerencia de reposición para un producto en stock bajo.
// Cantidades en gramos.
type RestockSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Category           string          `json:"category"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinStockLevel      decimal.Decimal `json:"min_stock_level"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`           // MinStockLevel * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`   // IdealStock - CurrentStock
	AverageCostPerGram decimal.Decimal `json:"average_cost_per_gram"` // 0 si no hay costo
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
