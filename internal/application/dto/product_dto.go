package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialStock y MinStockLevel se interpretan en Unit y se guardan en gramos.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description" validate:"max=2000"`
	Category      string          `json:"category" validate:"max=100"`
	Unit          string          `json:"unit" validate:"omitempty,oneof=g kg"`
	InitialStock  decimal.Decimal `json:"initial_stock" validate:"gte=0"`
	MinStockLevel decimal.Decimal `json:"min_stock_level" validate:"gte=0"`
}

// UpdateProductRequest entrada para editar metadatos (nunca stock ni costo).
// Si vienen MinStockLevel y Unit=kg a la vez, el umbral está en kilogramos.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=2000"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	Unit          *string          `json:"unit" validate:"omitempty,oneof=g kg"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level" validate:"omitempty,gte=0"`
	IsActive      *bool            `json:"is_active"`
}

// ProductFilterRequest filtros de GET /api/inventory.
type ProductFilterRequest struct {
	PageRequest
	Search   string `query:"search"`
	Category string `query:"category"`
	LowStock bool   `query:"low_stock"`
	Active   *bool  `query:"active"`
}

// ProductResponse salida de un producto con su estado derivado.
type ProductResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	Category             string           `json:"category"`
	Unit                 string           `json:"unit"`
	CurrentStock         decimal.Decimal  `json:"current_stock"` // gramos
	MinStockLevel        decimal.Decimal  `json:"min_stock_level"`
	DisplayStock         decimal.Decimal  `json:"display_stock"` // en Unit
	DisplayMinStockLevel decimal.Decimal  `json:"display_min_stock_level"`
	AverageCostPerGram   *decimal.Decimal `json:"average_cost_per_gram"`
	IsLowStock           bool             `json:"is_low_stock"`
	IsActive             bool             `json:"is_active"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductDetailResponse producto con sus movimientos más recientes.
type ProductDetailResponse struct {
	ProductResponse
	RecentMovements []MovementResponse `json:"recent_movements"`
}
