package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemDTO línea de pedido.
type OrderItemDTO struct {
	ProductName string          `json:"product_name" validate:"required,max=200"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	Unit        string          `json:"unit" validate:"omitempty,max=20"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gte=0"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CreateOrderRequest entrada para crear un pedido. El total se calcula.
type CreateOrderRequest struct {
	CustomerName    string         `json:"customer_name" validate:"required,max=200"`
	CustomerPhone   string         `json:"customer_phone" validate:"max=50"`
	CustomerEmail   string         `json:"customer_email" validate:"omitempty,email"`
	ShippingAddress string         `json:"shipping_address" validate:"max=500"`
	City            string         `json:"city" validate:"max=100"`
	Items           []OrderItemDTO `json:"items" validate:"required,min=1,dive"`
	Notes           string         `json:"notes" validate:"max=2000"`
}

// UpdateOrderRequest campos editables; Items reemplaza todas las líneas y recalcula el total.
type UpdateOrderRequest struct {
	CustomerName    *string        `json:"customer_name" validate:"omitempty,min=1,max=200"`
	CustomerPhone   *string        `json:"customer_phone" validate:"omitempty,max=50"`
	CustomerEmail   *string        `json:"customer_email" validate:"omitempty,email"`
	ShippingAddress *string        `json:"shipping_address" validate:"omitempty,max=500"`
	City            *string        `json:"city" validate:"omitempty,max=100"`
	Items           []OrderItemDTO `json:"items" validate:"omitempty,min=1,dive"`
	Notes           *string        `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateOrderStatusRequest body de PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

// OrderFilterRequest filtros de GET /api/orders.
type OrderFilterRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	Search string `query:"search"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerEmail   string          `json:"customer_email"`
	ShippingAddress string          `json:"shipping_address"`
	City            string          `json:"city"`
	Items           []OrderItemDTO  `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
