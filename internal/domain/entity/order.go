package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido. Delivered y Cancelled son terminales.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lista los estados en el orden del flujo normal.
var OrderStatuses = []string{
	OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
}

// IsValidOrderStatus indica si s es un estado conocido.
func IsValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus indica si un pedido en estado s ya no puede cambiar.
func IsTerminalOrderStatus(s string) bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderItem es una línea del pedido. Se guarda como JSONB dentro del pedido.
type OrderItem struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Subtotal = cantidad × precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Order representa un pedido de cliente.
type Order struct {
	ID              string
	OrderNumber     string // ORD-YYYYMMDD-XXXX
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	ShippingAddress string
	City            string
	Items           []OrderItem
	Total           decimal.Decimal
	Status          string
	Notes           string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecalculateTotal suma los subtotales de las líneas.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	o.Total = total
}
