package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un perfume (SKU) del catálogo.
// CurrentStock y MinStockLevel siempre están en gramos; Unit solo afecta la presentación.
// CurrentStock y AverageCostPerGram los modifica únicamente el motor de movimientos.
type Product struct {
	ID                 string
	Name               string // único
	Description        string
	Category           string
	Unit               string           // "g" | "kg"
	CurrentStock       decimal.Decimal  // gramos, nunca negativo
	MinStockLevel      decimal.Decimal  // gramos
	AverageCostPerGram *decimal.Decimal // nil hasta la primera entrada con costo
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
