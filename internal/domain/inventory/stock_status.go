package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

// Factor del stock ideal al sugerir reposición (mínimo × 1.5).
var idealStockFactor = decimal.NewFromFloat(1.5)

// IsLowStock es true si el stock actual está en o por debajo del mínimo (inclusivo).
func IsLowStock(p *entity.Product) bool {
	return p.CurrentStock.LessThanOrEqual(p.MinStockLevel)
}

// CrossedIntoLowStock indica si un cambio de stock llevó al producto de normal a bajo.
func CrossedIntoLowStock(before, after, minStock decimal.Decimal) bool {
	return before.GreaterThan(minStock) && after.LessThanOrEqual(minStock)
}

// DisplayStock devuelve el stock en la unidad de presentación del producto.
func DisplayStock(p *entity.Product) decimal.Decimal {
	return FromGrams(p.CurrentStock, p.Unit)
}

// DisplayMinStock devuelve el umbral en la unidad de presentación del producto.
func DisplayMinStock(p *entity.Product) decimal.Decimal {
	return FromGrams(p.MinStockLevel, p.Unit)
}

// Restock es la sugerencia de reposición de un producto, en gramos.
type Restock struct {
	IdealStock    decimal.Decimal
	SuggestedQty  decimal.Decimal
	Deficit       decimal.Decimal // mínimo − actual (puede ser 0)
	EstimatedCost decimal.Decimal // SuggestedQty × costo promedio (0 sin costo)
}

// SuggestRestock calcula cuánto pedir para dejar el producto en mínimo × 1.5.
func SuggestRestock(p *entity.Product) Restock {
	ideal := p.MinStockLevel.Mul(idealStockFactor)
	suggested := ideal.Sub(p.CurrentStock)
	if suggested.IsNegative() {
		suggested = decimal.Zero
	}
	deficit := p.MinStockLevel.Sub(p.CurrentStock)
	if deficit.IsNegative() {
		deficit = decimal.Zero
	}
	cost := decimal.Zero
	if p.AverageCostPerGram != nil {
		cost = suggested.Mul(*p.AverageCostPerGram)
	}
	return Restock{IdealStock: ideal, SuggestedQty: suggested, Deficit: deficit, EstimatedCost: cost}
}
