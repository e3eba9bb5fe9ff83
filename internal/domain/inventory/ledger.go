package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

// MovementRequest es un movimiento tal como lo pide el usuario.
type MovementRequest struct {
	Type      string
	Quantity  decimal.Decimal
	Unit      string
	UnitCost  *decimal.Decimal // costo por unidad de entrada (por g o por kg)
	Date      time.Time        // cero = ahora
	Notes     string
	CreatedBy string
}

// Outcome es el resultado de aplicar un movimiento sobre el estado actual del producto.
// No persiste nada: el caso de uso guarda Movement y el nuevo stock en la misma transacción.
type Outcome struct {
	NewStock       decimal.Decimal
	NewAverageCost *decimal.Decimal
	CostChanged    bool
	Movement       entity.InventoryMovement
}

// ApplyMovement calcula el efecto de req sobre product.
// Errores: ErrInvalidInput (tipo o unidad), ErrInvalidQuantity (cantidad o costo negativo),
// ErrInactiveProduct y ErrInsufficientStock si el stock resultante sería negativo.
func ApplyMovement(product *entity.Product, req MovementRequest, now time.Time) (Outcome, error) {
	if !entity.IsValidMovementType(req.Type) {
		return Outcome{}, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, req.Type)
	}
	unit, err := ParseUnit(req.Unit)
	if err != nil {
		return Outcome{}, err
	}
	if req.Quantity.IsNegative() {
		return Outcome{}, domain.ErrInvalidQuantity
	}
	if req.UnitCost != nil && req.UnitCost.IsNegative() {
		return Outcome{}, fmt.Errorf("%w: costo unitario negativo", domain.ErrInvalidQuantity)
	}
	if !product.IsActive {
		return Outcome{}, domain.ErrInactiveProduct
	}

	grams := ToGrams(req.Quantity, unit)
	current := product.CurrentStock

	var delta decimal.Decimal
	switch req.Type {
	case entity.MovementTypeIncoming:
		delta = grams
	case entity.MovementTypeOutgoing:
		delta = grams.Neg()
	case entity.MovementTypeAdjustment:
		delta = grams.Sub(current)
	}

	newStock := current.Add(delta)
	if newStock.IsNegative() {
		return Outcome{}, domain.ErrInsufficientStock
	}

	out := Outcome{NewStock: newStock, NewAverageCost: product.AverageCostPerGram}

	date := req.Date
	if date.IsZero() {
		date = now
	}
	mov := entity.InventoryMovement{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Type:          req.Type,
		QuantityGrams: delta.Abs(),
		InputQuantity: req.Quantity,
		InputUnit:     unit,
		Date:          date,
		Notes:         req.Notes,
		CreatedBy:     req.CreatedBy,
		CreatedAt:     now,
	}
	if req.Type == entity.MovementTypeAdjustment {
		mov.QuantityGrams = grams
	}

	if req.Type == entity.MovementTypeIncoming && req.UnitCost != nil && grams.IsPositive() {
		costPerGram := CostPerGram(*req.UnitCost, unit)
		avg := CostCalculator(current, product.AverageCostPerGram, grams, costPerGram)
		out.NewAverageCost = &avg
		out.CostChanged = true

		unitCost := *req.UnitCost
		total := unitCost.Mul(req.Quantity)
		mov.UnitCost = &unitCost
		mov.TotalCost = &total
	}

	out.Movement = mov
	return out, nil
}
