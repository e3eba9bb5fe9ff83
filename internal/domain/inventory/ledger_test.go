package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/inventory"
)

var now = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func product(stock string, avg *decimal.Decimal) *entity.Product {
	return &entity.Product{
		ID:                 "p-1",
		Name:               "Oud Royal",
		Unit:               inventory.UnitGrams,
		CurrentStock:       dec(stock),
		MinStockLevel:      dec("100"),
		AverageCostPerGram: avg,
		IsActive:           true,
	}
}

func costPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// commit aplica el resultado al producto como lo haría el caso de uso.
func commit(p *entity.Product, out inventory.Outcome) {
	p.CurrentStock = out.NewStock
	p.AverageCostPerGram = out.NewAverageCost
}

func TestApplyMovement_EntradaSumaExacto(t *testing.T) {
	p := product("250", nil)
	out, err := inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeIncoming, Quantity: dec("1.5"), Unit: "kg",
	}, now)
	require.NoError(t, err)
	assertDec(t, "1750", out.NewStock)
	assertDec(t, "1500", out.Movement.QuantityGrams)
	assertDec(t, "1.5", out.Movement.InputQuantity)
	assert.Equal(t, "kg", out.Movement.InputUnit)
	assert.False(t, out.CostChanged, "sin costo no cambia el promedio")
	assert.Nil(t, out.Movement.UnitCost)
	assert.Equal(t, now, out.Movement.Date)
}

func TestApplyMovement_SalidaRestaYRechazaSiFalta(t *testing.T) {
	p := product("300", nil)
	out, err := inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeOutgoing, Quantity: dec("120"), Unit: "g",
	}, now)
	require.NoError(t, err)
	assertDec(t, "180", out.NewStock)
	assertDec(t, "120", out.Movement.QuantityGrams)

	_, err = inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeOutgoing, Quantity: dec("301"), Unit: "g",
	}, now)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assertDec(t, "300", p.CurrentStock, "el producto no se toca")
}

func TestApplyMovement_AjusteFijaValorAbsoluto(t *testing.T) {
	for _, prev := range []string{"0", "80", "5000"} {
		p := product(prev, nil)
		out, err := inventory.ApplyMovement(p, inventory.MovementRequest{
			Type: entity.MovementTypeAdjustment, Quantity: dec("0.75"), Unit: "kg",
		}, now)
		require.NoError(t, err)
		assertDec(t, "750", out.NewStock, "previo %s", prev)
		assertDec(t, "750", out.Movement.QuantityGrams, "el ajuste guarda el objetivo")
	}
}

func TestApplyMovement_AjusteNoAlteraCosto(t *testing.T) {
	p := product("100", costPtr("40"))
	out, err := inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeAdjustment, Quantity: dec("500"), UnitCost: costPtr("99"),
	}, now)
	require.NoError(t, err)
	assert.False(t, out.CostChanged)
	assertDec(t, "40", *out.NewAverageCost)
	assert.Nil(t, out.Movement.UnitCost)
}

func TestApplyMovement_PromedioPonderado(t *testing.T) {
	p := product("0", nil)

	out, err := inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeIncoming, Quantity: dec("1000"), Unit: "g", UnitCost: costPtr("50"),
	}, now)
	require.NoError(t, err)
	commit(p, out)
	assertDec(t, "1000", p.CurrentStock)
	assertDec(t, "50", *p.AverageCostPerGram)
	assertDec(t, "50000", *out.Movement.TotalCost)

	out, err = inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeIncoming, Quantity: dec("500"), Unit: "g", UnitCost: costPtr("80"),
	}, now)
	require.NoError(t, err)
	commit(p, out)
	assertDec(t, "1500", p.CurrentStock)
	assertDec(t, "60", *p.AverageCostPerGram)
}

func TestApplyMovement_EntradaGrandeReemplazaCosto(t *testing.T) {
	p := product("100", costPtr("40"))
	out, err := inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeIncoming, Quantity: dec("200"), Unit: "g", UnitCost: costPtr("90"),
	}, now)
	require.NoError(t, err)
	assertDec(t, "300", out.NewStock)
	assertDec(t, "90", *out.NewAverageCost)
}

func TestApplyMovement_CostoPorKilo(t *testing.T) {
	p := product("0", nil)
	out, err := inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeIncoming, Quantity: dec("2"), Unit: "kg", UnitCost: costPtr("50000"),
	}, now)
	require.NoError(t, err)
	assertDec(t, "50", *out.NewAverageCost)
	assertDec(t, "100000", *out.Movement.TotalCost)
	assertDec(t, "50000", *out.Movement.UnitCost)
}

func TestApplyMovement_SalidaNoAlteraCosto(t *testing.T) {
	p := product("1000", costPtr("50"))
	out, err := inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeOutgoing, Quantity: dec("10"), UnitCost: costPtr("1"),
	}, now)
	require.NoError(t, err)
	assert.False(t, out.CostChanged)
	assertDec(t, "50", *out.NewAverageCost)
}

func TestApplyMovement_CantidadCeroSinEfecto(t *testing.T) {
	p := product("400", costPtr("10"))
	out, err := inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeIncoming, Quantity: decimal.Zero, UnitCost: costPtr("999"),
	}, now)
	require.NoError(t, err)
	assertDec(t, "400", out.NewStock)
	assert.False(t, out.CostChanged)
}

func TestApplyMovement_Validaciones(t *testing.T) {
	p := product("100", nil)

	_, err := inventory.ApplyMovement(p, inventory.MovementRequest{Type: "transfer", Quantity: dec("1")}, now)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = inventory.ApplyMovement(p, inventory.MovementRequest{Type: entity.MovementTypeIncoming, Quantity: dec("1"), Unit: "oz"}, now)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = inventory.ApplyMovement(p, inventory.MovementRequest{Type: entity.MovementTypeIncoming, Quantity: dec("-1")}, now)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = inventory.ApplyMovement(p, inventory.MovementRequest{Type: entity.MovementTypeIncoming, Quantity: dec("1"), UnitCost: costPtr("-2")}, now)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	p.IsActive = false
	_, err = inventory.ApplyMovement(p, inventory.MovementRequest{Type: entity.MovementTypeIncoming, Quantity: dec("1")}, now)
	assert.True(t, errors.Is(err, domain.ErrInactiveProduct))
}

func TestApplyMovement_FechaRetroactiva(t *testing.T) {
	p := product("0", nil)
	backdated := now.AddDate(0, 0, -3)
	out, err := inventory.ApplyMovement(p, inventory.MovementRequest{
		Type: entity.MovementTypeIncoming, Quantity: dec("1"), Date: backdated, CreatedBy: "Ana",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, backdated, out.Movement.Date)
	assert.Equal(t, now, out.Movement.CreatedAt)
	assert.Equal(t, "Ana", out.Movement.CreatedBy)
}

// Ninguna secuencia de movimientos deja stock negativo; los rechazados no cambian nada.
func TestApplyMovement_NoNegatividadEnSecuencia(t *testing.T) {
	p := product("0", nil)
	seq := []inventory.MovementRequest{
		{Type: entity.MovementTypeIncoming, Quantity: dec("500")},
		{Type: entity.MovementTypeOutgoing, Quantity: dec("0.4"), Unit: "kg"},
		{Type: entity.MovementTypeOutgoing, Quantity: dec("200")},
		{Type: entity.MovementTypeAdjustment, Quantity: dec("50")},
		{Type: entity.MovementTypeOutgoing, Quantity: dec("50")},
		{Type: entity.MovementTypeOutgoing, Quantity: dec("1")},
	}
	for i, req := range seq {
		before := p.CurrentStock
		out, err := inventory.ApplyMovement(p, req, now)
		if err != nil {
			assert.True(t, errors.Is(err, domain.ErrInsufficientStock), "paso %d", i)
			assert.True(t, before.Equal(p.CurrentStock))
			continue
		}
		commit(p, out)
		assert.False(t, p.CurrentStock.IsNegative(), "paso %d", i)
	}
	assertDec(t, "0", p.CurrentStock)
}
