package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/domain"
)

// Unidades aceptadas. El gramo es la unidad canónica de almacenamiento.
const (
	UnitGrams     = "g"
	UnitKilograms = "kg"
)

var gramsPerKilogram = decimal.NewFromInt(1000)

// ParseUnit normaliza la unidad recibida; vacío equivale a gramos.
func ParseUnit(unit string) (string, error) {
	switch u := strings.ToLower(strings.TrimSpace(unit)); u {
	case "", UnitGrams:
		return UnitGrams, nil
	case UnitKilograms:
		return UnitKilograms, nil
	default:
		return "", fmt.Errorf("%w: unidad desconocida %q", domain.ErrInvalidInput, unit)
	}
}

// ToGrams convierte quantity expresada en unit a gramos. kg multiplica por 1000; g es identidad.
func ToGrams(quantity decimal.Decimal, unit string) decimal.Decimal {
	if unit == UnitKilograms {
		return quantity.Mul(gramsPerKilogram)
	}
	return quantity
}

// FromGrams convierte gramos a la unidad de presentación.
func FromGrams(grams decimal.Decimal, unit string) decimal.Decimal {
	if unit == UnitKilograms {
		return grams.Div(gramsPerKilogram)
	}
	return grams
}

// CostPerGram lleva un costo expresado por unidad de entrada a costo por gramo.
func CostPerGram(unitCost decimal.Decimal, unit string) decimal.Decimal {
	return FromGrams(unitCost, unit)
}
