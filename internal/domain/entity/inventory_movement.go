package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIncoming   = "incoming"   // entrada
	MovementTypeOutgoing   = "outgoing"   // salida
	MovementTypeAdjustment = "adjustment" // ajuste a valor absoluto
)

// IsValidMovementType indica si t es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIncoming, MovementTypeOutgoing, MovementTypeAdjustment:
		return true
	}
	return false
}

// InventoryMovement es un registro inmutable del libro de stock.
// QuantityGrams es siempre positivo: en ajustes guarda el valor objetivo, en entradas/salidas la magnitud aplicada.
type InventoryMovement struct {
	ID            string
	ProductID     string
	ProductName   string // solo lectura (join con products)
	Type          string
	QuantityGrams decimal.Decimal
	InputQuantity decimal.Decimal
	InputUnit     string
	UnitCost      *decimal.Decimal // solo entradas con costo
	TotalCost     *decimal.Decimal
	Date          time.Time // fecha de negocio (puede ser retroactiva)
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}
