package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción financiera.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Transaction es un ingreso o egreso registrado manualmente.
type Transaction struct {
	ID            string
	Type          string
	Category      string
	Amount        decimal.Decimal // siempre > 0; el signo lo da Type
	Description   string
	PaymentMethod string
	Date          time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
