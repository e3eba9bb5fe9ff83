package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest entrada para registrar un ingreso o egreso.
type CreateTransactionRequest struct {
	Type          string          `json:"type" validate:"required,oneof=income expense"`
	Category      string          `json:"category" validate:"required,max=100"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	Description   string          `json:"description" validate:"max=1000"`
	PaymentMethod string          `json:"payment_method" validate:"max=50"`
	Date          string          `json:"date"`
}

// UpdateTransactionRequest campos editables de una transacción.
type UpdateTransactionRequest struct {
	Type          *string          `json:"type" validate:"omitempty,oneof=income expense"`
	Category      *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Amount        *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Description   *string          `json:"description" validate:"omitempty,max=1000"`
	PaymentMethod *string          `json:"payment_method" validate:"omitempty,max=50"`
	Date          *string          `json:"date"`
}

// TransactionFilterRequest filtros de GET /api/transactions.
type TransactionFilterRequest struct {
	PageRequest
	Type     string `query:"type" validate:"omitempty,oneof=income expense"`
	Category string `query:"category"`
	From     string `query:"from"`
	To       string `query:"to"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TransactionListResponse lista paginada de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
