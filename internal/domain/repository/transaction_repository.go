package repository

import (
	"context"
	"time"

	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

// TransactionFilter filtros del listado de transacciones.
type TransactionFilter struct {
	Type     string
	Category string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// TransactionRepository define el puerto de persistencia para ingresos y egresos.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, int, error)
	ListAll(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
}
