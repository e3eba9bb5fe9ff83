package repository

import (
	"context"
	"time"

	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

// OrderFilter filtros del listado de pedidos.
type OrderFilter struct {
	Status string
	Search string // número de pedido, cliente o ciudad
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int, error)
	// ListAll ignora Limit/Offset y devuelve en orden cronológico.
	ListAll(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// CountCreatedOn cuenta los pedidos creados en el día de t (para el consecutivo del número).
	CountCreatedOn(ctx context.Context, t time.Time) (int, error)
}
