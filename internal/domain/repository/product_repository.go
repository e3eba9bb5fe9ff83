package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

// ProductFilter filtros del listado de inventario.
type ProductFilter struct {
	Search       string // subcadena (sin distinguir mayúsculas) en nombre o descripción
	Category     string
	LowStockOnly bool
	Active       *bool // nil = solo activos
	Limit        int
	Offset       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) dentro de la transacción en curso.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica solo metadatos: nombre, descripción, categoría, unidad, umbral y estado.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock es usado exclusivamente por el motor de movimientos.
	UpdateStock(ctx context.Context, productID string, stock decimal.Decimal, avgCost *decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	Deactivate(ctx context.Context, id string) error
}
