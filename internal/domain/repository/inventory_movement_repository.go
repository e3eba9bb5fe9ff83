package repository

import (
	"context"
	"time"

	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos. From y To son inclusivos.
type MovementFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
}

// InventoryMovementRepository es el almacén de movimientos: solo agrega y lee, nunca modifica ni borra.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// List devuelve una página (page desde 1), la más reciente primero, y el total de coincidencias.
	List(ctx context.Context, filter MovementFilter, page, pageSize int) ([]*entity.InventoryMovement, int, error)
	// ListAll devuelve todas las coincidencias en orden cronológico (estadísticas y exportes).
	ListAll(ctx context.Context, filter MovementFilter) ([]*entity.InventoryMovement, error)
}
