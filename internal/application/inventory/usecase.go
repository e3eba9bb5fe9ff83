package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	domaininv "github.com/jhoicas/perfumeria-api/internal/domain/inventory"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

// RegisterMovementUseCase es la única vía para modificar stock y costo promedio de un producto.
// Cada movimiento corre en una transacción con bloqueo de fila (SELECT FOR UPDATE) sobre el producto,
// así dos movimientos concurrentes del mismo producto se serializan.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	notifier ports.Notifier
	metrics  ports.Metrics
	log      zerolog.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. notifier y metrics pueden ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	notifier ports.Notifier,
	metrics ports.Metrics,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		notifier: notifier,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

// MovementResult es el estado del producto después del movimiento y el registro creado.
type MovementResult struct {
	Product        *entity.Product
	Movement       *entity.InventoryMovement
	BecameLowStock bool
}

// ApplyMovement bloquea el producto, calcula el nuevo stock y costo, agrega el movimiento y
// actualiza el producto en la misma transacción. Si algo falla no queda nada escrito.
func (uc *RegisterMovementUseCase) ApplyMovement(ctx context.Context, productID string, req domaininv.MovementRequest) (*MovementResult, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}

	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.InventoryMovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		result, err = uc.applyInTx(ctx, productRepo, movRepo, product, req)
		return err
	})

	uc.metrics.MovementApplied(req.Type, metricResult(err))
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", productID).
		Str("type", req.Type).
		Str("quantity_grams", result.Movement.QuantityGrams.String()).
		Str("stock", result.Product.CurrentStock.String()).
		Msg("movimiento aplicado")
	return result, nil
}

// CreateProduct inserta el producto y, si initial trae cantidad, registra su stock inicial como
// ajuste en la misma transacción para que todo gramo tenga su movimiento.
func (uc *RegisterMovementUseCase) CreateProduct(ctx context.Context, product *entity.Product, initial domaininv.MovementRequest) (*MovementResult, error) {
	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.InventoryMovementRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if initial.Quantity.IsZero() {
			result = &MovementResult{Product: product}
			return nil
		}
		initial.Type = entity.MovementTypeAdjustment
		var err error
		result, err = uc.applyInTx(ctx, productRepo, movRepo, product, initial)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result.Movement != nil {
		uc.metrics.MovementApplied(entity.MovementTypeAdjustment, ports.ResultOK)
	}
	return result, nil
}

// applyInTx calcula y persiste un movimiento sobre un producto ya bloqueado.
func (uc *RegisterMovementUseCase) applyInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	product *entity.Product,
	req domaininv.MovementRequest,
) (*MovementResult, error) {
	now := uc.now()
	out, err := domaininv.ApplyMovement(product, req, now)
	if err != nil {
		return nil, err
	}

	mov := out.Movement
	mov.ID = uuid.New().String()
	if err := movRepo.Create(ctx, &mov); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStock(ctx, product.ID, out.NewStock, out.NewAverageCost); err != nil {
		return nil, err
	}

	res := &MovementResult{
		BecameLowStock: domaininv.CrossedIntoLowStock(product.CurrentStock, out.NewStock, product.MinStockLevel),
	}
	product.CurrentStock = out.NewStock
	product.AverageCostPerGram = out.NewAverageCost
	product.UpdatedAt = now
	res.Product = product
	res.Movement = &mov
	return res, nil
}

// NotifyAfterMovement dispara las notificaciones del movimiento sin esperar ni fallar:
// shipment_created si lo hizo un usuario no administrador y low_stock si el producto cruzó el mínimo.
func (uc *RegisterMovementUseCase) NotifyAfterMovement(ctx context.Context, actorName string, actorIsAdmin bool, res *MovementResult) {
	if uc.notifier == nil || res == nil {
		return
	}
	p, m := res.Product, res.Movement
	if !actorIsAdmin {
		uc.notifier.Notify(ctx, ports.NotificationEvent{
			Type:    entity.NotificationShipmentCreated,
			Title:   "Nuevo movimiento de inventario",
			Message: fmt.Sprintf("%s registró %s de %s %s de %s", actorName, movementLabel(m.Type), m.InputQuantity.String(), m.InputUnit, p.Name),
			Data: map[string]any{
				"product_id":   p.ID,
				"product_name": p.Name,
				"type":         m.Type,
				"quantity":     m.InputQuantity.String(),
				"unit":         m.InputUnit,
				"actor":        actorName,
				"movement_id":  m.ID,
			},
		})
	}
	if res.BecameLowStock {
		uc.notifier.Notify(ctx, ports.NotificationEvent{
			Type:    entity.NotificationLowStock,
			Title:   "Stock bajo",
			Message: fmt.Sprintf("%s quedó en %s %s (mínimo %s %s)", p.Name, domaininv.DisplayStock(p).String(), p.Unit, domaininv.DisplayMinStock(p).String(), p.Unit),
			Data: map[string]any{
				"product_id":   p.ID,
				"product_name": p.Name,
				"stock_grams":  p.CurrentStock.String(),
				"min_grams":    p.MinStockLevel.String(),
			},
		})
	}
}

func movementLabel(t string) string {
	switch t {
	case entity.MovementTypeIncoming:
		return "una entrada"
	case entity.MovementTypeOutgoing:
		return "una salida"
	default:
		return "un ajuste"
	}
}

func metricResult(err error) string {
	switch {
	case err == nil:
		return ports.ResultOK
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrInactiveProduct):
		return ports.ResultRejected
	default:
		return ports.ResultError
	}
}
