package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

const orderNumberAttempts = 3

// OrderUseCase gestiona pedidos de clientes.
type OrderUseCase struct {
	repo     repository.OrderRepository
	notifier ports.Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso. notifier puede ser nil.
func NewOrderUseCase(repo repository.OrderRepository, notifier ports.Notifier, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{repo: repo, notifier: notifier, log: log, now: time.Now}
}

// Create registra un pedido pendiente con número ORD-YYYYMMDD-XXXX.
// Si lo crea un usuario staff se avisa a los administradores.
func (uc *OrderUseCase) Create(ctx context.Context, actor dto.Principal, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	items, err := toOrderItems(in.Items)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   in.CustomerPhone,
		CustomerEmail:   in.CustomerEmail,
		ShippingAddress: in.ShippingAddress,
		City:            strings.TrimSpace(in.City),
		Items:           items,
		Status:          entity.OrderStatusPending,
		Notes:           in.Notes,
		CreatedBy:       actor.Name,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.RecalculateTotal()

	for attempt := 0; ; attempt++ {
		seq, err := uc.repo.CountCreatedOn(ctx, now)
		if err != nil {
			return nil, err
		}
		order.OrderNumber = FormatOrderNumber(now, seq+1+attempt)
		err = uc.repo.Create(ctx, order)
		if err == nil {
			break
		}
		// Otro pedido tomó el mismo consecutivo: reintentar con el siguiente.
		if !errors.Is(err, domain.ErrDuplicate) || attempt+1 >= orderNumberAttempts {
			return nil, err
		}
	}

	if actor.Role == entity.RoleStaff && uc.notifier != nil {
		uc.notifier.Notify(context.Background(), ports.NotificationEvent{
			Type:    entity.NotificationOrderCreated,
			Title:   "Nuevo pedido",
			Message: fmt.Sprintf("%s creó el pedido %s de %s por %s", actor.Name, order.OrderNumber, order.CustomerName, order.Total.StringFixed(2)),
			Data: map[string]any{
				"order_id":     order.ID,
				"order_number": order.OrderNumber,
				"customer":     order.CustomerName,
				"total":        order.Total.String(),
				"actor":        actor.Name,
			},
		})
	}
	uc.log.Info().Str("order_number", order.OrderNumber).Str("total", order.Total.String()).Msg("pedido creado")
	out := toOrderResponse(order)
	return &out, nil
}

// FormatOrderNumber arma ORD-YYYYMMDD-XXXX con el consecutivo del día.
func FormatOrderNumber(t time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%04d", t.Format("20060102"), seq)
}

// GetByID obtiene un pedido.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toOrderResponse(order)
	return &out, nil
}

// Update edita datos del cliente y, si vienen, reemplaza las líneas y recalcula el total.
// Un pedido entregado o cancelado no se puede editar.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity.IsTerminalOrderStatus(order.Status) {
		return nil, fmt.Errorf("%w: el pedido está %s", domain.ErrInvalidInput, order.Status)
	}
	if in.CustomerName != nil {
		order.CustomerName = strings.TrimSpace(*in.CustomerName)
	}
	if in.CustomerPhone != nil {
		order.CustomerPhone = *in.CustomerPhone
	}
	if in.CustomerEmail != nil {
		order.CustomerEmail = *in.CustomerEmail
	}
	if in.ShippingAddress != nil {
		order.ShippingAddress = *in.ShippingAddress
	}
	if in.City != nil {
		order.City = strings.TrimSpace(*in.City)
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	if in.Items != nil {
		items, err := toOrderItems(in.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
		order.RecalculateTotal()
	}
	order.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	out := toOrderResponse(order)
	return &out, nil
}

// UpdateStatus cambia el estado. Delivered y cancelled son terminales.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	order, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != status {
		if entity.IsTerminalOrderStatus(order.Status) {
			return nil, fmt.Errorf("%w: el pedido ya está %s", domain.ErrInvalidInput, order.Status)
		}
		order.Status = status
		order.UpdatedAt = uc.now()
		if err := uc.repo.Update(ctx, order); err != nil {
			return nil, err
		}
	}
	out := toOrderResponse(order)
	return &out, nil
}

// Delete elimina un pedido.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista pedidos con filtros y paginación, los más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, in dto.OrderFilterRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage()
	from, to, err := dto.ParseDayRange(in.From, in.To)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.OrderFilter{
		Status: in.Status,
		Search: strings.TrimSpace(in.Search),
		From:   from,
		To:     to,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, toOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total}}, nil
}

func (uc *OrderUseCase) get(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func toOrderItems(in []dto.OrderItemDTO) ([]entity.OrderItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: el pedido necesita al menos un producto", domain.ErrInvalidInput)
	}
	items := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		if !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidQuantity
		}
		unit := it.Unit
		if unit == "" {
			unit = "unidad"
		}
		items = append(items, entity.OrderItem{
			ProductName: strings.TrimSpace(it.ProductName),
			Quantity:    it.Quantity,
			Unit:        unit,
			UnitPrice:   it.UnitPrice,
		})
	}
	return items, nil
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemDTO{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return dto.OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		City:            o.City,
		Items:           items,
		Total:           o.Total,
		Status:          o.Status,
		Notes:           o.Notes,
		CreatedBy:       o.CreatedBy,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
