package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/domain"
	domaininv "github.com/jhoicas/perfumeria-api/internal/domain/inventory"
)

// RegisterMovementFromRequest adapta el request HTTP a ApplyMovement y dispara las notificaciones.
// Una falla al notificar nunca afecta la respuesta: el movimiento ya quedó confirmado.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, actor dto.Principal, in dto.RegisterMovementRequest) (*dto.MovementResultResponse, error) {
	if in.Quantity == nil {
		return nil, fmt.Errorf("%w: quantity requerida", domain.ErrInvalidQuantity)
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	req := domaininv.MovementRequest{
		Type:      in.Type,
		Quantity:  *in.Quantity,
		Unit:      in.Unit,
		UnitCost:  in.UnitCost,
		Notes:     in.Notes,
		CreatedBy: actor.Name,
	}
	if date != nil {
		req.Date = *date
	}

	res, err := uc.ApplyMovement(ctx, in.ProductID, req)
	if err != nil {
		return nil, err
	}

	// El contexto del request se recicla al responder; las notificaciones usan uno propio.
	uc.NotifyAfterMovement(context.Background(), actor.Name, actor.IsAdmin(), res)

	return &dto.MovementResultResponse{
		Product:  ToProductResponse(res.Product),
		Movement: ToMovementResponse(res.Movement),
	}, nil
}
