package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

// TransactionUseCase registra ingresos y egresos del negocio.
type TransactionUseCase struct {
	repo repository.TransactionRepository
	now  func() time.Time
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo, now: time.Now}
}

// Create registra una transacción. Sin fecha se usa la actual.
func (uc *TransactionUseCase) Create(ctx context.Context, actor dto.Principal, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	now := uc.now()
	date := now
	if d, err := dto.ParseDate(in.Date); err != nil {
		return nil, err
	} else if d != nil {
		date = *d
	}
	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		Type:          in.Type,
		Category:      strings.TrimSpace(in.Category),
		Amount:        in.Amount,
		Description:   in.Description,
		PaymentMethod: in.PaymentMethod,
		Date:          date,
		CreatedBy:     actor.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	out := toTransactionResponse(tx)
	return &out, nil
}

// GetByID obtiene una transacción.
func (uc *TransactionUseCase) GetByID(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	tx, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toTransactionResponse(tx)
	return &out, nil
}

// Update edita una transacción existente.
func (uc *TransactionUseCase) Update(ctx context.Context, id string, in dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Type != nil {
		tx.Type = *in.Type
	}
	if in.Category != nil {
		tx.Category = strings.TrimSpace(*in.Category)
	}
	if in.Amount != nil {
		tx.Amount = *in.Amount
	}
	if in.Description != nil {
		tx.Description = *in.Description
	}
	if in.PaymentMethod != nil {
		tx.PaymentMethod = *in.PaymentMethod
	}
	if in.Date != nil {
		d, err := dto.ParseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		if d != nil {
			tx.Date = *d
		}
	}
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}
	tx.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, tx); err != nil {
		return nil, err
	}
	out := toTransactionResponse(tx)
	return &out, nil
}

// Delete elimina una transacción.
func (uc *TransactionUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista transacciones con filtros, las más recientes primero.
func (uc *TransactionUseCase) List(ctx context.Context, in dto.TransactionFilterRequest) (*dto.TransactionListResponse, error) {
	in.DefaultPage()
	from, to, err := dto.ParseDayRange(in.From, in.To)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.TransactionFilter{
		Type:     in.Type,
		Category: strings.TrimSpace(in.Category),
		From:     from,
		To:       to,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, toTransactionResponse(tx))
	}
	return &dto.TransactionListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total}}, nil
}

func (uc *TransactionUseCase) get(ctx context.Context, id string) (*entity.Transaction, error) {
	tx, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return tx, nil
}

func validateTransaction(tx *entity.Transaction) error {
	if tx.Type != entity.TransactionTypeIncome && tx.Type != entity.TransactionTypeExpense {
		return domain.ErrInvalidInput
	}
	if tx.Category == "" {
		return domain.ErrInvalidInput
	}
	if !tx.Amount.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	return nil
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Category:      t.Category,
		Amount:        t.Amount,
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
		Date:          t.Date,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
