package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/application/inventory"
	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	domaininv "github.com/jhoicas/perfumeria-api/internal/domain/inventory"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

const productRecentMovements = 10

// ProductUseCase casos de uso CRUD para productos. Stock y costo se manejan vía movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	movRepo  repository.InventoryMovementRepository
	movement *inventory.RegisterMovementUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	movement *inventory.RegisterMovementUseCase,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, movRepo: movRepo, movement: movement}
}

// Create crea un producto. Stock inicial y mínimo vienen en la unidad indicada y se guardan en gramos;
// el stock inicial queda registrado como ajuste.
func (uc *ProductUseCase) Create(ctx context.Context, actor dto.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	unit, err := domaininv.ParseUnit(in.Unit)
	if err != nil {
		return nil, err
	}
	if in.InitialStock.IsNegative() || in.MinStockLevel.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   in.Description,
		Category:      strings.TrimSpace(in.Category),
		Unit:          unit,
		MinStockLevel: domaininv.ToGrams(in.MinStockLevel, unit),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	res, err := uc.movement.CreateProduct(ctx, product, domaininv.MovementRequest{
		Quantity:  in.InitialStock,
		Unit:      unit,
		Notes:     "Stock inicial",
		CreatedBy: actor.Name,
	})
	if err != nil {
		return nil, err
	}
	out := inventory.ToProductResponse(res.Product)
	return &out, nil
}

// GetByID obtiene un producto con sus movimientos más recientes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	movs, _, err := uc.movRepo.List(ctx, repository.MovementFilter{ProductID: id}, 1, productRecentMovements)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{
		ProductResponse: inventory.ToProductResponse(product),
		RecentMovements: inventory.ToMovementResponses(movs),
	}, nil
}

// Update edita metadatos. Si llegan min_stock_level y unit=kg juntos, el umbral está en kilogramos;
// en cualquier otro caso el umbral viene en gramos.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Unit != nil {
		unit, err := domaininv.ParseUnit(*in.Unit)
		if err != nil {
			return nil, err
		}
		product.Unit = unit
	}
	if in.MinStockLevel != nil {
		if in.MinStockLevel.IsNegative() {
			return nil, domain.ErrInvalidQuantity
		}
		thresholdUnit := domaininv.UnitGrams
		if in.Unit != nil && product.Unit == domaininv.UnitKilograms {
			thresholdUnit = domaininv.UnitKilograms
		}
		product.MinStockLevel = domaininv.ToGrams(*in.MinStockLevel, thresholdUnit)
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := inventory.ToProductResponse(product)
	return &out, nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:       strings.TrimSpace(in.Search),
		Category:     strings.TrimSpace(in.Category),
		LowStockOnly: in.LowStock,
		Active:       in.Active,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, inventory.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete desactiva el producto; sus movimientos se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Deactivate(ctx, id)
}
