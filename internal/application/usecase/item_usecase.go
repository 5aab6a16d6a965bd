package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ItemUseCase gestión del catálogo de ítems. Una vez creado el ítem, su
// current_stock solo cambia por el registrador de ajustes: Update no lo toca.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// Create da de alta un ítem del catálogo. Devuelve ErrDuplicate si el SKU ya existe.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*entity.Item, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock < 0 || in.MinimumStock < 0 {
		return nil, fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: unit_price debe ser mayor que cero", domain.ErrInvalidInput)
	}
	now := time.Now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		CurrentStock: in.InitialStock,
		MinimumStock: in.MinimumStock,
		UnitPrice:    in.UnitPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, id)
	}
	return item, nil
}

// List lista ítems con paginación.
func (uc *ItemUseCase) List(limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.List(limit, offset)
}

// Update actualiza los campos de catálogo. No permite modificar CurrentStock
// (se maneja vía ajustes).
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, id)
	}
	if in.MinimumStock < 0 {
		return nil, fmt.Errorf("%w: minimum_stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: unit_price debe ser mayor que cero", domain.ErrInvalidInput)
	}
	item.Name = in.Name
	item.Description = in.Description
	item.MinimumStock = in.MinimumStock
	item.UnitPrice = in.UnitPrice
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete elimina un ítem del catálogo.
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, id)
	}
	return uc.itemRepo.Delete(id)
}
