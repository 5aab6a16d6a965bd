package workorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// WorkOrderUseCase gestiona el ciclo de vida de las órdenes de trabajo:
// creación con pre-chequeo de stock, inicio y finalización con descuento
// transaccional de todas las líneas vía el registrador de ajustes.
type WorkOrderUseCase struct {
	txRunner  WorkOrderTxRunner
	orderRepo repository.WorkOrderRepository
	itemRepo  repository.ItemRepository
	userRepo  repository.UserRepository
	adjustUC  *stock.AdjustStockUseCase
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(
	txRunner WorkOrderTxRunner,
	orderRepo repository.WorkOrderRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	adjustUC *stock.AdjustStockUseCase,
) *WorkOrderUseCase {
	return &WorkOrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		adjustUC:  adjustUC,
	}
}

// Create valida técnico y stock de cada línea, genera el número de orden y
// persiste cabecera + líneas atómicamente en estado OPEN.
//
// El chequeo de stock es solo un pre-chequeo: no reserva cantidades. Entre la
// creación y la finalización otras operaciones pueden agotar el stock, por lo
// que Complete vuelve a validar y puede fallar legítimamente.
func (uc *WorkOrderUseCase) Create(ctx context.Context, createdBy string, in dto.CreateWorkOrderRequest) (*entity.WorkOrder, error) {
	if in.Description == "" || in.TechnicianID == "" {
		return nil, domain.ErrInvalidInput
	}

	// El técnico asignado debe existir y tener rol TECHNICIAN.
	technician, err := uc.userRepo.GetByID(in.TechnicianID)
	if err != nil {
		return nil, err
	}
	if technician == nil || technician.Role != entity.RoleTechnician {
		return nil, fmt.Errorf("%w: el usuario %s no tiene rol TECHNICIAN", domain.ErrInvalidInput, in.TechnicianID)
	}

	for _, line := range in.Items {
		if line.ItemID == "" || line.QuantityUsed <= 0 {
			return nil, fmt.Errorf("%w: quantity_used debe ser mayor que cero", domain.ErrInvalidInput)
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, line.ItemID)
		}
		if item.CurrentStock < line.QuantityUsed {
			return nil, fmt.Errorf("%w: ítem %s: disponible %d, requerido %d",
				domain.ErrInsufficientStock, item.SKU, item.CurrentStock, line.QuantityUsed)
		}
	}

	now := time.Now()
	order := &entity.WorkOrder{
		ID:                 uuid.New().String(),
		Number:             orderNumber("WO", now),
		Description:        in.Description,
		AssignedTechnician: in.TechnicianID,
		Status:             entity.WorkOrderOpen,
		CreatedBy:          createdBy,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, line := range in.Items {
		order.Items = append(order.Items, entity.WorkOrderItem{
			ID:           uuid.New().String(),
			WorkOrderID:  order.ID,
			ItemID:       line.ItemID,
			QuantityUsed: line.QuantityUsed,
		})
	}

	// Cabecera y líneas en una sola transacción.
	err = uc.txRunner.RunWorkOrder(ctx, func(
		_ repository.ItemRepository,
		_ repository.StockAdjustmentRepository,
		orderRepo repository.WorkOrderRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Items {
			if err := orderRepo.CreateItem(&order.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Start mueve la orden de OPEN a IN_PROGRESS según la tabla de transiciones.
func (uc *WorkOrderUseCase) Start(ctx context.Context, id string) (*entity.WorkOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de trabajo %s", domain.ErrNotFound, id)
	}
	if !order.Status.CanTransitionTo(entity.WorkOrderInProgress) {
		return nil, fmt.Errorf("%w: la orden %s está %s", domain.ErrInvalidState, order.Number, order.Status)
	}
	now := time.Now()
	if err := uc.orderRepo.UpdateStatus(order.ID, entity.WorkOrderInProgress, nil, now); err != nil {
		return nil, err
	}
	order.Status = entity.WorkOrderInProgress
	order.UpdatedAt = now
	return order, nil
}

// Complete finaliza la orden: exige estado IN_PROGRESS, descuenta cada línea
// vía el registrador de ajustes (REMOVAL con referencia al número de orden,
// actor = técnico asignado) y marca COMPLETED con completed_at, todo en una
// sola transacción. Si una línea no tiene stock suficiente se revierte todo:
// ningún descuento parcial y el estado queda intacto.
func (uc *WorkOrderUseCase) Complete(ctx context.Context, id string) (*entity.WorkOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de trabajo %s", domain.ErrNotFound, id)
	}
	if order.Status != entity.WorkOrderInProgress {
		return nil, fmt.Errorf("%w: la orden %s debe estar IN_PROGRESS", domain.ErrInvalidState, order.Number)
	}

	lines, err := uc.orderRepo.GetItemsByOrderID(order.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.txRunner.RunWorkOrder(ctx, func(
		itemRepo repository.ItemRepository,
		adjRepo repository.StockAdjustmentRepository,
		orderRepo repository.WorkOrderRepository,
	) error {
		// Una orden sin líneas se completa trivialmente (cero ajustes).
		for _, line := range lines {
			if _, err := uc.adjustUC.AdjustInTx(itemRepo, adjRepo, stock.AdjustInput{
				ItemID:   line.ItemID,
				Type:     entity.AdjustmentTypeRemoval,
				Quantity: line.QuantityUsed,
				Reason:   fmt.Sprintf("consumo de orden de trabajo %s", order.Number),
				ActorID:  order.AssignedTechnician,
			}, now); err != nil {
				return err
			}
		}
		return orderRepo.UpdateStatus(order.ID, entity.WorkOrderCompleted, &now, now)
	})
	if err != nil {
		return nil, err
	}

	order.Status = entity.WorkOrderCompleted
	order.CompletedAt = &now
	order.UpdatedAt = now
	for _, line := range lines {
		order.Items = append(order.Items, *line)
	}
	return order, nil
}

// GetByID devuelve la orden con sus líneas.
func (uc *WorkOrderUseCase) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de trabajo %s", domain.ErrNotFound, id)
	}
	lines, err := uc.orderRepo.GetItemsByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		order.Items = append(order.Items, *line)
	}
	return order, nil
}

// List lista órdenes con paginación.
func (uc *WorkOrderUseCase) List(ctx context.Context, limit, offset int) ([]*entity.WorkOrder, error) {
	return uc.orderRepo.List(limit, offset)
}

// orderNumber genera un número único WO-<año>-<MMDD>-<sufijo>.
// El formato es cosmético; la unicidad la garantiza el sufijo aleatorio más
// el constraint único en BD.
func orderNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%02d%02d-%s",
		prefix, now.Year(), int(now.Month()), now.Day(), uuid.New().String()[:8])
}
