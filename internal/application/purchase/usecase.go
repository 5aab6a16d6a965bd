package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// PurchaseOrderUseCase crea y valora órdenes de compra. El total se calcula
// con los precios cotizados en el input (no los de catálogo) y queda
// congelado en la creación. Nunca toca current_stock: la recepción de
// mercancía contra una orden aprobada está fuera del alcance de este core.
type PurchaseOrderUseCase struct {
	txRunner     PurchaseTxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.ItemRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner PurchaseTxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.ItemRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
	}
}

// Create valida proveedor e ítems (por lote: reporta todos los IDs ausentes
// de una vez), calcula total_amount = Σ quantity × unit_price y persiste
// cabecera + líneas atómicamente en estado DRAFT.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, createdBy string, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s no encontrado", domain.ErrNotFound, in.SupplierID)
	}

	ids := make([]string, 0, len(in.Items))
	for _, line := range in.Items {
		if line.ItemID == "" || line.Quantity <= 0 || !line.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: cada línea requiere item_id, quantity > 0 y unit_price > 0", domain.ErrInvalidInput)
		}
		ids = append(ids, line.ItemID)
	}

	// Validación por lote: todos los ítems ausentes se reportan juntos.
	found, err := uc.itemRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: ítems no encontrados: %s", domain.ErrNotFound, strings.Join(missing, ", "))
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		Number:      orderNumber("PO", now),
		SupplierID:  in.SupplierID,
		Status:      entity.PurchaseOrderDraft,
		TotalAmount: decimal.Zero,
		Notes:       in.Notes,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, line := range in.Items {
		lineTotal := decimal.NewFromInt(int64(line.Quantity)).Mul(line.UnitPrice)
		order.Items = append(order.Items, entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			ItemID:          line.ItemID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			TotalPrice:      lineTotal,
		})
		order.TotalAmount = order.TotalAmount.Add(lineTotal)
	}

	err = uc.txRunner.RunPurchase(ctx, func(orderRepo repository.PurchaseOrderRepository) error {
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

// UpdateStatus cambia el estado según la tabla DRAFT→PENDING→APPROVED/REJECTED.
// Aprobar no mueve stock.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, id string, status entity.PurchaseOrderStatus) (*entity.PurchaseOrder, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, id)
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: la orden %s no puede pasar de %s a %s",
			domain.ErrInvalidState, order.Number, order.Status, status)
	}
	now := time.Now()
	if err := uc.orderRepo.UpdateStatus(order.ID, status, now); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = now
	return order, nil
}

// GetByID devuelve la orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, id)
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

// List lista órdenes con paginación; supplierID filtra si no está vacío.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if supplierID != "" {
		return uc.orderRepo.ListBySupplier(supplierID, limit, offset)
	}
	return uc.orderRepo.List(limit, offset)
}

// orderNumber genera un número único PO-<año>-<MMDD>-<sufijo>.
func orderNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%02d%02d-%s",
		prefix, now.Year(), int(now.Month()), now.Day(), uuid.New().String()[:8])
}
