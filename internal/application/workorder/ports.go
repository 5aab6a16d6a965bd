package workorder

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// WorkOrderTxRunner ejecuta una función dentro de una transacción de BD con
// los repositorios que necesita la finalización de órdenes: los descuentos de
// stock de todas las líneas y el cambio de estado son una sola unidad atómica.
type WorkOrderTxRunner interface {
	RunWorkOrder(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		adjRepo repository.StockAdjustmentRepository,
		orderRepo repository.WorkOrderRepository,
	) error) error
}
