package repository

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// WorkOrderRepository define el puerto de persistencia para órdenes de trabajo.
type WorkOrderRepository interface {
	Create(order *entity.WorkOrder) error
	CreateItem(item *entity.WorkOrderItem) error
	GetByID(id string) (*entity.WorkOrder, error)
	GetItemsByOrderID(orderID string) ([]*entity.WorkOrderItem, error)
	// UpdateStatus cambia el estado; completedAt solo se envía al pasar a COMPLETED.
	UpdateStatus(id string, status entity.WorkOrderStatus, completedAt *time.Time, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.WorkOrder, error)
}
