package repository

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateItem(item *entity.PurchaseOrderItem) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetItemsByOrderID(orderID string) ([]*entity.PurchaseOrderItem, error)
	UpdateStatus(id string, status entity.PurchaseOrderStatus, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
