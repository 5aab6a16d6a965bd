package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, po_number, supplier_id, status, total_amount, notes, created_by, created_at, updated_at`

// Create persiste la cabecera de la orden de compra.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_orders (id, po_number, supplier_id, status, total_amount, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.SupplierID, string(order.Status),
		order.TotalAmount, nullIfEmpty(order.Notes), order.CreatedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la orden de compra.
func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_order_items (id, purchase_order_id, item_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseOrderID, item.ItemID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una orden por ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1`
	var po entity.PurchaseOrder
	var status string
	var notes *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&po.ID, &po.Number, &po.SupplierID, &status, &po.TotalAmount,
		&notes, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po.Status = entity.PurchaseOrderStatus(status)
	if notes != nil {
		po.Notes = *notes
	}
	return &po, nil
}

// GetItemsByOrderID obtiene las líneas de una orden.
func (r *PurchaseOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, purchase_order_id, item_id, quantity, unit_price, total_price
		FROM purchase_order_items WHERE purchase_order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get purchase order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		var item entity.PurchaseOrderItem
		if err := rows.Scan(&item.ID, &item.PurchaseOrderID, &item.ItemID,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(id string, status entity.PurchaseOrderStatus, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// List lista órdenes con paginación, más recientes primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListBySupplier lista las órdenes de un proveedor.
func (r *PurchaseOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE supplier_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, supplierID, limit, offset)
}

func (r *PurchaseOrderRepo) list(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		var status string
		var notes *string
		if err := rows.Scan(&po.ID, &po.Number, &po.SupplierID, &status, &po.TotalAmount,
			&notes, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		po.Status = entity.PurchaseOrderStatus(status)
		if notes != nil {
			po.Notes = *notes
		}
		list = append(list, &po)
	}
	return list, rows.Err()
}
