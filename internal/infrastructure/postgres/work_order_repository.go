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

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación de WorkOrderRepository (usable con pool o tx).
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const workOrderColumns = `id, work_order_number, description, assigned_technician, status, created_by, created_at, updated_at, completed_at`

// Create persiste la cabecera de la orden de trabajo.
func (r *WorkOrderRepo) Create(order *entity.WorkOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO work_orders (id, work_order_number, description, assigned_technician, status, created_by, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.Description, order.AssignedTechnician,
		string(order.Status), order.CreatedBy, order.CreatedAt, order.UpdatedAt, order.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de consumo planificado.
func (r *WorkOrderRepo) CreateItem(item *entity.WorkOrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO work_order_items (id, work_order_id, item_id, quantity_used)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.WorkOrderID, item.ItemID, item.QuantityUsed,
	)
	if err != nil {
		return fmt.Errorf("insert work order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una orden por ID.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	var wo entity.WorkOrder
	var status string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&wo.ID, &wo.Number, &wo.Description, &wo.AssignedTechnician, &status,
		&wo.CreatedBy, &wo.CreatedAt, &wo.UpdatedAt, &wo.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	wo.Status = entity.WorkOrderStatus(status)
	return &wo, nil
}

// GetItemsByOrderID obtiene las líneas de una orden.
func (r *WorkOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.WorkOrderItem, error) {
	query := `
		SELECT id, work_order_id, item_id, quantity_used
		FROM work_order_items WHERE work_order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get work order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkOrderItem
	for rows.Next() {
		var item entity.WorkOrderItem
		if err := rows.Scan(&item.ID, &item.WorkOrderID, &item.ItemID, &item.QuantityUsed); err != nil {
			return nil, fmt.Errorf("scan work order item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la orden; completed_at solo al pasar a COMPLETED.
func (r *WorkOrderRepo) UpdateStatus(id string, status entity.WorkOrderStatus, completedAt *time.Time, updatedAt time.Time) error {
	query := `
		UPDATE work_orders
		SET status = $2, completed_at = COALESCE($3, completed_at), updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, string(status), completedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("update work order status: %w", err)
	}
	return nil
}

// List lista órdenes con paginación, más recientes primero.
func (r *WorkOrderRepo) List(limit, offset int) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkOrder
	for rows.Next() {
		var wo entity.WorkOrder
		var status string
		if err := rows.Scan(&wo.ID, &wo.Number, &wo.Description, &wo.AssignedTechnician, &status,
			&wo.CreatedBy, &wo.CreatedAt, &wo.UpdatedAt, &wo.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		wo.Status = entity.WorkOrderStatus(status)
		list = append(list, &wo)
	}
	return list, rows.Err()
}
