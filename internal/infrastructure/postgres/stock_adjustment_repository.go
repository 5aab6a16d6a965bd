package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación del libro de ajustes sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: los registros son inmutables.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste un registro de ajuste.
func (r *StockAdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_adjustments (id, item_id, adjustment_type, quantity_change, reason, previous_stock, new_stock, adjusted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.ItemID, adjustment.Type, adjustment.QuantityChange,
		adjustment.Reason, adjustment.PreviousStock, adjustment.NewStock,
		adjustment.AdjustedBy, adjustment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *StockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	query := `
		SELECT id, item_id, adjustment_type, quantity_change, reason, previous_stock, new_stock, adjusted_by, created_at
		FROM stock_adjustments WHERE id = $1`
	var a entity.StockAdjustment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ItemID, &a.Type, &a.QuantityChange, &a.Reason,
		&a.PreviousStock, &a.NewStock, &a.AdjustedBy, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock adjustment: %w", err)
	}
	return &a, nil
}

// ListByItem lista los ajustes de un ítem, más recientes primero.
func (r *StockAdjustmentRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT id, item_id, adjustment_type, quantity_change, reason, previous_stock, new_stock, adjusted_by, created_at
		FROM stock_adjustments WHERE item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.ItemID, &a.Type, &a.QuantityChange, &a.Reason,
			&a.PreviousStock, &a.NewStock, &a.AdjustedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
