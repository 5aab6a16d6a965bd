package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre el estado del inventario.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// LowStockItems devuelve los ítems con current_stock <= minimum_stock,
// agotados primero.
func (r *AnalyticsRepo) LowStockItems(ctx context.Context, limit int) ([]*entity.Item, error) {
	const query = `
		SELECT id, sku, name, description, current_stock, minimum_stock, unit_price, created_at, updated_at
		FROM items
		WHERE current_stock <= minimum_stock
		ORDER BY current_stock ASC, sku
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.LowStockItems: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		var description *string
		if err := rows.Scan(&i.ID, &i.SKU, &i.Name, &description, &i.CurrentStock,
			&i.MinimumStock, &i.UnitPrice, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("analytics.LowStockItems scan: %w", err)
		}
		if description != nil {
			i.Description = *description
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// TotalStockValue suma current_stock × unit_price sobre todo el catálogo.
func (r *AnalyticsRepo) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(current_stock * unit_price), 0) FROM items`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.TotalStockValue: %w", err)
	}
	return total, nil
}

// CountAdjustmentsByType agrupa el total de ajustes registrados por tipo.
func (r *AnalyticsRepo) CountAdjustmentsByType(ctx context.Context) (map[string]int, error) {
	const query = `
		SELECT adjustment_type, COUNT(*)
		FROM stock_adjustments
		GROUP BY adjustment_type`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountAdjustmentsByType: %w", err)
	}
	defer rows.Close()
	result := make(map[string]int)
	for rows.Next() {
		var adjType string
		var count int
		if err := rows.Scan(&adjType, &count); err != nil {
			return nil, fmt.Errorf("analytics.CountAdjustmentsByType scan: %w", err)
		}
		result[adjType] = count
	}
	return result, rows.Err()
}
