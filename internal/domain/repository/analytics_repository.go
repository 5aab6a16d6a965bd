package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// AnalyticsRepository consultas de solo lectura para reportes de inventario.
// No participa en transacciones: consume el estado que mantiene el core.
type AnalyticsRepository interface {
	// LowStockItems devuelve los ítems con current_stock <= minimum_stock.
	LowStockItems(ctx context.Context, limit int) ([]*entity.Item, error)
	// TotalStockValue devuelve la suma de current_stock × unit_price del catálogo.
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
	// CountAdjustmentsByType agrupa el total de ajustes registrados por tipo.
	CountAdjustmentsByType(ctx context.Context) (map[string]int, error)
}
