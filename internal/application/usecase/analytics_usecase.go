package usecase

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

const lowStockLimit = 50 // máximo de ítems en la lista de alerta

// AnalyticsUseCase reportes read-only sobre el estado del inventario.
// Consume las entidades que mantiene el core; no participa en transacciones.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// GetInventorySummary arma el resumen: ítems en alerta de stock bajo
// (current_stock <= minimum_stock), valor total del inventario y conteo de
// ajustes por tipo.
func (uc *AnalyticsUseCase) GetInventorySummary(ctx context.Context) (*dto.InventorySummaryDTO, error) {
	items, err := uc.analyticsRepo.LowStockItems(ctx, lowStockLimit)
	if err != nil {
		return nil, err
	}
	totalValue, err := uc.analyticsRepo.TotalStockValue(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := uc.analyticsRepo.CountAdjustmentsByType(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.InventorySummaryDTO{
		LowStockItems:     make([]dto.LowStockItemDTO, 0, len(items)),
		TotalStockValue:   totalValue,
		AdjustmentsByType: byType,
	}
	for _, item := range items {
		summary.LowStockItems = append(summary.LowStockItems, dto.LowStockItemDTO{
			ItemID:       item.ID,
			SKU:          item.SKU,
			Name:         item.Name,
			CurrentStock: item.CurrentStock,
			MinimumStock: item.MinimumStock,
			Health:       item.Health(),
		})
	}
	return summary, nil
}
