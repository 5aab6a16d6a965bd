package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// StockAdjustmentRepository define el puerto del libro de ajustes (append-only).
// No hay Update ni Delete: los registros son inmutables.
type StockAdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	GetByID(id string) (*entity.StockAdjustment, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.StockAdjustment, error)
}
