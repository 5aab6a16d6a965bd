package dto

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// AdjustStockRequest body para POST /api/items/:id/adjustments.
// Quantity es magnitud para ADDITION/REMOVAL y valor firmado para CORRECTION.
type AdjustStockRequest struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// StockAdjustmentResponse registro de ajuste devuelto por la API.
type StockAdjustmentResponse struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"item_id"`
	Type           string    `json:"type"`
	QuantityChange int       `json:"quantity_change"`
	Reason         string    `json:"reason"`
	PreviousStock  int       `json:"previous_stock"`
	NewStock       int       `json:"new_stock"`
	AdjustedBy     string    `json:"adjusted_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToStockAdjustmentResponse mapea la entidad al DTO de respuesta.
func ToStockAdjustmentResponse(a *entity.StockAdjustment) *StockAdjustmentResponse {
	if a == nil {
		return nil
	}
	return &StockAdjustmentResponse{
		ID:             a.ID,
		ItemID:         a.ItemID,
		Type:           a.Type,
		QuantityChange: a.QuantityChange,
		Reason:         a.Reason,
		PreviousStock:  a.PreviousStock,
		NewStock:       a.NewStock,
		AdjustedBy:     a.AdjustedBy,
		CreatedAt:      a.CreatedAt,
	}
}
