package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	InitialStock int             `json:"initial_stock"`
	MinimumStock int             `json:"minimum_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// UpdateItemRequest body para PUT /api/items/:id.
// No incluye stock: current_stock solo cambia vía ajustes.
type UpdateItemRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	MinimumStock int             `json:"minimum_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// ItemResponse ítem devuelto por la API.
type ItemResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CurrentStock int             `json:"current_stock"`
	MinimumStock int             `json:"minimum_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Health       string          `json:"health"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToItemResponse mapea la entidad al DTO de respuesta.
func ToItemResponse(i *entity.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID:           i.ID,
		SKU:          i.SKU,
		Name:         i.Name,
		Description:  i.Description,
		CurrentStock: i.CurrentStock,
		MinimumStock: i.MinimumStock,
		UnitPrice:    i.UnitPrice,
		Health:       i.Health(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
