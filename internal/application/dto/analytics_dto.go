package dto

import "github.com/shopspring/decimal"

// LowStockItemDTO ítem en o por debajo de su stock mínimo.
type LowStockItemDTO struct {
	ItemID       string `json:"item_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
	Health       string `json:"health"` // CRITICAL o WARNING
}

// InventorySummaryDTO resumen del estado del inventario.
type InventorySummaryDTO struct {
	LowStockItems     []LowStockItemDTO `json:"low_stock_items"`
	TotalStockValue   decimal.Decimal   `json:"total_stock_value"`
	AdjustmentsByType map[string]int    `json:"adjustments_by_type"`
}
