package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PurchaseOrderLineRequest línea de una orden de compra.
// UnitPrice es el precio cotizado, no el de catálogo.
type PurchaseOrderLineRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Notes      string                     `json:"notes,omitempty"`
	Items      []PurchaseOrderLineRequest `json:"items"`
}

// UpdatePurchaseOrderStatusRequest body para PATCH /api/purchase-orders/:id/status.
type UpdatePurchaseOrderStatusRequest struct {
	Status string `json:"status"`
}

// PurchaseOrderItemResponse línea devuelta por la API.
type PurchaseOrderItemResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PurchaseOrderResponse orden de compra devuelta por la API.
type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	Number      string                      `json:"po_number"`
	SupplierID  string                      `json:"supplier_id"`
	Status      string                      `json:"status"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	Notes       string                      `json:"notes,omitempty"`
	CreatedBy   string                      `json:"created_by"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	Items       []PurchaseOrderItemResponse `json:"items,omitempty"`
}

// ToPurchaseOrderResponse mapea la entidad al DTO de respuesta.
func ToPurchaseOrderResponse(po *entity.PurchaseOrder) *PurchaseOrderResponse {
	if po == nil {
		return nil
	}
	resp := &PurchaseOrderResponse{
		ID:          po.ID,
		Number:      po.Number,
		SupplierID:  po.SupplierID,
		Status:      string(po.Status),
		TotalAmount: po.TotalAmount,
		Notes:       po.Notes,
		CreatedBy:   po.CreatedBy,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
	for _, line := range po.Items {
		resp.Items = append(resp.Items, PurchaseOrderItemResponse{
			ID:         line.ID,
			ItemID:     line.ItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		})
	}
	return resp
}
