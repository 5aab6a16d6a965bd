package dto

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// WorkOrderLineRequest línea de consumo planificado.
type WorkOrderLineRequest struct {
	ItemID       string `json:"item_id"`
	QuantityUsed int    `json:"quantity_used"`
}

// CreateWorkOrderRequest body para POST /api/work-orders.
type CreateWorkOrderRequest struct {
	Description  string                 `json:"description"`
	TechnicianID string                 `json:"technician_id"`
	Items        []WorkOrderLineRequest `json:"items"`
}

// WorkOrderItemResponse línea de una orden de trabajo.
type WorkOrderItemResponse struct {
	ID           string `json:"id"`
	ItemID       string `json:"item_id"`
	QuantityUsed int    `json:"quantity_used"`
}

// WorkOrderResponse orden de trabajo devuelta por la API.
type WorkOrderResponse struct {
	ID                 string                  `json:"id"`
	Number             string                  `json:"work_order_number"`
	Description        string                  `json:"description"`
	AssignedTechnician string                  `json:"assigned_technician"`
	Status             string                  `json:"status"`
	CreatedBy          string                  `json:"created_by"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
	CompletedAt        *time.Time              `json:"completed_at,omitempty"`
	Items              []WorkOrderItemResponse `json:"items,omitempty"`
}

// ToWorkOrderResponse mapea la entidad al DTO de respuesta.
func ToWorkOrderResponse(wo *entity.WorkOrder) *WorkOrderResponse {
	if wo == nil {
		return nil
	}
	resp := &WorkOrderResponse{
		ID:                 wo.ID,
		Number:             wo.Number,
		Description:        wo.Description,
		AssignedTechnician: wo.AssignedTechnician,
		Status:             string(wo.Status),
		CreatedBy:          wo.CreatedBy,
		CreatedAt:          wo.CreatedAt,
		UpdatedAt:          wo.UpdatedAt,
		CompletedAt:        wo.CompletedAt,
	}
	for _, line := range wo.Items {
		resp.Items = append(resp.Items, WorkOrderItemResponse{
			ID:           line.ID,
			ItemID:       line.ItemID,
			QuantityUsed: line.QuantityUsed,
		})
	}
	return resp
}
