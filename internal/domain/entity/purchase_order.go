package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus estado del ciclo de vida de una orden de compra.
type PurchaseOrderStatus string

const (
	PurchaseOrderDraft    PurchaseOrderStatus = "DRAFT"
	PurchaseOrderPending  PurchaseOrderStatus = "PENDING"
	PurchaseOrderApproved PurchaseOrderStatus = "APPROVED"
	PurchaseOrderRejected PurchaseOrderStatus = "REJECTED"
)

// purchaseOrderTransitions tabla explícita de transiciones válidas.
// APPROVED y REJECTED son terminales; la aprobación no mueve stock.
var purchaseOrderTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchaseOrderDraft:    {PurchaseOrderPending},
	PurchaseOrderPending:  {PurchaseOrderApproved, PurchaseOrderRejected},
	PurchaseOrderApproved: {},
	PurchaseOrderRejected: {},
}

// CanTransitionTo indica si la transición de estado es válida según la tabla.
func (s PurchaseOrderStatus) CanTransitionTo(to PurchaseOrderStatus) bool {
	for _, next := range purchaseOrderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Valid verifica que el estado sea uno de los declarados.
func (s PurchaseOrderStatus) Valid() bool {
	_, ok := purchaseOrderTransitions[s]
	return ok
}

// PurchaseOrder representa una orden de compra a un proveedor.
// TotalAmount se calcula y congela en la creación: suma de los TotalPrice de
// las líneas, con los precios cotizados en el input (no los de catálogo).
type PurchaseOrder struct {
	ID          string
	Number      string // PO-<año>-<MMDD>-<sufijo>, único
	SupplierID  string
	Status      PurchaseOrderStatus
	TotalAmount decimal.Decimal
	Notes       string
	CreatedBy   string // UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []PurchaseOrderItem
}

// PurchaseOrderItem línea de una orden de compra.
// TotalPrice = Quantity × UnitPrice, congelado en la creación.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ItemID          string
	Quantity        int // > 0
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
}
