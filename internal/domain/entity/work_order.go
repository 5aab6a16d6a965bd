package entity

import "time"

// WorkOrderStatus estado del ciclo de vida de una orden de trabajo.
// Variante cerrada: solo los valores declarados abajo son válidos y las
// transiciones permitidas están en la tabla workOrderTransitions.
type WorkOrderStatus string

const (
	WorkOrderOpen       WorkOrderStatus = "OPEN"
	WorkOrderInProgress WorkOrderStatus = "IN_PROGRESS"
	WorkOrderCompleted  WorkOrderStatus = "COMPLETED"
)

// workOrderTransitions tabla explícita de transiciones válidas.
// COMPLETED es terminal. La única entrada a IN_PROGRESS es desde OPEN (Start).
var workOrderTransitions = map[WorkOrderStatus][]WorkOrderStatus{
	WorkOrderOpen:       {WorkOrderInProgress},
	WorkOrderInProgress: {WorkOrderCompleted},
	WorkOrderCompleted:  {},
}

// CanTransitionTo indica si la transición de estado es válida según la tabla.
func (s WorkOrderStatus) CanTransitionTo(to WorkOrderStatus) bool {
	for _, next := range workOrderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Valid verifica que el estado sea uno de los declarados.
func (s WorkOrderStatus) Valid() bool {
	_, ok := workOrderTransitions[s]
	return ok
}

// WorkOrder representa una orden de trabajo con su plan de consumo de ítems.
// Las líneas (Items) quedan fijas en la creación; el descuento de stock ocurre
// recién al completar, vía ajustes REMOVAL con referencia al número de orden.
type WorkOrder struct {
	ID                 string
	Number             string // WO-<año>-<MMDD>-<sufijo>, único
	Description        string
	AssignedTechnician string // UserID con rol TECHNICIAN
	Status             WorkOrderStatus
	CreatedBy          string // UserID
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CompletedAt        *time.Time // nil hasta COMPLETED; se asigna una sola vez
	Items              []WorkOrderItem
}

// WorkOrderItem línea de consumo planificado de una orden de trabajo.
type WorkOrderItem struct {
	ID           string
	WorkOrderID  string
	ItemID       string
	QuantityUsed int // > 0
}
