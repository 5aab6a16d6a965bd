package entity

import "time"

// Tipos de ajuste de stock.
const (
	AdjustmentTypeAddition   = "ADDITION"   // entrada: suma |cantidad|
	AdjustmentTypeRemoval    = "REMOVAL"    // salida: resta |cantidad|
	AdjustmentTypeCorrection = "CORRECTION" // corrección: aplica la cantidad con su signo
)

// ValidAdjustmentType verifica que el tipo sea uno de los soportados.
func ValidAdjustmentType(t string) bool {
	return t == AdjustmentTypeAddition || t == AdjustmentTypeRemoval || t == AdjustmentTypeCorrection
}

// StockAdjustment es el registro inmutable de auditoría de un movimiento de stock.
// Append-only: nunca se actualiza ni se borra. Invariante:
// NewStock = PreviousStock + QuantityChange, con NewStock >= 0.
type StockAdjustment struct {
	ID             string
	ItemID         string
	Type           string // ADDITION, REMOVAL, CORRECTION
	QuantityChange int    // valor firmado y normalizado (no el input crudo)
	Reason         string // obligatorio, no vacío
	PreviousStock  int
	NewStock       int
	AdjustedBy     string // UserID del actor
	CreatedAt      time.Time
}
