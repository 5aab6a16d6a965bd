package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un ítem del catálogo de inventario (SKU único).
// CurrentStock es la cantidad disponible autoritativa; solo se modifica vía
// ajustes de stock (nunca por asignación directa desde el catálogo).
type Item struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	CurrentStock int             // nunca negativo
	MinimumStock int             // umbral de alerta de stock bajo
	UnitPrice    decimal.Decimal // precio de catálogo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el ítem está en o por debajo de su stock mínimo.
func (i *Item) IsLowStock() bool {
	return i.CurrentStock <= i.MinimumStock
}

// Niveles de salud de inventario para el lado de reportes.
const (
	HealthCritical = "CRITICAL" // stock agotado
	HealthWarning  = "WARNING"  // en o por debajo del mínimo
	HealthHealthy  = "HEALTHY"
)

// Health clasifica el estado del inventario del ítem.
func (i *Item) Health() string {
	switch {
	case i.CurrentStock == 0:
		return HealthCritical
	case i.CurrentStock <= i.MinimumStock:
		return HealthWarning
	default:
		return HealthHealthy
	}
}
