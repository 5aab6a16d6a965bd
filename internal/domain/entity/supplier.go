package entity

import "time"

// Supplier representa un proveedor.
// BankAccount y TaxID se tratan como strings opacos: el cifrado en reposo es
// responsabilidad del módulo de crypto externo, no de este dominio.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	BankAccount string // opaco
	TaxID       string // opaco
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
