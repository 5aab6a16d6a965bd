package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin            = "ADMIN"
	RoleWarehouseManager = "WAREHOUSE_MANAGER"
	RoleTechnician       = "TECHNICIAN"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // ADMIN, WAREHOUSE_MANAGER, TECHNICIAN
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
