package dto

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CreateSupplierRequest body para POST /api/suppliers.
// bank_account y tax_id viajan como strings opacos (el cifrado es externo).
type CreateSupplierRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
}

// SupplierResponse proveedor devuelto por la API.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	BankAccount string    `json:"bank_account,omitempty"`
	TaxID       string    `json:"tax_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSupplierResponse mapea la entidad al DTO de respuesta.
func ToSupplierResponse(s *entity.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}
	return &SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		BankAccount: s.BankAccount,
		TaxID:       s.TaxID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
