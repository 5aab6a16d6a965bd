package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// SupplierUseCase gestión de proveedores. BankAccount y TaxID son opacos
// para este dominio: el cifrado en reposo corre por cuenta del módulo externo.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// Create da de alta un proveedor.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		BankAccount: in.BankAccount,
		TaxID:       in.TaxID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(id string) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	return supplier, nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(limit, offset int) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(limit, offset)
}

// Update actualiza los datos de un proveedor.
func (uc *SupplierUseCase) Update(id string, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier.Name = in.Name
	supplier.ContactName = in.ContactName
	supplier.Email = in.Email
	supplier.Phone = in.Phone
	supplier.BankAccount = in.BankAccount
	supplier.TaxID = in.TaxID
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(id string) error {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	return uc.supplierRepo.Delete(id)
}
