package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
)

// PartnerUseCase validación de clientes y proveedores antes de enviarlos a la API.
type PartnerUseCase struct{}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase() *PartnerUseCase {
	return &PartnerUseCase{}
}

func validatePartner(name, email string) error {
	fe := formErrors{}
	if name == "" {
		fe.add("name", "El nombre es obligatorio")
	}
	// email opcional, pero si viene debe ser válido
	if email != "" && !validEmail(email) {
		fe.add("email", "Ingresá un email válido")
	}
	return fe.err()
}

// ValidateCustomer recorta espacios y valida.
func ValidateCustomer(in dto.CustomerInput) (dto.CustomerInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	return in, validatePartner(in.Name, in.Email)
}

// ValidateSupplier recorta espacios y valida.
func ValidateSupplier(in dto.SupplierInput) (dto.SupplierInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ContactPerson = strings.TrimSpace(in.ContactPerson)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	return in, validatePartner(in.Name, in.Email)
}

func (uc *PartnerUseCase) CreateCustomer(ctx context.Context, api ports.PartnerAPI, in dto.CustomerInput) (*entity.Customer, error) {
	in, err := ValidateCustomer(in)
	if err != nil {
		return nil, err
	}
	return api.CreateCustomer(ctx, in)
}

func (uc *PartnerUseCase) UpdateCustomer(ctx context.Context, api ports.PartnerAPI, id int64, in dto.CustomerInput) error {
	in, err := ValidateCustomer(in)
	if err != nil {
		return err
	}
	return api.UpdateCustomer(ctx, id, in)
}

func (uc *PartnerUseCase) CreateSupplier(ctx context.Context, api ports.PartnerAPI, in dto.SupplierInput) (*entity.Supplier, error) {
	in, err := ValidateSupplier(in)
	if err != nil {
		return nil, err
	}
	return api.CreateSupplier(ctx, in)
}

func (uc *PartnerUseCase) UpdateSupplier(ctx context.Context, api ports.PartnerAPI, id int64, in dto.SupplierInput) error {
	in, err := ValidateSupplier(in)
	if err != nil {
		return err
	}
	return api.UpdateSupplier(ctx, id, in)
}
