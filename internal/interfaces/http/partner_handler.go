package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// PartnerHandler ABM de clientes y proveedores.
type PartnerHandler struct {
	base
	uc *usecase.PartnerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(api ports.InventoryAPIFactory, uc *usecase.PartnerUseCase, log *logger.Logger) *PartnerHandler {
	return &PartnerHandler{base: base{api: api, log: log}, uc: uc}
}

// ── Clientes ──

func (h *PartnerHandler) ListCustomers(c *fiber.Ctx) error {
	items, err := h.conn(c).ListCustomers(c.UserContext())
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, "customers/list", fiber.Map{"Title": "Clientes", "Items": items})
}

func (h *PartnerHandler) NewCustomer(c *fiber.Ctx) error {
	return h.render(c, "customers/form", fiber.Map{"Title": "Nuevo cliente", "Action": "/customers"})
}

func (h *PartnerHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	if _, err := h.uc.CreateCustomer(c.UserContext(), h.conn(c), in); err != nil {
		if errs := fieldErrors(err); errs != nil {
			c.Status(fiber.StatusUnprocessableEntity)
			return h.render(c, "customers/form", fiber.Map{"Title": "Nuevo cliente", "Action": "/customers", "Form": in, "Errors": errs})
		}
		return h.fail(c, err, "/customers/new")
	}
	return h.success(c, "Cliente creado.", "/customers")
}

func (h *PartnerHandler) EditCustomer(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	cu, err := h.conn(c).GetCustomer(c.UserContext(), id)
	if err != nil {
		return h.pageError(c, err)
	}
	form := dto.CustomerInput{Name: cu.Name, Email: cu.Email, Phone: cu.Phone, Address: cu.Address}
	return h.render(c, "customers/form", fiber.Map{"Title": "Editar cliente", "Action": fmt.Sprintf("/customers/%d", id), "Form": form})
}

func (h *PartnerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	if err := h.uc.UpdateCustomer(c.UserContext(), h.conn(c), id, in); err != nil {
		if errs := fieldErrors(err); errs != nil {
			c.Status(fiber.StatusUnprocessableEntity)
			return h.render(c, "customers/form", fiber.Map{"Title": "Editar cliente", "Action": fmt.Sprintf("/customers/%d", id), "Form": in, "Errors": errs})
		}
		return h.fail(c, err, fmt.Sprintf("/customers/%d/edit", id))
	}
	return h.success(c, "Cliente actualizado.", "/customers")
}

func (h *PartnerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.conn(c).DeleteCustomer(c.UserContext(), id); err != nil {
		return h.fail(c, err, "/customers")
	}
	return h.success(c, "Cliente eliminado.", "/customers")
}

// ── Proveedores ──

func (h *PartnerHandler) ListSuppliers(c *fiber.Ctx) error {
	items, err := h.conn(c).ListSuppliers(c.UserContext())
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, "suppliers/list", fiber.Map{"Title": "Proveedores", "Items": items})
}

func (h *PartnerHandler) NewSupplier(c *fiber.Ctx) error {
	return h.render(c, "suppliers/form", fiber.Map{"Title": "Nuevo proveedor", "Action": "/suppliers"})
}

func (h *PartnerHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	if _, err := h.uc.CreateSupplier(c.UserContext(), h.conn(c), in); err != nil {
		if errs := fieldErrors(err); errs != nil {
			c.Status(fiber.StatusUnprocessableEntity)
			return h.render(c, "suppliers/form", fiber.Map{"Title": "Nuevo proveedor", "Action": "/suppliers", "Form": in, "Errors": errs})
		}
		return h.fail(c, err, "/suppliers/new")
	}
	return h.success(c, "Proveedor creado.", "/suppliers")
}

func (h *PartnerHandler) EditSupplier(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	s, err := h.conn(c).GetSupplier(c.UserContext(), id)
	if err != nil {
		return h.pageError(c, err)
	}
	form := dto.SupplierInput{Name: s.Name, ContactPerson: s.ContactPerson, Email: s.Email, Phone: s.Phone, Address: s.Address}
	return h.render(c, "suppliers/form", fiber.Map{"Title": "Editar proveedor", "Action": fmt.Sprintf("/suppliers/%d", id), "Form": form})
}

func (h *PartnerHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	if err := h.uc.UpdateSupplier(c.UserContext(), h.conn(c), id, in); err != nil {
		if errs := fieldErrors(err); errs != nil {
			c.Status(fiber.StatusUnprocessableEntity)
			return h.render(c, "suppliers/form", fiber.Map{"Title": "Editar proveedor", "Action": fmt.Sprintf("/suppliers/%d", id), "Form": in, "Errors": errs})
		}
		return h.fail(c, err, fmt.Sprintf("/suppliers/%d/edit", id))
	}
	return h.success(c, "Proveedor actualizado.", "/suppliers")
}

func (h *PartnerHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.conn(c).DeleteSupplier(c.UserContext(), id); err != nil {
		return h.fail(c, err, "/suppliers")
	}
	return h.success(c, "Proveedor eliminado.", "/suppliers")
}
