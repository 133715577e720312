package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// ProductHandler listado, alta, edición, baja, ajuste de stock y movimientos.
type ProductHandler struct {
	base
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(api ports.InventoryAPIFactory, uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{base: base{api: api, log: log}, uc: uc}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), h.conn(c), c.Query("search"))
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, "products/list", fiber.Map{"Title": "Productos", "List": list})
}

func (h *ProductHandler) New(c *fiber.Ctx) error {
	return h.render(c, "products/form", fiber.Map{"Title": "Nuevo producto", "Action": "/products"})
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	p, err := h.uc.Create(c.UserContext(), h.conn(c), in)
	if err != nil {
		if errs := fieldErrors(err); errs != nil {
			c.Status(fiber.StatusUnprocessableEntity)
			return h.render(c, "products/form", fiber.Map{"Title": "Nuevo producto", "Action": "/products", "Form": in, "Errors": errs})
		}
		return h.fail(c, err, "/products/new")
	}
	return h.success(c, fmt.Sprintf("Producto %q creado.", p.Name), "/products")
}

func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	p, err := h.conn(c).GetProduct(c.UserContext(), id)
	if err != nil {
		return h.pageError(c, err)
	}
	desc := ""
	if p.Description != nil {
		desc = *p.Description
	}
	form := dto.ProductInput{Name: p.Name, SKU: p.SKU, Description: desc, Quantity: p.Quantity}
	return h.render(c, "products/form", fiber.Map{
		"Title": "Editar producto", "Action": fmt.Sprintf("/products/%d", id), "Form": form, "Editing": true,
	})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	back := fmt.Sprintf("/products/%d/edit", id)
	if err := h.uc.Update(c.UserContext(), h.conn(c), id, in); err != nil {
		if errs := fieldErrors(err); errs != nil {
			c.Status(fiber.StatusUnprocessableEntity)
			return h.render(c, "products/form", fiber.Map{
				"Title": "Editar producto", "Action": fmt.Sprintf("/products/%d", id), "Form": in, "Errors": errs, "Editing": true,
			})
		}
		return h.fail(c, err, back)
	}
	return h.success(c, "Producto actualizado.", "/products")
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.conn(c).DeleteProduct(c.UserContext(), id); err != nil {
		return h.fail(c, err, "/products")
	}
	return h.success(c, "Producto eliminado.", "/products")
}

// Detail producto con historial de movimientos y formulario de ajuste.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Detail(c.UserContext(), h.conn(c), id)
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, "products/detail", fiber.Map{"Title": d.Product.Name, "Detail": d})
}

func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	back := fmt.Sprintf("/products/%d", id)
	if err := h.uc.AdjustStock(c.UserContext(), h.conn(c), id, in); err != nil {
		return h.fail(c, err, back)
	}
	return h.success(c, "Stock ajustado.", back)
}
