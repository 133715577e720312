package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/order"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/session"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/internal/domain"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// OrderHandler órdenes de venta y de compra: listados, detalle, PDF y constructores.
// Las acciones del constructor re-renderizan la página en vez de redirigir, porque
// volver a GET /…/new empezaría un borrador nuevo.
type OrderHandler struct {
	base
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(api ports.InventoryAPIFactory, uc *usecase.OrderUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{base: base{api: api, log: log}, uc: uc}
}

// builderError decide cómo seguir ante un error del constructor. handled=true si ya respondió.
func (h *OrderHandler) builderError(c *fiber.Ctx, err error, restart string) (handled bool, resp error) {
	switch {
	case errors.Is(err, domain.ErrSessionInvalid):
		return true, toLogin(c)
	case errors.Is(err, order.ErrNoDraft):
		h.flash(c, session.FlashInfo, userMessage(err))
		return true, c.Redirect(restart, fiber.StatusSeeOther)
	}
	h.logError(c, err)
	if errors.Is(err, domain.ErrValidation) {
		c.Status(fiber.StatusUnprocessableEntity)
	} else {
		c.Status(statusFor(err))
	}
	return false, nil
}

func (h *OrderHandler) scope(c *fiber.Ctx) string {
	return SessionFrom(c).Scope()
}

// ── Ventas ──

func (h *OrderHandler) ListSales(c *fiber.Ctx) error {
	items, err := h.conn(c).ListSalesOrders(c.UserContext())
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, "sales/list", fiber.Map{"Title": "Órdenes de venta", "Items": items})
}

func (h *OrderHandler) renderSalesBuilder(c *fiber.Ctx, v *usecase.SalesBuilderView, err error) error {
	return h.render(c, "sales/builder", fiber.Map{"Title": "Nueva orden de venta", "Builder": v, "Error": userMessage(err)})
}

// NewSales entra al constructor con un borrador nuevo.
func (h *OrderHandler) NewSales(c *fiber.Ctx) error {
	v, err := h.uc.StartSales(c.UserContext(), h.conn(c), h.scope(c))
	if err != nil {
		return h.pageError(c, err)
	}
	return h.renderSalesBuilder(c, v, nil)
}

func (h *OrderHandler) AddSalesItem(c *fiber.Ctx) error {
	var in dto.SalesItemForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	v, err := h.uc.AddSalesItem(h.scope(c), in)
	if err != nil {
		if handled, resp := h.builderError(c, err, salesBuilderPath); handled {
			return resp
		}
	}
	return h.renderSalesBuilder(c, v, err)
}

func (h *OrderHandler) RemoveSalesItem(c *fiber.Ctx) error {
	pid, err := c.ParamsInt("productId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "producto inválido")
	}
	v, err := h.uc.RemoveSalesItem(h.scope(c), int64(pid))
	if err != nil {
		_, resp := h.builderError(c, err, salesBuilderPath)
		return resp
	}
	return h.renderSalesBuilder(c, v, nil)
}

// SubmitSales crea la orden. Si falla (local o en la API) el borrador queda igual.
func (h *OrderHandler) SubmitSales(c *fiber.Ctx) error {
	var in dto.SalesItemForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	created, v, err := h.uc.SubmitSales(c.UserContext(), h.conn(c), h.scope(c), in.CustomerID)
	if err != nil {
		if handled, resp := h.builderError(c, err, salesBuilderPath); handled {
			return resp
		}
		return h.renderSalesBuilder(c, v, err)
	}
	return h.success(c, fmt.Sprintf("Orden de venta #%d creada.", created.Order.ID), "/sales-orders")
}

func (h *OrderHandler) SalesDetail(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	v, err := h.uc.SalesDetail(c.UserContext(), h.conn(c), id)
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, "orders/detail", fiber.Map{"Title": fmt.Sprintf("Orden de venta #%d", id), "Order": v, "Base": "/sales-orders"})
}

func (h *OrderHandler) SalesPDF(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	v, err := h.uc.SalesDetail(c.UserContext(), h.conn(c), id)
	if err != nil {
		return h.fail(c, err, "/sales-orders")
	}
	return h.sendPDF(c, v)
}

func (h *OrderHandler) sendPDF(c *fiber.Ctx, v *usecase.OrderView) error {
	b, name, err := h.uc.OrderPDF(v)
	if err != nil {
		return h.fail(c, err, fmt.Sprintf("/%s/%d", basePath(v.Kind), v.ID))
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(b)
}

func basePath(k order.Kind) string {
	if k == order.KindPurchase {
		return "purchase-orders"
	}
	return "sales-orders"
}

// ── Compras ──

func (h *OrderHandler) ListPurchases(c *fiber.Ctx) error {
	items, err := h.conn(c).ListPurchaseOrders(c.UserContext())
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, "purchases/list", fiber.Map{"Title": "Órdenes de compra", "Items": items})
}

func (h *OrderHandler) renderPurchaseBuilder(c *fiber.Ctx, v *usecase.PurchaseBuilderView, err error) error {
	return h.render(c, "purchases/builder", fiber.Map{"Title": "Nueva orden de compra", "Builder": v, "Error": userMessage(err)})
}

func (h *OrderHandler) NewPurchase(c *fiber.Ctx) error {
	v, err := h.uc.StartPurchase(c.UserContext(), h.conn(c), h.scope(c))
	if err != nil {
		return h.pageError(c, err)
	}
	return h.renderPurchaseBuilder(c, v, nil)
}

func (h *OrderHandler) AddPurchaseItem(c *fiber.Ctx) error {
	var in dto.PurchaseItemForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	v, err := h.uc.AddPurchaseItem(h.scope(c), in)
	if err != nil {
		if handled, resp := h.builderError(c, err, purchaseBuilderPath); handled {
			return resp
		}
	}
	return h.renderPurchaseBuilder(c, v, err)
}

func (h *OrderHandler) RemovePurchaseItem(c *fiber.Ctx) error {
	pid, err := c.ParamsInt("productId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "producto inválido")
	}
	v, err := h.uc.RemovePurchaseItem(h.scope(c), int64(pid))
	if err != nil {
		_, resp := h.builderError(c, err, purchaseBuilderPath)
		return resp
	}
	return h.renderPurchaseBuilder(c, v, nil)
}

func (h *OrderHandler) SubmitPurchase(c *fiber.Ctx) error {
	var in dto.PurchaseItemForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	created, v, err := h.uc.SubmitPurchase(c.UserContext(), h.conn(c), h.scope(c), in.SupplierID)
	if err != nil {
		if handled, resp := h.builderError(c, err, purchaseBuilderPath); handled {
			return resp
		}
		return h.renderPurchaseBuilder(c, v, err)
	}
	return h.success(c, fmt.Sprintf("Orden de compra #%d creada.", created.Order.ID), "/purchase-orders")
}

func (h *OrderHandler) PurchaseDetail(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	v, err := h.uc.PurchaseDetail(c.UserContext(), h.conn(c), id)
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, "orders/detail", fiber.Map{
		"Title": fmt.Sprintf("Orden de compra #%d", id), "Order": v, "Base": "/purchase-orders",
		"Statuses": []string{"pending", "completed", "cancelled"},
	})
}

func (h *OrderHandler) PurchasePDF(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	v, err := h.uc.PurchaseDetail(c.UserContext(), h.conn(c), id)
	if err != nil {
		return h.fail(c, err, "/purchase-orders")
	}
	return h.sendPDF(c, v)
}

func (h *OrderHandler) UpdatePurchaseStatus(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	back := fmt.Sprintf("/purchase-orders/%d", id)
	if err := h.uc.UpdatePurchaseStatus(c.UserContext(), h.conn(c), id, in.Status); err != nil {
		return h.fail(c, err, back)
	}
	status := strings.ToLower(strings.TrimSpace(in.Status))
	return h.success(c, "Estado actualizado: "+usecase.StatusLabel(status)+".", back)
}
