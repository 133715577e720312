package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// DashboardHandler página principal.
type DashboardHandler struct {
	base
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(api ports.InventoryAPIFactory, uc *usecase.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{base: base{api: api, log: log}, uc: uc}
}

func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	view, err := h.uc.Load(c.UserContext(), h.conn(c))
	if err != nil {
		return h.pageError(c, err)
	}
	return h.render(c, "dashboard", fiber.Map{"Title": "Inicio", "Dashboard": view})
}
