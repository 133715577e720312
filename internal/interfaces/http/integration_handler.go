package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/session"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// IntegrationHandler conexiones con marketplaces (Mercado Libre).
type IntegrationHandler struct {
	base
	connectURL string
	now        func() time.Time
}

// NewIntegrationHandler construye el handler. connectURL se usa si la API no entrega
// la URL de autorización.
func NewIntegrationHandler(api ports.InventoryAPIFactory, connectURL string, log *logger.Logger) *IntegrationHandler {
	return &IntegrationHandler{base: base{api: api, log: log}, connectURL: connectURL, now: time.Now}
}

// List muestra las integraciones. Si viene el resultado del callback OAuth en la query,
// se convierte en flash y se redirige a la URL limpia.
func (h *IntegrationHandler) List(c *fiber.Ctx) error {
	success, code := c.Query("success"), c.Query("error")
	if success == "true" {
		h.flash(c, session.FlashSuccess, dto.OAuthSuccessMessage)
		return c.Redirect("/integrations", fiber.StatusSeeOther)
	}
	// La API redirige con ?success=false&error=<código> ante cualquier fallo.
	if success != "" || code != "" {
		h.flash(c, session.FlashError, dto.OAuthErrorMessage(code))
		return c.Redirect("/integrations", fiber.StatusSeeOther)
	}

	items, err := h.conn(c).ListIntegrations(c.UserContext())
	if err != nil {
		return h.pageError(c, err)
	}
	now := h.now()
	for i := range items {
		items[i].IsExpired = items[i].Expired(now)
	}
	return h.render(c, "integrations", fiber.Map{"Title": "Integraciones", "Items": items})
}

// ConnectMercadoLibre manda al navegador a la página de autorización.
func (h *IntegrationHandler) ConnectMercadoLibre(c *fiber.Ctx) error {
	target, err := h.conn(c).MercadoLibreAuthURL(c.UserContext())
	if err != nil || target == "" {
		if err != nil {
			h.log.Warn().Err(err).Str("request_id", RequestID(c)).Msg("url de autorización; uso la URL fija")
		}
		target = h.connectURL
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

func (h *IntegrationHandler) Delete(c *fiber.Ctx) error {
	platform := c.Params("platform")
	if err := h.conn(c).DeleteIntegration(c.UserContext(), platform); err != nil {
		return h.fail(c, err, "/integrations")
	}
	return h.success(c, "Integración desconectada.", "/integrations")
}
