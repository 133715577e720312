package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/session"
)

// Locals keys que cargan los middlewares.
const (
	LocalSession   = "session"
	LocalRequestID = "requestid"
)

// SessionFrom devuelve la sesión abierta por SessionMiddleware.
func SessionFrom(c *fiber.Ctx) *session.Store {
	s, _ := c.Locals(LocalSession).(*session.Store)
	return s
}

// RequestID id del request (middleware requestid de fiber).
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalRequestID).(string)
	return id
}

// apiFor cliente de la API ligado a la sesión del request.
func apiFor(c *fiber.Ctx, f ports.InventoryAPIFactory) ports.InventoryAPI {
	if s := SessionFrom(c); s != nil {
		return f.For(s)
	}
	return f.For(nil)
}
