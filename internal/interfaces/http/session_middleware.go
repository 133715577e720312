package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-web/internal/application/session"
	"github.com/jhoicas/Inventario-web/internal/domain/repository"
	"github.com/jhoicas/Inventario-web/internal/infrastructure/apiclient"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// CookieConfig cookie que identifica al navegador (scope del almacenamiento durable).
type CookieConfig struct {
	Name   string
	Secure bool
}

const sessionCookieMaxAge = 30 * 24 * time.Hour

// SessionMiddleware asigna un sid al navegador si no tiene uno válido y abre la sesión
// del request sobre el almacenamiento durable. También propaga el request id hacia la API.
func SessionMiddleware(storage repository.DurableStorage, cookie CookieConfig, log *logger.Logger) fiber.Handler {
	if cookie.Name == "" {
		cookie.Name = "sid"
	}
	return func(c *fiber.Ctx) error {
		if rid := RequestID(c); rid != "" {
			c.SetUserContext(apiclient.WithRequestID(c.UserContext(), rid))
		}

		sid := c.Cookies(cookie.Name)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cookie.Name,
				Value:    sid,
				Path:     "/",
				Expires:  time.Now().Add(sessionCookieMaxAge),
				HTTPOnly: true,
				Secure:   cookie.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		store, err := session.Open(c.UserContext(), storage, sid, log)
		if err != nil {
			log.Error().Err(err).Str("request_id", RequestID(c)).Msg("abrir sesión")
			return fiber.NewError(fiber.StatusServiceUnavailable, "almacenamiento de sesión no disponible")
		}
		c.Locals(LocalSession, store)
		return c.Next()
	}
}
