package http

import (
	"github.com/gofiber/fiber/v2"
)

// RequireSession deja pasar solo si la sesión tiene token. No valida firma ni vencimiento:
// si el token ya no sirve, la API responde 401 y la sesión se invalida ahí.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := SessionFrom(c)
		if s == nil || s.Token() == "" {
			if wantsJSON(c) {
				return c.Status(fiber.StatusUnauthorized).JSON(errorJSON("UNAUTHENTICATED", "iniciá sesión para continuar"))
			}
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RedirectIfAuthenticated para /login y /register: con sesión activa se va al inicio.
func RedirectIfAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s := SessionFrom(c); s != nil && s.IsAuthenticated() && c.Method() == fiber.MethodGet {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
