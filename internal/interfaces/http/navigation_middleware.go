package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/order"
)

// Páginas del constructor; cualquier otra página descarta los borradores.
const (
	salesBuilderPath    = "/sales-orders/new"
	purchaseBuilderPath = "/purchase-orders/new"
)

// DiscardDraftsOnNavigation descarta los borradores del navegador cuando pide (GET) una
// página fuera del constructor. Los POST del propio constructor no pasan por acá.
func DiscardDraftsOnNavigation(drafts *order.Drafts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet || !isPageNavigation(c.Path()) {
			return c.Next()
		}
		s := SessionFrom(c)
		if s == nil {
			return c.Next()
		}
		drafts.DiscardAll(s.Scope(), builderKind(c.Path()))
		return c.Next()
	}
}

func builderKind(path string) order.Kind {
	switch {
	case strings.HasPrefix(path, salesBuilderPath):
		return order.KindSales
	case strings.HasPrefix(path, purchaseBuilderPath):
		return order.KindPurchase
	}
	return ""
}

// isPageNavigation excluye recursos y endpoints JSON.
func isPageNavigation(path string) bool {
	for _, p := range []string{"/static", "/health", "/session", "/docs", "/scanner/lookup", "/favicon.ico"} {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}
