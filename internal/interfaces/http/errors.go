package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/order"
	"github.com/jhoicas/Inventario-web/internal/application/session"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/internal/domain"
	"github.com/jhoicas/Inventario-web/internal/infrastructure/apiclient"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

const (
	msgSessionExpired = "Tu sesión expiró. Iniciá sesión nuevamente."
	msgNetwork        = "No se pudo contactar al servidor. Revisá tu conexión e intentá de nuevo."
)

// userMessage texto que ve el usuario para un error.
func userMessage(err error) string {
	var apiErr *apiclient.APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return capitalize(apiErr.Error())
	case errors.Is(err, domain.ErrNetwork):
		return msgNetwork
	case errors.Is(err, domain.ErrSessionInvalid):
		return msgSessionExpired
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrAutoLoginFailed),
		errors.Is(err, order.ErrNoDraft):
		return capitalize(err.Error())
	}
	return capitalize(apiclient.GenericMessage)
}

// statusFor status HTTP de una página que no pudo cargarse.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNetwork):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// errorCode código estable para las respuestas JSON.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrSessionInvalid):
		return "SESSION_INVALID"
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, domain.ErrValidation):
		return "VALIDATION"
	case errors.Is(err, domain.ErrConflict):
		return "CONFLICT"
	case errors.Is(err, domain.ErrNetwork):
		return "NETWORK"
	}
	return "INTERNAL"
}

func errorJSON(code, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Code: code, Message: msg}
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) &&
		!strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}

// toLogin redirige al login salvo que el request ya sea del login.
func toLogin(c *fiber.Ctx) error {
	if s := SessionFrom(c); s != nil {
		_ = s.SetFlash(c.UserContext(), session.FlashError, msgSessionExpired)
	}
	if c.Path() == "/login" && c.Method() == fiber.MethodGet {
		return c.Status(fiber.StatusUnauthorized).SendString(msgSessionExpired)
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// expected errores que no ameritan log de error (los causa el usuario).
func expected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, usecase.ErrInvalidCredentials) ||
		errors.Is(err, usecase.ErrEmailTaken) ||
		errors.Is(err, order.ErrNoDraft)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (404 de rutas,
// ids inválidos, pánicos recuperados).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := capitalize(apiclient.GenericMessage)
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = capitalize(fe.Message)
		} else {
			log.Error().Err(err).Str("path", c.Path()).Str("request_id", RequestID(c)).Msg("error no manejado")
		}
		if wantsJSON(c) {
			return c.Status(code).JSON(errorJSON("HTTP_"+strconv.Itoa(code), msg))
		}
		c.Status(code)
		if rerr := c.Render("error", fiber.Map{"Title": "Error", "Message": msg, "Path": c.Path()}, layout); rerr != nil {
			return c.Status(code).SendString(msg)
		}
		return nil
	}
}
