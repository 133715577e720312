package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/session"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// AuthHandler login, registro y logout.
type AuthHandler struct {
	base
	uc *usecase.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(api ports.InventoryAPIFactory, uc *usecase.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{base: base{api: api, log: log}, uc: uc}
}

// fieldErrors errores por campo si err es de validación del formulario.
func fieldErrors(err error) map[string]string {
	var fe *usecase.FormError
	if errors.As(err, &fe) {
		return fe.Fields
	}
	return nil
}

func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return h.render(c, "auth/login", fiber.Map{"Title": "Iniciar sesión"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	user, err := h.uc.Login(c.UserContext(), SessionFrom(c), in)
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			status = fiber.StatusUnauthorized
		} else {
			h.logError(c, err)
		}
		c.Status(status)
		return h.render(c, "auth/login", fiber.Map{
			"Title":  "Iniciar sesión",
			"Email":  in.Email,
			"Errors": fieldErrors(err),
			"Error":  userMessage(err),
		})
	}
	return h.success(c, "¡Hola, "+user.Name+"!", "/")
}

func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return h.render(c, "auth/register", fiber.Map{"Title": "Crear cuenta"})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	user, err := h.uc.Register(c.UserContext(), SessionFrom(c), in)
	switch {
	case err == nil:
		return h.success(c, "Cuenta creada. ¡Bienvenido, "+user.Name+"!", "/")
	case errors.Is(err, usecase.ErrAutoLoginFailed):
		h.flash(c, session.FlashInfo, userMessage(err))
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	errs := fieldErrors(err)
	if errors.Is(err, usecase.ErrEmailTaken) {
		errs = map[string]string{"email": err.Error()}
	} else if errs == nil {
		h.logError(c, err)
	}
	c.Status(fiber.StatusUnprocessableEntity)
	return h.render(c, "auth/register", fiber.Map{
		"Title":  "Crear cuenta",
		"Form":   in,
		"Errors": errs,
		"Error":  userMessage(err),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), SessionFrom(c)); err != nil {
		h.logError(c, err)
	}
	h.flash(c, session.FlashInfo, "Sesión cerrada.")
	return c.Redirect("/login", fiber.StatusSeeOther)
}
