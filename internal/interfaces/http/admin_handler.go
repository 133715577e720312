package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// AdminHandler alta de usuarios. La API exige rol admin; acá solo se oculta el enlace.
type AdminHandler struct {
	base
	uc *usecase.AuthUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(api ports.InventoryAPIFactory, uc *usecase.AuthUseCase, log *logger.Logger) *AdminHandler {
	return &AdminHandler{base: base{api: api, log: log}, uc: uc}
}

var roles = []string{entity.RoleAdmin, entity.RoleVendedor, entity.RoleRepositor}

func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	return h.render(c, "admin/users", fiber.Map{"Title": "Usuarios", "Roles": roles})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	u, err := h.uc.CreateUser(c.UserContext(), h.conn(c), in)
	if err != nil {
		if errs := fieldErrors(err); errs != nil {
			in.Password = ""
			c.Status(fiber.StatusUnprocessableEntity)
			return h.render(c, "admin/users", fiber.Map{"Title": "Usuarios", "Roles": roles, "Form": in, "Errors": errs})
		}
		return h.fail(c, err, "/admin/users")
	}
	return h.success(c, fmt.Sprintf("Usuario %s creado con rol %s.", u.Email, u.Role), "/admin/users")
}
