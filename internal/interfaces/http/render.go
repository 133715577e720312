package http

import (
	"errors"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/session"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/internal/domain"
	"github.com/jhoicas/Inventario-web/internal/domain/entity"
	"github.com/jhoicas/Inventario-web/pkg/logger"
	"github.com/jhoicas/Inventario-web/pkg/money"
)

const layout = "layouts/main"

// TemplateFuncs funciones disponibles en las plantillas.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": money.Format,
		"moneyPtr": func(d *decimal.Decimal) string {
			if d == nil {
				return "—"
			}
			return money.Format(*d)
		},
		"qty": money.Quantity,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("02/01/2006")
		},
		"datePtr": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return "—"
			}
			return t.Format("02/01/2006")
		},
		"statusLabel":  usecase.StatusLabel,
		"platformName": entity.PlatformName,
	}
}

// base lo que comparten todos los handlers de páginas.
type base struct {
	api ports.InventoryAPIFactory
	log *logger.Logger
}

// conn cliente de la API con las credenciales del request.
func (b base) conn(c *fiber.Ctx) ports.InventoryAPI {
	return apiFor(c, b.api)
}

// render agrega al modelo lo que necesita el layout (usuario, flash, ruta actual).
func (b base) render(c *fiber.Ctx, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if s := SessionFrom(c); s != nil {
		data["User"] = s.User()
		data["IsAdmin"] = s.IsAdmin()
		data["Authenticated"] = s.IsAuthenticated()
		if f, err := s.PopFlash(c.UserContext()); err != nil {
			b.log.Warn().Err(err).Msg("leer flash")
		} else if f != nil {
			data["Flash"] = f
		}
	}
	data["Path"] = c.Path()
	return c.Render(view, data, layout)
}

// flash guarda una notificación para la próxima página.
func (b base) flash(c *fiber.Ctx, kind, msg string) {
	if s := SessionFrom(c); s != nil {
		if err := s.SetFlash(c.UserContext(), kind, msg); err != nil {
			b.log.Warn().Err(err).Msg("guardar flash")
		}
	}
}

// success flash de éxito y redirección (POST/redirect/GET).
func (b base) success(c *fiber.Ctx, msg, to string) error {
	b.flash(c, session.FlashSuccess, msg)
	return c.Redirect(to, fiber.StatusSeeOther)
}

// fail maneja el error de una acción (POST): 401 va al login; el resto se notifica
// como flash y se vuelve a back.
func (b base) fail(c *fiber.Ctx, err error, back string) error {
	if errors.Is(err, domain.ErrSessionInvalid) {
		return toLogin(c)
	}
	b.logError(c, err)
	b.flash(c, session.FlashError, userMessage(err))
	return c.Redirect(back, fiber.StatusSeeOther)
}

// pageError la página no pudo cargar sus datos: se muestra un error a nivel de página.
func (b base) pageError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrSessionInvalid) {
		return toLogin(c)
	}
	b.logError(c, err)
	c.Status(statusFor(err))
	return b.render(c, "error", fiber.Map{"Title": "Error", "Message": userMessage(err)})
}

// jsonError respuesta de error de los endpoints JSON.
func (b base) jsonError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if errors.Is(err, domain.ErrSessionInvalid) {
		status = fiber.StatusUnauthorized
	}
	b.logError(c, err)
	return c.Status(status).JSON(errorJSON(errorCode(err), userMessage(err)))
}

func (b base) logError(c *fiber.Ctx, err error) {
	if expected(err) {
		b.log.Debug().Err(err).Str("path", c.Path()).Str("request_id", RequestID(c)).Msg("error de usuario")
		return
	}
	b.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Str("request_id", RequestID(c)).Msg("error de la API")
}

// idParam lee :id como entero positivo.
func idParam(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id inválido")
	}
	return int64(id), nil
}
