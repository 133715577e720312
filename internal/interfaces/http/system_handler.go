package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/internal/application/usecase"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// SystemHandler endpoints JSON: salud, estado de sesión y búsqueda del escáner.
type SystemHandler struct {
	base
	storageDriver string
	now           func() time.Time
}

// NewSystemHandler construye el handler.
func NewSystemHandler(api ports.InventoryAPIFactory, storageDriver string, log *logger.Logger) *SystemHandler {
	return &SystemHandler{base: base{api: api, log: log}, storageDriver: storageDriver, now: time.Now}
}

// Health godoc
// @Summary      Estado del front-end y de la API de inventario
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Storage: h.storageDriver, API: "ok"}
	if err := h.api.For(nil).Health(c.UserContext()); err != nil {
		h.log.Warn().Err(err).Msg("health: API no disponible")
		resp.Status = "degraded"
		resp.API = "unreachable"
	}
	return c.JSON(resp)
}

// Session godoc
// @Summary      Estado de la sesión del navegador
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /session [get]
func (h *SystemHandler) Session(c *fiber.Ctx) error {
	s := SessionFrom(c)
	resp := dto.SessionResponse{Authenticated: s.IsAuthenticated()}
	if u := s.User(); u != nil {
		resp.User = &dto.SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	}
	if claims := s.Claims(); claims != nil {
		if exp := claims.ExpiresAtTime(); !exp.IsZero() {
			resp.ExpiresAt = &exp
		}
		resp.Expired = claims.Expired(h.now())
	}
	return c.JSON(resp)
}

// ScannerPage página del lector de códigos.
func (h *SystemHandler) ScannerPage(c *fiber.Ctx) error {
	return h.render(c, "scanner", fiber.Map{"Title": "Escáner"})
}

// ScannerLookup godoc
// @Summary      Normaliza un código escaneado y devuelve a dónde navegar
// @Tags         scanner
// @Produce      json
// @Param        code  query  string  true  "Código leído"
// @Success      200   {object}  dto.ScannerLookupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /scanner/lookup [get]
func (h *SystemHandler) ScannerLookup(c *fiber.Ctx) error {
	resp, err := usecase.ScannerLookup(c.Query("code"))
	if err != nil {
		return h.jsonError(c, err)
	}
	return c.JSON(resp)
}
