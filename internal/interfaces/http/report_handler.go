package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-web/internal/application/dto"
	"github.com/jhoicas/Inventario-web/internal/application/ports"
	"github.com/jhoicas/Inventario-web/pkg/logger"
)

// ReportHandler exportaciones Excel y reportes por email.
type ReportHandler struct {
	base
}

// NewReportHandler construye el handler.
func NewReportHandler(api ports.InventoryAPIFactory, log *logger.Logger) *ReportHandler {
	return &ReportHandler{base: base{api: api, log: log}}
}

func (h *ReportHandler) Page(c *fiber.Ctx) error {
	return h.render(c, "reports", fiber.Map{"Title": "Reportes", "Kinds": dto.ReportKinds()})
}

// Download reenvía el archivo de la API como adjunto con nombre fijo.
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	kind := dto.ReportKind(c.Params("kind"))
	filename, ok := kind.Filename()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "reporte inexistente")
	}
	data, contentType, err := h.conn(c).DownloadReport(c.UserContext(), kind)
	if err != nil {
		return h.fail(c, err, "/reports")
	}
	if contentType == "" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// Email pide a la API que envíe el reporte y muestra su mensaje.
func (h *ReportHandler) Email(c *fiber.Ctx) error {
	kind := dto.ReportKind(c.Params("kind"))
	if !kind.Emailable() {
		return fiber.NewError(fiber.StatusNotFound, "reporte no disponible por email")
	}
	msg, err := h.conn(c).EmailReport(c.UserContext(), kind)
	if err != nil {
		return h.fail(c, err, "/reports")
	}
	if msg == "" {
		msg = "El reporte de " + kind.Label() + " se está enviando por email."
	}
	return h.success(c, msg, "/reports")
}
