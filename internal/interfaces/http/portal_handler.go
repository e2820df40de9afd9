package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/application/portal"
	"github.com/acervo/expedientes-api/internal/domain"
)

// PortalHandler maneja el envío de expedientes al portal externo.
type PortalHandler struct {
	uc *portal.PortalUseCase
}

// NewPortalHandler construye el handler.
func NewPortalHandler(uc *portal.PortalUseCase) *PortalHandler {
	return &PortalHandler{uc: uc}
}

// Enviar godoc
// @Summary      Enviar expedientes al portal externo
// @Description  Acepta JSON {expediente_ids} o multipart con un CSV (campo
// @Description  "archivo", números de expediente en la primera columna, latin-1 tolerado).
// @Tags         portal
// @Security     Bearer
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        body  body  dto.EnviarPortalRequest  false  "IDs de expedientes"
// @Success      200  {object}  dto.EnvioPortalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/portal/enviar [post]
func (h *PortalHandler) Enviar(c *fiber.Ctx) error {
	// Variante multipart: CSV con números de expediente.
	if fileHeader, err := c.FormFile("archivo"); err == nil {
		contenido, oerr := fileHeader.Open()
		if oerr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
		}
		defer contenido.Close()

		out, uerr := h.uc.EnviarCSV(c.UserContext(), contenido)
		if uerr != nil {
			if errors.Is(uerr, domain.ErrInvalidInput) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "CSV vacío o mal formado"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: uerr.Error()})
		}
		return c.JSON(out)
	}

	var in dto.EnviarPortalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.EnviarIDs(c.UserContext(), in.ExpedienteIDs)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expediente_ids es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
