package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/application/usecase"
	"github.com/acervo/expedientes-api/internal/domain"
)

// ConfiguracionHandler maneja la configuración del sistema (admin).
type ConfiguracionHandler struct {
	uc *usecase.ConfiguracionUseCase
}

// NewConfiguracionHandler construye el handler.
func NewConfiguracionHandler(uc *usecase.ConfiguracionUseCase) *ConfiguracionHandler {
	return &ConfiguracionHandler{uc: uc}
}

// List godoc
// @Summary      Listar configuración del sistema
// @Tags         configuracion
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConfiguracionResponse
// @Router       /api/configuracion [get]
func (h *ConfiguracionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar una clave de configuración
// @Tags         configuracion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        clave  path  string  true  "Clave de configuración"
// @Param        body   body  dto.UpdateConfiguracionRequest  true  "Nuevo valor"
// @Success      200  {object}  dto.ConfiguracionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/configuracion/{clave} [put]
func (h *ConfiguracionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateConfiguracionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("clave"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "clave no encontrada"})
		case errors.Is(err, domain.ErrNoEditable):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_EDITABLE", Message: "la clave no es editable"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el valor no es válido para el tipo de la clave"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
