package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/application/respaldo"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
)

// RespaldoHandler maneja los respaldos de la base de datos (admin).
type RespaldoHandler struct {
	uc *respaldo.RespaldoUseCase
}

// NewRespaldoHandler construye el handler.
func NewRespaldoHandler(uc *respaldo.RespaldoUseCase) *RespaldoHandler {
	return &RespaldoHandler{uc: uc}
}

// Create godoc
// @Summary      Lanzar un respaldo manual (fire-and-forget)
// @Tags         respaldos
// @Security     Bearer
// @Produce      json
// @Success      202  {object}  dto.RespaldoResponse
// @Router       /api/respaldos [post]
func (h *RespaldoHandler) Create(c *fiber.Ctx) error {
	out, err := h.uc.Crear(c.UserContext(), GetUserID(c), entity.RespaldoManual)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// List godoc
// @Summary      Listar respaldos
// @Tags         respaldos
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200  {object}  dto.RespaldoListResponse
// @Router       /api/respaldos [get]
func (h *RespaldoHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 20)}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar el archivo de un respaldo completado
// @Tags         respaldos
// @Security     Bearer
// @Produce      octet-stream
// @Param        id  path  string  true  "ID del respaldo"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/respaldos/{id}/descargar [get]
func (h *RespaldoHandler) Download(c *fiber.Ctx) error {
	r, f, err := h.uc.Descargar(c.UserContext(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "respaldo no encontrado"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el respaldo no está completado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/sql")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", r.NombreArchivo))
	return c.SendStream(f, int(r.Tamano))
}

// Delete godoc
// @Summary      Eliminar un respaldo (registro y archivo)
// @Tags         respaldos
// @Security     Bearer
// @Param        id  path  string  true  "ID del respaldo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/respaldos/{id} [delete]
func (h *RespaldoHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "respaldo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
