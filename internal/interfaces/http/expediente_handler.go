package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/application/usecase"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

// ExpedienteHandler maneja las peticiones HTTP de expedientes.
type ExpedienteHandler struct {
	uc *usecase.ExpedienteUseCase
}

// NewExpedienteHandler construye el handler.
func NewExpedienteHandler(uc *usecase.ExpedienteUseCase) *ExpedienteHandler {
	return &ExpedienteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear expediente
// @Tags         expedientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpedienteRequest  true  "Datos del expediente"
// @Success      201   {object}  dto.ExpedienteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expedientes [post]
func (h *ExpedienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpedienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNumeroDuplicado) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el número de expediente ya existe"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del expediente inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar expedientes
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Param        area_id       query  string  false  "Filtrar por área"
// @Param        serie_id      query  string  false  "Filtrar por serie"
// @Param        estado        query  string  false  "activo | cerrado | transferido | baja"
// @Param        fecha_inicio  query  string  false  "Apertura desde (2006-01-02)"
// @Param        fecha_fin     query  string  false  "Apertura hasta (2006-01-02)"
// @Param        busqueda      query  string  false  "Substring sobre número, nombre y asunto"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.ExpedienteListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/expedientes [get]
func (h *ExpedienteHandler) List(c *fiber.Ctx) error {
	f := repository.ExpedienteFiltro{
		AreaID:   c.Query("area_id"),
		SerieID:  c.Query("serie_id"),
		Estado:   c.Query("estado"),
		Busqueda: c.Query("busqueda"),
	}
	if s := c.Query("fecha_inicio"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_inicio inválida, formato 2006-01-02"})
		}
		f.FechaInicio = &t
	}
	if s := c.Query("fecha_fin"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_fin inválida, formato 2006-01-02"})
		}
		f.FechaFin = &t
	}
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 20)}
	out, err := h.uc.List(c.UserContext(), f, page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener expediente por ID (incluye bajas)
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del expediente"
// @Success      200  {object}  dto.ExpedienteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expedientes/{id} [get]
func (h *ExpedienteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "expediente no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar expediente (parcial)
// @Tags         expedientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del expediente"
// @Param        body  body  dto.UpdateExpedienteRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ExpedienteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expedientes/{id} [put]
func (h *ExpedienteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpedienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "expediente no encontrado"})
		case errors.Is(err, domain.ErrNoEditable):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_EDITABLE", Message: "un expediente dado de baja no es editable"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del expediente inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja un expediente (baja lógica)
// @Tags         expedientes
// @Security     Bearer
// @Param        id  path  string  true  "ID del expediente"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expedientes/{id} [delete]
func (h *ExpedienteHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.SoftDelete(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "expediente no encontrado"})
		case errors.Is(err, domain.ErrNoEditable):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_EDITABLE", Message: "el expediente ya está dado de baja"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
