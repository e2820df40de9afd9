package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/application/usecase"
	"github.com/acervo/expedientes-api/internal/domain"
)

// CatalogoHandler maneja el cuadro de clasificación archivística.
type CatalogoHandler struct {
	uc *usecase.CatalogoUseCase
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(uc *usecase.CatalogoUseCase) *CatalogoHandler {
	return &CatalogoHandler{uc: uc}
}

// ListAreas godoc
// @Summary      Listar áreas
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NodoResponse
// @Router       /api/catalogo/areas [get]
func (h *CatalogoHandler) ListAreas(c *fiber.Ctx) error {
	out, err := h.uc.ListAreas(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListFondos godoc
// @Summary      Listar fondos
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NodoResponse
// @Router       /api/catalogo/fondos [get]
func (h *CatalogoHandler) ListFondos(c *fiber.Ctx) error {
	out, err := h.uc.ListFondos(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListSecciones godoc
// @Summary      Listar secciones de un fondo
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        fondo_id  query  string  true  "ID del fondo"
// @Success      200  {array}  dto.NodoResponse
// @Router       /api/catalogo/secciones [get]
func (h *CatalogoHandler) ListSecciones(c *fiber.Ctx) error {
	fondoID := c.Query("fondo_id")
	if fondoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fondo_id es requerido"})
	}
	out, err := h.uc.ListSecciones(c.UserContext(), fondoID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListSeries godoc
// @Summary      Listar series de una sección
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        seccion_id  query  string  true  "ID de la sección"
// @Success      200  {array}  dto.NodoResponse
// @Router       /api/catalogo/series [get]
func (h *CatalogoHandler) ListSeries(c *fiber.Ctx) error {
	seccionID := c.Query("seccion_id")
	if seccionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "seccion_id es requerido"})
	}
	out, err := h.uc.ListSeries(c.UserContext(), seccionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListSubseries godoc
// @Summary      Listar subseries de una serie
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        serie_id  query  string  true  "ID de la serie"
// @Success      200  {array}  dto.NodoResponse
// @Router       /api/catalogo/subseries [get]
func (h *CatalogoHandler) ListSubseries(c *fiber.Ctx) error {
	serieID := c.Query("serie_id")
	if serieID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "serie_id es requerido"})
	}
	out, err := h.uc.ListSubseries(c.UserContext(), serieID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Completo godoc
// @Summary      Árbol completo del catálogo (fondos anidados + áreas)
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CatalogoCompletoResponse
// @Router       /api/catalogo/completo [get]
func (h *CatalogoHandler) Completo(c *fiber.Ctx) error {
	out, err := h.uc.Completo(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Buscar godoc
// @Summary      Buscar nodos en cualquier nivel del catálogo
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  true  "Substring sobre código y nombre"
// @Success      200  {array}  dto.NodoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalogo/buscar [get]
func (h *CatalogoHandler) Buscar(c *fiber.Ctx) error {
	out, err := h.uc.Buscar(c.UserContext(), c.Query("q"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "q es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateNodo godoc
// @Summary      Crear nodo del catálogo (admin)
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        nivel  path  string  true  "area | fondo | seccion | serie | subserie"
// @Param        body   body  dto.CreateNodoRequest  true  "Datos del nodo"
// @Success      201  {object}  dto.NodoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/catalogo/{nivel} [post]
func (h *CatalogoHandler) CreateNodo(c *fiber.Ctx) error {
	var in dto.CreateNodoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateNodo(c.UserContext(), GetUserID(c), c.Params("nivel"), in)
	if err != nil {
		if errors.Is(err, domain.ErrCodigoDuplicado) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código ya existe en este nivel"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nivel, código, nombre o padre inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateNodo godoc
// @Summary      Actualizar nodo del catálogo (admin)
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        nivel  path  string  true  "area | fondo | seccion | serie | subserie"
// @Param        id     path  string  true  "ID del nodo"
// @Param        body   body  dto.UpdateNodoRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.NodoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/catalogo/{nivel}/{id} [put]
func (h *CatalogoHandler) UpdateNodo(c *fiber.Ctx) error {
	var in dto.UpdateNodoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateNodo(c.UserContext(), GetUserID(c), c.Params("nivel"), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nodo no encontrado"})
		case errors.Is(err, domain.ErrCodigoDuplicado):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código ya existe en este nivel"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nivel inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteNodo godoc
// @Summary      Dar de baja un nodo del catálogo (admin)
// @Tags         catalogo
// @Security     Bearer
// @Param        nivel  path  string  true  "area | fondo | seccion | serie | subserie"
// @Param        id     path  string  true  "ID del nodo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogo/{nivel}/{id} [delete]
func (h *CatalogoHandler) DeleteNodo(c *fiber.Ctx) error {
	err := h.uc.DeleteNodo(c.UserContext(), GetUserID(c), c.Params("nivel"), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nodo no encontrado"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nivel inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
