package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/application/usecase"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

// AuditoriaHandler maneja la consulta y depuración de la bitácora (admin).
type AuditoriaHandler struct {
	uc *usecase.AuditoriaUseCase
}

// NewAuditoriaHandler construye el handler.
func NewAuditoriaHandler(uc *usecase.AuditoriaUseCase) *AuditoriaHandler {
	return &AuditoriaHandler{uc: uc}
}

// List godoc
// @Summary      Listar bitácora de auditoría
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        tabla         query  string  false  "Tabla afectada"
// @Param        registro_id   query  string  false  "ID del registro afectado"
// @Param        usuario_id    query  string  false  "Usuario que hizo el cambio"
// @Param        tipo_cambio   query  string  false  "creacion | modificacion | eliminacion | acceso"
// @Param        fecha_inicio  query  string  false  "Desde (2006-01-02)"
// @Param        fecha_fin     query  string  false  "Hasta (2006-01-02)"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.HistorialListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/auditoria [get]
func (h *AuditoriaHandler) List(c *fiber.Ctx) error {
	f := repository.HistorialFiltro{
		Tabla:      c.Query("tabla"),
		RegistroID: c.Query("registro_id"),
		UsuarioID:  c.Query("usuario_id"),
		TipoCambio: c.Query("tipo_cambio"),
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
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Depurar godoc
// @Summary      Depurar bitácora según la retención configurada
// @Description  dias anula la retención configurada para esta corrida.
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        dias  query  int  false  "Días de retención a aplicar"
// @Success      200  {object}  dto.DepurarResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/auditoria/depurar [delete]
func (h *AuditoriaHandler) Depurar(c *fiber.Ctx) error {
	dias := c.QueryInt("dias", 0)
	if c.Query("dias") != "" && dias <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dias debe ser un entero positivo"})
	}
	out, err := h.uc.Depurar(c.UserContext(), dias)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
