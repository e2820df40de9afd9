package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/application/reporte"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

// ReporteHandler maneja las exportaciones del archivo.
type ReporteHandler struct {
	uc *reporte.ReporteUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reporte.ReporteUseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// Excel godoc
// @Summary      Exportar expedientes a Excel
// @Tags         reportes
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        area_id       query  string  false  "Filtrar por área"
// @Param        serie_id      query  string  false  "Filtrar por serie"
// @Param        estado        query  string  false  "Filtrar por estado"
// @Param        fecha_inicio  query  string  false  "Apertura desde (2006-01-02)"
// @Param        fecha_fin     query  string  false  "Apertura hasta (2006-01-02)"
// @Param        busqueda      query  string  false  "Substring sobre número, nombre y asunto"
// @Success      200
// @Router       /api/reportes/excel [get]
func (h *ReporteHandler) Excel(c *fiber.Ctx) error {
	return h.exportar(c, reporte.FormatoExcel)
}

// PDF godoc
// @Summary      Exportar expedientes a PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/reportes/pdf [get]
func (h *ReporteHandler) PDF(c *fiber.Ctx) error {
	return h.exportar(c, reporte.FormatoPDF)
}

// XML godoc
// @Summary      Exportar expedientes a XML
// @Tags         reportes
// @Security     Bearer
// @Produce      application/xml
// @Success      200
// @Router       /api/reportes/xml [get]
func (h *ReporteHandler) XML(c *fiber.Ctx) error {
	return h.exportar(c, reporte.FormatoXML)
}

// InventarioGeneral godoc
// @Summary      Inventario general del archivo agrupado por área (PDF)
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/reportes/inventario-general [get]
func (h *ReporteHandler) InventarioGeneral(c *fiber.Ctx) error {
	archivo, err := h.uc.InventarioGeneral(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return enviarArchivo(c, archivo)
}

func (h *ReporteHandler) exportar(c *fiber.Ctx, formato string) error {
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

	archivo, err := h.uc.Exportar(c.UserContext(), formato, f)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de reporte no soportado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return enviarArchivo(c, archivo)
}

func enviarArchivo(c *fiber.Ctx, a *reporte.Archivo) error {
	c.Set(fiber.HeaderContentType, a.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", a.Nombre))
	return c.Send(a.Contenido)
}
