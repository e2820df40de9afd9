package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/application/usecase"
	"github.com/acervo/expedientes-api/internal/domain"
)

// DocumentoHandler maneja la subida, descarga y borrado de documentos.
type DocumentoHandler struct {
	uc *usecase.DocumentoUseCase
}

// NewDocumentoHandler construye el handler.
func NewDocumentoHandler(uc *usecase.DocumentoUseCase) *DocumentoHandler {
	return &DocumentoHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir documento a un expediente
// @Tags         documentos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id               path      string  true   "ID del expediente"
// @Param        archivo          formData  file    true   "Archivo (≤10MB, tipos permitidos)"
// @Param        fecha_documento  formData  string  false  "Fecha del documento (2006-01-02)"
// @Param        numero_fojas     formData  int     false  "Número de fojas"
// @Success      201  {object}  dto.DocumentoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/uploads/expedientes/{id}/documentos [post]
func (h *DocumentoHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo archivo es requerido"})
	}

	fechaDocumento := time.Now()
	if s := c.FormValue("fecha_documento"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_documento inválida, formato 2006-01-02"})
		}
		fechaDocumento = t
	}
	numeroFojas := 0
	if s := c.FormValue("numero_fojas"); s != "" {
		if _, perr := fmt.Sscanf(s, "%d", &numeroFojas); perr != nil || numeroFojas < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numero_fojas inválido"})
		}
	}

	contenido, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer contenido.Close()

	out, err := h.uc.Upload(c.UserContext(), GetUserID(c), usecase.UploadDocumentoParams{
		ExpedienteID:   c.Params("id"),
		Nombre:         fileHeader.Filename,
		Tipo:           fileHeader.Header.Get("Content-Type"),
		FechaDocumento: fechaDocumento,
		NumeroFojas:    numeroFojas,
		Tamano:         fileHeader.Size,
	}, contenido)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTipoArchivo):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de archivo no permitido"})
		case errors.Is(err, domain.ErrArchivoMuyGrande):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el archivo excede el tamaño máximo"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "expediente no encontrado"})
		case errors.Is(err, domain.ErrNoEditable):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_EDITABLE", Message: "el expediente está dado de baja"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del documento inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByExpediente godoc
// @Summary      Listar documentos de un expediente
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del expediente"
// @Success      200  {object}  dto.DocumentoListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expedientes/{id}/documentos [get]
func (h *DocumentoHandler) ListByExpediente(c *fiber.Ctx) error {
	out, err := h.uc.ListByExpediente(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "expediente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar el archivo de un documento
// @Tags         documentos
// @Security     Bearer
// @Produce      octet-stream
// @Param        id  path  string  true  "ID del documento"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/descargar [get]
func (h *DocumentoHandler) Download(c *fiber.Ctx) error {
	doc, f, err := h.uc.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, doc.Tipo)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Nombre))
	return c.SendStream(f, int(doc.Tamano))
}

// Delete godoc
// @Summary      Eliminar documento (metadatos y archivo)
// @Tags         documentos
// @Security     Bearer
// @Param        id  path  string  true  "ID del documento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id} [delete]
func (h *DocumentoHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
