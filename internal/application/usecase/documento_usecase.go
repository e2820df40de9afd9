package usecase

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/acervo/expedientes-api/internal/application/audit"
	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
	"github.com/acervo/expedientes-api/internal/infrastructure/filestore"
	"github.com/acervo/expedientes-api/pkg/logger"
)

// tiposPermitidos MIME types aceptados para documentos digitalizados.
var tiposPermitidos = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/tiff":      true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/xml":        true,
	"application/xml": true,
}

// TipoPermitido indica si el MIME type está en la lista blanca de subida.
func TipoPermitido(mime string) bool {
	return tiposPermitidos[mime]
}

// UploadDocumentoParams metadatos que acompañan al archivo en la subida.
type UploadDocumentoParams struct {
	ExpedienteID   string
	Nombre         string // nombre original del archivo
	Tipo           string // MIME type declarado
	FechaDocumento time.Time
	NumeroFojas    int
	Tamano         int64
}

// DocumentoUseCase adscripción de archivos digitalizados a expedientes.
// El archivo físico se escribe antes de la transacción; si la transacción
// falla el archivo huérfano se elimina.
type DocumentoUseCase struct {
	repo           repository.DocumentoRepository
	expedienteRepo repository.ExpedienteRepository
	store          *filestore.FileStore
	tx             audit.TxRunner
	maxBytes       int64
	log            *logger.Logger
}

// NewDocumentoUseCase construye el caso de uso.
func NewDocumentoUseCase(repo repository.DocumentoRepository, expedienteRepo repository.ExpedienteRepository, store *filestore.FileStore, tx audit.TxRunner, maxBytes int64, log *logger.Logger) *DocumentoUseCase {
	return &DocumentoUseCase{repo: repo, expedienteRepo: expedienteRepo, store: store, tx: tx, maxBytes: maxBytes, log: log}
}

// Upload valida tipo y tamaño, escribe el archivo en disco y persiste los
// metadatos con su fila de bitácora. El expediente destino debe existir y no
// estar dado de baja.
func (uc *DocumentoUseCase) Upload(ctx context.Context, actorID string, p UploadDocumentoParams, contenido io.Reader) (*dto.DocumentoResponse, error) {
	if p.Nombre == "" || p.ExpedienteID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !TipoPermitido(p.Tipo) {
		return nil, domain.ErrTipoArchivo
	}
	if p.Tamano > uc.maxBytes {
		return nil, domain.ErrArchivoMuyGrande
	}

	exp, err := uc.expedienteRepo.GetByID(ctx, p.ExpedienteID)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	if exp.Estado == entity.EstadoBaja {
		return nil, domain.ErrNoEditable
	}

	// LimitReader como segunda barrera: el tamaño declarado puede mentir.
	res, err := uc.store.Save(io.LimitReader(contenido, uc.maxBytes+1), p.Nombre)
	if err != nil {
		return nil, err
	}
	if res.Tamano > uc.maxBytes {
		if derr := uc.store.Delete(res.NombreArchivo); derr != nil {
			uc.log.Warn().Err(derr).Str("archivo", res.NombreArchivo).Msg("limpieza de archivo sobre límite falló")
		}
		return nil, domain.ErrArchivoMuyGrande
	}

	doc := &entity.Documento{
		ID:             uuid.New().String(),
		ExpedienteID:   p.ExpedienteID,
		Nombre:         p.Nombre,
		Tipo:           p.Tipo,
		FechaDocumento: p.FechaDocumento,
		NumeroFojas:    p.NumeroFojas,
		NombreArchivo:  res.NombreArchivo,
		Tamano:         res.Tamano,
		Checksum:       res.Checksum,
		SubidoPor:      actorID,
		CreatedAt:      time.Now(),
	}

	err = uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Documentos.Create(ctx, doc); err != nil {
			return err
		}
		return repos.Historial.Create(ctx, audit.Creacion("documentos", doc.ID, actorID))
	})
	if err != nil {
		if derr := uc.store.Delete(res.NombreArchivo); derr != nil {
			uc.log.Warn().Err(derr).Str("archivo", res.NombreArchivo).Msg("limpieza de archivo huérfano falló")
		}
		return nil, err
	}
	return toDocumentoResponse(doc), nil
}

// ListByExpediente lista los documentos de un expediente.
func (uc *DocumentoUseCase) ListByExpediente(ctx context.Context, expedienteID string) (*dto.DocumentoListResponse, error) {
	exp, err := uc.expedienteRepo.GetByID(ctx, expedienteID)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	docs, err := uc.repo.ListByExpediente(ctx, expedienteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentoResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, *toDocumentoResponse(d))
	}
	return &dto.DocumentoListResponse{Data: out}, nil
}

// Download abre el archivo físico de un documento. El llamador cierra el archivo.
func (uc *DocumentoUseCase) Download(ctx context.Context, id string) (*dto.DocumentoResponse, *os.File, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, domain.ErrNotFound
	}
	f, err := uc.store.Open(doc.NombreArchivo)
	if err != nil {
		return nil, nil, domain.ErrNotFound
	}
	return toDocumentoResponse(doc), f, nil
}

// Delete elimina metadatos (con bitácora) y después el archivo físico.
// Un archivo ya ausente en disco no es error.
func (uc *DocumentoUseCase) Delete(ctx context.Context, actorID, id string) error {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}

	err = uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Documentos.Delete(ctx, id); err != nil {
			return err
		}
		return repos.Historial.Create(ctx, audit.Eliminacion("documentos", id, actorID))
	})
	if err != nil {
		return err
	}

	if err := uc.store.Delete(doc.NombreArchivo); err != nil {
		uc.log.Warn().Err(err).Str("archivo", doc.NombreArchivo).Msg("borrado de archivo físico falló")
	}
	return nil
}

func toDocumentoResponse(d *entity.Documento) *dto.DocumentoResponse {
	return &dto.DocumentoResponse{
		ID:             d.ID,
		ExpedienteID:   d.ExpedienteID,
		Nombre:         d.Nombre,
		Tipo:           d.Tipo,
		FechaDocumento: d.FechaDocumento,
		NumeroFojas:    d.NumeroFojas,
		NombreArchivo:  d.NombreArchivo,
		Tamano:         d.Tamano,
		Checksum:       d.Checksum,
		SubidoPor:      d.SubidoPor,
		CreatedAt:      d.CreatedAt,
	}
}
