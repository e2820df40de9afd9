package repository

import (
	"context"

	"github.com/acervo/expedientes-api/internal/domain/entity"
)

// DocumentoRepository persistencia de metadatos de documentos digitalizados.
type DocumentoRepository interface {
	Create(ctx context.Context, d *entity.Documento) error
	GetByID(ctx context.Context, id string) (*entity.Documento, error)
	ListByExpediente(ctx context.Context, expedienteID string) ([]*entity.Documento, error)
	Delete(ctx context.Context, id string) error
}
