package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

const documentoCols = `id, expediente_id, nombre, tipo, fecha_documento, numero_fojas,
	nombre_archivo, tamano, checksum, subido_por, created_at`

// DocumentoRepo persistencia de metadatos de documentos sobre PostgreSQL (usable con pool o tx).
type DocumentoRepo struct {
	q Querier
}

// NewDocumentoRepository construye el adaptador de documentos.
func NewDocumentoRepository(q Querier) *DocumentoRepo {
	return &DocumentoRepo{q: q}
}

// Create persiste los metadatos de un documento.
func (r *DocumentoRepo) Create(ctx context.Context, d *entity.Documento) error {
	query := `
		INSERT INTO documentos (` + documentoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.ExpedienteID, d.Nombre, d.Tipo, d.FechaDocumento, d.NumeroFojas,
		d.NombreArchivo, d.Tamano, d.Checksum, d.SubidoPor, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert documento: %w", err)
	}
	return nil
}

// GetByID obtiene un documento. Devuelve (nil, nil) si no existe.
func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.Documento, error) {
	query := `SELECT ` + documentoCols + ` FROM documentos WHERE id = $1`
	var d entity.Documento
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.ExpedienteID, &d.Nombre, &d.Tipo, &d.FechaDocumento, &d.NumeroFojas,
		&d.NombreArchivo, &d.Tamano, &d.Checksum, &d.SubidoPor, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return &d, nil
}

// ListByExpediente lista los documentos de un expediente, más recientes primero.
func (r *DocumentoRepo) ListByExpediente(ctx context.Context, expedienteID string) ([]*entity.Documento, error) {
	query := `SELECT ` + documentoCols + ` FROM documentos
		WHERE expediente_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, expedienteID)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Documento
	for rows.Next() {
		var d entity.Documento
		if err := rows.Scan(&d.ID, &d.ExpedienteID, &d.Nombre, &d.Tipo, &d.FechaDocumento, &d.NumeroFojas,
			&d.NombreArchivo, &d.Tamano, &d.Checksum, &d.SubidoPor, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina la fila del documento (el archivo físico lo borra el use case).
func (r *DocumentoRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM documentos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete documento: %w", err)
	}
	return nil
}
