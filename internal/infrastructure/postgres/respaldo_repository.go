package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

var _ repository.RespaldoRepository = (*RespaldoRepo)(nil)

const respaldoCols = `id, nombre_archivo, tipo, estado, tamano, mensaje_error,
	creado_por, created_at, completed_at`

// RespaldoRepo registros de respaldos sobre PostgreSQL.
type RespaldoRepo struct {
	q Querier
}

// NewRespaldoRepository construye el adaptador de respaldos.
func NewRespaldoRepository(q Querier) *RespaldoRepo {
	return &RespaldoRepo{q: q}
}

// Create inserta un registro de respaldo (nace en_proceso).
func (r *RespaldoRepo) Create(ctx context.Context, b *entity.Respaldo) error {
	query := `
		INSERT INTO respaldos (` + respaldoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.NombreArchivo, b.Tipo, b.Estado, b.Tamano, b.MensajeError,
		b.CreadoPor, b.CreatedAt, b.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert respaldo: %w", err)
	}
	return nil
}

// GetByID obtiene un respaldo. Devuelve (nil, nil) si no existe.
func (r *RespaldoRepo) GetByID(ctx context.Context, id string) (*entity.Respaldo, error) {
	query := `SELECT ` + respaldoCols + ` FROM respaldos WHERE id = $1`
	var b entity.Respaldo
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.NombreArchivo, &b.Tipo, &b.Estado, &b.Tamano, &b.MensajeError,
		&b.CreadoPor, &b.CreatedAt, &b.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get respaldo: %w", err)
	}
	return &b, nil
}

// List devuelve la página de respaldos más recientes primero y el total.
func (r *RespaldoRepo) List(ctx context.Context, limit, offset int) ([]*entity.Respaldo, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM respaldos`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count respaldos: %w", err)
	}
	query := `SELECT ` + respaldoCols + ` FROM respaldos
		ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list respaldos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Respaldo
	for rows.Next() {
		var b entity.Respaldo
		if err := rows.Scan(&b.ID, &b.NombreArchivo, &b.Tipo, &b.Estado, &b.Tamano, &b.MensajeError,
			&b.CreadoPor, &b.CreatedAt, &b.CompletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan respaldo: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

// MarcarResultado actualiza estado, tamaño, error y fecha de término.
func (r *RespaldoRepo) MarcarResultado(ctx context.Context, b *entity.Respaldo) error {
	query := `UPDATE respaldos SET estado = $2, tamano = $3, mensaje_error = $4, completed_at = $5
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, b.ID, b.Estado, b.Tamano, b.MensajeError, b.CompletedAt); err != nil {
		return fmt.Errorf("marcar respaldo: %w", err)
	}
	return nil
}

// Delete elimina el registro (el archivo físico lo borra el use case).
func (r *RespaldoRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM respaldos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete respaldo: %w", err)
	}
	return nil
}
