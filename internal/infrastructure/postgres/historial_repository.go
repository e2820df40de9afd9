package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

var _ repository.HistorialRepository = (*HistorialRepo)(nil)

const historialCols = `id, tabla, registro_id, usuario_id, tipo_cambio, campo,
	valor_anterior, valor_nuevo, created_at`

// HistorialRepo bitácora de auditoría sobre PostgreSQL (usable con pool o tx).
// Dentro de una transacción de mutación, un fallo aquí revierte la mutación completa.
type HistorialRepo struct {
	q Querier
}

// NewHistorialRepository construye el adaptador de la bitácora.
func NewHistorialRepository(q Querier) *HistorialRepo {
	return &HistorialRepo{q: q}
}

// Create inserta una fila de auditoría.
func (r *HistorialRepo) Create(ctx context.Context, h *entity.HistorialCambio) error {
	query := `
		INSERT INTO historial_cambios (` + historialCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.Tabla, h.RegistroID, h.UsuarioID, h.TipoCambio, h.Campo,
		h.ValorAnterior, h.ValorNuevo, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert historial: %w", err)
	}
	return nil
}

// List devuelve la página de auditoría que satisface el filtro y el total de filas.
func (r *HistorialRepo) List(ctx context.Context, f repository.HistorialFiltro, limit, offset int) ([]*entity.HistorialCambio, int, error) {
	var b WhereBuilder
	if f.Tabla != "" {
		b.Agregar("tabla = ?", f.Tabla)
	}
	if f.RegistroID != "" {
		b.Agregar("registro_id = ?", f.RegistroID)
	}
	if f.UsuarioID != "" {
		b.Agregar("usuario_id = ?", f.UsuarioID)
	}
	if f.TipoCambio != "" {
		b.Agregar("tipo_cambio = ?", f.TipoCambio)
	}
	if f.FechaInicio != nil {
		b.Agregar("created_at >= ?", *f.FechaInicio)
	}
	if f.FechaFin != nil {
		b.Agregar("created_at <= ?", *f.FechaFin)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM historial_cambios` + b.Clause()
	if err := r.q.QueryRow(ctx, countQuery, b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count historial: %w", err)
	}

	query := `SELECT ` + historialCols + ` FROM historial_cambios` + b.Clause() +
		` ORDER BY created_at DESC, id DESC LIMIT ` + b.NextPos(1) + ` OFFSET ` + b.NextPos(2)
	rows, err := r.q.Query(ctx, query, b.ArgsCon(limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list historial: %w", err)
	}
	defer rows.Close()

	var list []*entity.HistorialCambio
	for rows.Next() {
		var h entity.HistorialCambio
		if err := rows.Scan(&h.ID, &h.Tabla, &h.RegistroID, &h.UsuarioID, &h.TipoCambio, &h.Campo,
			&h.ValorAnterior, &h.ValorNuevo, &h.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan historial: %w", err)
		}
		list = append(list, &h)
	}
	return list, total, rows.Err()
}

// DeleteOlderThan elimina filas anteriores a la fecha dada (depuración por retención).
func (r *HistorialRepo) DeleteOlderThan(ctx context.Context, antesDe time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM historial_cambios WHERE created_at < $1`, antesDe)
	if err != nil {
		return 0, fmt.Errorf("depurar historial: %w", err)
	}
	return tag.RowsAffected(), nil
}
