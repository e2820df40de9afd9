package repository

import (
	"context"
	"time"

	"github.com/acervo/expedientes-api/internal/domain/entity"
)

// HistorialFiltro filtros del listado de auditoría.
type HistorialFiltro struct {
	Tabla       string
	RegistroID  string
	UsuarioID   string
	TipoCambio  string
	FechaInicio *time.Time
	FechaFin    *time.Time
}

// HistorialRepository bitácora de auditoría. Append-only: solo Create, List
// y la depuración por retención.
type HistorialRepository interface {
	Create(ctx context.Context, h *entity.HistorialCambio) error
	List(ctx context.Context, f HistorialFiltro, limit, offset int) ([]*entity.HistorialCambio, int, error)
	// DeleteOlderThan elimina filas anteriores a la fecha dada y devuelve cuántas borró.
	DeleteOlderThan(ctx context.Context, antesDe time.Time) (int64, error)
}
