package repository

import (
	"context"

	"github.com/acervo/expedientes-api/internal/domain/entity"
)

// RespaldoRepository registros de ejecuciones de respaldo.
type RespaldoRepository interface {
	Create(ctx context.Context, r *entity.Respaldo) error
	GetByID(ctx context.Context, id string) (*entity.Respaldo, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Respaldo, int, error)
	// MarcarResultado actualiza estado, tamaño, error y fecha de término.
	MarcarResultado(ctx context.Context, r *entity.Respaldo) error
	Delete(ctx context.Context, id string) error
}
