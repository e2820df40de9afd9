package repository

import (
	"context"
	"time"

	"github.com/acervo/expedientes-api/internal/domain/entity"
)

// ExpedienteFiltro filtros opcionales del listado de expedientes.
// Si Estado está vacío se excluyen las bajas; estado="baja" las pide explícitamente.
type ExpedienteFiltro struct {
	AreaID      string
	SerieID     string
	Estado      string
	FechaInicio *time.Time // fecha_apertura >=
	FechaFin    *time.Time // fecha_apertura <=
	Busqueda    string     // substring case-insensitive sobre numero_expediente, nombre y asunto
}

// ExpedienteRepository define el puerto de persistencia para Expediente (DIP).
type ExpedienteRepository interface {
	Create(ctx context.Context, e *entity.Expediente) error
	// GetByID recupera el expediente aunque esté dado de baja. Devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Expediente, error)
	GetByNumero(ctx context.Context, numero string) (*entity.Expediente, error)
	Update(ctx context.Context, e *entity.Expediente) error
	// List devuelve la página solicitada y el total de filas que satisfacen el filtro.
	List(ctx context.Context, f ExpedienteFiltro, limit, offset int) ([]*entity.Expediente, int, error)
	// ListAll devuelve hasta max filas para reportes (sin paginar).
	ListAll(ctx context.Context, f ExpedienteFiltro, max int) ([]*entity.Expediente, error)
}
