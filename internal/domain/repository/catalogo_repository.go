package repository

import (
	"context"

	"github.com/acervo/expedientes-api/internal/domain/entity"
)

// CatalogoNodo nodo genérico del cuadro de clasificación, usado por el árbol
// completo y por la búsqueda transversal.
type CatalogoNodo struct {
	ID       string
	Nivel    string // area, fondo, seccion, serie, subserie
	Codigo   string
	Nombre   string
	PadreID  *string
	Orden    int
	Activo   bool
}

// CatalogoRepository acceso al cuadro de clasificación archivística.
// Los listados devuelven solo registros activos, ordenados por orden y código.
type CatalogoRepository interface {
	ListAreas(ctx context.Context) ([]*entity.Area, error)
	ListFondos(ctx context.Context) ([]*entity.Fondo, error)
	ListSecciones(ctx context.Context, fondoID string) ([]*entity.Seccion, error)
	ListSeries(ctx context.Context, seccionID string) ([]*entity.Serie, error)
	ListSubseries(ctx context.Context, serieID string) ([]*entity.Subserie, error)

	GetNodo(ctx context.Context, nivel, id string) (*CatalogoNodo, error)
	// Buscar localiza nodos de cualquier nivel cuyo código o nombre contenga q (case-insensitive).
	Buscar(ctx context.Context, q string, limit int) ([]*CatalogoNodo, error)

	CreateNodo(ctx context.Context, n *CatalogoNodo) error
	UpdateNodo(ctx context.Context, n *CatalogoNodo) error
	// SoftDeleteNodo marca el nodo como inactivo.
	SoftDeleteNodo(ctx context.Context, nivel, id string) error
}
