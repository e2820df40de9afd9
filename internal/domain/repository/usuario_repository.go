package repository

import (
	"context"

	"github.com/acervo/expedientes-api/internal/domain/entity"
)

// UsuarioFiltro filtros opcionales del listado de usuarios.
// Un campo en nil/vacío significa "no filtrar por esto".
type UsuarioFiltro struct {
	Busqueda string  // substring case-insensitive sobre nombre y email
	Rol      string
	Activo   *bool
	AreaID   string
}

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	// GetByEmail busca por email en minúsculas. Devuelve (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	Update(ctx context.Context, u *entity.Usuario) error
	List(ctx context.Context, f UsuarioFiltro, limit, offset int) ([]*entity.Usuario, int, error)
}
