package repository

import (
	"context"

	"github.com/acervo/expedientes-api/internal/domain/entity"
)

// ConfiguracionRepository acceso a la configuración clave-valor del sistema.
type ConfiguracionRepository interface {
	List(ctx context.Context) ([]*entity.ConfiguracionSistema, error)
	GetByClave(ctx context.Context, clave string) (*entity.ConfiguracionSistema, error)
	UpdateValor(ctx context.Context, clave, valor string) error
}
