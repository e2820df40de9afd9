package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

var _ repository.ConfiguracionRepository = (*ConfiguracionRepo)(nil)

// ConfiguracionRepo configuración clave-valor sobre PostgreSQL (usable con pool o tx).
type ConfiguracionRepo struct {
	q Querier
}

// NewConfiguracionRepository construye el adaptador de configuración.
func NewConfiguracionRepository(q Querier) *ConfiguracionRepo {
	return &ConfiguracionRepo{q: q}
}

// List devuelve todas las entradas de configuración ordenadas por clave.
func (r *ConfiguracionRepo) List(ctx context.Context) ([]*entity.ConfiguracionSistema, error) {
	query := `SELECT id, clave, valor, tipo, descripcion, editable, updated_at
		FROM configuracion_sistema ORDER BY clave`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list configuracion: %w", err)
	}
	defer rows.Close()
	var list []*entity.ConfiguracionSistema
	for rows.Next() {
		var c entity.ConfiguracionSistema
		if err := rows.Scan(&c.ID, &c.Clave, &c.Valor, &c.Tipo, &c.Descripcion, &c.Editable, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan configuracion: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// GetByClave obtiene una entrada. Devuelve (nil, nil) si no existe.
func (r *ConfiguracionRepo) GetByClave(ctx context.Context, clave string) (*entity.ConfiguracionSistema, error) {
	query := `SELECT id, clave, valor, tipo, descripcion, editable, updated_at
		FROM configuracion_sistema WHERE clave = $1`
	var c entity.ConfiguracionSistema
	err := r.q.QueryRow(ctx, query, clave).Scan(&c.ID, &c.Clave, &c.Valor, &c.Tipo, &c.Descripcion, &c.Editable, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get configuracion: %w", err)
	}
	return &c, nil
}

// UpdateValor actualiza el valor de una clave.
func (r *ConfiguracionRepo) UpdateValor(ctx context.Context, clave, valor string) error {
	query := `UPDATE configuracion_sistema SET valor = $2, updated_at = NOW() WHERE clave = $1`
	if _, err := r.q.Exec(ctx, query, clave, valor); err != nil {
		return fmt.Errorf("update configuracion: %w", err)
	}
	return nil
}
