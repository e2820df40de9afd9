package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

var _ repository.CatalogoRepository = (*CatalogoRepo)(nil)

// tablaPorNivel mapea el nivel del catálogo a su tabla y columna padre.
// La clave del mapa es el único origen del nombre de tabla: nunca se arma
// un nombre de tabla con texto del usuario.
var tablaPorNivel = map[string]struct {
	tabla string
	padre string // columna FK al nivel superior; vacío en area y fondo
}{
	entity.NivelArea:     {tabla: "areas"},
	entity.NivelFondo:    {tabla: "fondos"},
	entity.NivelSeccion:  {tabla: "secciones", padre: "fondo_id"},
	entity.NivelSerie:    {tabla: "series", padre: "seccion_id"},
	entity.NivelSubserie: {tabla: "subseries", padre: "serie_id"},
}

// CatalogoRepo acceso al cuadro de clasificación sobre PostgreSQL (usable con pool o tx).
type CatalogoRepo struct {
	q Querier
}

// NewCatalogoRepository construye el adaptador del catálogo.
func NewCatalogoRepository(q Querier) *CatalogoRepo {
	return &CatalogoRepo{q: q}
}

// ListAreas lista las áreas activas ordenadas.
func (r *CatalogoRepo) ListAreas(ctx context.Context) ([]*entity.Area, error) {
	query := `SELECT id, codigo, nombre, orden, activo, created_at, updated_at
		FROM areas WHERE activo ORDER BY orden, codigo`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Area
	for rows.Next() {
		var a entity.Area
		if err := rows.Scan(&a.ID, &a.Codigo, &a.Nombre, &a.Orden, &a.Activo, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ListFondos lista los fondos activos ordenados.
func (r *CatalogoRepo) ListFondos(ctx context.Context) ([]*entity.Fondo, error) {
	query := `SELECT id, codigo, nombre, orden, activo, created_at, updated_at
		FROM fondos WHERE activo ORDER BY orden, codigo`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list fondos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Fondo
	for rows.Next() {
		var f entity.Fondo
		if err := rows.Scan(&f.ID, &f.Codigo, &f.Nombre, &f.Orden, &f.Activo, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fondo: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// ListSecciones lista secciones activas, opcionalmente de un fondo.
func (r *CatalogoRepo) ListSecciones(ctx context.Context, fondoID string) ([]*entity.Seccion, error) {
	var b WhereBuilder
	b.Agregar("activo = ?", true)
	if fondoID != "" {
		b.Agregar("fondo_id = ?", fondoID)
	}
	query := `SELECT id, fondo_id, codigo, nombre, orden, activo, created_at, updated_at
		FROM secciones` + b.Clause() + ` ORDER BY orden, codigo`
	rows, err := r.q.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list secciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Seccion
	for rows.Next() {
		var s entity.Seccion
		if err := rows.Scan(&s.ID, &s.FondoID, &s.Codigo, &s.Nombre, &s.Orden, &s.Activo, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan seccion: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListSeries lista series activas, opcionalmente de una sección.
func (r *CatalogoRepo) ListSeries(ctx context.Context, seccionID string) ([]*entity.Serie, error) {
	var b WhereBuilder
	b.Agregar("activo = ?", true)
	if seccionID != "" {
		b.Agregar("seccion_id = ?", seccionID)
	}
	query := `SELECT id, seccion_id, codigo, nombre, orden, activo, created_at, updated_at
		FROM series` + b.Clause() + ` ORDER BY orden, codigo`
	rows, err := r.q.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()
	var list []*entity.Serie
	for rows.Next() {
		var s entity.Serie
		if err := rows.Scan(&s.ID, &s.SeccionID, &s.Codigo, &s.Nombre, &s.Orden, &s.Activo, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan serie: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListSubseries lista subseries activas, opcionalmente de una serie.
func (r *CatalogoRepo) ListSubseries(ctx context.Context, serieID string) ([]*entity.Subserie, error) {
	var b WhereBuilder
	b.Agregar("activo = ?", true)
	if serieID != "" {
		b.Agregar("serie_id = ?", serieID)
	}
	query := `SELECT id, serie_id, codigo, nombre, orden, activo, created_at, updated_at
		FROM subseries` + b.Clause() + ` ORDER BY orden, codigo`
	rows, err := r.q.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list subseries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subserie
	for rows.Next() {
		var s entity.Subserie
		if err := rows.Scan(&s.ID, &s.SerieID, &s.Codigo, &s.Nombre, &s.Orden, &s.Activo, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subserie: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetNodo recupera un nodo de cualquier nivel. Devuelve (nil, nil) si no existe.
func (r *CatalogoRepo) GetNodo(ctx context.Context, nivel, id string) (*repository.CatalogoNodo, error) {
	meta, ok := tablaPorNivel[nivel]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	padreCol := "NULL"
	if meta.padre != "" {
		padreCol = meta.padre
	}
	query := fmt.Sprintf(`SELECT id, codigo, nombre, %s, orden, activo FROM %s WHERE id = $1`,
		padreCol, meta.tabla)
	var n repository.CatalogoNodo
	n.Nivel = nivel
	err := r.q.QueryRow(ctx, query, id).Scan(&n.ID, &n.Codigo, &n.Nombre, &n.PadreID, &n.Orden, &n.Activo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nodo %s: %w", nivel, err)
	}
	return &n, nil
}

// Buscar localiza nodos de cualquier nivel por código o nombre (case-insensitive).
func (r *CatalogoRepo) Buscar(ctx context.Context, q string, limit int) ([]*repository.CatalogoNodo, error) {
	// UNION sobre los cinco niveles; cada rama etiqueta su nivel.
	query := `
		SELECT id, 'area' AS nivel, codigo, nombre, NULL::uuid AS padre_id, orden, activo FROM areas
			WHERE activo AND (codigo ILIKE $1 OR nombre ILIKE $1)
		UNION ALL
		SELECT id, 'fondo', codigo, nombre, NULL, orden, activo FROM fondos
			WHERE activo AND (codigo ILIKE $1 OR nombre ILIKE $1)
		UNION ALL
		SELECT id, 'seccion', codigo, nombre, fondo_id, orden, activo FROM secciones
			WHERE activo AND (codigo ILIKE $1 OR nombre ILIKE $1)
		UNION ALL
		SELECT id, 'serie', codigo, nombre, seccion_id, orden, activo FROM series
			WHERE activo AND (codigo ILIKE $1 OR nombre ILIKE $1)
		UNION ALL
		SELECT id, 'subserie', codigo, nombre, serie_id, orden, activo FROM subseries
			WHERE activo AND (codigo ILIKE $1 OR nombre ILIKE $1)
		ORDER BY nivel, codigo
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, "%"+q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("buscar catalogo: %w", err)
	}
	defer rows.Close()
	var list []*repository.CatalogoNodo
	for rows.Next() {
		var n repository.CatalogoNodo
		if err := rows.Scan(&n.ID, &n.Nivel, &n.Codigo, &n.Nombre, &n.PadreID, &n.Orden, &n.Activo); err != nil {
			return nil, fmt.Errorf("scan nodo: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CreateNodo inserta un nodo en la tabla de su nivel.
func (r *CatalogoRepo) CreateNodo(ctx context.Context, n *repository.CatalogoNodo) error {
	meta, ok := tablaPorNivel[n.Nivel]
	if !ok {
		return domain.ErrInvalidInput
	}
	var query string
	var args []any
	if meta.padre == "" {
		query = fmt.Sprintf(`INSERT INTO %s (id, codigo, nombre, orden, activo, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`, meta.tabla)
		args = []any{n.ID, n.Codigo, n.Nombre, n.Orden, n.Activo}
	} else {
		query = fmt.Sprintf(`INSERT INTO %s (id, %s, codigo, nombre, orden, activo, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`, meta.tabla, meta.padre)
		args = []any{n.ID, n.PadreID, n.Codigo, n.Nombre, n.Orden, n.Activo}
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodigoDuplicado
		}
		return fmt.Errorf("insert nodo %s: %w", n.Nivel, err)
	}
	return nil
}

// UpdateNodo actualiza código, nombre y orden de un nodo.
func (r *CatalogoRepo) UpdateNodo(ctx context.Context, n *repository.CatalogoNodo) error {
	meta, ok := tablaPorNivel[n.Nivel]
	if !ok {
		return domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`UPDATE %s SET codigo = $2, nombre = $3, orden = $4, updated_at = NOW()
		WHERE id = $1`, meta.tabla)
	if _, err := r.q.Exec(ctx, query, n.ID, n.Codigo, n.Nombre, n.Orden); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodigoDuplicado
		}
		return fmt.Errorf("update nodo %s: %w", n.Nivel, err)
	}
	return nil
}

// SoftDeleteNodo marca el nodo como inactivo.
func (r *CatalogoRepo) SoftDeleteNodo(ctx context.Context, nivel, id string) error {
	meta, ok := tablaPorNivel[nivel]
	if !ok {
		return domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`UPDATE %s SET activo = FALSE, updated_at = NOW() WHERE id = $1`, meta.tabla)
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("soft delete nodo %s: %w", nivel, err)
	}
	return nil
}
