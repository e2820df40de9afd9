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

var _ repository.ExpedienteRepository = (*ExpedienteRepo)(nil)

const expedienteCols = `id, numero_expediente, nombre, asunto, area_id, fondo_id, seccion_id,
	serie_id, subserie_id, fecha_apertura, fecha_cierre, numero_fojas, numero_legajos,
	valor_documental, plazo_conservacion, destino_final, estado, creado_por, actualizado_por,
	created_at, updated_at`

// ExpedienteRepo implementación del puerto ExpedienteRepository sobre PostgreSQL (usable con pool o tx).
type ExpedienteRepo struct {
	q Querier
}

// NewExpedienteRepository construye el adaptador de persistencia para expedientes.
func NewExpedienteRepository(q Querier) *ExpedienteRepo {
	return &ExpedienteRepo{q: q}
}

// Create persiste un nuevo expediente. numero_expediente es único.
func (r *ExpedienteRepo) Create(ctx context.Context, e *entity.Expediente) error {
	query := `
		INSERT INTO expedientes (` + expedienteCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.NumeroExpediente, e.Nombre, e.Asunto, e.AreaID, e.FondoID, e.SeccionID,
		e.SerieID, e.SubserieID, e.FechaApertura, e.FechaCierre, e.NumeroFojas, e.NumeroLegajos,
		e.ValorDocumental, e.PlazoConservacion, e.DestinoFinal, e.Estado, e.CreadoPor, e.ActualizadoPor,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNumeroDuplicado
		}
		return fmt.Errorf("insert expediente: %w", err)
	}
	return nil
}

// GetByID recupera el expediente aunque esté dado de baja. Devuelve (nil, nil) si no existe.
func (r *ExpedienteRepo) GetByID(ctx context.Context, id string) (*entity.Expediente, error) {
	query := `SELECT ` + expedienteCols + ` FROM expedientes WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByNumero busca por numero_expediente. Devuelve (nil, nil) si no existe.
func (r *ExpedienteRepo) GetByNumero(ctx context.Context, numero string) (*entity.Expediente, error) {
	query := `SELECT ` + expedienteCols + ` FROM expedientes WHERE numero_expediente = $1`
	return r.scanOne(ctx, query, numero)
}

func (r *ExpedienteRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Expediente, error) {
	var e entity.Expediente
	err := r.q.QueryRow(ctx, query, args...).Scan(scanDest(&e)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expediente: %w", err)
	}
	return &e, nil
}

func scanDest(e *entity.Expediente) []any {
	return []any{
		&e.ID, &e.NumeroExpediente, &e.Nombre, &e.Asunto, &e.AreaID, &e.FondoID, &e.SeccionID,
		&e.SerieID, &e.SubserieID, &e.FechaApertura, &e.FechaCierre, &e.NumeroFojas, &e.NumeroLegajos,
		&e.ValorDocumental, &e.PlazoConservacion, &e.DestinoFinal, &e.Estado, &e.CreadoPor, &e.ActualizadoPor,
		&e.CreatedAt, &e.UpdatedAt,
	}
}

// Update actualiza un expediente.
func (r *ExpedienteRepo) Update(ctx context.Context, e *entity.Expediente) error {
	query := `
		UPDATE expedientes
		SET nombre = $2, asunto = $3, area_id = $4, fondo_id = $5, seccion_id = $6, serie_id = $7,
		    subserie_id = $8, fecha_apertura = $9, fecha_cierre = $10, numero_fojas = $11,
		    numero_legajos = $12, valor_documental = $13, plazo_conservacion = $14,
		    destino_final = $15, estado = $16, actualizado_por = $17, updated_at = $18
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Nombre, e.Asunto, e.AreaID, e.FondoID, e.SeccionID, e.SerieID,
		e.SubserieID, e.FechaApertura, e.FechaCierre, e.NumeroFojas,
		e.NumeroLegajos, e.ValorDocumental, e.PlazoConservacion,
		e.DestinoFinal, e.Estado, e.ActualizadoPor, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expediente: %w", err)
	}
	return nil
}

// filtroWhere arma la cláusula WHERE compartida por List, ListAll y los reportes.
// Sin estado explícito se excluyen las bajas; estado="baja" las pide expresamente.
func filtroWhere(f repository.ExpedienteFiltro) *WhereBuilder {
	var b WhereBuilder
	if f.Estado != "" {
		b.Agregar("estado = ?", f.Estado)
	} else {
		b.Agregar("estado <> ?", entity.EstadoBaja)
	}
	if f.AreaID != "" {
		b.Agregar("area_id = ?", f.AreaID)
	}
	if f.SerieID != "" {
		b.Agregar("serie_id = ?", f.SerieID)
	}
	if f.FechaInicio != nil {
		b.Agregar("fecha_apertura >= ?", *f.FechaInicio)
	}
	if f.FechaFin != nil {
		b.Agregar("fecha_apertura <= ?", *f.FechaFin)
	}
	b.AgregarBusqueda(f.Busqueda, "numero_expediente", "nombre", "asunto")
	return &b
}

// List devuelve la página solicitada y el total de filas que satisfacen el filtro.
// Orden estable: created_at DESC con desempate por id, para que la concatenación
// de páginas no duplique ni omita filas.
func (r *ExpedienteRepo) List(ctx context.Context, f repository.ExpedienteFiltro, limit, offset int) ([]*entity.Expediente, int, error) {
	b := filtroWhere(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM expedientes` + b.Clause()
	if err := r.q.QueryRow(ctx, countQuery, b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expedientes: %w", err)
	}

	query := `SELECT ` + expedienteCols + ` FROM expedientes` + b.Clause() +
		` ORDER BY created_at DESC, id DESC LIMIT ` + b.NextPos(1) + ` OFFSET ` + b.NextPos(2)
	rows, err := r.q.Query(ctx, query, b.ArgsCon(limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expedientes: %w", err)
	}
	defer rows.Close()

	list, err := scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll devuelve hasta max filas para reportes (sin paginar).
func (r *ExpedienteRepo) ListAll(ctx context.Context, f repository.ExpedienteFiltro, max int) ([]*entity.Expediente, error) {
	b := filtroWhere(f)
	query := `SELECT ` + expedienteCols + ` FROM expedientes` + b.Clause() +
		` ORDER BY numero_expediente ASC LIMIT ` + b.NextPos(1)
	rows, err := r.q.Query(ctx, query, b.ArgsCon(max)...)
	if err != nil {
		return nil, fmt.Errorf("list expedientes reporte: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows pgx.Rows) ([]*entity.Expediente, error) {
	var list []*entity.Expediente
	for rows.Next() {
		var e entity.Expediente
		if err := rows.Scan(scanDest(&e)...); err != nil {
			return nil, fmt.Errorf("scan expediente: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
