// Package respaldo orquesta los respaldos de la base de datos. La ejecución de
// pg_dump es fire-and-forget: la petición registra el respaldo en_proceso y
// responde; un goroutine ejecuta el volcado y marca el resultado.
package respaldo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
	"github.com/acervo/expedientes-api/pkg/logger"
)

// Tiempo máximo de una ejecución de pg_dump.
const timeoutEjecucion = 30 * time.Minute

// Ejecutor corre el volcado de la base hacia el archivo destino.
// Lo implementa backup.PgDump.
type Ejecutor interface {
	Ejecutar(ctx context.Context, destino string) error
}

// RespaldoUseCase alta fire-and-forget, listado, descarga y borrado de respaldos.
type RespaldoUseCase struct {
	repo     repository.RespaldoRepository
	ejecutor Ejecutor
	dir      string
	log      *logger.Logger
}

// NewRespaldoUseCase construye el caso de uso y asegura el directorio destino.
func NewRespaldoUseCase(repo repository.RespaldoRepository, ejecutor Ejecutor, dir string, log *logger.Logger) (*RespaldoUseCase, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("crear directorio de respaldos %s: %w", dir, err)
	}
	return &RespaldoUseCase{repo: repo, ejecutor: ejecutor, dir: dir, log: log}, nil
}

// Crear registra un respaldo en_proceso y lanza la ejecución en segundo plano.
// La respuesta no espera al volcado.
func (uc *RespaldoUseCase) Crear(ctx context.Context, actorID, tipo string) (*dto.RespaldoResponse, error) {
	if tipo != entity.RespaldoManual && tipo != entity.RespaldoProgramado {
		return nil, domain.ErrInvalidInput
	}

	r := &entity.Respaldo{
		ID:            uuid.New().String(),
		NombreArchivo: fmt.Sprintf("respaldo-%s.sql", time.Now().Format("20060102-150405")),
		Tipo:          tipo,
		Estado:        entity.RespaldoEnProceso,
		CreadoPor:     actorID,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	// La respuesta se arma antes de lanzar el goroutine y la ejecución recibe
	// su propia copia de la fila: el 202 siempre refleja en_proceso aunque el
	// volcado termine de inmediato.
	resp := toRespaldoResponse(r)

	// Contexto propio: la ejecución sobrevive a la petición HTTP.
	go uc.ejecutar(*r)

	return resp, nil
}

// ejecutar corre pg_dump y marca el resultado sobre su copia de la fila.
// Nunca devuelve error: todo fallo queda en el registro y en el log.
func (uc *RespaldoUseCase) ejecutar(r entity.Respaldo) {
	ctx, cancel := context.WithTimeout(context.Background(), timeoutEjecucion)
	defer cancel()

	destino := filepath.Join(uc.dir, r.NombreArchivo)
	err := uc.ejecutor.Ejecutar(ctx, destino)

	now := time.Now()
	r.CompletedAt = &now
	if err != nil {
		msg := err.Error()
		r.Estado = entity.RespaldoFallido
		r.MensajeError = &msg
		os.Remove(destino)
		uc.log.Error().Err(err).Str("respaldo_id", r.ID).Msg("respaldo falló")
	} else {
		r.Estado = entity.RespaldoCompletado
		if info, serr := os.Stat(destino); serr == nil {
			r.Tamano = info.Size()
		}
		uc.log.Info().Str("respaldo_id", r.ID).Int64("tamano", r.Tamano).Msg("respaldo completado")
	}

	if merr := uc.repo.MarcarResultado(ctx, &r); merr != nil {
		uc.log.Error().Err(merr).Str("respaldo_id", r.ID).Msg("marcar resultado de respaldo falló")
	}
}

// List devuelve la página de respaldos, más reciente primero.
func (uc *RespaldoUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.RespaldoListResponse, error) {
	page.Normalizar()
	respaldos, total, err := uc.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.RespaldoResponse, 0, len(respaldos))
	for _, r := range respaldos {
		out = append(out, *toRespaldoResponse(r))
	}
	return &dto.RespaldoListResponse{
		Data:       out,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// Descargar abre el archivo de un respaldo completado. El llamador lo cierra.
func (uc *RespaldoUseCase) Descargar(ctx context.Context, id string) (*dto.RespaldoResponse, *os.File, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, domain.ErrNotFound
	}
	if r.Estado != entity.RespaldoCompletado {
		return nil, nil, domain.ErrInvalidInput
	}
	f, err := os.Open(filepath.Join(uc.dir, r.NombreArchivo))
	if err != nil {
		return nil, nil, domain.ErrNotFound
	}
	return toRespaldoResponse(r), f, nil
}

// Delete elimina el registro y el archivo físico. Archivo ausente no es error.
func (uc *RespaldoUseCase) Delete(ctx context.Context, id string) error {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(uc.dir, r.NombreArchivo)); err != nil && !os.IsNotExist(err) {
		uc.log.Warn().Err(err).Str("archivo", r.NombreArchivo).Msg("borrado de archivo de respaldo falló")
	}
	return nil
}

func toRespaldoResponse(r *entity.Respaldo) *dto.RespaldoResponse {
	return &dto.RespaldoResponse{
		ID:            r.ID,
		NombreArchivo: r.NombreArchivo,
		Tipo:          r.Tipo,
		Estado:        r.Estado,
		Tamano:        r.Tamano,
		MensajeError:  r.MensajeError,
		CreadoPor:     r.CreadoPor,
		CreatedAt:     r.CreatedAt,
		CompletedAt:   r.CompletedAt,
	}
}
