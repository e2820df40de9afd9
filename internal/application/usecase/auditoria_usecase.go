package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

// Clave de configuración con los días de retención de la bitácora.
const ClaveRetencionAuditoria = "auditoria_retencion_dias"

// Retención por defecto si la clave no existe o no parsea.
const retencionDefaultDias = 365

// AuditoriaUseCase consulta y depuración de la bitácora.
type AuditoriaUseCase struct {
	repo       repository.HistorialRepository
	configRepo repository.ConfiguracionRepository
}

// NewAuditoriaUseCase construye el caso de uso.
func NewAuditoriaUseCase(repo repository.HistorialRepository, configRepo repository.ConfiguracionRepository) *AuditoriaUseCase {
	return &AuditoriaUseCase{repo: repo, configRepo: configRepo}
}

// List devuelve la página de auditoría que satisface el filtro.
func (uc *AuditoriaUseCase) List(ctx context.Context, f repository.HistorialFiltro, page dto.PageRequest) (*dto.HistorialListResponse, error) {
	page.Normalizar()
	filas, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistorialResponse, 0, len(filas))
	for _, h := range filas {
		out = append(out, toHistorialResponse(h))
	}
	return &dto.HistorialListResponse{
		Data:       out,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// Depurar elimina las filas de bitácora más antiguas que la retención y
// devuelve cuántas borró. Con dias > 0 se usa ese valor; si no, la retención
// configurada (o el default). La depuración misma queda fuera de la bitácora:
// las filas que la registrarían son justo las que se están borrando.
func (uc *AuditoriaUseCase) Depurar(ctx context.Context, dias int) (*dto.DepurarResponse, error) {
	if dias <= 0 {
		dias = retencionDefaultDias
		if cfg, err := uc.configRepo.GetByClave(ctx, ClaveRetencionAuditoria); err != nil {
			return nil, err
		} else if cfg != nil {
			if v, err := strconv.Atoi(cfg.Valor); err == nil && v > 0 {
				dias = v
			}
		}
	}

	corte := time.Now().AddDate(0, 0, -dias)
	eliminados, err := uc.repo.DeleteOlderThan(ctx, corte)
	if err != nil {
		return nil, err
	}
	return &dto.DepurarResponse{Eliminados: eliminados}, nil
}

func toHistorialResponse(h *entity.HistorialCambio) dto.HistorialResponse {
	return dto.HistorialResponse{
		ID:            h.ID,
		Tabla:         h.Tabla,
		RegistroID:    h.RegistroID,
		UsuarioID:     h.UsuarioID,
		TipoCambio:    h.TipoCambio,
		Campo:         h.Campo,
		ValorAnterior: h.ValorAnterior,
		ValorNuevo:    h.ValorNuevo,
		CreatedAt:     h.CreatedAt,
	}
}
