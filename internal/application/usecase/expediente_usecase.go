package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/acervo/expedientes-api/internal/application/audit"
	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

const formatoFecha = "2006-01-02"

// ExpedienteUseCase ciclo de vida del expediente: alta, consulta, modificación
// parcial y baja lógica, siempre con bitácora en la misma transacción.
type ExpedienteUseCase struct {
	repo     repository.ExpedienteRepository
	catalogo repository.CatalogoRepository
	tx       audit.TxRunner
}

// NewExpedienteUseCase construye el caso de uso.
func NewExpedienteUseCase(repo repository.ExpedienteRepository, catalogo repository.CatalogoRepository, tx audit.TxRunner) *ExpedienteUseCase {
	return &ExpedienteUseCase{repo: repo, catalogo: catalogo, tx: tx}
}

// Create da de alta un expediente en estado activo. Valida que el número no
// exista, que la cadena de clasificación referencie nodos activos y que la
// fecha de apertura venga como "2006-01-02".
func (uc *ExpedienteUseCase) Create(ctx context.Context, actorID string, in dto.CreateExpedienteRequest) (*dto.ExpedienteResponse, error) {
	if in.NumeroExpediente == "" || in.Nombre == "" || in.AreaID == "" || in.SerieID == "" {
		return nil, domain.ErrInvalidInput
	}
	apertura, err := time.Parse(formatoFecha, in.FechaApertura)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.repo.GetByNumero(ctx, in.NumeroExpediente)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrNumeroDuplicado
	}

	if err := uc.validarClasificacion(ctx, in.AreaID, in.FondoID, in.SeccionID, in.SerieID, in.SubserieID); err != nil {
		return nil, err
	}

	now := time.Now()
	exp := &entity.Expediente{
		ID:                uuid.New().String(),
		NumeroExpediente:  in.NumeroExpediente,
		Nombre:            in.Nombre,
		Asunto:            in.Asunto,
		AreaID:            in.AreaID,
		FondoID:           in.FondoID,
		SeccionID:         in.SeccionID,
		SerieID:           in.SerieID,
		SubserieID:        in.SubserieID,
		FechaApertura:     apertura,
		NumeroFojas:       in.NumeroFojas,
		NumeroLegajos:     in.NumeroLegajos,
		ValorDocumental:   in.ValorDocumental,
		PlazoConservacion: in.PlazoConservacion,
		DestinoFinal:      in.DestinoFinal,
		Estado:            entity.EstadoActivo,
		CreadoPor:         actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Expedientes.Create(ctx, exp); err != nil {
			return err
		}
		return repos.Historial.Create(ctx, audit.Creacion("expedientes", exp.ID, actorID))
	})
	if err != nil {
		return nil, err
	}
	return toExpedienteResponse(exp), nil
}

// GetByID recupera un expediente, incluidos los dados de baja. (nil, nil) si no existe.
func (uc *ExpedienteUseCase) GetByID(ctx context.Context, id string) (*dto.ExpedienteResponse, error) {
	exp, err := uc.repo.GetByID(ctx, id)
	if err != nil || exp == nil {
		return nil, err
	}
	return toExpedienteResponse(exp), nil
}

// List devuelve la página de expedientes que satisface el filtro.
func (uc *ExpedienteUseCase) List(ctx context.Context, f repository.ExpedienteFiltro, page dto.PageRequest) (*dto.ExpedienteListResponse, error) {
	if f.Estado != "" && !entity.EstadoValido(f.Estado) {
		return nil, domain.ErrInvalidInput
	}
	page.Normalizar()
	exps, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpedienteResponse, 0, len(exps))
	for _, e := range exps {
		out = append(out, *toExpedienteResponse(e))
	}
	return &dto.ExpedienteListResponse{
		Data:       out,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// Update aplica un update parcial. Un expediente en baja no es editable.
// El cierre exige fecha_cierre >= fecha_apertura.
func (uc *ExpedienteUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateExpedienteRequest) (*dto.ExpedienteResponse, error) {
	exp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	if exp.Estado == entity.EstadoBaja {
		return nil, domain.ErrNoEditable
	}

	antes := expedienteCampos(exp)
	despues := map[string]string{}

	if in.Nombre != nil {
		exp.Nombre = *in.Nombre
		despues["nombre"] = exp.Nombre
	}
	if in.Asunto != nil {
		exp.Asunto = *in.Asunto
		despues["asunto"] = exp.Asunto
	}
	if in.AreaID != nil {
		exp.AreaID = *in.AreaID
		despues["area_id"] = exp.AreaID
	}
	if in.SerieID != nil {
		exp.SerieID = *in.SerieID
		despues["serie_id"] = exp.SerieID
	}
	if in.SubserieID != nil {
		exp.SubserieID = in.SubserieID
		despues["subserie_id"] = *in.SubserieID
	}
	if in.FechaCierre != nil {
		cierre, err := time.Parse(formatoFecha, *in.FechaCierre)
		if err != nil || cierre.Before(exp.FechaApertura) {
			return nil, domain.ErrInvalidInput
		}
		exp.FechaCierre = &cierre
		despues["fecha_cierre"] = *in.FechaCierre
	}
	if in.NumeroFojas != nil {
		exp.NumeroFojas = *in.NumeroFojas
		despues["numero_fojas"] = strconv.Itoa(exp.NumeroFojas)
	}
	if in.NumeroLegajos != nil {
		exp.NumeroLegajos = *in.NumeroLegajos
		despues["numero_legajos"] = strconv.Itoa(exp.NumeroLegajos)
	}
	if in.ValorDocumental != nil {
		exp.ValorDocumental = *in.ValorDocumental
		despues["valor_documental"] = exp.ValorDocumental
	}
	if in.PlazoConservacion != nil {
		exp.PlazoConservacion = *in.PlazoConservacion
		despues["plazo_conservacion"] = strconv.Itoa(exp.PlazoConservacion)
	}
	if in.DestinoFinal != nil {
		exp.DestinoFinal = *in.DestinoFinal
		despues["destino_final"] = exp.DestinoFinal
	}
	if in.Estado != nil {
		if !entity.EstadoValido(*in.Estado) {
			return nil, domain.ErrInvalidInput
		}
		exp.Estado = *in.Estado
		despues["estado"] = exp.Estado
	}

	if in.AreaID != nil || in.SerieID != nil || in.SubserieID != nil {
		if err := uc.validarClasificacion(ctx, exp.AreaID, exp.FondoID, exp.SeccionID, exp.SerieID, exp.SubserieID); err != nil {
			return nil, err
		}
	}

	exp.ActualizadoPor = &actorID
	exp.UpdatedAt = time.Now()

	err = uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Expedientes.Update(ctx, exp); err != nil {
			return err
		}
		filas := audit.Modificaciones("expedientes", exp.ID, actorID, antes, despues)
		return audit.RegistrarTodos(ctx, repos.Historial, filas)
	})
	if err != nil {
		return nil, err
	}
	return toExpedienteResponse(exp), nil
}

// SoftDelete pasa el expediente a estado baja. Idempotente sobre bajas previas no:
// dar de baja algo ya en baja devuelve ErrNoEditable.
func (uc *ExpedienteUseCase) SoftDelete(ctx context.Context, actorID, id string) error {
	exp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if exp == nil {
		return domain.ErrNotFound
	}
	if exp.Estado == entity.EstadoBaja {
		return domain.ErrNoEditable
	}
	exp.Estado = entity.EstadoBaja
	exp.ActualizadoPor = &actorID
	exp.UpdatedAt = time.Now()

	return uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Expedientes.Update(ctx, exp); err != nil {
			return err
		}
		return repos.Historial.Create(ctx, audit.Eliminacion("expedientes", exp.ID, actorID))
	})
}

// validarClasificacion verifica que cada nodo referenciado exista, esté activo
// y que la cadena sea consistente: la sección pertenece al fondo, la serie a la
// sección y la subserie (opcional) a la serie. El área es paralela al cuadro.
func (uc *ExpedienteUseCase) validarClasificacion(ctx context.Context, areaID, fondoID, seccionID, serieID string, subserieID *string) error {
	if _, err := uc.nodoActivo(ctx, entity.NivelArea, areaID); err != nil {
		return err
	}
	if _, err := uc.nodoActivo(ctx, entity.NivelFondo, fondoID); err != nil {
		return err
	}
	seccion, err := uc.nodoActivo(ctx, entity.NivelSeccion, seccionID)
	if err != nil {
		return err
	}
	if seccion.PadreID == nil || *seccion.PadreID != fondoID {
		return domain.ErrInvalidInput
	}
	serie, err := uc.nodoActivo(ctx, entity.NivelSerie, serieID)
	if err != nil {
		return err
	}
	if serie.PadreID == nil || *serie.PadreID != seccionID {
		return domain.ErrInvalidInput
	}
	if subserieID != nil && *subserieID != "" {
		subserie, err := uc.nodoActivo(ctx, entity.NivelSubserie, *subserieID)
		if err != nil {
			return err
		}
		if subserie.PadreID == nil || *subserie.PadreID != serieID {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// nodoActivo devuelve el nodo si existe y está activo; ErrInvalidInput si no.
func (uc *ExpedienteUseCase) nodoActivo(ctx context.Context, nivel, id string) (*repository.CatalogoNodo, error) {
	nodo, err := uc.catalogo.GetNodo(ctx, nivel, id)
	if err != nil {
		return nil, err
	}
	if nodo == nil || !nodo.Activo {
		return nil, domain.ErrInvalidInput
	}
	return nodo, nil
}

func expedienteCampos(e *entity.Expediente) map[string]string {
	m := map[string]string{
		"nombre":             e.Nombre,
		"asunto":             e.Asunto,
		"area_id":            e.AreaID,
		"serie_id":           e.SerieID,
		"subserie_id":        derefStr(e.SubserieID),
		"numero_fojas":       strconv.Itoa(e.NumeroFojas),
		"numero_legajos":     strconv.Itoa(e.NumeroLegajos),
		"valor_documental":   e.ValorDocumental,
		"plazo_conservacion": strconv.Itoa(e.PlazoConservacion),
		"destino_final":      e.DestinoFinal,
		"estado":             e.Estado,
	}
	if e.FechaCierre != nil {
		m["fecha_cierre"] = e.FechaCierre.Format(formatoFecha)
	}
	return m
}

func toExpedienteResponse(e *entity.Expediente) *dto.ExpedienteResponse {
	return &dto.ExpedienteResponse{
		ID:                e.ID,
		NumeroExpediente:  e.NumeroExpediente,
		Nombre:            e.Nombre,
		Asunto:            e.Asunto,
		AreaID:            e.AreaID,
		FondoID:           e.FondoID,
		SeccionID:         e.SeccionID,
		SerieID:           e.SerieID,
		SubserieID:        e.SubserieID,
		FechaApertura:     e.FechaApertura,
		FechaCierre:       e.FechaCierre,
		NumeroFojas:       e.NumeroFojas,
		NumeroLegajos:     e.NumeroLegajos,
		ValorDocumental:   e.ValorDocumental,
		PlazoConservacion: e.PlazoConservacion,
		DestinoFinal:      e.DestinoFinal,
		Estado:            e.Estado,
		CreadoPor:         e.CreadoPor,
		ActualizadoPor:    e.ActualizadoPor,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
