package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/acervo/expedientes-api/internal/application/audit"
	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

// Límite de resultados de la búsqueda transversal del catálogo.
const maxResultadosBusqueda = 50

// tablaPorNivel nombre de tabla para la bitácora de cada nivel del catálogo.
var tablaPorNivel = map[string]string{
	entity.NivelArea:     "areas",
	entity.NivelFondo:    "fondos",
	entity.NivelSeccion:  "secciones",
	entity.NivelSerie:    "series",
	entity.NivelSubserie: "subseries",
}

// CatalogoUseCase cuadro de clasificación: listados por nivel, árbol completo,
// búsqueda transversal y mantenimiento de nodos (solo admin).
type CatalogoUseCase struct {
	repo repository.CatalogoRepository
	tx   audit.TxRunner
}

// NewCatalogoUseCase construye el caso de uso.
func NewCatalogoUseCase(repo repository.CatalogoRepository, tx audit.TxRunner) *CatalogoUseCase {
	return &CatalogoUseCase{repo: repo, tx: tx}
}

// ListAreas lista las áreas activas.
func (uc *CatalogoUseCase) ListAreas(ctx context.Context) ([]dto.NodoResponse, error) {
	areas, err := uc.repo.ListAreas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NodoResponse, 0, len(areas))
	for _, a := range areas {
		out = append(out, dto.NodoResponse{ID: a.ID, Nivel: entity.NivelArea, Codigo: a.Codigo, Nombre: a.Nombre, Orden: a.Orden, Activo: a.Activo})
	}
	return out, nil
}

// ListFondos lista los fondos activos.
func (uc *CatalogoUseCase) ListFondos(ctx context.Context) ([]dto.NodoResponse, error) {
	fondos, err := uc.repo.ListFondos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NodoResponse, 0, len(fondos))
	for _, f := range fondos {
		out = append(out, dto.NodoResponse{ID: f.ID, Nivel: entity.NivelFondo, Codigo: f.Codigo, Nombre: f.Nombre, Orden: f.Orden, Activo: f.Activo})
	}
	return out, nil
}

// ListSecciones lista las secciones activas de un fondo.
func (uc *CatalogoUseCase) ListSecciones(ctx context.Context, fondoID string) ([]dto.NodoResponse, error) {
	secciones, err := uc.repo.ListSecciones(ctx, fondoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NodoResponse, 0, len(secciones))
	for _, s := range secciones {
		padre := s.FondoID
		out = append(out, dto.NodoResponse{ID: s.ID, Nivel: entity.NivelSeccion, Codigo: s.Codigo, Nombre: s.Nombre, PadreID: &padre, Orden: s.Orden, Activo: s.Activo})
	}
	return out, nil
}

// ListSeries lista las series activas de una sección.
func (uc *CatalogoUseCase) ListSeries(ctx context.Context, seccionID string) ([]dto.NodoResponse, error) {
	series, err := uc.repo.ListSeries(ctx, seccionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NodoResponse, 0, len(series))
	for _, s := range series {
		padre := s.SeccionID
		out = append(out, dto.NodoResponse{ID: s.ID, Nivel: entity.NivelSerie, Codigo: s.Codigo, Nombre: s.Nombre, PadreID: &padre, Orden: s.Orden, Activo: s.Activo})
	}
	return out, nil
}

// ListSubseries lista las subseries activas de una serie.
func (uc *CatalogoUseCase) ListSubseries(ctx context.Context, serieID string) ([]dto.NodoResponse, error) {
	subseries, err := uc.repo.ListSubseries(ctx, serieID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NodoResponse, 0, len(subseries))
	for _, s := range subseries {
		padre := s.SerieID
		out = append(out, dto.NodoResponse{ID: s.ID, Nivel: entity.NivelSubserie, Codigo: s.Codigo, Nombre: s.Nombre, PadreID: &padre, Orden: s.Orden, Activo: s.Activo})
	}
	return out, nil
}

// Completo arma el árbol Fondo → Sección → Serie → Subserie más las áreas
// planas, para poblar los selectores del cliente en una sola llamada.
func (uc *CatalogoUseCase) Completo(ctx context.Context) (*dto.CatalogoCompletoResponse, error) {
	areas, err := uc.repo.ListAreas(ctx)
	if err != nil {
		return nil, err
	}
	fondos, err := uc.repo.ListFondos(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.CatalogoCompletoResponse{
		Areas:  make([]dto.ArbolNodo, 0, len(areas)),
		Fondos: make([]dto.ArbolNodo, 0, len(fondos)),
	}
	for _, a := range areas {
		resp.Areas = append(resp.Areas, dto.ArbolNodo{ID: a.ID, Codigo: a.Codigo, Nombre: a.Nombre, Orden: a.Orden})
	}
	for _, f := range fondos {
		nodoFondo := dto.ArbolNodo{ID: f.ID, Codigo: f.Codigo, Nombre: f.Nombre, Orden: f.Orden}
		secciones, err := uc.repo.ListSecciones(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		for _, sec := range secciones {
			nodoSeccion := dto.ArbolNodo{ID: sec.ID, Codigo: sec.Codigo, Nombre: sec.Nombre, Orden: sec.Orden}
			series, err := uc.repo.ListSeries(ctx, sec.ID)
			if err != nil {
				return nil, err
			}
			for _, ser := range series {
				nodoSerie := dto.ArbolNodo{ID: ser.ID, Codigo: ser.Codigo, Nombre: ser.Nombre, Orden: ser.Orden}
				subseries, err := uc.repo.ListSubseries(ctx, ser.ID)
				if err != nil {
					return nil, err
				}
				for _, sub := range subseries {
					nodoSerie.Hijos = append(nodoSerie.Hijos, dto.ArbolNodo{ID: sub.ID, Codigo: sub.Codigo, Nombre: sub.Nombre, Orden: sub.Orden})
				}
				nodoSeccion.Hijos = append(nodoSeccion.Hijos, nodoSerie)
			}
			nodoFondo.Hijos = append(nodoFondo.Hijos, nodoSeccion)
		}
		resp.Fondos = append(resp.Fondos, nodoFondo)
	}
	return resp, nil
}

// Buscar localiza nodos de cualquier nivel por código o nombre.
func (uc *CatalogoUseCase) Buscar(ctx context.Context, q string) ([]dto.NodoResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, domain.ErrInvalidInput
	}
	nodos, err := uc.repo.Buscar(ctx, q, maxResultadosBusqueda)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NodoResponse, 0, len(nodos))
	for _, n := range nodos {
		out = append(out, toNodoResponse(n))
	}
	return out, nil
}

// CreateNodo da de alta un nodo del nivel indicado. Los niveles con padre
// (sección, serie, subserie) exigen padre_id de un nodo activo.
func (uc *CatalogoUseCase) CreateNodo(ctx context.Context, actorID, nivel string, in dto.CreateNodoRequest) (*dto.NodoResponse, error) {
	tabla, ok := tablaPorNivel[nivel]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if in.Codigo == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if nivelPadre := padreDe(nivel); nivelPadre != "" {
		if in.PadreID == nil || *in.PadreID == "" {
			return nil, domain.ErrInvalidInput
		}
		padre, err := uc.repo.GetNodo(ctx, nivelPadre, *in.PadreID)
		if err != nil {
			return nil, err
		}
		if padre == nil || !padre.Activo {
			return nil, domain.ErrInvalidInput
		}
	}

	nodo := &repository.CatalogoNodo{
		ID:      uuid.New().String(),
		Nivel:   nivel,
		Codigo:  in.Codigo,
		Nombre:  in.Nombre,
		PadreID: in.PadreID,
		Orden:   in.Orden,
		Activo:  true,
	}
	err := uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Catalogo.CreateNodo(ctx, nodo); err != nil {
			return err
		}
		return repos.Historial.Create(ctx, audit.Creacion(tabla, nodo.ID, actorID))
	})
	if err != nil {
		return nil, err
	}
	resp := toNodoResponse(nodo)
	return &resp, nil
}

// UpdateNodo modifica código, nombre u orden de un nodo existente.
func (uc *CatalogoUseCase) UpdateNodo(ctx context.Context, actorID, nivel, id string, in dto.UpdateNodoRequest) (*dto.NodoResponse, error) {
	tabla, ok := tablaPorNivel[nivel]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	nodo, err := uc.repo.GetNodo(ctx, nivel, id)
	if err != nil {
		return nil, err
	}
	if nodo == nil {
		return nil, domain.ErrNotFound
	}

	antes := map[string]string{
		"codigo": nodo.Codigo,
		"nombre": nodo.Nombre,
		"orden":  strconv.Itoa(nodo.Orden),
	}
	despues := map[string]string{}
	if in.Codigo != nil {
		nodo.Codigo = *in.Codigo
		despues["codigo"] = nodo.Codigo
	}
	if in.Nombre != nil {
		nodo.Nombre = *in.Nombre
		despues["nombre"] = nodo.Nombre
	}
	if in.Orden != nil {
		nodo.Orden = *in.Orden
		despues["orden"] = strconv.Itoa(nodo.Orden)
	}

	err = uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Catalogo.UpdateNodo(ctx, nodo); err != nil {
			return err
		}
		filas := audit.Modificaciones(tabla, nodo.ID, actorID, antes, despues)
		return audit.RegistrarTodos(ctx, repos.Historial, filas)
	})
	if err != nil {
		return nil, err
	}
	resp := toNodoResponse(nodo)
	return &resp, nil
}

// DeleteNodo da de baja lógica un nodo del catálogo. Los expedientes que ya
// lo referencian conservan la referencia; solo deja de ofrecerse en listados.
func (uc *CatalogoUseCase) DeleteNodo(ctx context.Context, actorID, nivel, id string) error {
	tabla, ok := tablaPorNivel[nivel]
	if !ok {
		return domain.ErrInvalidInput
	}
	nodo, err := uc.repo.GetNodo(ctx, nivel, id)
	if err != nil {
		return err
	}
	if nodo == nil {
		return domain.ErrNotFound
	}

	return uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Catalogo.SoftDeleteNodo(ctx, nivel, id); err != nil {
			return err
		}
		return repos.Historial.Create(ctx, audit.Eliminacion(tabla, id, actorID))
	})
}

// padreDe devuelve el nivel padre en la jerarquía, o "" para niveles raíz.
func padreDe(nivel string) string {
	switch nivel {
	case entity.NivelSeccion:
		return entity.NivelFondo
	case entity.NivelSerie:
		return entity.NivelSeccion
	case entity.NivelSubserie:
		return entity.NivelSerie
	}
	return ""
}

func toNodoResponse(n *repository.CatalogoNodo) dto.NodoResponse {
	return dto.NodoResponse{
		ID:      n.ID,
		Nivel:   n.Nivel,
		Codigo:  n.Codigo,
		Nombre:  n.Nombre,
		PadreID: n.PadreID,
		Orden:   n.Orden,
		Activo:  n.Activo,
	}
}
