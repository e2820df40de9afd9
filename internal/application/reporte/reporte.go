// Package reporte genera las exportaciones del archivo (Excel, PDF, XML) a
// partir del mismo filtro que el listado de expedientes. Los generadores de
// formato son puertos: la infraestructura aporta las implementaciones.
package reporte

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

// Tope de filas por reporte. Un filtro que lo exceda se trunca a las primeras
// maxFilas por número de expediente ascendente, el mismo orden del reporte.
const maxFilas = 5000

// Formatos de exportación soportados.
const (
	FormatoExcel = "excel"
	FormatoPDF   = "pdf"
	FormatoXML   = "xml"
)

// Fila una fila del reporte con las referencias del catálogo ya resueltas a nombres.
type Fila struct {
	NumeroExpediente  string
	Nombre            string
	Asunto            string
	Area              string
	Fondo             string
	Seccion           string
	Serie             string
	Subserie          string
	FechaApertura     string // "2006-01-02"
	FechaCierre       string // vacío si sigue abierto
	NumeroFojas       int
	NumeroLegajos     int
	ValorDocumental   string
	PlazoConservacion int
	DestinoFinal      string
	Estado            string
}

// GrupoArea filas del inventario general agrupadas por área.
type GrupoArea struct {
	Area  string
	Filas []Fila
}

// Generador produce el archivo de un formato concreto a partir de las filas.
type Generador interface {
	Generar(titulo string, filas []Fila) ([]byte, error)
	ContentType() string
	Extension() string
}

// GeneradorInventario produce el inventario general agrupado por área (PDF).
type GeneradorInventario interface {
	GenerarInventario(titulo string, grupos []GrupoArea) ([]byte, error)
	ContentType() string
	Extension() string
}

// Archivo reporte generado listo para servir.
type Archivo struct {
	Nombre      string
	ContentType string
	Contenido   []byte
}

// ReporteUseCase arma las filas (resolviendo catálogo) y delega el formato.
type ReporteUseCase struct {
	expedientes repository.ExpedienteRepository
	catalogo    repository.CatalogoRepository
	generadores map[string]Generador
	inventario  GeneradorInventario
}

// NewReporteUseCase construye el caso de uso con los generadores disponibles.
func NewReporteUseCase(expedientes repository.ExpedienteRepository, catalogo repository.CatalogoRepository, generadores map[string]Generador, inventario GeneradorInventario) *ReporteUseCase {
	return &ReporteUseCase{expedientes: expedientes, catalogo: catalogo, generadores: generadores, inventario: inventario}
}

// Exportar genera el reporte de expedientes en el formato pedido.
func (uc *ReporteUseCase) Exportar(ctx context.Context, formato string, f repository.ExpedienteFiltro) (*Archivo, error) {
	gen, ok := uc.generadores[formato]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	filas, err := uc.armarFilas(ctx, f)
	if err != nil {
		return nil, err
	}
	contenido, err := gen.Generar("Reporte de expedientes", filas)
	if err != nil {
		return nil, err
	}
	return &Archivo{
		Nombre:      nombreArchivo("expedientes", gen.Extension()),
		ContentType: gen.ContentType(),
		Contenido:   contenido,
	}, nil
}

// InventarioGeneral genera el inventario completo del archivo agrupado por área.
func (uc *ReporteUseCase) InventarioGeneral(ctx context.Context) (*Archivo, error) {
	filas, err := uc.armarFilas(ctx, repository.ExpedienteFiltro{})
	if err != nil {
		return nil, err
	}

	porArea := map[string][]Fila{}
	for _, fila := range filas {
		porArea[fila.Area] = append(porArea[fila.Area], fila)
	}
	areas := make([]string, 0, len(porArea))
	for area := range porArea {
		areas = append(areas, area)
	}
	sort.Strings(areas)

	grupos := make([]GrupoArea, 0, len(areas))
	for _, area := range areas {
		grupos = append(grupos, GrupoArea{Area: area, Filas: porArea[area]})
	}

	contenido, err := uc.inventario.GenerarInventario("Inventario general del archivo", grupos)
	if err != nil {
		return nil, err
	}
	return &Archivo{
		Nombre:      nombreArchivo("inventario-general", uc.inventario.Extension()),
		ContentType: uc.inventario.ContentType(),
		Contenido:   contenido,
	}, nil
}

// armarFilas lee los expedientes (tope maxFilas) y resuelve los nombres del
// catálogo con un caché por nodo para no repetir lecturas.
func (uc *ReporteUseCase) armarFilas(ctx context.Context, f repository.ExpedienteFiltro) ([]Fila, error) {
	exps, err := uc.expedientes.ListAll(ctx, f, maxFilas)
	if err != nil {
		return nil, err
	}

	nombres := map[string]string{}
	resolver := func(nivel, id string) (string, error) {
		if id == "" {
			return "", nil
		}
		clave := nivel + ":" + id
		if nombre, ok := nombres[clave]; ok {
			return nombre, nil
		}
		nodo, err := uc.catalogo.GetNodo(ctx, nivel, id)
		if err != nil {
			return "", err
		}
		nombre := id // referencia rota: se reporta el id crudo antes que omitir la fila
		if nodo != nil {
			nombre = nodo.Nombre
		}
		nombres[clave] = nombre
		return nombre, nil
	}

	filas := make([]Fila, 0, len(exps))
	for _, e := range exps {
		fila := Fila{
			NumeroExpediente:  e.NumeroExpediente,
			Nombre:            e.Nombre,
			Asunto:            e.Asunto,
			FechaApertura:     e.FechaApertura.Format("2006-01-02"),
			NumeroFojas:       e.NumeroFojas,
			NumeroLegajos:     e.NumeroLegajos,
			ValorDocumental:   e.ValorDocumental,
			PlazoConservacion: e.PlazoConservacion,
			DestinoFinal:      e.DestinoFinal,
			Estado:            e.Estado,
		}
		if e.FechaCierre != nil {
			fila.FechaCierre = e.FechaCierre.Format("2006-01-02")
		}
		if fila.Area, err = resolver(entity.NivelArea, e.AreaID); err != nil {
			return nil, err
		}
		if fila.Fondo, err = resolver(entity.NivelFondo, e.FondoID); err != nil {
			return nil, err
		}
		if fila.Seccion, err = resolver(entity.NivelSeccion, e.SeccionID); err != nil {
			return nil, err
		}
		if fila.Serie, err = resolver(entity.NivelSerie, e.SerieID); err != nil {
			return nil, err
		}
		if e.SubserieID != nil {
			if fila.Subserie, err = resolver(entity.NivelSubserie, *e.SubserieID); err != nil {
				return nil, err
			}
		}
		filas = append(filas, fila)
	}
	return filas, nil
}

func nombreArchivo(base, ext string) string {
	return fmt.Sprintf("%s-%s.%s", base, time.Now().Format("20060102-150405"), ext)
}
