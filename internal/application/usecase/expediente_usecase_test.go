package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acervo/expedientes-api/internal/application/audit"
	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/application/usecase"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

const testActorID = "00000000-0000-0000-0000-0000000000ff"

// ──────────────────────────────────────────────────────────────────────────────
// Stubs en memoria
// ──────────────────────────────────────────────────────────────────────────────

type expedienteRepoFake struct {
	porID     map[string]*entity.Expediente
	porNumero map[string]*entity.Expediente
}

func newExpedienteRepoFake() *expedienteRepoFake {
	return &expedienteRepoFake{
		porID:     map[string]*entity.Expediente{},
		porNumero: map[string]*entity.Expediente{},
	}
}

func (f *expedienteRepoFake) Create(ctx context.Context, e *entity.Expediente) error {
	f.porID[e.ID] = e
	f.porNumero[e.NumeroExpediente] = e
	return nil
}
func (f *expedienteRepoFake) GetByID(ctx context.Context, id string) (*entity.Expediente, error) {
	return f.porID[id], nil
}
func (f *expedienteRepoFake) GetByNumero(ctx context.Context, numero string) (*entity.Expediente, error) {
	return f.porNumero[numero], nil
}
func (f *expedienteRepoFake) Update(ctx context.Context, e *entity.Expediente) error {
	f.porID[e.ID] = e
	return nil
}
func (f *expedienteRepoFake) List(ctx context.Context, fl repository.ExpedienteFiltro, limit, offset int) ([]*entity.Expediente, int, error) {
	return nil, 0, nil
}
func (f *expedienteRepoFake) ListAll(ctx context.Context, fl repository.ExpedienteFiltro, max int) ([]*entity.Expediente, error) {
	return nil, nil
}

// catalogoRepoFake resuelve nodos por "nivel:id". Solo GetNodo importa aquí.
type catalogoRepoFake struct {
	nodos map[string]*repository.CatalogoNodo
}

func (f *catalogoRepoFake) ListAreas(ctx context.Context) ([]*entity.Area, error)   { return nil, nil }
func (f *catalogoRepoFake) ListFondos(ctx context.Context) ([]*entity.Fondo, error) { return nil, nil }
func (f *catalogoRepoFake) ListSecciones(ctx context.Context, fondoID string) ([]*entity.Seccion, error) {
	return nil, nil
}
func (f *catalogoRepoFake) ListSeries(ctx context.Context, seccionID string) ([]*entity.Serie, error) {
	return nil, nil
}
func (f *catalogoRepoFake) ListSubseries(ctx context.Context, serieID string) ([]*entity.Subserie, error) {
	return nil, nil
}
func (f *catalogoRepoFake) GetNodo(ctx context.Context, nivel, id string) (*repository.CatalogoNodo, error) {
	return f.nodos[nivel+":"+id], nil
}
func (f *catalogoRepoFake) Buscar(ctx context.Context, q string, limit int) ([]*repository.CatalogoNodo, error) {
	return nil, nil
}
func (f *catalogoRepoFake) CreateNodo(ctx context.Context, n *repository.CatalogoNodo) error {
	return nil
}
func (f *catalogoRepoFake) UpdateNodo(ctx context.Context, n *repository.CatalogoNodo) error {
	return nil
}
func (f *catalogoRepoFake) SoftDeleteNodo(ctx context.Context, nivel, id string) error { return nil }

// historialRepoFake acumula las filas de bitácora insertadas.
type historialRepoFake struct {
	filas []*entity.HistorialCambio
}

func (f *historialRepoFake) Create(ctx context.Context, h *entity.HistorialCambio) error {
	f.filas = append(f.filas, h)
	return nil
}
func (f *historialRepoFake) List(ctx context.Context, fl repository.HistorialFiltro, limit, offset int) ([]*entity.HistorialCambio, int, error) {
	return nil, 0, nil
}
func (f *historialRepoFake) DeleteOlderThan(ctx context.Context, antesDe time.Time) (int64, error) {
	return 0, nil
}

// txRunnerFake ejecuta fn directamente con los repos dados, sin transacción real.
type txRunnerFake struct {
	repos audit.TxRepos
}

func (f *txRunnerFake) Run(ctx context.Context, fn func(repos audit.TxRepos) error) error {
	return fn(f.repos)
}

// entorno arma el caso de uso con un cuadro de clasificación de dos secciones:
// f1 → s1 → se1 (con subserie sub1) y f1 → s2 → se2, más una serie inactiva.
func entorno() (*usecase.ExpedienteUseCase, *expedienteRepoFake, *historialRepoFake) {
	repo := newExpedienteRepoFake()
	hist := &historialRepoFake{}
	f1, s1, s2, se1, se2 := "f1", "s1", "s2", "se1", "se2"
	cat := &catalogoRepoFake{nodos: map[string]*repository.CatalogoNodo{
		"area:a1":       {ID: "a1", Nivel: entity.NivelArea, Activo: true},
		"fondo:f1":      {ID: "f1", Nivel: entity.NivelFondo, Activo: true},
		"seccion:s1":    {ID: "s1", Nivel: entity.NivelSeccion, PadreID: &f1, Activo: true},
		"seccion:s2":    {ID: "s2", Nivel: entity.NivelSeccion, PadreID: &f1, Activo: true},
		"serie:se1":     {ID: "se1", Nivel: entity.NivelSerie, PadreID: &s1, Activo: true},
		"serie:se2":     {ID: "se2", Nivel: entity.NivelSerie, PadreID: &s2, Activo: true},
		"serie:inact":   {ID: "inact", Nivel: entity.NivelSerie, PadreID: &s1, Activo: false},
		"subserie:sub1": {ID: "sub1", Nivel: entity.NivelSubserie, PadreID: &se1, Activo: true},
		"subserie:sub2": {ID: "sub2", Nivel: entity.NivelSubserie, PadreID: &se2, Activo: true},
	}}
	tx := &txRunnerFake{repos: audit.TxRepos{Expedientes: repo, Historial: hist}}
	return usecase.NewExpedienteUseCase(repo, cat, tx), repo, hist
}

func altaValida() dto.CreateExpedienteRequest {
	return dto.CreateExpedienteRequest{
		NumeroExpediente: "EXP-2026-001",
		Nombre:           "Contrato de obra",
		Asunto:           "Contratación de obra pública",
		AreaID:           "a1",
		FondoID:          "f1",
		SeccionID:        "s1",
		SerieID:          "se1",
		FechaApertura:    "2026-01-15",
		NumeroFojas:      12,
		NumeroLegajos:    1,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestExpedienteCreate_AltaConBitacora(t *testing.T) {
	uc, _, hist := entorno()

	out, err := uc.Create(context.Background(), testActorID, altaValida())
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoActivo, out.Estado, "el alta nace en estado activo")
	assert.Equal(t, testActorID, out.CreadoPor)

	// La creación y su fila de bitácora van en la misma transacción
	require.Len(t, hist.filas, 1)
	assert.Equal(t, "expedientes", hist.filas[0].Tabla)
	assert.Equal(t, entity.CambioCreacion, hist.filas[0].TipoCambio)
	assert.Equal(t, out.ID, hist.filas[0].RegistroID)
}

func TestExpedienteCreate_NumeroDuplicado(t *testing.T) {
	uc, _, _ := entorno()

	_, err := uc.Create(context.Background(), testActorID, altaValida())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), testActorID, altaValida())
	assert.ErrorIs(t, err, domain.ErrNumeroDuplicado)
}

func TestExpedienteCreate_FechaInvalida(t *testing.T) {
	uc, _, _ := entorno()

	in := altaValida()
	in.FechaApertura = "15/01/2026"
	_, err := uc.Create(context.Background(), testActorID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpedienteCreate_SerieInactivaRechazada(t *testing.T) {
	uc, _, _ := entorno()

	in := altaValida()
	in.SerieID = "inact"
	_, err := uc.Create(context.Background(), testActorID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"la clasificación debe referenciar nodos activos")
}

func TestExpedienteCreate_SerieInexistenteRechazada(t *testing.T) {
	uc, _, _ := entorno()

	in := altaValida()
	in.SerieID = "no-existe"
	_, err := uc.Create(context.Background(), testActorID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La cadena debe ser consistente: se2 pertenece a la sección s2, no a s1.
func TestExpedienteCreate_SerieDeOtraSeccionRechazada(t *testing.T) {
	uc, _, _ := entorno()

	in := altaValida()
	in.SerieID = "se2"
	_, err := uc.Create(context.Background(), testActorID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpedienteCreate_SubserieDeOtraSerieRechazada(t *testing.T) {
	uc, _, _ := entorno()

	sub := "sub2" // pertenece a se2, el alta usa se1
	in := altaValida()
	in.SubserieID = &sub
	_, err := uc.Create(context.Background(), testActorID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpedienteCreate_ConSubserieConsistente(t *testing.T) {
	uc, _, _ := entorno()

	sub := "sub1"
	in := altaValida()
	in.SubserieID = &sub
	out, err := uc.Create(context.Background(), testActorID, in)
	require.NoError(t, err)
	require.NotNil(t, out.SubserieID)
	assert.Equal(t, "sub1", *out.SubserieID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestExpedienteUpdate_BitacoraPorCampo(t *testing.T) {
	uc, _, hist := entorno()
	out, err := uc.Create(context.Background(), testActorID, altaValida())
	require.NoError(t, err)
	hist.filas = nil

	nombre := "Contrato de obra (modificado)"
	fojas := 30
	upd, err := uc.Update(context.Background(), testActorID, out.ID, dto.UpdateExpedienteRequest{
		Nombre:      &nombre,
		NumeroFojas: &fojas,
	})
	require.NoError(t, err)

	assert.Equal(t, nombre, upd.Nombre)
	require.NotNil(t, upd.ActualizadoPor)
	assert.Equal(t, testActorID, *upd.ActualizadoPor)

	// Una fila por campo cambiado, en orden determinista
	require.Len(t, hist.filas, 2)
	assert.Equal(t, "nombre", *hist.filas[0].Campo)
	assert.Equal(t, "numero_fojas", *hist.filas[1].Campo)
	assert.Equal(t, "12", *hist.filas[1].ValorAnterior)
	assert.Equal(t, "30", *hist.filas[1].ValorNuevo)
}

func TestExpedienteUpdate_CierreAnteriorALaApertura(t *testing.T) {
	uc, _, _ := entorno()
	out, err := uc.Create(context.Background(), testActorID, altaValida())
	require.NoError(t, err)

	cierre := "2025-12-31" // la apertura es 2026-01-15
	_, err = uc.Update(context.Background(), testActorID, out.ID, dto.UpdateExpedienteRequest{
		FechaCierre: &cierre,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpedienteUpdate_EstadoInvalido(t *testing.T) {
	uc, _, _ := entorno()
	out, err := uc.Create(context.Background(), testActorID, altaValida())
	require.NoError(t, err)

	estado := "archivado"
	_, err = uc.Update(context.Background(), testActorID, out.ID, dto.UpdateExpedienteRequest{Estado: &estado})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cambiar la serie a una de otra sección rompería la cadena de clasificación.
func TestExpedienteUpdate_SerieDeOtraSeccionRechazada(t *testing.T) {
	uc, _, _ := entorno()
	out, err := uc.Create(context.Background(), testActorID, altaValida())
	require.NoError(t, err)

	serie := "se2"
	_, err = uc.Update(context.Background(), testActorID, out.ID, dto.UpdateExpedienteRequest{SerieID: &serie})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpedienteUpdate_NoExiste(t *testing.T) {
	uc, _, _ := entorno()
	nombre := "x"
	_, err := uc.Update(context.Background(), testActorID, "no-existe", dto.UpdateExpedienteRequest{Nombre: &nombre})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SoftDelete
// ──────────────────────────────────────────────────────────────────────────────

func TestExpedienteSoftDelete_BajaLogica(t *testing.T) {
	uc, repo, hist := entorno()
	out, err := uc.Create(context.Background(), testActorID, altaValida())
	require.NoError(t, err)
	hist.filas = nil

	require.NoError(t, uc.SoftDelete(context.Background(), testActorID, out.ID))

	// La fila sigue existiendo con estado baja y es recuperable por ID
	assert.Equal(t, entity.EstadoBaja, repo.porID[out.ID].Estado)
	recuperado, err := uc.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, recuperado)

	require.Len(t, hist.filas, 1)
	assert.Equal(t, entity.CambioEliminacion, hist.filas[0].TipoCambio)
}

func TestExpedienteSoftDelete_YaEnBaja(t *testing.T) {
	uc, _, _ := entorno()
	out, err := uc.Create(context.Background(), testActorID, altaValida())
	require.NoError(t, err)

	require.NoError(t, uc.SoftDelete(context.Background(), testActorID, out.ID))

	err = uc.SoftDelete(context.Background(), testActorID, out.ID)
	assert.ErrorIs(t, err, domain.ErrNoEditable)

	// Tampoco es editable una vez en baja
	nombre := "x"
	_, err = uc.Update(context.Background(), testActorID, out.ID, dto.UpdateExpedienteRequest{Nombre: &nombre})
	assert.ErrorIs(t, err, domain.ErrNoEditable)
}
