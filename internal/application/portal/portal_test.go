package portal_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acervo/expedientes-api/internal/application/portal"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
	"github.com/acervo/expedientes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

type expedienteRepoStub struct {
	porID     map[string]*entity.Expediente
	porNumero map[string]*entity.Expediente
}

func (s *expedienteRepoStub) Create(ctx context.Context, e *entity.Expediente) error { return nil }
func (s *expedienteRepoStub) GetByID(ctx context.Context, id string) (*entity.Expediente, error) {
	return s.porID[id], nil
}
func (s *expedienteRepoStub) GetByNumero(ctx context.Context, numero string) (*entity.Expediente, error) {
	return s.porNumero[numero], nil
}
func (s *expedienteRepoStub) Update(ctx context.Context, e *entity.Expediente) error { return nil }
func (s *expedienteRepoStub) List(ctx context.Context, f repository.ExpedienteFiltro, limit, offset int) ([]*entity.Expediente, int, error) {
	return nil, 0, nil
}
func (s *expedienteRepoStub) ListAll(ctx context.Context, f repository.ExpedienteFiltro, max int) ([]*entity.Expediente, error) {
	return nil, nil
}

// submitterStub falla las primeras fallosAntes llamadas y cuenta los intentos.
type submitterStub struct {
	fallosAntes int
	llamadas    int
	enviados    []portal.Registro
}

func (s *submitterStub) Enviar(ctx context.Context, r portal.Registro) error {
	s.llamadas++
	if s.llamadas <= s.fallosAntes {
		return errors.New("portal no disponible")
	}
	s.enviados = append(s.enviados, r)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func expedienteDePrueba(id, numero, estado string) *entity.Expediente {
	return &entity.Expediente{
		ID:               id,
		NumeroExpediente: numero,
		Nombre:           "Expediente " + numero,
		Asunto:           "Asunto de prueba",
		FechaApertura:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		NumeroFojas:      10,
		NumeroLegajos:    1,
		Estado:           estado,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// EnviarIDs
// ──────────────────────────────────────────────────────────────────────────────

func TestEnviarIDs_SinIDs_RetornaError(t *testing.T) {
	uc := portal.NewPortalUseCase(&expedienteRepoStub{}, &submitterStub{}, 1, testLogger())
	_, err := uc.EnviarIDs(context.Background(), nil)
	assert.Error(t, err)
}

func TestEnviarIDs_MezclaExitosYFallos(t *testing.T) {
	repo := &expedienteRepoStub{porID: map[string]*entity.Expediente{
		"ok":   expedienteDePrueba("ok", "EXP-001", entity.EstadoActivo),
		"baja": expedienteDePrueba("baja", "EXP-002", entity.EstadoBaja),
	}}
	sub := &submitterStub{}
	uc := portal.NewPortalUseCase(repo, sub, 1, testLogger())

	resp, err := uc.EnviarIDs(context.Background(), []string{"ok", "baja", "no-existe"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Exitosos)
	assert.Equal(t, 2, resp.Fallidos, "baja e inexistente cuentan como fallo del registro")
	require.Len(t, resp.Resultados, 3)
	assert.True(t, resp.Resultados[0].Exito)
	assert.False(t, resp.Resultados[1].Exito)
	assert.False(t, resp.Resultados[2].Exito)

	// El registro enviado lleva los datos del expediente en el formato del formulario
	require.Len(t, sub.enviados, 1)
	assert.Equal(t, "EXP-001", sub.enviados[0].NumeroExpediente)
	assert.Equal(t, "2026-01-15", sub.enviados[0].FechaApertura)
}

func TestEnviarIDs_ReintentaHastaMaxRetries(t *testing.T) {
	repo := &expedienteRepoStub{porID: map[string]*entity.Expediente{
		"e1": expedienteDePrueba("e1", "EXP-001", entity.EstadoActivo),
	}}
	// Falla las 3 veces: el registro queda fallido con 3 intentos consumidos
	sub := &submitterStub{fallosAntes: 3}
	uc := portal.NewPortalUseCase(repo, sub, 3, testLogger())

	// Contexto con plazo corto por si el backoff no respetara la cancelación
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := uc.EnviarIDs(ctx, []string{"e1"})
	require.NoError(t, err)

	assert.Equal(t, 3, sub.llamadas)
	assert.Equal(t, 1, resp.Fallidos)
	assert.Contains(t, resp.Resultados[0].Error, "portal no disponible")
}

// ──────────────────────────────────────────────────────────────────────────────
// EnviarCSV
// ──────────────────────────────────────────────────────────────────────────────

func TestEnviarCSV_PrimeraColumnaConCabecera(t *testing.T) {
	repo := &expedienteRepoStub{porNumero: map[string]*entity.Expediente{
		"EXP-001": expedienteDePrueba("e1", "EXP-001", entity.EstadoActivo),
		"EXP-002": expedienteDePrueba("e2", "EXP-002", entity.EstadoActivo),
	}}
	sub := &submitterStub{}
	uc := portal.NewPortalUseCase(repo, sub, 1, testLogger())

	csv := "numero_expediente,observaciones\nEXP-001,algo\n\nEXP-002\nEXP-999\n"
	resp, err := uc.EnviarCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Exitosos)
	assert.Equal(t, 1, resp.Fallidos, "EXP-999 no existe")
	assert.Len(t, sub.enviados, 2)
}

func TestEnviarCSV_ToleraLatin1(t *testing.T) {
	repo := &expedienteRepoStub{porNumero: map[string]*entity.Expediente{
		"EXP-001": expedienteDePrueba("e1", "EXP-001", entity.EstadoActivo),
	}}
	sub := &submitterStub{}
	uc := portal.NewPortalUseCase(repo, sub, 1, testLogger())

	// "EXP-001,Año" con la ñ en latin-1 (0xF1): el archivo no es UTF-8 válido
	csv := append([]byte("EXP-001,A"), 0xF1, 'o', '\n')
	resp, err := uc.EnviarCSV(context.Background(), strings.NewReader(string(csv)))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Exitosos)
}

func TestEnviarCSV_Vacio_RetornaError(t *testing.T) {
	uc := portal.NewPortalUseCase(&expedienteRepoStub{}, &submitterStub{}, 1, testLogger())

	_, err := uc.EnviarCSV(context.Background(), strings.NewReader(""))
	assert.Error(t, err)

	_, err = uc.EnviarCSV(context.Background(), strings.NewReader("numero_expediente\n"))
	assert.Error(t, err, "solo la cabecera no aporta registros")
}
