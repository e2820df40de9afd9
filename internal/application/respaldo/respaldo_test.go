package respaldo_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acervo/expedientes-api/internal/application/respaldo"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/pkg/logger"
)

const testActorID = "00000000-0000-0000-0000-0000000000ff"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// ejecutorFake responde de inmediato; escribe el archivo destino si err es nil.
type ejecutorFake struct {
	err error
}

func (e *ejecutorFake) Ejecutar(ctx context.Context, destino string) error {
	if e.err != nil {
		return e.err
	}
	return os.WriteFile(destino, []byte("-- volcado de prueba\n"), 0o640)
}

// respaldoRepoFake guarda filas en memoria y avisa cuándo se marcó el resultado.
type respaldoRepoFake struct {
	mu      sync.Mutex
	porID   map[string]*entity.Respaldo
	marcado chan struct{}
}

func newRespaldoRepoFake() *respaldoRepoFake {
	return &respaldoRepoFake{
		porID:   map[string]*entity.Respaldo{},
		marcado: make(chan struct{}, 1),
	}
}

func (f *respaldoRepoFake) Create(ctx context.Context, r *entity.Respaldo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copia := *r
	f.porID[r.ID] = &copia
	return nil
}
func (f *respaldoRepoFake) GetByID(ctx context.Context, id string) (*entity.Respaldo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *r
	return &copia, nil
}
func (f *respaldoRepoFake) List(ctx context.Context, limit, offset int) ([]*entity.Respaldo, int, error) {
	return nil, 0, nil
}
func (f *respaldoRepoFake) MarcarResultado(ctx context.Context, r *entity.Respaldo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copia := *r
	f.porID[r.ID] = &copia
	select {
	case f.marcado <- struct{}{}:
	default:
	}
	return nil
}
func (f *respaldoRepoFake) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.porID, id)
	return nil
}

func entornoRespaldos(t *testing.T, ejecutor respaldo.Ejecutor) (*respaldo.RespaldoUseCase, *respaldoRepoFake) {
	t.Helper()
	repo := newRespaldoRepoFake()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc, err := respaldo.NewRespaldoUseCase(repo, ejecutor, t.TempDir(), log)
	require.NoError(t, err)
	return uc, repo
}

func esperarMarcado(t *testing.T, repo *respaldoRepoFake) {
	t.Helper()
	select {
	case <-repo.marcado:
	case <-time.After(5 * time.Second):
		t.Fatal("la ejecución en segundo plano nunca marcó resultado")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

// La respuesta del alta siempre refleja en_proceso, aunque el volcado termine
// antes de que el llamador la lea: el goroutine trabaja sobre su propia copia.
func TestRespaldoCrear_RespuestaEnProcesoAunqueTermineDeInmediato(t *testing.T) {
	uc, repo := entornoRespaldos(t, &ejecutorFake{})

	out, err := uc.Crear(context.Background(), testActorID, entity.RespaldoManual)
	require.NoError(t, err)
	esperarMarcado(t, repo)

	assert.Equal(t, entity.RespaldoEnProceso, out.Estado)
	assert.Nil(t, out.CompletedAt)
	assert.Zero(t, out.Tamano)
	assert.Equal(t, testActorID, out.CreadoPor)

	// El resultado real queda en el registro, no en la respuesta del alta
	marcado, err := repo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, marcado)
	assert.Equal(t, entity.RespaldoCompletado, marcado.Estado)
	require.NotNil(t, marcado.CompletedAt)
	assert.Positive(t, marcado.Tamano)
}

func TestRespaldoCrear_FalloQuedaEnElRegistro(t *testing.T) {
	uc, repo := entornoRespaldos(t, &ejecutorFake{err: errors.New("pg_dump: connection refused")})

	out, err := uc.Crear(context.Background(), testActorID, entity.RespaldoManual)
	require.NoError(t, err, "el alta no espera ni propaga el fallo del volcado")
	assert.Equal(t, entity.RespaldoEnProceso, out.Estado)
	esperarMarcado(t, repo)

	marcado, err := repo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, marcado)
	assert.Equal(t, entity.RespaldoFallido, marcado.Estado)
	require.NotNil(t, marcado.MensajeError)
	assert.Contains(t, *marcado.MensajeError, "connection refused")
}

func TestRespaldoCrear_TipoInvalido(t *testing.T) {
	uc, _ := entornoRespaldos(t, &ejecutorFake{})

	_, err := uc.Crear(context.Background(), testActorID, "incremental")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descargar
// ──────────────────────────────────────────────────────────────────────────────

func TestRespaldoDescargar_SoloCompletados(t *testing.T) {
	uc, repo := entornoRespaldos(t, &ejecutorFake{})

	out, err := uc.Crear(context.Background(), testActorID, entity.RespaldoManual)
	require.NoError(t, err)
	esperarMarcado(t, repo)

	r, f, err := uc.Descargar(context.Background(), out.ID)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, entity.RespaldoCompletado, r.Estado)

	_, _, err = uc.Descargar(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
