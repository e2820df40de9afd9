package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acervo/expedientes-api/internal/application/audit"
	"github.com/acervo/expedientes-api/internal/application/usecase"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/infrastructure/filestore"
	"github.com/acervo/expedientes-api/pkg/logger"
)

type documentoRepoFake struct {
	porID map[string]*entity.Documento
}

func newDocumentoRepoFake() *documentoRepoFake {
	return &documentoRepoFake{porID: map[string]*entity.Documento{}}
}

func (f *documentoRepoFake) Create(ctx context.Context, d *entity.Documento) error {
	f.porID[d.ID] = d
	return nil
}
func (f *documentoRepoFake) GetByID(ctx context.Context, id string) (*entity.Documento, error) {
	return f.porID[id], nil
}
func (f *documentoRepoFake) ListByExpediente(ctx context.Context, expedienteID string) ([]*entity.Documento, error) {
	var out []*entity.Documento
	for _, d := range f.porID {
		if d.ExpedienteID == expedienteID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (f *documentoRepoFake) Delete(ctx context.Context, id string) error {
	delete(f.porID, id)
	return nil
}

// entornoDocumentos: expediente destino ya dado de alta, límite de 1 KiB.
func entornoDocumentos(t *testing.T) (*usecase.DocumentoUseCase, *filestore.FileStore, *historialRepoFake, string) {
	t.Helper()

	expRepo := newExpedienteRepoFake()
	exp := &entity.Expediente{ID: "e1", NumeroExpediente: "EXP-001", Estado: entity.EstadoActivo}
	require.NoError(t, expRepo.Create(context.Background(), exp))
	baja := &entity.Expediente{ID: "e-baja", NumeroExpediente: "EXP-002", Estado: entity.EstadoBaja}
	require.NoError(t, expRepo.Create(context.Background(), baja))

	docRepo := newDocumentoRepoFake()
	hist := &historialRepoFake{}
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	tx := &txRunnerFake{repos: audit.TxRepos{Documentos: docRepo, Historial: hist}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	uc := usecase.NewDocumentoUseCase(docRepo, expRepo, store, tx, 1024, log)
	return uc, store, hist, exp.ID
}

func paramsValidos(expedienteID string, tamano int64) usecase.UploadDocumentoParams {
	return usecase.UploadDocumentoParams{
		ExpedienteID:   expedienteID,
		Nombre:         "oficio.pdf",
		Tipo:           "application/pdf",
		FechaDocumento: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		NumeroFojas:    3,
		Tamano:         tamano,
	}
}

func TestTipoPermitido(t *testing.T) {
	assert.True(t, usecase.TipoPermitido("application/pdf"))
	assert.True(t, usecase.TipoPermitido("image/jpeg"))
	assert.True(t, usecase.TipoPermitido("text/xml"))

	assert.False(t, usecase.TipoPermitido("application/x-msdownload"))
	assert.False(t, usecase.TipoPermitido("text/html"))
	assert.False(t, usecase.TipoPermitido(""))
}

func TestDocumentoUpload_GuardaArchivoYMetadatos(t *testing.T) {
	uc, store, hist, expID := entornoDocumentos(t)
	contenido := "contenido del oficio digitalizado"

	out, err := uc.Upload(context.Background(), testActorID, paramsValidos(expID, int64(len(contenido))), strings.NewReader(contenido))
	require.NoError(t, err)

	assert.Equal(t, int64(len(contenido)), out.Tamano)
	assert.NotEmpty(t, out.Checksum)
	assert.True(t, store.Exists(out.NombreArchivo))

	require.Len(t, hist.filas, 1)
	assert.Equal(t, "documentos", hist.filas[0].Tabla)
	assert.Equal(t, entity.CambioCreacion, hist.filas[0].TipoCambio)
}

func TestDocumentoUpload_TipoNoPermitido(t *testing.T) {
	uc, _, _, expID := entornoDocumentos(t)

	p := paramsValidos(expID, 10)
	p.Tipo = "application/x-msdownload"
	_, err := uc.Upload(context.Background(), testActorID, p, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrTipoArchivo)
}

func TestDocumentoUpload_TamanoDeclaradoSobreLimite(t *testing.T) {
	uc, _, _, expID := entornoDocumentos(t)

	_, err := uc.Upload(context.Background(), testActorID, paramsValidos(expID, 2048), strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrArchivoMuyGrande)
}

// El tamaño declarado miente: el contenido real supera el límite y el archivo
// escrito debe limpiarse.
func TestDocumentoUpload_ContenidoRealSobreLimite(t *testing.T) {
	uc, _, _, expID := entornoDocumentos(t)

	contenido := strings.Repeat("a", 2048)
	_, err := uc.Upload(context.Background(), testActorID, paramsValidos(expID, 100), strings.NewReader(contenido))
	assert.ErrorIs(t, err, domain.ErrArchivoMuyGrande)
}

func TestDocumentoUpload_ExpedienteEnBaja(t *testing.T) {
	uc, _, _, _ := entornoDocumentos(t)

	_, err := uc.Upload(context.Background(), testActorID, paramsValidos("e-baja", 10), strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrNoEditable)
}

func TestDocumentoUpload_ExpedienteInexistente(t *testing.T) {
	uc, _, _, _ := entornoDocumentos(t)

	_, err := uc.Upload(context.Background(), testActorID, paramsValidos("no-existe", 10), strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentoDelete_EliminaMetadatosYArchivo(t *testing.T) {
	uc, store, hist, expID := entornoDocumentos(t)

	out, err := uc.Upload(context.Background(), testActorID, paramsValidos(expID, 5), strings.NewReader("abcde"))
	require.NoError(t, err)
	hist.filas = nil

	require.NoError(t, uc.Delete(context.Background(), testActorID, out.ID))
	assert.False(t, store.Exists(out.NombreArchivo))

	require.Len(t, hist.filas, 1)
	assert.Equal(t, entity.CambioEliminacion, hist.filas[0].TipoCambio)

	// El documento ya no se puede descargar
	_, _, err = uc.Download(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
