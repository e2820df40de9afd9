package filestore_test

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acervo/expedientes-api/internal/infrastructure/filestore"
)

func newStore(t *testing.T) *filestore.FileStore {
	t.Helper()
	fs, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return fs
}

func TestSave_CalculaTamanoYChecksum(t *testing.T) {
	fs := newStore(t)
	contenido := "contenido de prueba del documento"

	res, err := fs.Save(strings.NewReader(contenido), "oficio.pdf")
	require.NoError(t, err)

	assert.Equal(t, int64(len(contenido)), res.Tamano)

	sum := sha256.Sum256([]byte(contenido))
	assert.Equal(t, hex.EncodeToString(sum[:]), res.Checksum)

	// Nombre generado: uuid + extensión original en minúsculas
	assert.True(t, strings.HasSuffix(res.NombreArchivo, ".pdf"))
	assert.NotEqual(t, "oficio.pdf", res.NombreArchivo,
		"el nombre en disco no debe ser el nombre original")
	assert.True(t, fs.Exists(res.NombreArchivo))
}

func TestSave_ExtensionEnMinusculas(t *testing.T) {
	fs := newStore(t)
	res, err := fs.Save(strings.NewReader("x"), "FOTO.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.NombreArchivo, ".jpg"))
}

func TestSave_NombresUnicosParaMismoOriginal(t *testing.T) {
	fs := newStore(t)
	a, err := fs.Save(strings.NewReader("uno"), "acta.pdf")
	require.NoError(t, err)
	b, err := fs.Save(strings.NewReader("dos"), "acta.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, a.NombreArchivo, b.NombreArchivo)
}

func TestOpen_DevuelveElContenidoGuardado(t *testing.T) {
	fs := newStore(t)
	res, err := fs.Save(strings.NewReader("abc123"), "nota.txt")
	require.NoError(t, err)

	f, err := fs.Open(res.NombreArchivo)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "abc123", string(data))
}

func TestDelete_EsIdempotente(t *testing.T) {
	fs := newStore(t)
	res, err := fs.Save(strings.NewReader("x"), "borrar.pdf")
	require.NoError(t, err)

	require.NoError(t, fs.Delete(res.NombreArchivo))
	assert.False(t, fs.Exists(res.NombreArchivo))

	// Borrar lo que ya no existe no es un error
	assert.NoError(t, fs.Delete(res.NombreArchivo))
	assert.NoError(t, fs.Delete("nunca-existio.pdf"))
}

func TestSave_SinRestosTemporales(t *testing.T) {
	fs := newStore(t)
	res, err := fs.Save(strings.NewReader("x"), "doc.pdf")
	require.NoError(t, err)

	assert.False(t, fs.Exists(res.NombreArchivo+".tmp"),
		"el temporal debe desaparecer tras el rename")
}
