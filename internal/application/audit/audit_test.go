package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acervo/expedientes-api/internal/application/audit"
	"github.com/acervo/expedientes-api/internal/domain/entity"
)

const (
	testRegistroID = "00000000-0000-0000-0000-0000000000aa"
	testUsuarioID  = "00000000-0000-0000-0000-0000000000bb"
)

func TestCreacion(t *testing.T) {
	h := audit.Creacion("expedientes", testRegistroID, testUsuarioID)

	assert.NotEmpty(t, h.ID)
	assert.Equal(t, "expedientes", h.Tabla)
	assert.Equal(t, testRegistroID, h.RegistroID)
	assert.Equal(t, testUsuarioID, h.UsuarioID)
	assert.Equal(t, entity.CambioCreacion, h.TipoCambio)
	assert.Nil(t, h.Campo)
	assert.Nil(t, h.ValorAnterior)
	assert.Nil(t, h.ValorNuevo)
}

func TestEliminacion(t *testing.T) {
	h := audit.Eliminacion("usuarios", testRegistroID, testUsuarioID)
	assert.Equal(t, entity.CambioEliminacion, h.TipoCambio)
}

func TestUltimoAcceso(t *testing.T) {
	h := audit.UltimoAcceso(testUsuarioID)
	assert.Equal(t, "usuarios", h.Tabla)
	assert.Equal(t, testUsuarioID, h.RegistroID)
	assert.Equal(t, testUsuarioID, h.UsuarioID)
	assert.Equal(t, entity.CambioAcceso, h.TipoCambio)
}

// Una fila por campo cambiado, ordenadas por nombre de campo.
func TestModificaciones_UnaFilaPorCampoCambiado(t *testing.T) {
	antes := map[string]string{
		"nombre": "Expediente viejo",
		"estado": "activo",
		"asunto": "Asunto original",
	}
	despues := map[string]string{
		"nombre": "Expediente nuevo",
		"estado": "cerrado",
		"asunto": "Asunto original", // sin cambio
	}

	filas := audit.Modificaciones("expedientes", testRegistroID, testUsuarioID, antes, despues)
	require.Len(t, filas, 2, "solo los campos que cambian generan fila")

	// Orden determinista por campo: estado < nombre
	assert.Equal(t, "estado", *filas[0].Campo)
	assert.Equal(t, "activo", *filas[0].ValorAnterior)
	assert.Equal(t, "cerrado", *filas[0].ValorNuevo)

	assert.Equal(t, "nombre", *filas[1].Campo)
	assert.Equal(t, "Expediente viejo", *filas[1].ValorAnterior)
	assert.Equal(t, "Expediente nuevo", *filas[1].ValorNuevo)

	for _, f := range filas {
		assert.Equal(t, entity.CambioModificacion, f.TipoCambio)
	}
}

// Update parcial: solo se consideran las claves presentes en despues.
func TestModificaciones_IgnoraCamposNoEnviados(t *testing.T) {
	antes := map[string]string{"nombre": "A", "asunto": "B"}
	despues := map[string]string{"nombre": "C"}

	filas := audit.Modificaciones("expedientes", testRegistroID, testUsuarioID, antes, despues)
	require.Len(t, filas, 1)
	assert.Equal(t, "nombre", *filas[0].Campo)
}

func TestModificaciones_SinCambios(t *testing.T) {
	antes := map[string]string{"nombre": "Igual"}
	despues := map[string]string{"nombre": "Igual"}

	filas := audit.Modificaciones("expedientes", testRegistroID, testUsuarioID, antes, despues)
	assert.Empty(t, filas)
}

// Un campo que no existía antes registra el vacío como valor anterior.
func TestModificaciones_CampoNuevo(t *testing.T) {
	antes := map[string]string{}
	despues := map[string]string{"fecha_cierre": "2026-08-01"}

	filas := audit.Modificaciones("expedientes", testRegistroID, testUsuarioID, antes, despues)
	require.Len(t, filas, 1)
	assert.Equal(t, "", *filas[0].ValorAnterior)
	assert.Equal(t, "2026-08-01", *filas[0].ValorNuevo)
}
