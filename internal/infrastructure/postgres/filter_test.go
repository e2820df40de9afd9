package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder_SinPredicados(t *testing.T) {
	var b WhereBuilder
	assert.Empty(t, b.Clause(), "sin predicados no debe emitir WHERE")
	assert.Empty(t, b.Args())
}

func TestWhereBuilder_ReescribeMarcadoresPosicionales(t *testing.T) {
	var b WhereBuilder
	b.Agregar("area_id = ?", "a1")
	b.Agregar("estado = ?", "activo")

	assert.Equal(t, " WHERE area_id = $1 AND estado = $2", b.Clause())
	assert.Equal(t, []any{"a1", "activo"}, b.Args())
}

func TestWhereBuilder_VariosMarcadoresEnUnPredicado(t *testing.T) {
	var b WhereBuilder
	b.Agregar("activo = ?", true)
	b.Agregar("fecha_apertura BETWEEN ? AND ?", "2026-01-01", "2026-12-31")

	assert.Equal(t, " WHERE activo = $1 AND fecha_apertura BETWEEN $2 AND $3", b.Clause())
	assert.Len(t, b.Args(), 3)
}

func TestWhereBuilder_AgregarBusqueda(t *testing.T) {
	var b WhereBuilder
	b.Agregar("estado = ?", "activo")
	b.AgregarBusqueda("contrato", "numero_expediente", "nombre", "asunto")

	assert.Equal(t,
		" WHERE estado = $1 AND (numero_expediente ILIKE $2 OR nombre ILIKE $2 OR asunto ILIKE $2)",
		b.Clause())
	assert.Equal(t, []any{"activo", "%contrato%"}, b.Args())
}

func TestWhereBuilder_AgregarBusquedaVacia_NoAgrega(t *testing.T) {
	var b WhereBuilder
	b.AgregarBusqueda("", "nombre")
	b.AgregarBusqueda("algo")

	assert.Empty(t, b.Clause())
}

func TestWhereBuilder_NextPosYArgsCon(t *testing.T) {
	var b WhereBuilder
	b.Agregar("estado = ?", "activo")

	// LIMIT/OFFSET van después de los predicados
	assert.Equal(t, "$2", b.NextPos(1))
	assert.Equal(t, "$3", b.NextPos(2))
	assert.Equal(t, []any{"activo", 20, 40}, b.ArgsCon(20, 40))
}
