package postgres

import (
	"fmt"
	"strings"
)

// WhereBuilder acumula predicados WHERE con argumentos posicionales.
// Cada listado filtrado construye su cláusula agregando predicados solo cuando
// el filtro correspondiente viene presente; los '?' de cada expresión se
// reescriben a $N según la posición del argumento. Evita el empalme de strings
// con valores del usuario: todo valor viaja como parámetro.
type WhereBuilder struct {
	conds []string
	args  []any
}

// Agregar añade un predicado. expr usa '?' como marcador por cada argumento.
//
//	b.Agregar("area_id = ?", areaID)
//	b.Agregar("fecha_apertura BETWEEN ? AND ?", ini, fin)
func (b *WhereBuilder) Agregar(expr string, args ...any) {
	for _, a := range args {
		b.args = append(b.args, a)
		expr = strings.Replace(expr, "?", fmt.Sprintf("$%d", len(b.args)), 1)
	}
	b.conds = append(b.conds, expr)
}

// AgregarBusqueda añade un predicado ILIKE '%q%' sobre varias columnas (OR).
func (b *WhereBuilder) AgregarBusqueda(q string, columnas ...string) {
	if q == "" || len(columnas) == 0 {
		return
	}
	b.args = append(b.args, "%"+q+"%")
	pos := fmt.Sprintf("$%d", len(b.args))
	parts := make([]string, len(columnas))
	for i, col := range columnas {
		parts[i] = col + " ILIKE " + pos
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
}

// Clause devuelve " WHERE ..." o cadena vacía si no hay predicados.
func (b *WhereBuilder) Clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args devuelve los argumentos acumulados en orden posicional.
func (b *WhereBuilder) Args() []any {
	return b.args
}

// ArgsCon devuelve los argumentos más extras al final (para LIMIT/OFFSET).
func (b *WhereBuilder) ArgsCon(extras ...any) []any {
	out := make([]any, 0, len(b.args)+len(extras))
	out = append(out, b.args...)
	out = append(out, extras...)
	return out
}

// NextPos devuelve el marcador posicional siguiente ($N) sin consumirlo.
// Útil para armar LIMIT $N OFFSET $N+1 tras los predicados.
func (b *WhereBuilder) NextPos(offset int) string {
	return fmt.Sprintf("$%d", len(b.args)+offset)
}
