package entity

import "time"

// Tipos de cambio registrados en el historial.
const (
	CambioCreacion     = "creacion"
	CambioModificacion = "modificacion"
	CambioEliminacion  = "eliminacion"
	CambioAcceso       = "acceso" // último acceso en login, best-effort
)

// HistorialCambio es una fila de la bitácora de auditoría: quién cambió qué.
// Append-only; nunca se modifica. Solo la depuración por retención las elimina.
// En modificaciones se registra una fila por campo con el valor antes/después.
type HistorialCambio struct {
	ID            string
	Tabla         string
	RegistroID    string
	UsuarioID     string
	TipoCambio    string // creacion, modificacion, eliminacion, acceso
	Campo         *string
	ValorAnterior *string
	ValorNuevo    *string
	CreatedAt     time.Time
}
