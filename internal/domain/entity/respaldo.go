package entity

import "time"

// Tipos y estados de un Respaldo de la base de datos.
const (
	RespaldoManual     = "manual"
	RespaldoProgramado = "programado"

	RespaldoEnProceso  = "en_proceso"
	RespaldoCompletado = "completado"
	RespaldoFallido    = "fallido"
)

// Respaldo registro de una ejecución de respaldo (pg_dump).
// La ejecución es fire-and-forget: el registro nace en_proceso y un goroutine
// lo marca completado o fallido al terminar.
type Respaldo struct {
	ID            string
	NombreArchivo string
	Tipo          string // manual, programado
	Estado        string // en_proceso, completado, fallido
	Tamano        int64  // bytes del archivo generado
	MensajeError  *string
	CreadoPor     string
	CreatedAt     time.Time
	CompletedAt   *time.Time
}
