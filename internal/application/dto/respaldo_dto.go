package dto

import "time"

// RespaldoResponse registro de una ejecución de respaldo.
type RespaldoResponse struct {
	ID            string     `json:"id"`
	NombreArchivo string     `json:"archivo"`
	Tipo          string     `json:"tipo"`
	Estado        string     `json:"estado"`
	Tamano        int64      `json:"tamano"`
	MensajeError  *string    `json:"mensaje_error,omitempty"`
	CreadoPor     string     `json:"creado_por"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// RespaldoListResponse página de respaldos.
type RespaldoListResponse struct {
	Data       []RespaldoResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}
