package dto

import "time"

// HistorialResponse una fila de la bitácora de auditoría.
type HistorialResponse struct {
	ID            string    `json:"id"`
	Tabla         string    `json:"tabla"`
	RegistroID    string    `json:"registro_id"`
	UsuarioID     string    `json:"usuario_id"`
	TipoCambio    string    `json:"tipo_cambio"`
	Campo         *string   `json:"campo,omitempty"`
	ValorAnterior *string   `json:"valor_anterior,omitempty"`
	ValorNuevo    *string   `json:"valor_nuevo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistorialListResponse página de auditoría.
type HistorialListResponse struct {
	Data       []HistorialResponse `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// DepurarResponse resultado de la depuración por retención.
type DepurarResponse struct {
	Eliminados int64 `json:"eliminados"`
}
