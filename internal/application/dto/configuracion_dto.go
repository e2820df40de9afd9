package dto

import "time"

// ConfiguracionResponse una entrada de configuración del sistema.
type ConfiguracionResponse struct {
	Clave       string    `json:"clave"`
	Valor       string    `json:"valor"`
	Tipo        string    `json:"tipo"`
	Descripcion string    `json:"descripcion"`
	Editable    bool      `json:"editable"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateConfiguracionRequest nuevo valor para una clave editable.
type UpdateConfiguracionRequest struct {
	Valor string `json:"valor"`
}
