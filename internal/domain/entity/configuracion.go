package entity

import "time"

// Tipos de valor para ConfiguracionSistema.
const (
	ConfigTexto    = "texto"
	ConfigNumero   = "numero"
	ConfigBooleano = "booleano"
	ConfigJSON     = "json"
)

// ConfiguracionSistema una entrada clave-valor tipada de configuración.
// Las entradas con Editable=false solo pueden cambiarse por seed o migración.
type ConfiguracionSistema struct {
	ID          string
	Clave       string
	Valor       string
	Tipo        string // texto, numero, booleano, json
	Descripcion string
	Editable    bool
	UpdatedAt   time.Time
}
