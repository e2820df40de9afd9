package dto

import "time"

// CreateExpedienteRequest entrada para crear un expediente.
// Las fechas viajan como "2006-01-02".
type CreateExpedienteRequest struct {
	NumeroExpediente  string  `json:"numero_expediente"`
	Nombre            string  `json:"nombre"`
	Asunto            string  `json:"asunto"`
	AreaID            string  `json:"area_id"`
	FondoID           string  `json:"fondo_id"`
	SeccionID         string  `json:"seccion_id"`
	SerieID           string  `json:"serie_id"`
	SubserieID        *string `json:"subserie_id"`
	FechaApertura     string  `json:"fecha_apertura"`
	NumeroFojas       int     `json:"numero_fojas"`
	NumeroLegajos     int     `json:"numero_legajos"`
	ValorDocumental   string  `json:"valor_documental"`
	PlazoConservacion int     `json:"plazo_conservacion"`
	DestinoFinal      string  `json:"destino_final"`
}

// UpdateExpedienteRequest entrada parcial: solo los campos no nil se aplican.
type UpdateExpedienteRequest struct {
	Nombre            *string `json:"nombre"`
	Asunto            *string `json:"asunto"`
	AreaID            *string `json:"area_id"`
	SerieID           *string `json:"serie_id"`
	SubserieID        *string `json:"subserie_id"`
	FechaCierre       *string `json:"fecha_cierre"` // "2006-01-02"
	NumeroFojas       *int    `json:"numero_fojas"`
	NumeroLegajos     *int    `json:"numero_legajos"`
	ValorDocumental   *string `json:"valor_documental"`
	PlazoConservacion *int    `json:"plazo_conservacion"`
	DestinoFinal      *string `json:"destino_final"`
	Estado            *string `json:"estado"`
}

// ExpedienteResponse salida de un expediente.
type ExpedienteResponse struct {
	ID                string     `json:"id"`
	NumeroExpediente  string     `json:"numero_expediente"`
	Nombre            string     `json:"nombre"`
	Asunto            string     `json:"asunto"`
	AreaID            string     `json:"area_id"`
	FondoID           string     `json:"fondo_id"`
	SeccionID         string     `json:"seccion_id"`
	SerieID           string     `json:"serie_id"`
	SubserieID        *string    `json:"subserie_id"`
	FechaApertura     time.Time  `json:"fecha_apertura"`
	FechaCierre       *time.Time `json:"fecha_cierre"`
	NumeroFojas       int        `json:"numero_fojas"`
	NumeroLegajos     int        `json:"numero_legajos"`
	ValorDocumental   string     `json:"valor_documental"`
	PlazoConservacion int        `json:"plazo_conservacion"`
	DestinoFinal      string     `json:"destino_final"`
	Estado            string     `json:"estado"`
	CreadoPor         string     `json:"creado_por"`
	ActualizadoPor    *string    `json:"actualizado_por"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ExpedienteListResponse página de expedientes.
type ExpedienteListResponse struct {
	Data       []ExpedienteResponse `json:"data"`
	Pagination Pagination           `json:"pagination"`
}
