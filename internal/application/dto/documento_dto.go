package dto

import "time"

// DocumentoResponse metadatos de un documento digitalizado.
type DocumentoResponse struct {
	ID             string    `json:"id"`
	ExpedienteID   string    `json:"expediente_id"`
	Nombre         string    `json:"nombre"`
	Tipo           string    `json:"tipo"`
	FechaDocumento time.Time `json:"fecha_documento"`
	NumeroFojas    int       `json:"numero_fojas"`
	NombreArchivo  string    `json:"archivo"`
	Tamano         int64     `json:"tamano"`
	Checksum       string    `json:"checksum"`
	SubidoPor      string    `json:"subido_por"`
	CreatedAt      time.Time `json:"created_at"`
}

// DocumentoListResponse documentos de un expediente.
type DocumentoListResponse struct {
	Data []DocumentoResponse `json:"data"`
}
