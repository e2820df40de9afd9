package entity

import "time"

// Documento metadatos de un archivo digitalizado adscrito a un Expediente.
// El archivo físico vive en disco bajo NombreArchivo (nombre generado, sin colisiones);
// Nombre conserva el nombre original que subió el usuario.
type Documento struct {
	ID             string
	ExpedienteID   string
	Nombre         string
	Tipo           string // MIME type
	FechaDocumento time.Time
	NumeroFojas    int
	NombreArchivo  string // nombre de almacenamiento en disco
	Tamano         int64  // bytes
	Checksum       string // SHA-256 del contenido
	SubidoPor      string
	CreatedAt      time.Time
}
