package entity

import "time"

// Niveles del cuadro de clasificación archivística.
// Jerarquía fija de cuatro niveles: Fondo → Sección → Serie → Subserie.
// Las Áreas son unidades administrativas, paralelas al cuadro.
const (
	NivelArea     = "area"
	NivelFondo    = "fondo"
	NivelSeccion  = "seccion"
	NivelSerie    = "serie"
	NivelSubserie = "subserie"
)

// Area unidad administrativa productora de expedientes.
type Area struct {
	ID        string
	Codigo    string
	Nombre    string
	Orden     int
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fondo nivel superior del cuadro de clasificación.
type Fondo struct {
	ID        string
	Codigo    string
	Nombre    string
	Orden     int
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Seccion segundo nivel, pertenece a un Fondo.
type Seccion struct {
	ID        string
	FondoID   string
	Codigo    string
	Nombre    string
	Orden     int
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Serie tercer nivel, pertenece a una Sección.
type Serie struct {
	ID        string
	SeccionID string
	Codigo    string
	Nombre    string
	Orden     int
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subserie cuarto nivel (opcional en los expedientes), pertenece a una Serie.
type Subserie struct {
	ID        string
	SerieID   string
	Codigo    string
	Nombre    string
	Orden     int
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
