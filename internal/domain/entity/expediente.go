package entity

import "time"

// Estados de un Expediente. La baja es lógica: el registro queda con estado "baja"
// y se excluye de listados y reportes, pero sigue recuperable por ID.
const (
	EstadoActivo      = "activo"
	EstadoCerrado     = "cerrado"
	EstadoTransferido = "transferido"
	EstadoBaja        = "baja"
)

// EstadoValido indica si el estado es uno de los cuatro soportados.
func EstadoValido(estado string) bool {
	switch estado {
	case EstadoActivo, EstadoCerrado, EstadoTransferido, EstadoBaja:
		return true
	}
	return false
}

// Valores documentales admitidos (pueden combinarse separados por coma).
const (
	ValorAdministrativo = "administrativo"
	ValorLegal          = "legal"
	ValorFiscal         = "fiscal"
	ValorContable       = "contable"
)

// Destinos finales al vencer el plazo de conservación.
const (
	DestinoConservacion = "conservacion"
	DestinoTransferencia = "transferencia"
	DestinoBajaDocumental = "baja"
)

// Expediente es la unidad central del archivo: un caso con su clasificación
// archivística, fechas de apertura/cierre y valores de disposición documental.
// NumeroExpediente es único en todo el sistema.
type Expediente struct {
	ID                string
	NumeroExpediente  string
	Nombre            string
	Asunto            string
	AreaID            string
	FondoID           string
	SeccionID         string
	SerieID           string
	SubserieID        *string
	FechaApertura     time.Time
	FechaCierre       *time.Time
	NumeroFojas       int
	NumeroLegajos     int
	ValorDocumental   string
	PlazoConservacion int // años
	DestinoFinal      string
	Estado            string
	CreadoPor         string
	ActualizadoPor    *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
