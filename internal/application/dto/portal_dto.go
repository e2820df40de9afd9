package dto

// EnviarPortalRequest expedientes a enviar al portal externo.
type EnviarPortalRequest struct {
	ExpedienteIDs []string `json:"expediente_ids"`
}

// ResultadoEnvio resultado por registro del envío al portal.
// No hay transaccionalidad entre registros: una corrida parcial deja
// algunos enviados y otros no, y aquí se refleja registro por registro.
type ResultadoEnvio struct {
	ExpedienteID string `json:"expediente_id"`
	Exito        bool   `json:"exito"`
	Error        string `json:"error,omitempty"`
}

// EnvioPortalResponse resumen del envío.
type EnvioPortalResponse struct {
	Resultados []ResultadoEnvio `json:"resultados"`
	Exitosos   int              `json:"exitosos"`
	Fallidos   int              `json:"fallidos"`
}
