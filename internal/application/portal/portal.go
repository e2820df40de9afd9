// Package portal envía expedientes al portal gubernamental externo. El envío
// real (navegador headless) queda detrás del puerto Submitter; aquí vive la
// orquestación por registro con reintentos acotados. No hay transaccionalidad
// entre registros: cada uno reporta su propio resultado.
package portal

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
	"github.com/acervo/expedientes-api/pkg/logger"
)

// Espera base entre reintentos; crece linealmente por intento.
const backoffBase = 2 * time.Second

// Registro datos de un expediente tal como los espera el formulario del portal.
type Registro struct {
	NumeroExpediente string
	Nombre           string
	Asunto           string
	FechaApertura    string // "2006-01-02"
	NumeroFojas      int
	NumeroLegajos    int
	Estado           string
}

// Submitter envía un registro al portal. Lo implementa portal.Navegador
// (chromedp) en infraestructura.
type Submitter interface {
	Enviar(ctx context.Context, r Registro) error
}

// PortalUseCase orquesta el envío por lotes con reintentos por registro.
type PortalUseCase struct {
	expedientes repository.ExpedienteRepository
	submitter   Submitter
	maxRetries  int
	log         *logger.Logger
}

// NewPortalUseCase construye el caso de uso.
func NewPortalUseCase(expedientes repository.ExpedienteRepository, submitter Submitter, maxRetries int, log *logger.Logger) *PortalUseCase {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &PortalUseCase{expedientes: expedientes, submitter: submitter, maxRetries: maxRetries, log: log}
}

// EnviarIDs envía los expedientes indicados, uno por uno. Un id inexistente o
// dado de baja cuenta como fallo de ese registro, no del lote.
func (uc *PortalUseCase) EnviarIDs(ctx context.Context, ids []string) (*dto.EnvioPortalResponse, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	resp := &dto.EnvioPortalResponse{}
	for _, id := range ids {
		exp, err := uc.expedientes.GetByID(ctx, id)
		switch {
		case err != nil:
			return nil, err
		case exp == nil:
			agregar(resp, id, domain.ErrNotFound)
		case exp.Estado == entity.EstadoBaja:
			agregar(resp, id, domain.ErrNoEditable)
		default:
			agregar(resp, id, uc.enviarConReintentos(ctx, exp))
		}
	}
	return resp, nil
}

// EnviarCSV lee números de expediente de un CSV (primera columna; cabecera
// opcional "numero_expediente") y los envía. Acepta CSV en latin-1: si el
// contenido no es UTF-8 válido se decodifica como ISO 8859-1.
func (uc *PortalUseCase) EnviarCSV(ctx context.Context, r io.Reader) (*dto.EnvioPortalResponse, error) {
	numeros, err := leerNumeros(r)
	if err != nil {
		return nil, err
	}
	if len(numeros) == 0 {
		return nil, domain.ErrInvalidInput
	}

	resp := &dto.EnvioPortalResponse{}
	for _, numero := range numeros {
		exp, err := uc.expedientes.GetByNumero(ctx, numero)
		switch {
		case err != nil:
			return nil, err
		case exp == nil:
			agregar(resp, numero, domain.ErrNotFound)
		case exp.Estado == entity.EstadoBaja:
			agregar(resp, exp.ID, domain.ErrNoEditable)
		default:
			agregar(resp, exp.ID, uc.enviarConReintentos(ctx, exp))
		}
	}
	return resp, nil
}

// enviarConReintentos intenta el envío hasta maxRetries veces con backoff
// lineal, respetando la cancelación del contexto.
func (uc *PortalUseCase) enviarConReintentos(ctx context.Context, exp *entity.Expediente) error {
	reg := Registro{
		NumeroExpediente: exp.NumeroExpediente,
		Nombre:           exp.Nombre,
		Asunto:           exp.Asunto,
		FechaApertura:    exp.FechaApertura.Format("2006-01-02"),
		NumeroFojas:      exp.NumeroFojas,
		NumeroLegajos:    exp.NumeroLegajos,
		Estado:           exp.Estado,
	}

	var err error
	for intento := 1; intento <= uc.maxRetries; intento++ {
		if err = uc.submitter.Enviar(ctx, reg); err == nil {
			return nil
		}
		uc.log.Warn().Err(err).Str("numero", reg.NumeroExpediente).Int("intento", intento).Msg("envío al portal falló")
		if intento == uc.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(intento) * backoffBase):
		}
	}
	return err
}

// leerNumeros parsea el CSV tolerando latin-1 y filas de ancho variable.
func leerNumeros(r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		raw, err = io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
		if err != nil {
			return nil, err
		}
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var numeros []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		if len(row) == 0 {
			continue
		}
		numero := strings.TrimSpace(row[0])
		if numero == "" || strings.EqualFold(numero, "numero_expediente") {
			continue
		}
		numeros = append(numeros, numero)
	}
	return numeros, nil
}

// agregar registra el resultado de un registro en la respuesta del lote.
func agregar(resp *dto.EnvioPortalResponse, id string, err error) {
	res := dto.ResultadoEnvio{ExpedienteID: id, Exito: err == nil}
	if err != nil {
		res.Error = err.Error()
		resp.Fallidos++
	} else {
		resp.Exitosos++
	}
	resp.Resultados = append(resp.Resultados, res)
}
