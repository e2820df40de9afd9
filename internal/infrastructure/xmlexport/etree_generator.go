// Package xmlexport implementa la exportación XML del archivo con etree.
//
// Esquema fijo:
//
//	<archivo generado="RFC3339" total="N">
//	  <expediente numero="...">
//	    <nombre/> <asunto/>
//	    <clasificacion> <area/> <fondo/> <seccion/> <serie/> <subserie/> </clasificacion>
//	    <fechas apertura="" cierre=""/>
//	    <volumen fojas="" legajos=""/>
//	    <disposicion valor="" plazo="" destino=""/>
//	    <estado/>
//	  </expediente>
//	</archivo>
package xmlexport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/acervo/expedientes-api/internal/application/reporte"
)

// EtreeGenerator implementa reporte.Generador usando etree.
type EtreeGenerator struct{}

// NewEtreeGenerator construye el generador.
func NewEtreeGenerator() *EtreeGenerator { return &EtreeGenerator{} }

// ContentType devuelve el MIME type del XML.
func (g *EtreeGenerator) ContentType() string { return "application/xml" }

// Extension devuelve la extensión de archivo.
func (g *EtreeGenerator) Extension() string { return "xml" }

// Generar produce el documento XML con un nodo por expediente.
func (g *EtreeGenerator) Generar(titulo string, filas []reporte.Fila) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("archivo")
	root.CreateAttr("titulo", titulo)
	root.CreateAttr("generado", time.Now().Format(time.RFC3339))
	root.CreateAttr("total", strconv.Itoa(len(filas)))

	for _, fila := range filas {
		exp := root.CreateElement("expediente")
		exp.CreateAttr("numero", fila.NumeroExpediente)
		exp.CreateElement("nombre").SetText(fila.Nombre)
		exp.CreateElement("asunto").SetText(fila.Asunto)

		clasificacion := exp.CreateElement("clasificacion")
		clasificacion.CreateElement("area").SetText(fila.Area)
		clasificacion.CreateElement("fondo").SetText(fila.Fondo)
		clasificacion.CreateElement("seccion").SetText(fila.Seccion)
		clasificacion.CreateElement("serie").SetText(fila.Serie)
		if fila.Subserie != "" {
			clasificacion.CreateElement("subserie").SetText(fila.Subserie)
		}

		fechas := exp.CreateElement("fechas")
		fechas.CreateAttr("apertura", fila.FechaApertura)
		if fila.FechaCierre != "" {
			fechas.CreateAttr("cierre", fila.FechaCierre)
		}

		volumen := exp.CreateElement("volumen")
		volumen.CreateAttr("fojas", strconv.Itoa(fila.NumeroFojas))
		volumen.CreateAttr("legajos", strconv.Itoa(fila.NumeroLegajos))

		disposicion := exp.CreateElement("disposicion")
		disposicion.CreateAttr("valor", fila.ValorDocumental)
		disposicion.CreateAttr("plazo", strconv.Itoa(fila.PlazoConservacion))
		disposicion.CreateAttr("destino", fila.DestinoFinal)

		exp.CreateElement("estado").SetText(fila.Estado)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar documento: %w", err)
	}
	return out, nil
}
