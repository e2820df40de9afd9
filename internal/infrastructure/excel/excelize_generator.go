// Package excel implementa el reporte de expedientes en XLSX con excelize.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/acervo/expedientes-api/internal/application/reporte"
)

const nombreHoja = "Expedientes"

var encabezados = []string{
	"N° Expediente", "Nombre", "Asunto", "Área", "Fondo", "Sección", "Serie",
	"Subserie", "Fecha apertura", "Fecha cierre", "Fojas", "Legajos",
	"Valor documental", "Plazo (años)", "Destino final", "Estado",
}

// ExcelizeGenerator implementa reporte.Generador usando excelize.
type ExcelizeGenerator struct{}

// NewExcelizeGenerator construye el generador.
func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

// ContentType devuelve el MIME type del XLSX.
func (g *ExcelizeGenerator) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension devuelve la extensión de archivo.
func (g *ExcelizeGenerator) Extension() string { return "xlsx" }

// Generar produce el libro con una hoja: fila de título, fila de encabezados
// en negrita y una fila por expediente.
func (g *ExcelizeGenerator) Generar(titulo string, filas []reporte.Fila) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	hoja, err := f.NewSheet(nombreHoja)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(hoja)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: eliminar hoja por defecto: %w", err)
	}

	estiloTitulo, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo título: %w", err)
	}
	estiloEncabezado, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"462D14"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo encabezado: %w", err)
	}

	if err := f.SetCellValue(nombreHoja, "A1", titulo); err != nil {
		return nil, fmt.Errorf("excel: escribir título: %w", err)
	}
	if err := f.SetCellStyle(nombreHoja, "A1", "A1", estiloTitulo); err != nil {
		return nil, fmt.Errorf("excel: aplicar estilo de título: %w", err)
	}

	for i, encabezado := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(nombreHoja, celda, encabezado); err != nil {
			return nil, fmt.Errorf("excel: escribir encabezado: %w", err)
		}
	}
	primera, _ := excelize.CoordinatesToCellName(1, 2)
	ultima, _ := excelize.CoordinatesToCellName(len(encabezados), 2)
	if err := f.SetCellStyle(nombreHoja, primera, ultima, estiloEncabezado); err != nil {
		return nil, fmt.Errorf("excel: aplicar estilo de encabezado: %w", err)
	}

	for i, fila := range filas {
		valores := []interface{}{
			fila.NumeroExpediente, fila.Nombre, fila.Asunto, fila.Area,
			fila.Fondo, fila.Seccion, fila.Serie, fila.Subserie,
			fila.FechaApertura, fila.FechaCierre, fila.NumeroFojas,
			fila.NumeroLegajos, fila.ValorDocumental, fila.PlazoConservacion,
			fila.DestinoFinal, fila.Estado,
		}
		for j, valor := range valores {
			celda, _ := excelize.CoordinatesToCellName(j+1, i+3)
			if err := f.SetCellValue(nombreHoja, celda, valor); err != nil {
				return nil, fmt.Errorf("excel: escribir fila %d: %w", i+1, err)
			}
		}
	}

	// Anchos razonables para las columnas de texto largo.
	if err := f.SetColWidth(nombreHoja, "A", "C", 28); err != nil {
		return nil, fmt.Errorf("excel: ajustar anchos: %w", err)
	}
	if err := f.SetColWidth(nombreHoja, "D", "H", 20); err != nil {
		return nil, fmt.Errorf("excel: ajustar anchos: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
