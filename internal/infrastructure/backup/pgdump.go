// Package backup ejecuta pg_dump para los respaldos de la base de datos.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PgDump implementa respaldo.Ejecutor invocando el binario pg_dump.
type PgDump struct {
	bin string // ruta del binario, "pg_dump" si está en PATH
	dsn string
}

// NewPgDump construye el ejecutor.
func NewPgDump(bin, dsn string) *PgDump {
	if bin == "" {
		bin = "pg_dump"
	}
	return &PgDump{bin: bin, dsn: dsn}
}

// Ejecutar corre pg_dump en formato plain hacia el archivo destino. El stderr
// del proceso se incorpora al error para que quede en el registro del respaldo.
func (p *PgDump) Ejecutar(ctx context.Context, destino string) error {
	cmd := exec.CommandContext(ctx, p.bin,
		"--dbname", p.dsn,
		"--file", destino,
		"--format", "plain",
		"--no-owner",
		"--no-privileges",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detalle := strings.TrimSpace(stderr.String())
		if detalle != "" {
			return fmt.Errorf("pg_dump: %w: %s", err, detalle)
		}
		return fmt.Errorf("pg_dump: %w", err)
	}
	return nil
}
