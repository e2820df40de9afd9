// seed crea el esquema de la base de datos y los datos iniciales: el usuario
// administrador, un cuadro de clasificación mínimo y las claves de
// configuración del sistema. Es idempotente: todo va con IF NOT EXISTS u
// ON CONFLICT DO NOTHING.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/infrastructure/postgres"
	"github.com/acervo/expedientes-api/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS areas (
	id         UUID PRIMARY KEY,
	codigo     TEXT NOT NULL UNIQUE,
	nombre     TEXT NOT NULL,
	orden      INT NOT NULL DEFAULT 0,
	activo     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS fondos (
	id         UUID PRIMARY KEY,
	codigo     TEXT NOT NULL UNIQUE,
	nombre     TEXT NOT NULL,
	orden      INT NOT NULL DEFAULT 0,
	activo     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS secciones (
	id         UUID PRIMARY KEY,
	fondo_id   UUID NOT NULL REFERENCES fondos(id),
	codigo     TEXT NOT NULL,
	nombre     TEXT NOT NULL,
	orden      INT NOT NULL DEFAULT 0,
	activo     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (fondo_id, codigo)
);

CREATE TABLE IF NOT EXISTS series (
	id         UUID PRIMARY KEY,
	seccion_id UUID NOT NULL REFERENCES secciones(id),
	codigo     TEXT NOT NULL,
	nombre     TEXT NOT NULL,
	orden      INT NOT NULL DEFAULT 0,
	activo     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (seccion_id, codigo)
);

CREATE TABLE IF NOT EXISTS subseries (
	id         UUID PRIMARY KEY,
	serie_id   UUID NOT NULL REFERENCES series(id),
	codigo     TEXT NOT NULL,
	nombre     TEXT NOT NULL,
	orden      INT NOT NULL DEFAULT 0,
	activo     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (serie_id, codigo)
);

CREATE TABLE IF NOT EXISTS usuarios (
	id            UUID PRIMARY KEY,
	nombre        TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	rol           TEXT NOT NULL CHECK (rol IN ('admin', 'usuario', 'consulta')),
	area_id       UUID REFERENCES areas(id),
	activo        BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS expedientes (
	id                 UUID PRIMARY KEY,
	numero_expediente  TEXT NOT NULL UNIQUE,
	nombre             TEXT NOT NULL,
	asunto             TEXT NOT NULL DEFAULT '',
	area_id            UUID NOT NULL REFERENCES areas(id),
	fondo_id           UUID NOT NULL REFERENCES fondos(id),
	seccion_id         UUID NOT NULL REFERENCES secciones(id),
	serie_id           UUID NOT NULL REFERENCES series(id),
	subserie_id        UUID REFERENCES subseries(id),
	fecha_apertura     DATE NOT NULL,
	fecha_cierre       DATE,
	numero_fojas       INT NOT NULL DEFAULT 0,
	numero_legajos     INT NOT NULL DEFAULT 1,
	valor_documental   TEXT NOT NULL DEFAULT '',
	plazo_conservacion INT NOT NULL DEFAULT 0,
	destino_final      TEXT NOT NULL DEFAULT '',
	estado             TEXT NOT NULL CHECK (estado IN ('activo', 'cerrado', 'transferido', 'baja')),
	creado_por         UUID NOT NULL REFERENCES usuarios(id),
	actualizado_por    UUID REFERENCES usuarios(id),
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_expedientes_area   ON expedientes (area_id);
CREATE INDEX IF NOT EXISTS idx_expedientes_serie  ON expedientes (serie_id);
CREATE INDEX IF NOT EXISTS idx_expedientes_estado ON expedientes (estado);

CREATE TABLE IF NOT EXISTS documentos (
	id              UUID PRIMARY KEY,
	expediente_id   UUID NOT NULL REFERENCES expedientes(id),
	nombre          TEXT NOT NULL,
	tipo            TEXT NOT NULL,
	fecha_documento DATE NOT NULL,
	numero_fojas    INT NOT NULL DEFAULT 0,
	nombre_archivo  TEXT NOT NULL,
	tamano          BIGINT NOT NULL,
	checksum        TEXT NOT NULL,
	subido_por      UUID NOT NULL REFERENCES usuarios(id),
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_documentos_expediente ON documentos (expediente_id);

CREATE TABLE IF NOT EXISTS historial_cambios (
	id             UUID PRIMARY KEY,
	tabla          TEXT NOT NULL,
	registro_id    UUID NOT NULL,
	usuario_id     UUID NOT NULL,
	tipo_cambio    TEXT NOT NULL CHECK (tipo_cambio IN ('creacion', 'modificacion', 'eliminacion', 'acceso')),
	campo          TEXT,
	valor_anterior TEXT,
	valor_nuevo    TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_historial_registro ON historial_cambios (tabla, registro_id);
CREATE INDEX IF NOT EXISTS idx_historial_fecha    ON historial_cambios (created_at);

CREATE TABLE IF NOT EXISTS configuracion_sistema (
	id          UUID PRIMARY KEY,
	clave       TEXT NOT NULL UNIQUE,
	valor       TEXT NOT NULL,
	tipo        TEXT NOT NULL CHECK (tipo IN ('texto', 'numero', 'booleano', 'json')),
	descripcion TEXT NOT NULL DEFAULT '',
	editable    BOOLEAN NOT NULL DEFAULT TRUE,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS respaldos (
	id             UUID PRIMARY KEY,
	nombre_archivo TEXT NOT NULL,
	tipo           TEXT NOT NULL CHECK (tipo IN ('manual', 'programado')),
	estado         TEXT NOT NULL CHECK (estado IN ('en_proceso', 'completado', 'fallido')),
	tamano         BIGINT NOT NULL DEFAULT 0,
	mensaje_error  TEXT,
	creado_por     UUID NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at   TIMESTAMPTZ
);
`

// Claves de configuración iniciales: clave, valor, tipo, descripción, editable.
var configuracionInicial = [][5]string{
	{"auditoria_retencion_dias", "365", "numero", "Días de retención de la bitácora de auditoría", "t"},
	{"max_upload_mb", "10", "numero", "Tamaño máximo de archivo por documento (MB)", "t"},
	{"nombre_institucion", "Archivo General", "texto", "Nombre de la institución en reportes", "t"},
	{"respaldo_automatico", "false", "booleano", "Habilitar respaldos programados", "t"},
	{"version_esquema", "1", "numero", "Versión del esquema de base de datos", "f"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "crear esquema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("esquema creado")

	// Usuario administrador inicial. Cambiar la contraseña tras el primer login.
	adminEmail := "admin@archivo.local"
	adminPassword := "admin123"
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
		os.Exit(1)
	}
	tag, err := pool.Exec(ctx, `
		INSERT INTO usuarios (id, nombre, email, password_hash, rol, activo)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), "Administrador", adminEmail, string(hash), entity.RolAdmin,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear admin: %v\n", err)
		os.Exit(1)
	}
	if tag.RowsAffected() > 0 {
		fmt.Printf("admin creado: %s / %s\n", adminEmail, adminPassword)
	} else {
		fmt.Println("admin ya existía")
	}

	// Cuadro de clasificación mínimo: un área, un fondo con una sección y una serie.
	areaID := uuid.New().String()
	fondoID := uuid.New().String()
	seccionID := uuid.New().String()

	if _, err := pool.Exec(ctx, `
		INSERT INTO areas (id, codigo, nombre, orden) VALUES ($1, 'DG', 'Dirección General', 1)
		ON CONFLICT (codigo) DO NOTHING`, areaID); err != nil {
		fmt.Fprintf(os.Stderr, "seed área: %v\n", err)
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO fondos (id, codigo, nombre, orden) VALUES ($1, 'F01', 'Fondo Institucional', 1)
		ON CONFLICT (codigo) DO NOTHING`, fondoID); err != nil {
		fmt.Fprintf(os.Stderr, "seed fondo: %v\n", err)
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO secciones (id, fondo_id, codigo, nombre, orden)
		SELECT $1, id, 'S01', 'Gestión Administrativa', 1 FROM fondos WHERE codigo = 'F01'
		ON CONFLICT (fondo_id, codigo) DO NOTHING`, seccionID); err != nil {
		fmt.Fprintf(os.Stderr, "seed sección: %v\n", err)
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO series (id, seccion_id, codigo, nombre, orden)
		SELECT $1, s.id, 'S01.01', 'Correspondencia', 1
		FROM secciones s JOIN fondos f ON f.id = s.fondo_id
		WHERE f.codigo = 'F01' AND s.codigo = 'S01'
		ON CONFLICT (seccion_id, codigo) DO NOTHING`, uuid.New().String()); err != nil {
		fmt.Fprintf(os.Stderr, "seed serie: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("cuadro de clasificación mínimo creado")

	for _, c := range configuracionInicial {
		editable := c[4] == "t"
		if _, err := pool.Exec(ctx, `
			INSERT INTO configuracion_sistema (id, clave, valor, tipo, descripcion, editable)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (clave) DO NOTHING`,
			uuid.New().String(), c[0], c[1], c[2], c[3], editable,
		); err != nil {
			fmt.Fprintf(os.Stderr, "seed configuración %s: %v\n", c[0], err)
			os.Exit(1)
		}
	}
	fmt.Println("configuración inicial creada")
}
