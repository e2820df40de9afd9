// Package audit define el contrato transaccional de las mutaciones y los
// constructores de filas de bitácora. Toda mutación administrativa corre en
// una transacción que incluye sus filas de auditoría: si la bitácora falla,
// la mutación se revierte. La única escritura best-effort es el último acceso
// en login, que va fuera de transacción.
package audit

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Usuarios      repository.UsuarioRepository
	Expedientes   repository.ExpedienteRepository
	Catalogo      repository.CatalogoRepository
	Documentos    repository.DocumentoRepository
	Configuracion repository.ConfiguracionRepository
	Historial     repository.HistorialRepository
}

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// Creacion construye la fila de bitácora de un alta.
func Creacion(tabla, registroID, usuarioID string) *entity.HistorialCambio {
	return fila(tabla, registroID, usuarioID, entity.CambioCreacion, nil, nil, nil)
}

// Eliminacion construye la fila de bitácora de una baja (lógica o física).
func Eliminacion(tabla, registroID, usuarioID string) *entity.HistorialCambio {
	return fila(tabla, registroID, usuarioID, entity.CambioEliminacion, nil, nil, nil)
}

// Modificaciones construye una fila por campo cambiado, comparando el registro
// previo contra los campos enviados. Las claves de ambos mapas son nombres de
// columna; solo se consideran las claves presentes en despues (update parcial).
// Devuelve las filas ordenadas por campo para que la bitácora sea determinista.
func Modificaciones(tabla, registroID, usuarioID string, antes, despues map[string]string) []*entity.HistorialCambio {
	campos := make([]string, 0, len(despues))
	for campo := range despues {
		campos = append(campos, campo)
	}
	sort.Strings(campos)

	var out []*entity.HistorialCambio
	for _, campo := range campos {
		nuevo := despues[campo]
		anterior := antes[campo]
		if nuevo == anterior {
			continue
		}
		c, a, n := campo, anterior, nuevo
		out = append(out, fila(tabla, registroID, usuarioID, entity.CambioModificacion, &c, &a, &n))
	}
	return out
}

// UltimoAcceso construye la fila best-effort del login.
func UltimoAcceso(usuarioID string) *entity.HistorialCambio {
	return fila("usuarios", usuarioID, usuarioID, entity.CambioAcceso, nil, nil, nil)
}

// RegistrarTodos inserta todas las filas en el repositorio dado.
func RegistrarTodos(ctx context.Context, repo repository.HistorialRepository, filas []*entity.HistorialCambio) error {
	for _, h := range filas {
		if err := repo.Create(ctx, h); err != nil {
			return err
		}
	}
	return nil
}

func fila(tabla, registroID, usuarioID, tipo string, campo, anterior, nuevo *string) *entity.HistorialCambio {
	return &entity.HistorialCambio{
		ID:            uuid.New().String(),
		Tabla:         tabla,
		RegistroID:    registroID,
		UsuarioID:     usuarioID,
		TipoCambio:    tipo,
		Campo:         campo,
		ValorAnterior: anterior,
		ValorNuevo:    nuevo,
		CreatedAt:     time.Now(),
	}
}
