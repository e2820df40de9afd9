package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acervo/expedientes-api/internal/application/audit"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

var _ audit.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Todas las mutaciones administrativas pasan por aquí: escritura de negocio y
// filas de auditoría comparten la transacción, y cualquier error revierte ambas.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos audit.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := audit.TxRepos{
		Usuarios:      NewUsuarioRepository(tx),
		Expedientes:   NewExpedienteRepository(tx),
		Catalogo:      NewCatalogoRepository(tx),
		Documentos:    NewDocumentoRepository(tx),
		Configuracion: NewConfiguracionRepository(tx),
		Historial:     NewHistorialRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Compile-time: los repos atados a tx implementan sus puertos.
var (
	_ repository.UsuarioRepository       = (*UsuarioRepo)(nil)
	_ repository.ExpedienteRepository    = (*ExpedienteRepo)(nil)
	_ repository.CatalogoRepository      = (*CatalogoRepo)(nil)
	_ repository.DocumentoRepository     = (*DocumentoRepo)(nil)
	_ repository.ConfiguracionRepository = (*ConfiguracionRepo)(nil)
	_ repository.HistorialRepository     = (*HistorialRepo)(nil)
)
