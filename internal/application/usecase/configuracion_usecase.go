package usecase

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/acervo/expedientes-api/internal/application/audit"
	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

// ConfiguracionUseCase configuración clave-valor del sistema. Solo las claves
// editables aceptan cambios, y el valor debe ser válido para el tipo declarado.
type ConfiguracionUseCase struct {
	repo repository.ConfiguracionRepository
	tx   audit.TxRunner
}

// NewConfiguracionUseCase construye el caso de uso.
func NewConfiguracionUseCase(repo repository.ConfiguracionRepository, tx audit.TxRunner) *ConfiguracionUseCase {
	return &ConfiguracionUseCase{repo: repo, tx: tx}
}

// List devuelve todas las entradas de configuración.
func (uc *ConfiguracionUseCase) List(ctx context.Context) ([]dto.ConfiguracionResponse, error) {
	entradas, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConfiguracionResponse, 0, len(entradas))
	for _, c := range entradas {
		out = append(out, toConfiguracionResponse(c))
	}
	return out, nil
}

// Update cambia el valor de una clave editable, validando contra su tipo.
func (uc *ConfiguracionUseCase) Update(ctx context.Context, actorID, clave string, in dto.UpdateConfiguracionRequest) (*dto.ConfiguracionResponse, error) {
	cfg, err := uc.repo.GetByClave(ctx, clave)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, domain.ErrNotFound
	}
	if !cfg.Editable {
		return nil, domain.ErrNoEditable
	}
	if !valorValido(cfg.Tipo, in.Valor) {
		return nil, domain.ErrInvalidInput
	}

	antes := map[string]string{"valor": cfg.Valor}
	despues := map[string]string{"valor": in.Valor}
	cfg.Valor = in.Valor

	err = uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Configuracion.UpdateValor(ctx, clave, in.Valor); err != nil {
			return err
		}
		filas := audit.Modificaciones("configuracion_sistema", cfg.ID, actorID, antes, despues)
		return audit.RegistrarTodos(ctx, repos.Historial, filas)
	})
	if err != nil {
		return nil, err
	}
	resp := toConfiguracionResponse(cfg)
	return &resp, nil
}

// valorValido verifica que el valor sea representable en el tipo declarado.
func valorValido(tipo, valor string) bool {
	switch tipo {
	case entity.ConfigTexto:
		return true
	case entity.ConfigNumero:
		_, err := strconv.ParseFloat(valor, 64)
		return err == nil
	case entity.ConfigBooleano:
		return valor == "true" || valor == "false"
	case entity.ConfigJSON:
		return json.Valid([]byte(valor))
	}
	return false
}

func toConfiguracionResponse(c *entity.ConfiguracionSistema) dto.ConfiguracionResponse {
	return dto.ConfiguracionResponse{
		Clave:       c.Clave,
		Valor:       c.Valor,
		Tipo:        c.Tipo,
		Descripcion: c.Descripcion,
		Editable:    c.Editable,
		UpdatedAt:   c.UpdatedAt,
	}
}
