package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/acervo/expedientes-api/internal/application/audit"
	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
	"github.com/acervo/expedientes-api/pkg/jwt"
	"github.com/acervo/expedientes-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// AuthUseCase caso de uso de autenticación: login con JWT de 24 horas.
// No hay refresh token ni lista de revocación: revocar es desactivar la cuenta,
// que el middleware verifica en cada petición.
type AuthUseCase struct {
	usuarioRepo   repository.UsuarioRepository
	historialRepo repository.HistorialRepository
	jwtCfg        JWTConfig
	log           *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, historialRepo repository.HistorialRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, historialRepo: historialRepo, jwtCfg: jwtCfg, log: log}
}

// Login verifica email (en minúsculas) y password, valida que la cuenta esté
// activa y genera el JWT. El registro de último acceso es best-effort: un fallo
// ahí se loguea pero nunca tumba el login.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.usuarioRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrCuentaInactiva
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
	if err != nil {
		return nil, err
	}

	if err := uc.historialRepo.Create(ctx, audit.UltimoAcceso(user.ID)); err != nil {
		uc.log.Warn().Err(err).Str("usuario_id", user.ID).Msg("registro de último acceso falló")
	}

	return &dto.LoginResponse{
		Token: token,
		User:  *toUsuarioResponse(user),
	}, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		AreaID:    u.AreaID,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
