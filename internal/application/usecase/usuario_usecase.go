package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acervo/expedientes-api/internal/application/audit"
	"github.com/acervo/expedientes-api/internal/application/dto"
	"github.com/acervo/expedientes-api/internal/domain"
	"github.com/acervo/expedientes-api/internal/domain/entity"
	"github.com/acervo/expedientes-api/internal/domain/repository"
)

// UsuarioUseCase CRUD de usuarios (solo admin). Toda mutación corre en
// transacción junto con sus filas de bitácora.
type UsuarioUseCase struct {
	repo repository.UsuarioRepository
	tx   audit.TxRunner
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(repo repository.UsuarioRepository, tx audit.TxRunner) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo, tx: tx}
}

// Create crea un usuario: hashea password y persiste con su fila de bitácora.
func (uc *UsuarioUseCase) Create(ctx context.Context, actorID string, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if !entity.RolValido(in.Rol) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.Usuario{
		ID:           uuid.New().String(),
		Nombre:       in.Nombre,
		Email:        email,
		PasswordHash: string(hash),
		Rol:          in.Rol,
		AreaID:       in.AreaID,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Usuarios.Create(ctx, user); err != nil {
			return err
		}
		return repos.Historial.Create(ctx, audit.Creacion("usuarios", user.ID, actorID))
	})
	if err != nil {
		return nil, err
	}
	return ToUsuarioResponse(user), nil
}

// GetByID obtiene un usuario. Devuelve (nil, nil) si no existe.
func (uc *UsuarioUseCase) GetByID(ctx context.Context, id string) (*dto.UsuarioResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	return ToUsuarioResponse(user), nil
}

// List devuelve la página de usuarios que satisface el filtro.
func (uc *UsuarioUseCase) List(ctx context.Context, f repository.UsuarioFiltro, page dto.PageRequest) (*dto.UsuarioListResponse, error) {
	page.Normalizar()
	users, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUsuarioResponse(u))
	}
	return &dto.UsuarioListResponse{
		Data:       out,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// Update aplica un update parcial con diff por campo en la bitácora.
func (uc *UsuarioUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	antes := map[string]string{
		"nombre": user.Nombre,
		"email":  user.Email,
		"rol":    user.Rol,
		"area_id": derefStr(user.AreaID),
		"activo": strconv.FormatBool(user.Activo),
	}
	despues := map[string]string{}

	if in.Nombre != nil {
		user.Nombre = *in.Nombre
		despues["nombre"] = user.Nombre
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		user.Email = email
		despues["email"] = email
	}
	if in.Rol != nil {
		if !entity.RolValido(*in.Rol) {
			return nil, domain.ErrInvalidInput
		}
		user.Rol = *in.Rol
		despues["rol"] = user.Rol
	}
	if in.AreaID != nil {
		user.AreaID = in.AreaID
		despues["area_id"] = *in.AreaID
	}
	if in.Activo != nil {
		user.Activo = *in.Activo
		despues["activo"] = strconv.FormatBool(user.Activo)
	}
	user.UpdatedAt = time.Now()

	err = uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Usuarios.Update(ctx, user); err != nil {
			return err
		}
		filas := audit.Modificaciones("usuarios", user.ID, actorID, antes, despues)
		return audit.RegistrarTodos(ctx, repos.Historial, filas)
	})
	if err != nil {
		return nil, err
	}
	return ToUsuarioResponse(user), nil
}

// ChangePassword fija una nueva contraseña (hash bcrypt) y deja bitácora sin valores.
func (uc *UsuarioUseCase) ChangePassword(ctx context.Context, actorID, id, password string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()

	return uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Usuarios.Update(ctx, user); err != nil {
			return err
		}
		campo := "password"
		h := audit.Creacion("usuarios", user.ID, actorID)
		h.TipoCambio = entity.CambioModificacion
		h.Campo = &campo
		return repos.Historial.Create(ctx, h)
	})
}

// SoftDelete desactiva la cuenta (baja lógica) y deja bitácora de eliminación.
func (uc *UsuarioUseCase) SoftDelete(ctx context.Context, actorID, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.Activo = false
	user.UpdatedAt = time.Now()

	return uc.tx.Run(ctx, func(repos audit.TxRepos) error {
		if err := repos.Usuarios.Update(ctx, user); err != nil {
			return err
		}
		return repos.Historial.Create(ctx, audit.Eliminacion("usuarios", user.ID, actorID))
	})
}

// ToUsuarioResponse convierte la entidad al DTO de salida (sin password).
func ToUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
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

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
