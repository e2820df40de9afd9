package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}

// CreateUsuarioRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUsuarioRequest struct {
	Nombre   string  `json:"nombre"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Rol      string  `json:"rol"`
	AreaID   *string `json:"area_id"`
}

// UpdateUsuarioRequest entrada parcial: solo los campos no nil se aplican.
type UpdateUsuarioRequest struct {
	Nombre *string `json:"nombre"`
	Email  *string `json:"email"`
	Rol    *string `json:"rol"`
	AreaID *string `json:"area_id"`
	Activo *bool   `json:"activo"`
}

// ChangePasswordRequest cambio de contraseña de un usuario.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// UsuarioResponse salida de un usuario (sin password).
type UsuarioResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	AreaID    *string   `json:"area_id"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UsuarioListResponse página de usuarios.
type UsuarioListResponse struct {
	Data       []UsuarioResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}
