package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin    = "admin"
	RolUsuario  = "usuario"
	RolConsulta = "consulta"
)

// RolValido indica si el rol es uno de los tres soportados.
func RolValido(rol string) bool {
	return rol == RolAdmin || rol == RolUsuario || rol == RolConsulta
}

// Usuario representa un usuario de la oficina de archivo.
// La baja es lógica: Activo=false. El email se guarda siempre en minúsculas.
type Usuario struct {
	ID           string
	Nombre       string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Rol          string // admin, usuario, consulta
	AreaID       *string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
