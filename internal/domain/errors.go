package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrNumeroDuplicado    = errors.New("el número de expediente ya existe")
	ErrCodigoDuplicado    = errors.New("el código ya existe en este nivel del catálogo")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrCuentaInactiva     = errors.New("cuenta inactiva")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNoEditable         = errors.New("la configuración no es editable")
	ErrTipoArchivo        = errors.New("tipo de archivo no permitido")
	ErrArchivoMuyGrande   = errors.New("el archivo excede el tamaño máximo")
)
