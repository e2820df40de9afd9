package dto

// NodoResponse un nodo del cuadro de clasificación.
type NodoResponse struct {
	ID      string  `json:"id"`
	Nivel   string  `json:"nivel"`
	Codigo  string  `json:"codigo"`
	Nombre  string  `json:"nombre"`
	PadreID *string `json:"padre_id,omitempty"`
	Orden   int     `json:"orden"`
	Activo  bool    `json:"activo"`
}

// CreateNodoRequest alta de un nodo del catálogo.
type CreateNodoRequest struct {
	Codigo  string  `json:"codigo"`
	Nombre  string  `json:"nombre"`
	PadreID *string `json:"padre_id"`
	Orden   int     `json:"orden"`
}

// UpdateNodoRequest entrada parcial: solo los campos no nil se aplican.
type UpdateNodoRequest struct {
	Codigo *string `json:"codigo"`
	Nombre *string `json:"nombre"`
	Orden  *int    `json:"orden"`
}

// ArbolNodo nodo del árbol completo del catálogo con sus hijos anidados.
type ArbolNodo struct {
	ID     string      `json:"id"`
	Codigo string      `json:"codigo"`
	Nombre string      `json:"nombre"`
	Orden  int         `json:"orden"`
	Hijos  []ArbolNodo `json:"hijos,omitempty"`
}

// CatalogoCompletoResponse árbol Fondo → Sección → Serie → Subserie más las áreas.
type CatalogoCompletoResponse struct {
	Areas  []ArbolNodo `json:"areas"`
	Fondos []ArbolNodo `json:"fondos"`
}
