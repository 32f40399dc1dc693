package model

// Usuario is the application profile joined with its role display name.
// It is resolved from the authenticated identity by equality lookup on
// id_auth.
type Usuario struct {
	ID        int64  `json:"id"`
	Nombres   string `json:"nombres"`
	Usuario   string `json:"usuario"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	IDRol     int64  `json:"id_rol"`
	// Rol is the display name resolved from the roles join.
	Rol    string `json:"role"`
	Estado string `json:"estado"`
}
