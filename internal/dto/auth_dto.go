package dto

// ─── Diagnostic HTTP surface ─────────────────────────────────────────────────

type TestAuthRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CrearEmpresaParams are the arguments of the crear_empresa procedure,
// invoked once during onboarding.
type CrearEmpresaParams struct {
	Nombre          string `json:"_nombre"`
	DireccionFiscal string `json:"_direccion_fiscal"`
	SimboloMoneda   string `json:"_simbolo_moneda"`
}

// ─── HTTP surface ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegistroRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type CrearEmpresaRequest struct {
	Nombre          string `json:"nombre" validate:"required"`
	DireccionFiscal string `json:"direccion_fiscal"`
	SimboloMoneda   string `json:"simbolo_moneda"`
}
