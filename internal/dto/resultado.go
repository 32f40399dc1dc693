package dto

// Resultado is the uniform outcome envelope every public service method
// returns. Transport failures, logical rejections from the backend,
// validation short-circuits and timeouts are all normalized into it —
// none of them escape a service boundary as an error value. Mensaje is
// suitable for direct display.
type Resultado struct {
	Exito   bool   `json:"exito"`
	Mensaje string `json:"mensaje"`
}

// Exitoso builds a success result.
func Exitoso(mensaje string) Resultado {
	return Resultado{Exito: true, Mensaje: mensaje}
}

// Fallido builds a failure result.
func Fallido(mensaje string) Resultado {
	return Resultado{Exito: false, Mensaje: mensaje}
}
