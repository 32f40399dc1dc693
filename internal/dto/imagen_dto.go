package dto

// SubidaResultado reports one storage upload. Ruta is the object path
// inside the bucket; URL is the public address on success.
type SubidaResultado struct {
	Resultado
	URL  string `json:"url,omitempty"`
	Ruta string `json:"ruta,omitempty"`
}
