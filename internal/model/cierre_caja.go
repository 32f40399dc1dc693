package model

// CajaAbierta is the currently open cash-register session as returned by the
// get_open_cierre_caja procedure. At most one session is open per register;
// the backend enforces that.
//
// FechaInicio is carried verbatim: the backend emits a plain timestamp
// without zone, so presentation formatting belongs to the fecha package.
type CajaAbierta struct {
	IDCierreCaja    int64  `json:"id_cierre_caja"`
	IDCaja          int64  `json:"id_caja"`
	FechaInicio     string `json:"fecha_inicio"`
	DescripcionCaja string `json:"descripcion_caja"`
}
