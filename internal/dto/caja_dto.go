package dto

import "github.com/shopspring/decimal"

// ─── RPC rows ────────────────────────────────────────────────────────────────

// AperturaCajaRow is one row of the abrir_caja_simple result. The procedure
// resolves register and user from the caller's context; a row with a null
// id_cierre_caja is a business-rule rejection carrying Mensaje.
type AperturaCajaRow struct {
	IDCierreCaja *int64 `json:"id_cierre_caja"`
	Mensaje      string `json:"mensaje"`
}

// CerrarCajaParams carries the five reconciliation figures of cerrar_caja.
// The backend computes the cash discrepancy and the profit split; none of
// that arithmetic is duplicated here.
type CerrarCajaParams struct {
	IDCierreCaja             int64           `json:"_id_cierre_caja"`
	IDUsuarioCierre          int64           `json:"_id_usuario_cierre"`
	MontoRealContadoEfectivo decimal.Decimal `json:"_monto_real_contado_efectivo"`
	TotalGastosCajaChica     decimal.Decimal `json:"_total_gastos_caja_chica"`
	MontoAperturaSiguiente   decimal.Decimal `json:"_monto_para_apertura_siguiente"`
}

// ─── Close summary ───────────────────────────────────────────────────────────

// DatosCierre is the backend-computed reconciliation summary shown before
// confirming a close. The 70/30 business/cashier split is backend policy —
// the figures arrive already split and are displayed as-is.
type DatosCierre struct {
	IDCierreCaja    int64           `json:"id_cierre_caja"`
	DescripcionCaja string          `json:"descripcion_caja"`
	FechaInicio     string          `json:"fecha_inicio"`
	MontoApertura   decimal.Decimal `json:"monto_apertura"`
	TotalVentas     decimal.Decimal `json:"total_ventas"`
	TotalEfectivo   decimal.Decimal `json:"total_efectivo"`
	TotalQR         decimal.Decimal `json:"total_qr"`
	GananciaBruta   decimal.Decimal `json:"ganancia_bruta"`
	GananciaNegocio decimal.Decimal `json:"ganancia_negocio"`
	GananciaCajero  decimal.Decimal `json:"ganancia_cajero"`
}

// DatosCierreResultado pairs the uniform outcome with the summary payload.
type DatosCierreResultado struct {
	Resultado
	Datos *DatosCierre `json:"datos,omitempty"`
}

// ─── HTTP surface ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"min=0"`
}

// CerrarCajaRequest closes the session currently open for the signed-in
// operator; the session and user ids are resolved server-side.
type CerrarCajaRequest struct {
	MontoContado      decimal.Decimal `json:"monto_contado" validate:"min=0"`
	GastosAdicionales decimal.Decimal `json:"gastos_adicionales" validate:"min=0"`
}
