package dto

import "github.com/shopspring/decimal"

// DetalleVenta is one line-item of the registrar_venta payload, mapped from
// a cart line. PrecioVenta is the effective unit price (original minus
// discount); Observacion is null when blank.
type DetalleVenta struct {
	IDProducto          int64           `json:"id_producto"`
	Cantidad            int             `json:"cantidad"`
	PrecioVenta         decimal.Decimal `json:"precio_venta"`
	PrecioCompra        decimal.Decimal `json:"precio_compra"`
	PrecioOriginal      decimal.Decimal `json:"precio_original"`
	DescuentoAplicado   decimal.Decimal `json:"descuento_aplicado"`
	PorcentajeDescuento decimal.Decimal `json:"porcentaje_descuento"`
	Observacion         *string         `json:"observacion"`
}

// RegistrarVentaParams is the full argument set of the registrar_venta
// procedure, which records the sale, its lines and the stock decrement
// atomically on the backend.
type RegistrarVentaParams struct {
	IDCierreCaja  int64           `json:"_id_cierre_caja"`
	IDUsuario     int64           `json:"_id_usuario"`
	MontoTotal    decimal.Decimal `json:"_monto_total"`
	MontoEfectivo decimal.Decimal `json:"_monto_efectivo"`
	MontoQR       decimal.Decimal `json:"_monto_qr"`
	Detalles      []DetalleVenta  `json:"_detalles"`
}

// VentaRow is one row of the registrar_venta result. A null id_venta means
// the procedure executed but rejected the sale; Mensaje carries the reason.
type VentaRow struct {
	IDVenta *int64 `json:"id_venta"`
	Mensaje string `json:"mensaje"`
}

// VentaResultado is the Sale Submission outcome. VentaID is set only on
// success.
type VentaResultado struct {
	Resultado
	VentaID *int64 `json:"venta_id,omitempty"`
}
