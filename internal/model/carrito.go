package model

import "github.com/shopspring/decimal"

// ItemCarrito is one line of the in-memory cart. Producto is a value
// snapshot taken at add time: later catalog price changes never touch an
// item already in the cart.
//
// Subtotal is always re-derived as Cantidad × (PrecioOriginal −
// DescuentoAplicado) after any mutation; it is never settable on its own.
type ItemCarrito struct {
	Producto            Producto        `json:"producto"`
	Cantidad            int             `json:"cantidad"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	PrecioOriginal      decimal.Decimal `json:"precio_original"`
	DescuentoAplicado   decimal.Decimal `json:"descuento_aplicado"`
	PorcentajeDescuento decimal.Decimal `json:"porcentaje_descuento"`
	Observacion         string          `json:"observacion,omitempty"`
}
