package dto

import "github.com/shopspring/decimal"

// AgregarItemRequest carries a full catalog snapshot of the product being
// added. The caller already holds the product from a catalog search; sending
// the snapshot avoids a second lookup and freezes the prices the line will
// be sold at.
type AgregarItemRequest struct {
	ID           int64           `json:"id" validate:"required"`
	Nombre       string          `json:"nombre" validate:"required"`
	PrecioVenta  decimal.Decimal `json:"precio_venta" validate:"required"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	CodigoBarras *string         `json:"codigo_barras"`
	ImagenURL    *string         `json:"imagen_url"`
	IDCategoria  *int64          `json:"id_categoria"`
	Stock        int             `json:"stock"`
	Cantidad     int             `json:"cantidad" validate:"required,gt=0"`
}

// CantidadRequest sets an absolute quantity; zero or less removes the line.
type CantidadRequest struct {
	Cantidad int `json:"cantidad"`
}

type DescuentoRequest struct {
	Descuento decimal.Decimal `json:"descuento" validate:"min=0"`
}

type ObservacionRequest struct {
	Observacion string `json:"observacion"`
}

// CobrarRequest finalizes the cart as a sale. The total is taken from the
// cart itself; the split between cash and QR must cover it.
type CobrarRequest struct {
	MontoEfectivo decimal.Decimal `json:"monto_efectivo" validate:"min=0"`
	MontoQR       decimal.Decimal `json:"monto_qr" validate:"min=0"`
}
