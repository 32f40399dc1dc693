package model

import "github.com/shopspring/decimal"

// Producto is the client-side view of a catalog row. The backend owns the
// authoritative record; instances held here are read-through copies refreshed
// on demand.
type Producto struct {
	ID           int64           `json:"id"`
	Nombre       string          `json:"nombre"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	CodigoBarras *string         `json:"codigo_barras,omitempty"`
	ImagenURL    *string         `json:"imagen_url,omitempty"`
	IDCategoria  *int64          `json:"id_categoria,omitempty"`
	// Categoria is the display name resolved from the embedded join,
	// not a column of productos itself.
	Categoria string `json:"categoria,omitempty"`
	Stock     int    `json:"stock"`
}

// Categoria is used only to filter product queries.
type Categoria struct {
	ID     int64   `json:"id"`
	Nombre string  `json:"nombre"`
	Color  *string `json:"color,omitempty"`
}
