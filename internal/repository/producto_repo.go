package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/model"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// ProductoRepository defines the catalog read contract. Services depend on
// this interface, not on the concrete gateway-backed implementation,
// enabling clean unit testing via in-memory fakes.
type ProductoRepository interface {
	// Buscar returns one page of active products plus the total match count.
	Buscar(ctx context.Context, filtro dto.FiltroProductos) ([]model.Producto, int64, error)
}

type productoRepo struct{ db *supabase.Client }

func NewProductoRepository(db *supabase.Client) ProductoRepository {
	return &productoRepo{db: db}
}

// productoRow mirrors the PostgREST row shape, with the embedded category
// join and a nullable stock the model defaults to 0.
type productoRow struct {
	ID           int64           `json:"id"`
	Nombre       string          `json:"nombre"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	CodigoBarras *string         `json:"codigo_barras"`
	ImagenURL    *string         `json:"imagen_url"`
	IDCategoria  *int64          `json:"id_categoria"`
	Categorias   *struct {
		Nombre string `json:"nombre"`
	} `json:"categorias"`
	Stock *int `json:"stock"`
}

func (r *productoRepo) Buscar(ctx context.Context, filtro dto.FiltroProductos) ([]model.Producto, int64, error) {
	q := r.db.From("productos").
		Select("id,nombre,precio_venta,precio_compra,codigo_barras,imagen_url,id_categoria,categorias(nombre),stock").
		ExactCount().
		Eq("activo", "true")

	if filtro.CategoriaID != nil {
		q.Eq("id_categoria", strconv.FormatInt(*filtro.CategoriaID, 10))
	}
	if termino := strings.TrimSpace(filtro.Termino); termino != "" {
		patron := "*" + termino + "*"
		q.Or(fmt.Sprintf("nombre.ilike.%s,codigo_barras.ilike.%s", patron, patron))
	}

	desde := filtro.Desde()
	q.Order("nombre").Range(desde, desde+filtro.PorPagina-1)

	var filas []productoRow
	total, err := q.Execute(ctx, &filas)
	if err != nil {
		return nil, 0, err
	}

	productos := make([]model.Producto, 0, len(filas))
	for _, fila := range filas {
		p := model.Producto{
			ID:           fila.ID,
			Nombre:       fila.Nombre,
			PrecioVenta:  fila.PrecioVenta,
			PrecioCompra: fila.PrecioCompra,
			CodigoBarras: fila.CodigoBarras,
			ImagenURL:    fila.ImagenURL,
			IDCategoria:  fila.IDCategoria,
		}
		if fila.Categorias != nil {
			p.Categoria = fila.Categorias.Nombre
		}
		if fila.Stock != nil {
			p.Stock = *fila.Stock
		}
		productos = append(productos, p)
	}
	return productos, total, nil
}
