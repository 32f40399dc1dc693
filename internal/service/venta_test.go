package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/repository"
)

// ── In-memory VentaRepository ────────────────────────────────────────────────

type fakeVentaRepo struct {
	filas  []dto.VentaRow
	err    error
	envios []dto.RegistrarVentaParams
}

func (r *fakeVentaRepo) RegistrarVenta(_ context.Context, params dto.RegistrarVentaParams) ([]dto.VentaRow, error) {
	r.envios = append(r.envios, params)
	if r.err != nil {
		return nil, r.err
	}
	return r.filas, nil
}

var _ repository.VentaRepository = (*fakeVentaRepo)(nil)

func armarVenta(repo *fakeVentaRepo) (*VentaService, *Carrito, *fakeProductoRepo) {
	carrito := NewCarrito()
	productoRepo := &fakeProductoRepo{productos: muchosProductos(5)}
	catalogo := NewCatalogoService(productoRepo, &fakeCategoriaRepo{}, 10)
	return NewVentaService(repo, carrito, catalogo), carrito, productoRepo
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarVentaExitosa(t *testing.T) {
	idVenta := int64(321)
	repo := &fakeVentaRepo{filas: []dto.VentaRow{{IDVenta: &idVenta, Mensaje: "Venta registrada"}}}
	svc, carrito, productoRepo := armarVenta(repo)

	carrito.Agregar(productoDePrueba(1, 100), 2)
	carrito.AplicarDescuento(1, decimal.NewFromInt(10))
	carrito.ActualizarObservacion(1, "para llevar")

	res := svc.RegistrarVenta(context.Background(), 44, 7,
		carrito.Total(), decimal.NewFromInt(180), decimal.Zero, carrito.Items())

	require.True(t, res.Exito)
	require.NotNil(t, res.VentaID)
	assert.Equal(t, int64(321), *res.VentaID)
	assert.Equal(t, "Venta registrada", res.Mensaje)

	// The cart is cleared and the catalog refreshed.
	assert.Empty(t, carrito.Items())
	assert.NotEmpty(t, productoRepo.filtros, "catalog refresh must hit the backend")

	// Line mapping: effective price = original − discount, observation kept.
	require.Len(t, repo.envios, 1)
	envio := repo.envios[0]
	assert.Equal(t, int64(44), envio.IDCierreCaja)
	assert.Equal(t, int64(7), envio.IDUsuario)
	require.Len(t, envio.Detalles, 1)
	detalle := envio.Detalles[0]
	assert.Equal(t, "90", detalle.PrecioVenta.String())
	assert.Equal(t, "100", detalle.PrecioOriginal.String())
	assert.Equal(t, "10", detalle.DescuentoAplicado.String())
	require.NotNil(t, detalle.Observacion)
	assert.Equal(t, "para llevar", *detalle.Observacion)
}

func TestRegistrarVentaSinRespuesta(t *testing.T) {
	repo := &fakeVentaRepo{filas: nil}
	svc, carrito, _ := armarVenta(repo)
	carrito.Agregar(productoDePrueba(1, 100), 1)

	res := svc.RegistrarVenta(context.Background(), 44, 7,
		carrito.Total(), decimal.NewFromInt(100), decimal.Zero, carrito.Items())

	assert.False(t, res.Exito)
	assert.Equal(t, "No se recibió respuesta de la base de datos", res.Mensaje)
	assert.Len(t, carrito.Items(), 1, "a failed sale leaves the cart intact")
}

func TestRegistrarVentaRechazoConMensaje(t *testing.T) {
	repo := &fakeVentaRepo{filas: []dto.VentaRow{{IDVenta: nil, Mensaje: "Stock insuficiente"}}}
	svc, carrito, _ := armarVenta(repo)
	carrito.Agregar(productoDePrueba(1, 100), 1)

	res := svc.RegistrarVenta(context.Background(), 44, 7,
		carrito.Total(), decimal.NewFromInt(100), decimal.Zero, carrito.Items())

	assert.False(t, res.Exito)
	assert.Equal(t, "Stock insuficiente", res.Mensaje)
	assert.Nil(t, res.VentaID)
	assert.Len(t, carrito.Items(), 1)
}

func TestRegistrarVentaRechazoSinMensaje(t *testing.T) {
	repo := &fakeVentaRepo{filas: []dto.VentaRow{{IDVenta: nil}}}
	svc, carrito, _ := armarVenta(repo)
	carrito.Agregar(productoDePrueba(1, 100), 1)

	res := svc.RegistrarVenta(context.Background(), 44, 7,
		carrito.Total(), decimal.NewFromInt(100), decimal.Zero, carrito.Items())

	assert.False(t, res.Exito)
	assert.Equal(t, "Error al procesar la venta", res.Mensaje)
}

func TestRegistrarVentaErrorDeTransporte(t *testing.T) {
	repo := &fakeVentaRepo{err: errors.New("connection refused")}
	svc, carrito, _ := armarVenta(repo)
	carrito.Agregar(productoDePrueba(1, 100), 1)

	res := svc.RegistrarVenta(context.Background(), 44, 7,
		carrito.Total(), decimal.NewFromInt(100), decimal.Zero, carrito.Items())

	assert.False(t, res.Exito)
	assert.Equal(t, "connection refused", res.Mensaje)
	assert.Len(t, carrito.Items(), 1)
}

func TestObservacionVaciaViajaComoNula(t *testing.T) {
	idVenta := int64(1)
	repo := &fakeVentaRepo{filas: []dto.VentaRow{{IDVenta: &idVenta}}}
	svc, carrito, _ := armarVenta(repo)
	carrito.Agregar(productoDePrueba(1, 100), 1)

	svc.RegistrarVenta(context.Background(), 44, 7,
		carrito.Total(), decimal.NewFromInt(100), decimal.Zero, carrito.Items())

	require.Len(t, repo.envios, 1)
	assert.Nil(t, repo.envios[0].Detalles[0].Observacion)
}
