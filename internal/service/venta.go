package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/model"
	"github.com/ceordev/pos-ventas/internal/repository"
)

// VentaService maps cart lines into the registrar_venta payload and
// interprets the procedure's tabular result. Success is exactly one row
// with a non-null sale id; every other shape is a logical failure carrying
// the backend's message. Remote-call failures never propagate as errors —
// the caller always receives a VentaResultado.
type VentaService struct {
	repo     repository.VentaRepository
	carrito  *Carrito
	catalogo *CatalogoService
}

func NewVentaService(repo repository.VentaRepository, carrito *Carrito, catalogo *CatalogoService) *VentaService {
	return &VentaService{repo: repo, carrito: carrito, catalogo: catalogo}
}

// RegistrarVenta submits the sale. On success the cart is cleared and the
// catalog refreshed so the displayed stock reflects the decrement the
// backend applied atomically; on any failure the cart stays untouched.
func (s *VentaService) RegistrarVenta(ctx context.Context, idCierreCaja, idUsuario int64, montoTotal, montoEfectivo, montoQR decimal.Decimal, items []model.ItemCarrito) dto.VentaResultado {
	detalles := make([]dto.DetalleVenta, 0, len(items))
	for _, item := range items {
		var observacion *string
		if item.Observacion != "" {
			obs := item.Observacion
			observacion = &obs
		}
		detalles = append(detalles, dto.DetalleVenta{
			IDProducto:          item.Producto.ID,
			Cantidad:            item.Cantidad,
			PrecioVenta:         item.PrecioOriginal.Sub(item.DescuentoAplicado),
			PrecioCompra:        item.Producto.PrecioCompra,
			PrecioOriginal:      item.PrecioOriginal,
			DescuentoAplicado:   item.DescuentoAplicado,
			PorcentajeDescuento: item.PorcentajeDescuento,
			Observacion:         observacion,
		})
	}

	filas, err := s.repo.RegistrarVenta(ctx, dto.RegistrarVentaParams{
		IDCierreCaja:  idCierreCaja,
		IDUsuario:     idUsuario,
		MontoTotal:    montoTotal,
		MontoEfectivo: montoEfectivo,
		MontoQR:       montoQR,
		Detalles:      detalles,
	})
	if err != nil {
		log.Error().Err(err).Int64("id_cierre_caja", idCierreCaja).Msg("error registrando venta")
		return dto.VentaResultado{Resultado: dto.Fallido(mensajeDe(err, "Error en la base de datos"))}
	}
	if len(filas) == 0 {
		return dto.VentaResultado{Resultado: dto.Fallido("No se recibió respuesta de la base de datos")}
	}

	fila := filas[0]
	if fila.IDVenta == nil {
		mensaje := fila.Mensaje
		if mensaje == "" {
			mensaje = "Error al procesar la venta"
		}
		return dto.VentaResultado{Resultado: dto.Fallido(mensaje)}
	}

	s.carrito.Vaciar()
	s.catalogo.Refrescar(ctx)
	return dto.VentaResultado{Resultado: dto.Exitoso(fila.Mensaje), VentaID: fila.IDVenta}
}
