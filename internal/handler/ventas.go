package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ceordev/pos-ventas/internal/apierror"
	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/model"
	"github.com/ceordev/pos-ventas/internal/repository"
	"github.com/ceordev/pos-ventas/internal/service"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// VentasHandler drives the register flow: one in-process cart per terminal,
// finalized into a sale through the registrar_venta procedure.
type VentasHandler struct {
	carrito  *service.Carrito
	ventas   *service.VentaService
	caja     *service.CajaService
	usuarios repository.UsuarioRepository
	auth     *supabase.AuthClient
}

func NewVentasHandler(carrito *service.Carrito, ventas *service.VentaService, caja *service.CajaService, usuarios repository.UsuarioRepository, auth *supabase.AuthClient) *VentasHandler {
	return &VentasHandler{carrito: carrito, ventas: ventas, caja: caja, usuarios: usuarios, auth: auth}
}

// ── Cart ─────────────────────────────────────────────────────────────────────

func (h *VentasHandler) VerCarrito(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":     h.carrito.Items(),
		"total":     h.carrito.Total(),
		"articulos": h.carrito.CantidadArticulos(),
	})
}

func (h *VentasHandler) AgregarItem(c *gin.Context) {
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.carrito.Agregar(model.Producto{
		ID:           req.ID,
		Nombre:       req.Nombre,
		PrecioVenta:  req.PrecioVenta,
		PrecioCompra: req.PrecioCompra,
		CodigoBarras: req.CodigoBarras,
		ImagenURL:    req.ImagenURL,
		IDCategoria:  req.IDCategoria,
		Stock:        req.Stock,
	}, req.Cantidad)
	h.VerCarrito(c)
}

func (h *VentasHandler) ActualizarCantidad(c *gin.Context) {
	id, ok := idProducto(c)
	if !ok {
		return
	}
	var req dto.CantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.carrito.ActualizarCantidad(id, req.Cantidad)
	h.VerCarrito(c)
}

func (h *VentasHandler) AplicarDescuento(c *gin.Context) {
	id, ok := idProducto(c)
	if !ok {
		return
	}
	var req dto.DescuentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.carrito.AplicarDescuento(id, req.Descuento)
	h.VerCarrito(c)
}

func (h *VentasHandler) ActualizarObservacion(c *gin.Context) {
	id, ok := idProducto(c)
	if !ok {
		return
	}
	var req dto.ObservacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.carrito.ActualizarObservacion(id, req.Observacion)
	h.VerCarrito(c)
}

func (h *VentasHandler) QuitarItem(c *gin.Context) {
	id, ok := idProducto(c)
	if !ok {
		return
	}
	h.carrito.Quitar(id)
	h.VerCarrito(c)
}

func (h *VentasHandler) VaciarCarrito(c *gin.Context) {
	h.carrito.Vaciar()
	c.Status(http.StatusNoContent)
}

// ── Checkout ─────────────────────────────────────────────────────────────────

// Cobrar finalizes the cart as a sale against the open cash session.
func (h *VentasHandler) Cobrar(c *gin.Context) {
	var req dto.CobrarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if h.carrito.CantidadArticulos() == 0 {
		c.JSON(http.StatusBadRequest, dto.Fallido("El carrito está vacío"))
		return
	}
	abierta := h.caja.CajaAbierta()
	if abierta == nil {
		c.JSON(http.StatusBadRequest, dto.Fallido("No hay una caja abierta actualmente"))
		return
	}

	ctx := c.Request.Context()
	usuario, err := h.auth.UsuarioActual(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Fallido("Error al obtener información del usuario"))
		return
	}
	idUsuario, err := h.usuarios.IDPorAuthID(ctx, usuario.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fallido("Error al obtener el ID del usuario"))
		return
	}

	res := h.ventas.RegistrarVenta(ctx, abierta.IDCierreCaja, idUsuario,
		h.carrito.Total(), req.MontoEfectivo, req.MontoQR, h.carrito.Items())
	if !res.Exito {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func idProducto(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return 0, false
	}
	return id, true
}
