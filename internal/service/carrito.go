package service

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ceordev/pos-ventas/internal/model"
)

var cien = decimal.NewFromInt(100)

// Carrito is the in-memory cart: pure local state, no I/O. One instance
// belongs to one terminal; mutations are serialized by its mutex so callers
// see each operation applied whole, in invocation order.
//
// Totals are always recomputed from the current lines — never cached — so
// they cannot drift from the collection they derive from.
type Carrito struct {
	mu    sync.Mutex
	items []model.ItemCarrito
	subs  []func([]model.ItemCarrito)
}

func NewCarrito() *Carrito {
	return &Carrito{}
}

// Suscribir registers an observer invoked with a snapshot of the lines
// after every mutation.
func (c *Carrito) Suscribir(fn func([]model.ItemCarrito)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// Agregar adds cantidad units of producto. An existing line for the same
// product grows; a new line captures the sale price as its original price,
// immune to later catalog changes.
func (c *Carrito) Agregar(producto model.Producto, cantidad int) {
	c.mu.Lock()
	if item := c.buscar(producto.ID); item != nil {
		item.Cantidad += cantidad
		recalcularSubtotal(item)
	} else {
		c.items = append(c.items, model.ItemCarrito{
			Producto:       producto,
			Cantidad:       cantidad,
			Subtotal:       producto.PrecioVenta.Mul(decimal.NewFromInt(int64(cantidad))),
			PrecioOriginal: producto.PrecioVenta,
		})
	}
	c.notificarYDesbloquear()
}

// Quitar deletes the line for idProducto; absent lines are a harmless no-op.
func (c *Carrito) Quitar(idProducto int64) {
	c.mu.Lock()
	filtrados := c.items[:0]
	for _, item := range c.items {
		if item.Producto.ID != idProducto {
			filtrados = append(filtrados, item)
		}
	}
	c.items = filtrados
	c.notificarYDesbloquear()
}

// ActualizarCantidad sets the line's quantity; zero or less removes the
// line entirely.
func (c *Carrito) ActualizarCantidad(idProducto int64, cantidad int) {
	if cantidad <= 0 {
		c.Quitar(idProducto)
		return
	}
	c.mu.Lock()
	if item := c.buscar(idProducto); item != nil {
		item.Cantidad = cantidad
		recalcularSubtotal(item)
	}
	c.notificarYDesbloquear()
}

// AplicarDescuento stores a per-unit discount, clamped to
// [0, precio original], and derives the percentage at 2 decimals.
func (c *Carrito) AplicarDescuento(idProducto int64, descuento decimal.Decimal) {
	c.mu.Lock()
	if item := c.buscar(idProducto); item != nil {
		if descuento.IsNegative() {
			descuento = decimal.Zero
		}
		if descuento.GreaterThan(item.PrecioOriginal) {
			descuento = item.PrecioOriginal
		}
		item.DescuentoAplicado = descuento
		if item.PrecioOriginal.IsPositive() {
			item.PorcentajeDescuento = descuento.Mul(cien).Div(item.PrecioOriginal).Round(2)
		} else {
			item.PorcentajeDescuento = decimal.Zero
		}
		recalcularSubtotal(item)
	}
	c.notificarYDesbloquear()
}

// ActualizarObservacion stores free text on the line; no validation.
func (c *Carrito) ActualizarObservacion(idProducto int64, observacion string) {
	c.mu.Lock()
	if item := c.buscar(idProducto); item != nil {
		item.Observacion = observacion
	}
	c.notificarYDesbloquear()
}

// Vaciar empties the cart.
func (c *Carrito) Vaciar() {
	c.mu.Lock()
	c.items = nil
	c.notificarYDesbloquear()
}

// Items returns a snapshot of the current lines.
func (c *Carrito) Items() []model.ItemCarrito {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copia()
}

// Total sums the line subtotals, recomputed from current state.
func (c *Carrito) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// CantidadArticulos sums the quantities across all lines.
func (c *Carrito) CantidadArticulos() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	cantidad := 0
	for _, item := range c.items {
		cantidad += item.Cantidad
	}
	return cantidad
}

// ── internos ──────────────────────────────────────────────────────────────────

// buscar must be called with the mutex held.
func (c *Carrito) buscar(idProducto int64) *model.ItemCarrito {
	for i := range c.items {
		if c.items[i].Producto.ID == idProducto {
			return &c.items[i]
		}
	}
	return nil
}

func recalcularSubtotal(item *model.ItemCarrito) {
	unitario := item.PrecioOriginal.Sub(item.DescuentoAplicado)
	item.Subtotal = unitario.Mul(decimal.NewFromInt(int64(item.Cantidad)))
}

func (c *Carrito) copia() []model.ItemCarrito {
	snapshot := make([]model.ItemCarrito, len(c.items))
	copy(snapshot, c.items)
	return snapshot
}

// notificarYDesbloquear releases the mutex and publishes a snapshot, so
// observer callbacks never run under the cart lock.
func (c *Carrito) notificarYDesbloquear() {
	snapshot := c.copia()
	subs := make([]func([]model.ItemCarrito), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}
