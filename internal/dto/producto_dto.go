package dto

// FiltroProductos describes one catalog search. Termino matches nombre OR
// codigo_barras as a case-insensitive substring; CategoriaID is an equality
// filter when present. Pagina is 1-based.
type FiltroProductos struct {
	Termino     string
	CategoriaID *int64
	Pagina      int
	PorPagina   int
}

// Desde returns the 0-based offset of the first row of the page.
func (f FiltroProductos) Desde() int {
	pagina := f.Pagina
	if pagina < 1 {
		pagina = 1
	}
	return (pagina - 1) * f.PorPagina
}
