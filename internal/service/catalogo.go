package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/model"
	"github.com/ceordev/pos-ventas/internal/repository"
)

// CatalogoService runs paginated, filtered product searches and holds the
// visible catalog state (current page, total count, loading flag). Query
// failures are logged and reset the visible list to empty — they are never
// surfaced as errors to the caller, so the UI cannot end up showing rows
// inconsistent with a failed filter change.
type CatalogoService struct {
	productos  repository.ProductoRepository
	categorias repository.CategoriaRepository
	porPagina  int

	mu             sync.Mutex
	lista          []model.Producto
	listaCategoria []model.Categoria
	total          int64
	pagina         int
	cargando       bool
	subs           []func()
}

func NewCatalogoService(productos repository.ProductoRepository, categorias repository.CategoriaRepository, porPagina int) *CatalogoService {
	if porPagina < 1 {
		porPagina = 10
	}
	return &CatalogoService{productos: productos, categorias: categorias, porPagina: porPagina, pagina: 1}
}

// Suscribir registers an observer invoked after every state change.
func (s *CatalogoService) Suscribir(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Buscar loads one page of products. With agregar=true the page is
// concatenated to the current list (infinite scroll); otherwise it
// replaces it. The loading flag is set for the duration of the call and
// cleared on both success and failure.
func (s *CatalogoService) Buscar(ctx context.Context, termino string, categoriaID *int64, pagina int, agregar bool) {
	if pagina < 1 {
		pagina = 1
	}
	s.setCargando(true)
	defer s.setCargando(false)

	filtro := dto.FiltroProductos{
		Termino:     termino,
		CategoriaID: categoriaID,
		Pagina:      pagina,
		PorPagina:   s.porPagina,
	}
	resultados, total, err := s.productos.Buscar(ctx, filtro)
	if err != nil {
		log.Error().Err(err).Str("termino", termino).Int("pagina", pagina).
			Msg("error buscando productos")
		s.mu.Lock()
		s.lista = nil
		s.mu.Unlock()
		s.notificar()
		return
	}

	s.mu.Lock()
	if agregar {
		s.lista = append(s.lista, resultados...)
	} else {
		s.lista = resultados
	}
	s.total = total
	s.pagina = pagina
	s.mu.Unlock()
	s.notificar()
}

// Refrescar reloads the first unfiltered page; used after a sale so the
// displayed stock reflects the decrement the backend applied.
func (s *CatalogoService) Refrescar(ctx context.Context) {
	s.Buscar(ctx, "", nil, 1, false)
}

// CargarCategorias loads the category list ordered by name. Failures are
// logged only; the previous list is kept.
func (s *CatalogoService) CargarCategorias(ctx context.Context) {
	categorias, err := s.categorias.Listar(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error cargando categorías")
		return
	}
	s.mu.Lock()
	s.listaCategoria = categorias
	s.mu.Unlock()
	s.notificar()
}

// Productos returns a snapshot of the visible list.
func (s *CatalogoService) Productos() []model.Producto {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]model.Producto, len(s.lista))
	copy(snapshot, s.lista)
	return snapshot
}

// Categorias returns a snapshot of the loaded categories.
func (s *CatalogoService) Categorias() []model.Categoria {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]model.Categoria, len(s.listaCategoria))
	copy(snapshot, s.listaCategoria)
	return snapshot
}

// TotalProductos is the backend's total match count for the last search.
func (s *CatalogoService) TotalProductos() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// PaginaActual is the 1-based page of the last successful search.
func (s *CatalogoService) PaginaActual() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagina
}

// Cargando reports whether a search is in flight.
func (s *CatalogoService) Cargando() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cargando
}

func (s *CatalogoService) setCargando(v bool) {
	s.mu.Lock()
	s.cargando = v
	s.mu.Unlock()
	s.notificar()
}

func (s *CatalogoService) notificar() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
