package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ceordev/pos-ventas/internal/service"
)

type CatalogoHandler struct{ svc *service.CatalogoService }

func NewCatalogoHandler(svc *service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// Buscar runs a paginated catalog search. A failed backend query yields an
// empty list, never an error page — the register keeps working.
func (h *CatalogoHandler) Buscar(c *gin.Context) {
	termino := c.Query("termino")
	pagina, _ := strconv.Atoi(c.DefaultQuery("pagina", "1"))
	if pagina < 1 {
		pagina = 1
	}

	var categoriaID *int64
	if raw := c.Query("categoria"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			categoriaID = &id
		}
	}

	h.svc.Buscar(c.Request.Context(), termino, categoriaID, pagina, false)

	c.JSON(http.StatusOK, gin.H{
		"productos": h.svc.Productos(),
		"total":     h.svc.TotalProductos(),
		"pagina":    h.svc.PaginaActual(),
	})
}

func (h *CatalogoHandler) Categorias(c *gin.Context) {
	h.svc.CargarCategorias(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"categorias": h.svc.Categorias()})
}
