package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ceordev/pos-ventas/internal/apierror"
	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/service"
)

type CajaHandler struct{ svc *service.CajaService }

func NewCajaHandler(svc *service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir opens a cash session with the given starting amount. Register and
// operator are resolved by the backend from the session token.
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res := h.svc.AbrirCaja(c.Request.Context(), req.MontoApertura)
	if !res.Exito {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Cerrar closes the session currently open for the signed-in operator.
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res := h.svc.CerrarCajaActual(c.Request.Context(), req.MontoContado, req.GastosAdicionales)
	if !res.Exito {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DatosCierre returns the backend-computed reconciliation summary for a
// session, shown before the operator confirms the close.
func (h *CajaHandler) DatosCierre(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	res := h.svc.ObtenerDatosCierre(c.Request.Context(), id)
	if !res.Exito {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
