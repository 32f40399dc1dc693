package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ceordev/pos-ventas/internal/apierror"
	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/service"
)

type AuthHandler struct{ svc *service.AuthService }

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res := h.svc.IniciarSesion(c.Request.Context(), req.Email, req.Password)
	if !res.Exito {
		c.JSON(http.StatusUnauthorized, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Registro(c *gin.Context) {
	var req dto.RegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res := h.svc.Registrarse(c.Request.Context(), req.Email, req.Password)
	if !res.Exito {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	res := h.svc.CerrarSesion(c.Request.Context())
	if !res.Exito {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Estado reports the current session and resolved profile. Cargando is true
// until the initial session resolution finishes.
func (h *AuthHandler) Estado(c *gin.Context) {
	estado := h.svc.Estado()
	c.JSON(http.StatusOK, gin.H{
		"cargando": estado.Cargando,
		"usuario":  estado.Usuario,
		"perfil":   estado.Perfil,
	})
}

func (h *AuthHandler) CrearEmpresa(c *gin.Context) {
	var req dto.CrearEmpresaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res := h.svc.CrearEmpresa(c.Request.Context(), dto.CrearEmpresaParams{
		Nombre:          req.Nombre,
		DireccionFiscal: req.DireccionFiscal,
		SimboloMoneda:   req.SimboloMoneda,
	})
	if !res.Exito {
		c.JSON(http.StatusBadRequest, apierror.New(res.Mensaje))
		return
	}
	c.JSON(http.StatusCreated, res)
}
