package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/fecha"
	"github.com/ceordev/pos-ventas/internal/repository"
	"github.com/ceordev/pos-ventas/internal/service"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// DiagnosticoHandler exposes the verification endpoints used during
// deployments: credential checks against GoTrue, row-level lookups of the
// operator's profile, and storage bucket probes.
type DiagnosticoHandler struct {
	auth        *supabase.AuthClient
	usuarios    repository.UsuarioRepository
	caja        *service.CajaService
	imagenes    *service.ImagenesService
	authTimeout time.Duration
}

func NewDiagnosticoHandler(auth *supabase.AuthClient, usuarios repository.UsuarioRepository, caja *service.CajaService, imagenes *service.ImagenesService, authTimeout time.Duration) *DiagnosticoHandler {
	return &DiagnosticoHandler{auth: auth, usuarios: usuarios, caja: caja, imagenes: imagenes, authTimeout: authTimeout}
}

// TestAuth signs in with the given credentials and walks the profile lookup
// chain step by step, reporting the first step that fails. Meant for
// diagnosing RLS and role-mapping problems, not for production sign-in.
func (h *DiagnosticoHandler) TestAuth(c *gin.Context) {
	var req dto.TestAuthRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.authTimeout)
	defer cancel()

	sesion, err := h.auth.IniciarSesion(ctx, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"step":    "login",
			"error":   err.Error(),
		})
		return
	}

	// Direct row lookup first: distinguishes "row missing" from "join broken".
	idUsuario, err := h.usuarios.IDPorAuthID(ctx, sesion.User.ID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"step":    "usuario",
			"user_id": sesion.User.ID.String(),
			"error":   err.Error(),
		})
		return
	}

	perfil, err := h.usuarios.BuscarPorAuthID(ctx, sesion.User.ID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success":    false,
			"step":       "perfil",
			"user_id":    sesion.User.ID.String(),
			"id_usuario": idUsuario,
			"error":      err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"user_id":    sesion.User.ID.String(),
		"email":      sesion.User.Email,
		"id_usuario": idUsuario,
		"nombres":    perfil.Nombres,
		"rol":        perfil.Rol,
	})
}

// StorageCheck probes read access to the product image bucket.
func (h *DiagnosticoHandler) StorageCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.authTimeout)
	defer cancel()

	objetos, err := h.imagenes.VerificarBucket(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"accesible": false,
			"error":     err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accesible": true,
		"objetos":   len(objetos),
	})
}

// StorageTest uploads a throwaway object and removes it again, verifying
// bucket write policies end to end.
func (h *DiagnosticoHandler) StorageTest(c *gin.Context) {
	res := h.imagenes.ProbarSubida(c.Request.Context())
	if !res.Exito {
		c.JSON(http.StatusServiceUnavailable, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CajaEstado re-checks the backend for an open cash session and reports it.
func (h *DiagnosticoHandler) CajaEstado(c *gin.Context) {
	h.caja.VerificarCajaAbierta(c.Request.Context())

	abierta := h.caja.CajaAbierta()
	if abierta == nil {
		c.JSON(http.StatusOK, gin.H{"abierta": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"abierta":        true,
		"id_cierre_caja": abierta.IDCierreCaja,
		"id_caja":        abierta.IDCaja,
		"descripcion":    abierta.DescripcionCaja,
		"fecha_inicio":   fecha.FormatearTexto(abierta.FechaInicio, true),
	})
}
