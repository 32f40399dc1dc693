package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ceordev/pos-ventas/internal/apierror"
	"github.com/ceordev/pos-ventas/internal/service"
)

// 10 MB raw upload cap; images are re-encoded down before hitting storage.
const maxImagenBytes = 10 << 20

type ImagenesHandler struct{ svc *service.ImagenesService }

func NewImagenesHandler(svc *service.ImagenesService) *ImagenesHandler {
	return &ImagenesHandler{svc: svc}
}

// SubirProducto receives a multipart image under the "imagen" field,
// optimizes it and uploads it to the product bucket.
func (h *ImagenesHandler) SubirProducto(c *gin.Context) {
	fh, err := c.FormFile("imagen")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo 'imagen'"))
		return
	}
	if fh.Size > maxImagenBytes {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("Archivo demasiado grande"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	defer f.Close()
	datos, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}

	res := h.svc.SubirImagenProducto(c.Request.Context(), fh.Filename, datos)
	if !res.Exito {
		c.JSON(http.StatusBadGateway, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}
