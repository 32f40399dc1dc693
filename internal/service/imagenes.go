package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/imagen"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// ImagenesService owns the product-image upload pipeline: optimize, upload
// under a generated unique name, resolve the public URL. Uploads carry a
// client-side deadline; on timeout the operation is abandoned locally and
// reported as a failure, with no guarantee the remote side rolled back.
type ImagenesService struct {
	storage       *supabase.StorageClient
	bucket        string
	carpeta       string
	timeoutSubida time.Duration
}

func NewImagenesService(storage *supabase.StorageClient, bucket, carpeta string, timeoutSubida time.Duration) *ImagenesService {
	return &ImagenesService{storage: storage, bucket: bucket, carpeta: carpeta, timeoutSubida: timeoutSubida}
}

// SubirImagenProducto optimizes and uploads one product photo. When the
// image cannot be decoded the original bytes are uploaded as-is — a worse
// photo beats a lost one.
func (s *ImagenesService) SubirImagenProducto(ctx context.Context, nombreArchivo string, datos []byte) dto.SubidaResultado {
	if len(datos) == 0 {
		return dto.SubidaResultado{Resultado: dto.Fallido("Archivo inválido o vacío")}
	}

	cuerpo, err := imagen.Optimizar(datos, imagen.OpcionesPorDefecto())
	contentType := "image/jpeg"
	if err != nil {
		log.Warn().Err(err).Str("archivo", nombreArchivo).Msg("no se pudo optimizar la imagen, subiendo original")
		cuerpo = datos
		contentType = http.DetectContentType(datos)
	} else {
		nombreArchivo = "producto.jpg"
	}

	ruta := s.carpeta + "/" + supabase.NombreUnico(nombreArchivo)

	subidaCtx, cancel := context.WithTimeout(ctx, s.timeoutSubida)
	defer cancel()
	if _, err := s.storage.Subir(subidaCtx, s.bucket, ruta, cuerpo, contentType); err != nil {
		log.Error().Err(err).Str("ruta", ruta).Msg("error subiendo imagen")
		return dto.SubidaResultado{Resultado: dto.Fallido("Error de subida: " + err.Error())}
	}

	return dto.SubidaResultado{
		Resultado: dto.Exitoso("Imagen subida"),
		URL:       s.storage.URLPublica(s.bucket, ruta),
		Ruta:      ruta,
	}
}

// VerificarBucket probes read access to the configured bucket.
func (s *ImagenesService) VerificarBucket(ctx context.Context) ([]supabase.ObjetoInfo, error) {
	return s.storage.Listar(ctx, s.bucket, s.carpeta, 1)
}

// ProbarSubida uploads a small plain-text object and removes it again,
// verifying write permissions end to end.
func (s *ImagenesService) ProbarSubida(ctx context.Context) dto.SubidaResultado {
	ruta := "test/" + supabase.NombreUnico("prueba.txt")

	subidaCtx, cancel := context.WithTimeout(ctx, s.timeoutSubida)
	defer cancel()
	if _, err := s.storage.Subir(subidaCtx, s.bucket, ruta, []byte("contenido de prueba"), "text/plain"); err != nil {
		return dto.SubidaResultado{Resultado: dto.Fallido("Error de subida: " + err.Error())}
	}

	if err := s.storage.Eliminar(ctx, s.bucket, []string{ruta}); err != nil {
		log.Warn().Err(err).Str("ruta", ruta).Msg("no se pudo eliminar el objeto de prueba")
	}
	return dto.SubidaResultado{Resultado: dto.Exitoso("Subida de prueba exitosa"), Ruta: ruta}
}
