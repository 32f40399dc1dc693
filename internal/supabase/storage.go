package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ceordev/pos-ventas/internal/infra"
)

// ObjetoInfo is one listed storage object.
type ObjetoInfo struct {
	Nombre        string  `json:"name"`
	ID            *string `json:"id"`
	ActualizadoEn string  `json:"updated_at"`
}

// StorageClient uploads, lists and removes objects. Uploads run through a
// circuit breaker: a flaky storage endpoint on a mobile network fails fast
// instead of stacking 60-second waits. Callers bound each call with a
// context deadline; a timed-out upload is abandoned locally and the remote
// side effect is not rolled back.
type StorageClient struct {
	c       *Client
	breaker *infra.CircuitBreaker
}

// EstadoBreaker reports the upload circuit state for diagnostics.
func (s *StorageClient) EstadoBreaker() string {
	return s.breaker.State().String()
}

// Subir uploads contenido to bucket/ruta and returns the object path.
func (s *StorageClient) Subir(ctx context.Context, bucket, ruta string, contenido []byte, contentType string) (string, error) {
	err := s.breaker.Execute(func() error {
		endpoint := s.c.baseURL + "/storage/v1/object/" + bucket + "/" + ruta
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(contenido))
		if err != nil {
			return err
		}
		s.c.setHeaders(req)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Cache-Control", "max-age=3600")
		req.Header.Set("x-upsert", "false")

		resp, err := s.c.hc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return parseError(resp)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	})
	if err != nil {
		return "", err
	}
	return ruta, nil
}

// URLPublica builds the public URL of an object in a public bucket.
func (s *StorageClient) URLPublica(bucket, ruta string) string {
	return s.c.baseURL + "/storage/v1/object/public/" + bucket + "/" + ruta
}

// Listar returns up to limite objects under prefijo.
func (s *StorageClient) Listar(ctx context.Context, bucket, prefijo string, limite int) ([]ObjetoInfo, error) {
	cuerpo, err := json.Marshal(map[string]interface{}{"prefix": prefijo, "limit": limite})
	if err != nil {
		return nil, err
	}
	endpoint := s.c.baseURL + "/storage/v1/object/list/" + bucket
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(cuerpo))
	if err != nil {
		return nil, err
	}
	s.c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, parseError(resp)
	}

	var objetos []ObjetoInfo
	if err := json.NewDecoder(resp.Body).Decode(&objetos); err != nil {
		return nil, err
	}
	return objetos, nil
}

// Eliminar removes the given object paths from a bucket.
func (s *StorageClient) Eliminar(ctx context.Context, bucket string, rutas []string) error {
	cuerpo, err := json.Marshal(map[string]interface{}{"prefixes": rutas})
	if err != nil {
		return err
	}
	endpoint := s.c.baseURL + "/storage/v1/object/" + bucket
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(cuerpo))
	if err != nil {
		return err
	}
	s.c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return parseError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// NombreUnico derives a collision-free object name keeping the original
// extension (".jpg" when it has none).
func NombreUnico(nombreOriginal string) string {
	ext := strings.ToLower(path.Ext(nombreOriginal))
	if ext == "" {
		ext = ".jpg"
	}
	sufijo := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), sufijo, ext)
}
