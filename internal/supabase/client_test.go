package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// servidor builds a client pointed at an httptest server running fn.
func servidor(t *testing.T, fn http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(fn)
	t.Cleanup(srv.Close)
	return New(srv.URL, "anon-key")
}

// ── PostgREST ────────────────────────────────────────────────────────────────

func TestQueryArmaParametros(t *testing.T) {
	var capturada *http.Request
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		capturada = r.Clone(context.Background())
		w.Header().Set("Content-Range", "0-9/42")
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"Coca Cola"}]`))
	})

	var filas []struct {
		ID     int64  `json:"id"`
		Nombre string `json:"nombre"`
	}
	total, err := c.From("productos").
		Select("id,nombre,categorias(nombre)").
		ExactCount().
		Eq("activo", "true").
		Or("nombre.ilike.*coca*,codigo_barras.ilike.*coca*").
		Order("nombre").
		Range(0, 9).
		Execute(context.Background(), &filas)

	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	require.Len(t, filas, 1)
	assert.Equal(t, "Coca Cola", filas[0].Nombre)

	require.NotNil(t, capturada)
	assert.Equal(t, "/rest/v1/productos", capturada.URL.Path)
	q := capturada.URL.Query()
	assert.Equal(t, "id,nombre,categorias(nombre)", q.Get("select"))
	assert.Equal(t, "eq.true", q.Get("activo"))
	assert.Equal(t, "(nombre.ilike.*coca*,codigo_barras.ilike.*coca*)", q.Get("or"))
	assert.Equal(t, "nombre.asc", q.Get("order"))
	assert.Equal(t, "0", q.Get("offset"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "count=exact", capturada.Header.Get("Prefer"))
	assert.Equal(t, "anon-key", capturada.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", capturada.Header.Get("Authorization"))
}

func TestSinglePideObjeto(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"id":7}`))
	})

	var fila struct {
		ID int64 `json:"id"`
	}
	_, err := c.From("usuarios").Select("id").Eq("id_auth", "abc").Single().
		Execute(context.Background(), &fila)

	require.NoError(t, err)
	assert.Equal(t, int64(7), fila.ID)
}

func TestErrorPostgRESTSeMapea(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		_, _ = w.Write([]byte(`{"message":"JSON object requested, multiple (or no) rows returned","code":"PGRST116"}`))
	})

	_, err := c.From("usuarios").Single().Execute(context.Background(), &struct{}{})

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotAcceptable, apiErr.Status)
	assert.Equal(t, "PGRST116", apiErr.Codigo)
	assert.Contains(t, apiErr.Error(), "multiple (or no) rows")
}

func TestErrorConCuerpoNoJSON(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	_, err := c.From("productos").Execute(context.Background(), nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream unavailable", apiErr.Mensaje)
}

func TestContentRangeDesconocido(t *testing.T) {
	assert.Equal(t, int64(100), totalFromContentRange("0-9/100"))
	assert.Equal(t, int64(0), totalFromContentRange("0-9/*"))
	assert.Equal(t, int64(0), totalFromContentRange(""))
}

// ── RPC ──────────────────────────────────────────────────────────────────────

func TestRPCTabular(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/abrir_caja_simple", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var args map[string]json.Number
		require.NoError(t, json.NewDecoder(r.Body).Decode(&args))
		assert.Equal(t, "500", args["_monto_apertura"].String())

		_, _ = w.Write([]byte(`[{"id_cierre_caja":44,"mensaje":"Caja abierta"}]`))
	})

	var filas []struct {
		IDCierreCaja *int64 `json:"id_cierre_caja"`
		Mensaje      string `json:"mensaje"`
	}
	err := c.RPC(context.Background(), "abrir_caja_simple",
		map[string]interface{}{"_monto_apertura": 500}, &filas)

	require.NoError(t, err)
	require.Len(t, filas, 1)
	require.NotNil(t, filas[0].IDCierreCaja)
	assert.Equal(t, int64(44), *filas[0].IDCierreCaja)
}

func TestRPCEscalar(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"Error: la caja ya fue cerrada"`))
	})

	var mensaje string
	err := c.RPC(context.Background(), "cerrar_caja", nil, &mensaje)

	require.NoError(t, err)
	assert.Equal(t, "Error: la caja ya fue cerrada", mensaje)
}

// ── GoTrue ───────────────────────────────────────────────────────────────────

func TestIniciarSesionPublicaEvento(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token":"tok-1","refresh_token":"ref-1","user":{"id":"8d4ee5f0-51a8-4f6a-9f0a-2f62c6a1d9e1","email":"a@b.c"}}`))
	})

	var eventos []string
	c.Auth().OnCambioEstado(func(evento string, _ *Sesion) {
		eventos = append(eventos, evento)
	})

	sesion, err := c.Auth().IniciarSesion(context.Background(), "a@b.c", "secreto")

	require.NoError(t, err)
	assert.Equal(t, "tok-1", sesion.AccessToken)
	assert.Equal(t, []string{EventoSesionIniciada}, eventos)
	// Subsequent requests must carry the session bearer.
	assert.Equal(t, "tok-1", c.bearer())
}

func TestCerrarSesionVuelveAlAnon(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/logout") {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-1","refresh_token":"ref-1","user":{"id":"8d4ee5f0-51a8-4f6a-9f0a-2f62c6a1d9e1"}}`))
	})

	_, err := c.Auth().IniciarSesion(context.Background(), "a@b.c", "secreto")
	require.NoError(t, err)

	var eventos []string
	c.Auth().OnCambioEstado(func(evento string, _ *Sesion) {
		eventos = append(eventos, evento)
	})

	require.NoError(t, c.Auth().CerrarSesion(context.Background()))

	assert.Equal(t, []string{EventoSesionCerrada}, eventos)
	assert.Nil(t, c.Auth().Sesion())
	assert.Equal(t, "anon-key", c.bearer())
}

func TestLoginRechazado(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid login credentials"}`))
	})

	_, err := c.Auth().IniciarSesion(context.Background(), "a@b.c", "mal")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")
	assert.Nil(t, c.Auth().Sesion())
}

// ── Storage ──────────────────────────────────────────────────────────────────

func TestSubirYURLPublica(t *testing.T) {
	var subida *http.Request
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		subida = r.Clone(context.Background())
		_, _ = w.Write([]byte(`{"Key":"product-images/productos/x.jpg"}`))
	})

	ruta, err := c.Storage().Subir(context.Background(),
		"product-images", "productos/x.jpg", []byte("bytes"), "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, "productos/x.jpg", ruta)
	require.NotNil(t, subida)
	assert.Equal(t, "/storage/v1/object/product-images/productos/x.jpg", subida.URL.Path)
	assert.Equal(t, "image/jpeg", subida.Header.Get("Content-Type"))
	assert.Equal(t, "false", subida.Header.Get("x-upsert"))

	url := c.Storage().URLPublica("product-images", "productos/x.jpg")
	assert.True(t, strings.HasSuffix(url, "/storage/v1/object/public/product-images/productos/x.jpg"))
}

func TestNombreUnico(t *testing.T) {
	nombre := NombreUnico("Foto de Producto.PNG")
	assert.True(t, strings.HasSuffix(nombre, ".png"), nombre)

	otro := NombreUnico("Foto de Producto.PNG")
	assert.NotEqual(t, nombre, otro, "names must not collide")

	sinExt := NombreUnico("camara")
	assert.True(t, strings.HasSuffix(sinExt, ".jpg"), sinExt)
}
