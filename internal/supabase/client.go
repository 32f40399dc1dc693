// Package supabase is the remote data gateway: a single configured client
// for every table read, remote-procedure call, auth operation and storage
// object the application touches. The backend owns all persistence and
// business logic of consequence; this package only speaks its HTTP
// conventions (PostgREST, GoTrue, Storage).
package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ceordev/pos-ventas/internal/infra"
)

// Client holds the connection settings and session headers shared by the
// table, RPC, auth and storage surfaces.
type Client struct {
	baseURL string
	anonKey string
	hc      *http.Client

	mu          sync.RWMutex
	accessToken string

	auth    *AuthClient
	storage *StorageClient
}

// New builds a gateway for the given project URL and anon key.
func New(baseURL, anonKey string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
	c.auth = &AuthClient{c: c}
	c.storage = &StorageClient{c: c, breaker: infra.NewCircuitBreaker(infra.DefaultCBConfig())}
	return c
}

// Auth returns the GoTrue surface.
func (c *Client) Auth() *AuthClient { return c.auth }

// Storage returns the object-storage surface.
func (c *Client) Storage() *StorageClient { return c.storage }

// SetAccessToken swaps the bearer used on subsequent requests. An empty
// token falls back to the anon key.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.accessToken != "" {
		return c.accessToken
	}
	return c.anonKey
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
}

// ── PostgREST query builder ───────────────────────────────────────────────────

// QueryBuilder accumulates one filtered, paginated table read. Mirrors the
// PostgREST querystring conventions: `col=eq.v`, `or=(...)`, `order=c.asc`,
// `limit`/`offset`, `select` with embedded resources.
type QueryBuilder struct {
	c      *Client
	tabla  string
	params url.Values
	exact  bool
	single bool
}

// From starts a query against a table.
func (c *Client) From(tabla string) *QueryBuilder {
	return &QueryBuilder{c: c, tabla: tabla, params: url.Values{}}
}

// Select sets the column list; embedded resources like `categorias(nombre)`
// are passed through verbatim.
func (q *QueryBuilder) Select(columnas string) *QueryBuilder {
	q.params.Set("select", columnas)
	return q
}

// ExactCount asks the backend for the total match count alongside the page.
func (q *QueryBuilder) ExactCount() *QueryBuilder {
	q.exact = true
	return q
}

// Eq adds an equality filter.
func (q *QueryBuilder) Eq(columna, valor string) *QueryBuilder {
	q.params.Add(columna, "eq."+valor)
	return q
}

// Or adds a disjunction of filters, e.g. `nombre.ilike.*te*,codigo_barras.ilike.*te*`.
func (q *QueryBuilder) Or(expr string) *QueryBuilder {
	q.params.Set("or", "("+expr+")")
	return q
}

// Order sorts ascending by the given column.
func (q *QueryBuilder) Order(columna string) *QueryBuilder {
	q.params.Set("order", columna+".asc")
	return q
}

// Range selects the inclusive 0-based row window [desde, hasta].
func (q *QueryBuilder) Range(desde, hasta int) *QueryBuilder {
	q.params.Set("offset", strconv.Itoa(desde))
	q.params.Set("limit", strconv.Itoa(hasta-desde+1))
	return q
}

// Limit caps the number of returned rows.
func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

// Single asks for exactly one row, decoded as an object instead of an array.
// Zero or multiple matches become an *APIError.
func (q *QueryBuilder) Single() *QueryBuilder {
	q.single = true
	return q
}

// Execute runs the query, decodes the rows into destino (a pointer to a
// slice, or to a struct when Single), and returns the total match count
// when ExactCount was requested.
func (q *QueryBuilder) Execute(ctx context.Context, destino interface{}) (int64, error) {
	endpoint := q.c.baseURL + "/rest/v1/" + q.tabla + "?" + q.params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	q.c.setHeaders(req)
	if q.exact {
		req.Header.Set("Prefer", "count=exact")
	}
	if q.single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	resp, err := q.c.hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, parseError(resp)
	}

	if destino != nil {
		if err := json.NewDecoder(resp.Body).Decode(destino); err != nil {
			return 0, err
		}
	}
	return totalFromContentRange(resp.Header.Get("Content-Range")), nil
}

// totalFromContentRange extracts the total from a `0-9/100` style header.
// Returns 0 when the header is absent or the total is unknown (`*`).
func totalFromContentRange(header string) int64 {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return 0
	}
	total, err := strconv.ParseInt(header[idx+1:], 10, 64)
	if err != nil {
		return 0
	}
	return total
}
