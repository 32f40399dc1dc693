package supabase

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is the error shape PostgREST / GoTrue / Storage return on 4xx-5xx.
// Every transport-level failure of the gateway surfaces as one of these so
// services can normalize it into their Resultado envelope.
type APIError struct {
	Status   int    `json:"-"`
	Mensaje  string `json:"message"`
	Detalles string `json:"details"`
	Pista    string `json:"hint"`
	Codigo   string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Mensaje != "" {
		return e.Mensaje
	}
	return fmt.Sprintf("el backend respondió %d", e.Status)
}

// parseError drains the response body and maps it to an *APIError. Bodies
// that are not the canonical JSON error shape are carried verbatim.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Mensaje == "" {
		if msg := strings.TrimSpace(string(body)); msg != "" && apiErr.Mensaje == "" {
			apiErr.Mensaje = msg
		}
	}
	return apiErr
}
