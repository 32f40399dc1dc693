package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// RPC invokes a named remote procedure with JSON args and decodes the
// result into destino. destino may be a pointer to a slice (tabular
// results), to a string (scalar results) or to any struct (json results);
// pass nil to discard the body.
func (c *Client) RPC(ctx context.Context, fn string, args interface{}, destino interface{}) error {
	if args == nil {
		args = struct{}{}
	}
	body, err := json.Marshal(args)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/rpc/"+fn, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseError(resp)
	}
	if destino == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(destino)
}
