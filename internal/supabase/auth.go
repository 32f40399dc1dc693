package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Auth state-change events, named after the notifications GoTrue clients
// emit so observers can be ported across the two stacks unchanged.
const (
	EventoSesionIniciada  = "SIGNED_IN"
	EventoSesionCerrada   = "SIGNED_OUT"
	EventoTokenRefrescado = "TOKEN_REFRESHED"
)

// AuthUser is the authenticated identity as GoTrue reports it. The
// application profile (tabla usuarios) is resolved separately by id_auth.
type AuthUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Rol   string    `json:"role"`
}

// Sesion is one issued token pair.
type Sesion struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

// AuthClient is the GoTrue surface. State changes (sign-in, sign-out,
// refresh) are published to explicitly registered callbacks.
type AuthClient struct {
	c *Client

	mu        sync.Mutex
	sesion    *Sesion
	callbacks []func(evento string, s *Sesion)
}

// OnCambioEstado registers a callback invoked on every auth state change.
func (a *AuthClient) OnCambioEstado(fn func(evento string, s *Sesion)) {
	a.mu.Lock()
	a.callbacks = append(a.callbacks, fn)
	a.mu.Unlock()
}

// Sesion returns the currently held session, or nil when signed out.
func (a *AuthClient) Sesion() *Sesion {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sesion
}

// IniciarSesion signs in with email/password and publishes SIGNED_IN.
func (a *AuthClient) IniciarSesion(ctx context.Context, email, password string) (*Sesion, error) {
	return a.grant(ctx, "password", map[string]string{"email": email, "password": password}, EventoSesionIniciada)
}

// Refrescar exchanges the held refresh token for a new session.
func (a *AuthClient) Refrescar(ctx context.Context) (*Sesion, error) {
	a.mu.Lock()
	actual := a.sesion
	a.mu.Unlock()
	if actual == nil {
		return nil, errors.New("no hay sesión activa que refrescar")
	}
	return a.grant(ctx, "refresh_token", map[string]string{"refresh_token": actual.RefreshToken}, EventoTokenRefrescado)
}

// Registrarse creates a new credential pair. Depending on the project's
// email-confirmation policy the returned session may lack tokens.
func (a *AuthClient) Registrarse(ctx context.Context, email, password string) (*Sesion, error) {
	var sesion Sesion
	if err := a.post(ctx, "/auth/v1/signup", map[string]string{"email": email, "password": password}, &sesion); err != nil {
		return nil, err
	}
	return &sesion, nil
}

// CerrarSesion revokes the session server-side, clears the held tokens and
// publishes SIGNED_OUT.
func (a *AuthClient) CerrarSesion(ctx context.Context) error {
	if err := a.post(ctx, "/auth/v1/logout", struct{}{}, nil); err != nil {
		return err
	}
	a.mu.Lock()
	a.sesion = nil
	a.mu.Unlock()
	a.c.SetAccessToken("")
	a.notificar(EventoSesionCerrada, nil)
	return nil
}

// UsuarioActual asks GoTrue who the bearer belongs to.
func (a *AuthClient) UsuarioActual(ctx context.Context) (*AuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	a.c.setHeaders(req)

	resp, err := a.c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, parseError(resp)
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Expiracion reads the expiry of the held access token from its claims.
// The parse is unverified: signature validation belongs to the backend.
func (a *AuthClient) Expiracion() (time.Time, error) {
	a.mu.Lock()
	sesion := a.sesion
	a.mu.Unlock()
	if sesion == nil {
		return time.Time{}, errors.New("no hay sesión activa")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sesion.AccessToken, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("token sin claim exp")
	}
	return exp.Time, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (a *AuthClient) grant(ctx context.Context, tipo string, credenciales interface{}, evento string) (*Sesion, error) {
	var sesion Sesion
	if err := a.post(ctx, "/auth/v1/token?grant_type="+tipo, credenciales, &sesion); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.sesion = &sesion
	a.mu.Unlock()
	a.c.SetAccessToken(sesion.AccessToken)
	a.notificar(evento, &sesion)
	return &sesion, nil
}

func (a *AuthClient) post(ctx context.Context, ruta string, cuerpo interface{}, destino interface{}) error {
	body, err := json.Marshal(cuerpo)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.c.baseURL+ruta, bytes.NewReader(body))
	if err != nil {
		return err
	}
	a.c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return parseError(resp)
	}
	if destino == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(destino)
}

func (a *AuthClient) notificar(evento string, s *Sesion) {
	a.mu.Lock()
	fns := make([]func(string, *Sesion), len(a.callbacks))
	copy(fns, a.callbacks)
	a.mu.Unlock()
	for _, fn := range fns {
		fn(evento, s)
	}
}
