package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/model"
	"github.com/ceordev/pos-ventas/internal/repository"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// clienteAuth is the slice of the GoTrue surface the bridge consumes.
type clienteAuth interface {
	IniciarSesion(ctx context.Context, email, password string) (*supabase.Sesion, error)
	Registrarse(ctx context.Context, email, password string) (*supabase.Sesion, error)
	CerrarSesion(ctx context.Context) error
	UsuarioActual(ctx context.Context) (*supabase.AuthUser, error)
	OnCambioEstado(fn func(evento string, s *supabase.Sesion))
}

// EstadoAuth is the process-wide observable auth state. A signed-in user
// with a nil Perfil is a valid state: profile resolution can fail without
// discarding the authenticated identity, and callers must handle it.
type EstadoAuth struct {
	Usuario  *supabase.AuthUser
	Perfil   *model.Usuario
	Cargando bool
}

// AuthService bridges backend auth state changes to the application: on
// every sign-in or token refresh it re-resolves the authenticated identity
// to a usuarios row joined with its role name and republishes the combined
// state.
type AuthService struct {
	auth     clienteAuth
	usuarios repository.UsuarioRepository
	empresas repository.EmpresaRepository

	mu     sync.Mutex
	estado EstadoAuth
	subs   []func(EstadoAuth)
}

func NewAuthService(auth clienteAuth, usuarios repository.UsuarioRepository, empresas repository.EmpresaRepository) *AuthService {
	return &AuthService{
		auth:     auth,
		usuarios: usuarios,
		empresas: empresas,
		estado:   EstadoAuth{Cargando: true},
	}
}

// Iniciar subscribes to auth state changes and resolves the current
// session, if any. Call once at startup.
func (s *AuthService) Iniciar(ctx context.Context) {
	s.auth.OnCambioEstado(func(evento string, sesion *supabase.Sesion) {
		switch evento {
		case supabase.EventoSesionIniciada, supabase.EventoTokenRefrescado:
			usuario := sesion.User
			s.cargarPerfil(context.Background(), &usuario)
		case supabase.EventoSesionCerrada:
			s.publicar(EstadoAuth{})
		}
	})

	usuario, err := s.auth.UsuarioActual(ctx)
	if err != nil || usuario == nil {
		s.publicar(EstadoAuth{})
		return
	}
	s.cargarPerfil(ctx, usuario)
}

// Estado returns the current published state.
func (s *AuthService) Estado() EstadoAuth {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.estado
}

// Suscribir registers an observer invoked on every published state.
func (s *AuthService) Suscribir(fn func(EstadoAuth)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// IniciarSesion signs in with email/password; profile resolution happens
// through the state-change subscription.
func (s *AuthService) IniciarSesion(ctx context.Context, email, password string) dto.Resultado {
	if _, err := s.auth.IniciarSesion(ctx, email, password); err != nil {
		return dto.Fallido(mensajeDe(err, "Error al iniciar sesión"))
	}
	return dto.Exitoso("Sesión iniciada")
}

// Registrarse creates a new credential pair.
func (s *AuthService) Registrarse(ctx context.Context, email, password string) dto.Resultado {
	if _, err := s.auth.Registrarse(ctx, email, password); err != nil {
		return dto.Fallido(mensajeDe(err, "Error al registrarse"))
	}
	return dto.Exitoso("Registro completado")
}

// CerrarSesion signs out; the SIGNED_OUT event clears the published state.
func (s *AuthService) CerrarSesion(ctx context.Context) dto.Resultado {
	if err := s.auth.CerrarSesion(ctx); err != nil {
		return dto.Fallido(mensajeDe(err, "Error al cerrar sesión"))
	}
	return dto.Exitoso("Sesión cerrada")
}

// CrearEmpresa runs the one-off onboarding procedure.
func (s *AuthService) CrearEmpresa(ctx context.Context, params dto.CrearEmpresaParams) dto.Resultado {
	if err := s.empresas.CrearEmpresa(ctx, params); err != nil {
		return dto.Fallido(mensajeDe(err, "Error al crear la empresa"))
	}
	return dto.Exitoso("Empresa creada")
}

// cargarPerfil resolves the profile for usuario and publishes the combined
// state. A failed lookup still publishes the signed-in identity.
func (s *AuthService) cargarPerfil(ctx context.Context, usuario *supabase.AuthUser) {
	perfil, err := s.usuarios.BuscarPorAuthID(ctx, usuario.ID)
	if err != nil {
		log.Error().Err(err).Str("id_auth", usuario.ID.String()).Msg("error cargando perfil de usuario")
		s.publicar(EstadoAuth{Usuario: usuario})
		return
	}
	s.publicar(EstadoAuth{Usuario: usuario, Perfil: perfil})
}

func (s *AuthService) publicar(estado EstadoAuth) {
	s.mu.Lock()
	s.estado = estado
	subs := make([]func(EstadoAuth), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(estado)
	}
}
