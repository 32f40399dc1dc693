package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/model"
	"github.com/ceordev/pos-ventas/internal/repository"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// ── GoTrue fake ──────────────────────────────────────────────────────────────

type fakeAuth struct {
	usuario   *supabase.AuthUser
	errLogin  error
	errActual error
	callbacks []func(evento string, s *supabase.Sesion)
}

func (f *fakeAuth) IniciarSesion(_ context.Context, _, _ string) (*supabase.Sesion, error) {
	if f.errLogin != nil {
		return nil, f.errLogin
	}
	sesion := &supabase.Sesion{AccessToken: "tok", User: *f.usuario}
	f.emitir(supabase.EventoSesionIniciada, sesion)
	return sesion, nil
}

func (f *fakeAuth) Registrarse(_ context.Context, _, _ string) (*supabase.Sesion, error) {
	return &supabase.Sesion{}, nil
}

func (f *fakeAuth) CerrarSesion(_ context.Context) error {
	f.emitir(supabase.EventoSesionCerrada, nil)
	return nil
}

func (f *fakeAuth) UsuarioActual(_ context.Context) (*supabase.AuthUser, error) {
	if f.errActual != nil {
		return nil, f.errActual
	}
	return f.usuario, nil
}

func (f *fakeAuth) OnCambioEstado(fn func(evento string, s *supabase.Sesion)) {
	f.callbacks = append(f.callbacks, fn)
}

func (f *fakeAuth) emitir(evento string, s *supabase.Sesion) {
	for _, fn := range f.callbacks {
		fn(evento, s)
	}
}

var _ clienteAuth = (*fakeAuth)(nil)

type fakeEmpresaRepo struct{ err error }

func (r *fakeEmpresaRepo) CrearEmpresa(_ context.Context, _ dto.CrearEmpresaParams) error {
	return r.err
}

var _ repository.EmpresaRepository = (*fakeEmpresaRepo)(nil)

func usuarioAuthDePrueba() *supabase.AuthUser {
	return &supabase.AuthUser{ID: uuid.New(), Email: "cajero@tienda.bo", Rol: "authenticated"}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestIniciarSinSesionPublicaVacio(t *testing.T) {
	auth := &fakeAuth{errActual: errors.New("no session")}
	svc := NewAuthService(auth, &fakeUsuarioRepo{}, &fakeEmpresaRepo{})

	require.True(t, svc.Estado().Cargando, "state starts loading until resolution")
	svc.Iniciar(context.Background())

	estado := svc.Estado()
	assert.False(t, estado.Cargando)
	assert.Nil(t, estado.Usuario)
	assert.Nil(t, estado.Perfil)
}

func TestIniciarResuelveSesionExistente(t *testing.T) {
	auth := &fakeAuth{usuario: usuarioAuthDePrueba()}
	usuarios := &fakeUsuarioRepo{perfil: &model.Usuario{ID: 7, Nombres: "Ana", Rol: "cajero"}}
	svc := NewAuthService(auth, usuarios, &fakeEmpresaRepo{})

	svc.Iniciar(context.Background())

	estado := svc.Estado()
	require.NotNil(t, estado.Usuario)
	require.NotNil(t, estado.Perfil)
	assert.Equal(t, "Ana", estado.Perfil.Nombres)
}

func TestLoginPublicaUsuarioYPerfil(t *testing.T) {
	auth := &fakeAuth{usuario: usuarioAuthDePrueba()}
	usuarios := &fakeUsuarioRepo{perfil: &model.Usuario{ID: 7, Nombres: "Ana"}}
	svc := NewAuthService(auth, usuarios, &fakeEmpresaRepo{})
	auth.errActual = errors.New("no session")
	svc.Iniciar(context.Background())

	var publicados []EstadoAuth
	svc.Suscribir(func(e EstadoAuth) { publicados = append(publicados, e) })

	res := svc.IniciarSesion(context.Background(), "cajero@tienda.bo", "secreto")

	assert.True(t, res.Exito)
	require.NotEmpty(t, publicados)
	ultimo := publicados[len(publicados)-1]
	require.NotNil(t, ultimo.Usuario)
	require.NotNil(t, ultimo.Perfil)
}

func TestPerfilFallidoConservaIdentidad(t *testing.T) {
	auth := &fakeAuth{usuario: usuarioAuthDePrueba()}
	usuarios := &fakeUsuarioRepo{errPerfil: errors.New("row not found")}
	svc := NewAuthService(auth, usuarios, &fakeEmpresaRepo{})

	svc.Iniciar(context.Background())

	estado := svc.Estado()
	require.NotNil(t, estado.Usuario, "a failed profile lookup keeps the signed-in identity")
	assert.Nil(t, estado.Perfil)
	assert.Equal(t, "cajero@tienda.bo", estado.Usuario.Email)
}

func TestLogoutLimpiaEstado(t *testing.T) {
	auth := &fakeAuth{usuario: usuarioAuthDePrueba()}
	svc := NewAuthService(auth, &fakeUsuarioRepo{perfil: &model.Usuario{ID: 7}}, &fakeEmpresaRepo{})
	svc.Iniciar(context.Background())
	require.NotNil(t, svc.Estado().Usuario)

	res := svc.CerrarSesion(context.Background())

	assert.True(t, res.Exito)
	estado := svc.Estado()
	assert.Nil(t, estado.Usuario)
	assert.Nil(t, estado.Perfil)
}

func TestLoginFallido(t *testing.T) {
	auth := &fakeAuth{errLogin: errors.New("Invalid login credentials")}
	svc := NewAuthService(auth, &fakeUsuarioRepo{}, &fakeEmpresaRepo{})

	res := svc.IniciarSesion(context.Background(), "x@y.z", "mal")

	assert.False(t, res.Exito)
	assert.Equal(t, "Invalid login credentials", res.Mensaje)
}

func TestCrearEmpresa(t *testing.T) {
	svc := NewAuthService(&fakeAuth{}, &fakeUsuarioRepo{}, &fakeEmpresaRepo{})

	res := svc.CrearEmpresa(context.Background(), dto.CrearEmpresaParams{Nombre: "Mi Tienda"})
	assert.True(t, res.Exito)

	svcErr := NewAuthService(&fakeAuth{}, &fakeUsuarioRepo{}, &fakeEmpresaRepo{err: errors.New("duplicada")})
	res = svcErr.CrearEmpresa(context.Background(), dto.CrearEmpresaParams{Nombre: "Mi Tienda"})
	assert.False(t, res.Exito)
	assert.Equal(t, "duplicada", res.Mensaje)
}
