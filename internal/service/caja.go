package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/model"
	"github.com/ceordev/pos-ventas/internal/repository"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// proveedorIdentidad is the slice of the auth surface the orchestrator
// needs: who is the authenticated caller right now.
type proveedorIdentidad interface {
	UsuarioActual(ctx context.Context) (*supabase.AuthUser, error)
}

// CajaService orchestrates the cash-register session lifecycle: Closed →
// Open → Closed, with at most one open session per register (enforced
// remotely). It holds the locally cached open session, refreshed on
// demand via VerificarCajaAbierta — there is no push channel.
type CajaService struct {
	repo     repository.CajaRepository
	usuarios repository.UsuarioRepository
	auth     proveedorIdentidad

	mu      sync.Mutex
	abierta *model.CajaAbierta
	subs    []func(*model.CajaAbierta)
}

func NewCajaService(repo repository.CajaRepository, usuarios repository.UsuarioRepository, auth proveedorIdentidad) *CajaService {
	return &CajaService{repo: repo, usuarios: usuarios, auth: auth}
}

// Suscribir registers an observer invoked whenever the cached open-session
// state is republished.
func (s *CajaService) Suscribir(fn func(*model.CajaAbierta)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// CajaAbierta returns the cached open session, or nil when none.
func (s *CajaService) CajaAbierta() *model.CajaAbierta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.abierta
}

// VerificarCajaAbierta queries the backend for the open session and
// republishes local state. Idempotent and safe to call repeatedly; a
// query failure resets the cached state to none.
func (s *CajaService) VerificarCajaAbierta(ctx context.Context) {
	caja, err := s.repo.CajaAbierta(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error verificando caja abierta")
		caja = nil
	}
	s.mu.Lock()
	s.abierta = caja
	subs := make([]func(*model.CajaAbierta), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(caja)
	}
}

// AbrirCaja invokes the session-open procedure. Which register and which
// user open it is resolved server-side from the authenticated caller; the
// client only supplies the opening amount. A row without a session id is
// a business-rule rejection (already open, no register assigned) and is
// reported with the backend's message, not thrown.
func (s *CajaService) AbrirCaja(ctx context.Context, montoApertura decimal.Decimal) dto.Resultado {
	filas, err := s.repo.AbrirCajaSimple(ctx, montoApertura)
	if err != nil {
		log.Error().Err(err).Msg("error abriendo caja")
		return dto.Fallido(mensajeDe(err, "Error al abrir la caja"))
	}
	if len(filas) == 0 {
		return dto.Fallido("Error desconocido al abrir la caja")
	}

	fila := filas[0]
	if fila.IDCierreCaja == nil {
		return dto.Fallido(fila.Mensaje)
	}
	s.VerificarCajaAbierta(ctx)
	return dto.Exitoso(fila.Mensaje)
}

// CerrarCaja invokes the session-close procedure with the five
// reconciliation figures. The backend computes the cash discrepancy and
// profit split. Its status string may embed an "Error:" marker despite a
// successful transport exchange; that is treated as a logical failure.
func (s *CajaService) CerrarCaja(ctx context.Context, idCierreCaja, idUsuarioCierre int64, montoContado, gastosCajaChica, montoAperturaSiguiente decimal.Decimal) dto.Resultado {
	mensaje, err := s.repo.CerrarCaja(ctx, dto.CerrarCajaParams{
		IDCierreCaja:             idCierreCaja,
		IDUsuarioCierre:          idUsuarioCierre,
		MontoRealContadoEfectivo: montoContado,
		TotalGastosCajaChica:     gastosCajaChica,
		MontoAperturaSiguiente:   montoAperturaSiguiente,
	})
	if err != nil {
		log.Error().Err(err).Int64("id_cierre_caja", idCierreCaja).Msg("error cerrando caja")
		return dto.Fallido(mensajeDe(err, "Error al cerrar la caja"))
	}
	if strings.Contains(mensaje, "Error:") {
		return dto.Fallido(mensaje)
	}

	s.VerificarCajaAbierta(ctx)
	if mensaje == "" {
		mensaje = "Caja cerrada exitosamente"
	}
	return dto.Exitoso(mensaje)
}

// CerrarCajaActual closes whatever session is currently open on behalf of
// the authenticated caller, with the next opening amount defaulting to 0.
// Each lookup step fails fast with a descriptive message and performs no
// close call.
func (s *CajaService) CerrarCajaActual(ctx context.Context, montoContado, gastosAdicionales decimal.Decimal) dto.Resultado {
	caja, err := s.repo.CajaAbierta(ctx)
	if err != nil {
		return dto.Fallido(mensajeDe(err, "Error al obtener información de la caja"))
	}
	if caja == nil {
		return dto.Fallido("No hay una caja abierta actualmente")
	}

	user, err := s.auth.UsuarioActual(ctx)
	if err != nil || user == nil {
		return dto.Fallido("Error al obtener información del usuario")
	}

	idUsuario, err := s.usuarios.IDPorAuthID(ctx, user.ID)
	if err != nil {
		return dto.Fallido("Error al obtener el ID del usuario")
	}

	return s.CerrarCaja(ctx, caja.IDCierreCaja, idUsuario, montoContado, gastosAdicionales, decimal.Zero)
}

// ObtenerDatosCierre fetches the backend-computed reconciliation summary
// (totals by payment method, gross profit and the fixed 70/30 split) for
// display before confirming a close.
func (s *CajaService) ObtenerDatosCierre(ctx context.Context, idCierreCaja int64) dto.DatosCierreResultado {
	datos, err := s.repo.DatosCierre(ctx, idCierreCaja)
	if err != nil {
		log.Error().Err(err).Int64("id_cierre_caja", idCierreCaja).Msg("error obteniendo datos del cierre")
		return dto.DatosCierreResultado{Resultado: dto.Fallido(mensajeDe(err, "Error al obtener datos del cierre"))}
	}
	return dto.DatosCierreResultado{Resultado: dto.Exitoso(""), Datos: datos}
}

// mensajeDe prefers the error's own message, falling back when empty.
func mensajeDe(err error, alternativo string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return alternativo
}
