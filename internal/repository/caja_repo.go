package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/model"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// CajaRepository wraps the cash-session remote procedures. Register and
// user resolution on open happens server-side from the caller's context;
// the reconciliation arithmetic on close is backend-owned too.
type CajaRepository interface {
	// CajaAbierta returns the currently open session, or nil when none.
	CajaAbierta(ctx context.Context) (*model.CajaAbierta, error)
	AbrirCajaSimple(ctx context.Context, montoApertura decimal.Decimal) ([]dto.AperturaCajaRow, error)
	// CerrarCaja returns the backend's status string verbatim — it may
	// embed an "Error:" marker despite the 200-level response.
	CerrarCaja(ctx context.Context, params dto.CerrarCajaParams) (string, error)
	DatosCierre(ctx context.Context, idCierreCaja int64) (*dto.DatosCierre, error)
}

type cajaRepo struct{ db *supabase.Client }

func NewCajaRepository(db *supabase.Client) CajaRepository {
	return &cajaRepo{db: db}
}

func (r *cajaRepo) CajaAbierta(ctx context.Context) (*model.CajaAbierta, error) {
	var filas []model.CajaAbierta
	if err := r.db.RPC(ctx, "get_open_cierre_caja", nil, &filas); err != nil {
		return nil, err
	}
	if len(filas) == 0 {
		return nil, nil
	}
	return &filas[0], nil
}

func (r *cajaRepo) AbrirCajaSimple(ctx context.Context, montoApertura decimal.Decimal) ([]dto.AperturaCajaRow, error) {
	args := map[string]decimal.Decimal{"_monto_apertura": montoApertura}
	var filas []dto.AperturaCajaRow
	if err := r.db.RPC(ctx, "abrir_caja_simple", args, &filas); err != nil {
		return nil, err
	}
	return filas, nil
}

func (r *cajaRepo) CerrarCaja(ctx context.Context, params dto.CerrarCajaParams) (string, error) {
	var mensaje string
	if err := r.db.RPC(ctx, "cerrar_caja", params, &mensaje); err != nil {
		return "", err
	}
	return mensaje, nil
}

func (r *cajaRepo) DatosCierre(ctx context.Context, idCierreCaja int64) (*dto.DatosCierre, error) {
	args := map[string]int64{"p_cierre_id": idCierreCaja}

	// The procedure returns a json envelope, not a table.
	var respuesta struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Data    *dto.DatosCierre `json:"data"`
	}
	if err := r.db.RPC(ctx, "get_cierre_caja_details", args, &respuesta); err != nil {
		return nil, err
	}
	if !respuesta.Success {
		return nil, errors.New(respuesta.Message)
	}
	if respuesta.Data == nil {
		return nil, errors.New("el resumen de cierre llegó vacío")
	}
	return respuesta.Data, nil
}
