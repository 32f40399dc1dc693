package repository

import (
	"context"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// VentaRepository wraps registrar_venta, the atomic sale + lines + stock
// decrement procedure. Callers interpret the returned rows: zero rows and
// a row without id_venta are both logical failures.
type VentaRepository interface {
	RegistrarVenta(ctx context.Context, params dto.RegistrarVentaParams) ([]dto.VentaRow, error)
}

type ventaRepo struct{ db *supabase.Client }

func NewVentaRepository(db *supabase.Client) VentaRepository {
	return &ventaRepo{db: db}
}

func (r *ventaRepo) RegistrarVenta(ctx context.Context, params dto.RegistrarVentaParams) ([]dto.VentaRow, error) {
	var filas []dto.VentaRow
	if err := r.db.RPC(ctx, "registrar_venta", params, &filas); err != nil {
		return nil, err
	}
	return filas, nil
}
