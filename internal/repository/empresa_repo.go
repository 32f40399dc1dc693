package repository

import (
	"context"

	"github.com/ceordev/pos-ventas/internal/dto"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// EmpresaRepository wraps the one-off onboarding procedure.
type EmpresaRepository interface {
	CrearEmpresa(ctx context.Context, params dto.CrearEmpresaParams) error
}

type empresaRepo struct{ db *supabase.Client }

func NewEmpresaRepository(db *supabase.Client) EmpresaRepository {
	return &empresaRepo{db: db}
}

func (r *empresaRepo) CrearEmpresa(ctx context.Context, params dto.CrearEmpresaParams) error {
	return r.db.RPC(ctx, "crear_empresa", params, nil)
}
