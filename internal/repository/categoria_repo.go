package repository

import (
	"context"

	"github.com/ceordev/pos-ventas/internal/model"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

type CategoriaRepository interface {
	Listar(ctx context.Context) ([]model.Categoria, error)
}

type categoriaRepo struct{ db *supabase.Client }

func NewCategoriaRepository(db *supabase.Client) CategoriaRepository {
	return &categoriaRepo{db: db}
}

func (r *categoriaRepo) Listar(ctx context.Context) ([]model.Categoria, error) {
	var categorias []model.Categoria
	_, err := r.db.From("categorias").Select("*").Order("nombre").Execute(ctx, &categorias)
	if err != nil {
		return nil, err
	}
	return categorias, nil
}
