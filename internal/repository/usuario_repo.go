package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ceordev/pos-ventas/internal/model"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// UsuarioRepository resolves authenticated identities to application
// profiles. The id_auth column links a usuarios row to its GoTrue user.
type UsuarioRepository interface {
	// BuscarPorAuthID returns the profile joined with its role display name.
	BuscarPorAuthID(ctx context.Context, authID uuid.UUID) (*model.Usuario, error)
	// IDPorAuthID returns only the internal user id.
	IDPorAuthID(ctx context.Context, authID uuid.UUID) (int64, error)
}

type usuarioRepo struct{ db *supabase.Client }

func NewUsuarioRepository(db *supabase.Client) UsuarioRepository {
	return &usuarioRepo{db: db}
}

type usuarioRow struct {
	ID        int64  `json:"id"`
	Nombres   string `json:"nombres"`
	Usuario   string `json:"usuario"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	IDRol     int64  `json:"id_rol"`
	Estado    string `json:"estado"`
	Roles     struct {
		Nombre string `json:"nombre"`
	} `json:"roles"`
}

func (r *usuarioRepo) BuscarPorAuthID(ctx context.Context, authID uuid.UUID) (*model.Usuario, error) {
	var fila usuarioRow
	_, err := r.db.From("usuarios").
		Select("id,nombres,usuario,direccion,telefono,id_rol,estado,roles!inner(nombre)").
		Eq("id_auth", authID.String()).
		Single().
		Execute(ctx, &fila)
	if err != nil {
		return nil, err
	}

	return &model.Usuario{
		ID:        fila.ID,
		Nombres:   fila.Nombres,
		Usuario:   fila.Usuario,
		Direccion: fila.Direccion,
		Telefono:  fila.Telefono,
		IDRol:     fila.IDRol,
		Rol:       fila.Roles.Nombre,
		Estado:    fila.Estado,
	}, nil
}

func (r *usuarioRepo) IDPorAuthID(ctx context.Context, authID uuid.UUID) (int64, error) {
	var fila struct {
		ID int64 `json:"id"`
	}
	_, err := r.db.From("usuarios").
		Select("id").
		Eq("id_auth", authID.String()).
		Single().
		Execute(ctx, &fila)
	if err != nil {
		return 0, err
	}
	return fila.ID, nil
}
