package repository

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// RestrictionRepository define el puerto de persistencia para Restriction.
type RestrictionRepository interface {
	// Create devuelve *domain.ConflictError si (user, kind, object) ya existe.
	Create(ctx context.Context, r *entity.Restriction) error
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Restriction, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]*entity.Restriction, error)
	ObjectIDs(ctx context.Context, userID int64, kind entity.RestrictableKind) ([]int64, error)

	// PlaceOdooAddressesByOrg para cada miembro de la organización con restricciones sobre locales,
	// el odoo_id de la dirección de cada local restringido (nil si el local o su odoo_id no existen).
	PlaceOdooAddressesByOrg(ctx context.Context, orgID int64) (map[int64][]*int64, error)
}
