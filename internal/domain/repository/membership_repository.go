package repository

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// MembershipRepository relación usuario-organización.
type MembershipRepository interface {
	// Create devuelve *domain.ConflictError si el par ya existe.
	Create(ctx context.Context, m *entity.Membership) error
	IsMember(ctx context.Context, orgID, userID int64) (bool, error)
	// Get devuelve domain.ErrNotFound si el usuario no es miembro.
	Get(ctx context.Context, orgID, userID int64) (*entity.Membership, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Membership, error)
	Delete(ctx context.Context, orgID, userID int64) error
}
