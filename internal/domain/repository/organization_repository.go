package repository

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
// Toda escritura aplica NormalizeBlocking antes de persistir.
type OrganizationRepository interface {
	// Create inserta la organización y asigna ID y DateCreation.
	Create(ctx context.Context, org *entity.Organization) error
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
	// UpdateBlocking persiste solo blocked, blocking_reason y unblocking_reason.
	UpdateBlocking(ctx context.Context, org *entity.Organization) error
	UpdateOrgcode(ctx context.Context, id int64, orgcode string) error
	UpdateActive(ctx context.Context, id int64, isActive bool) error
	// ListByMember organizaciones de las que el usuario es miembro.
	ListByMember(ctx context.Context, userID int64, limit, offset int) ([]*entity.Organization, error)
	Exists(ctx context.Context, id int64) (bool, error)

	// FirstActiveForUser primera organización activa del usuario (por ID); nil si no tiene.
	FirstActiveForUser(ctx context.Context, userID int64) (*entity.Organization, error)
	// ActiveMemberEmails emails de los usuarios activos miembros de la organización.
	ActiveMemberEmails(ctx context.Context, orgID int64) ([]entity.ActiveMemberEmail, error)
}
