package repository

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID devuelve domain.ErrUserNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByEmail devuelve domain.ErrUserNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByToken busca por token de activación.
	GetByToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLegacyLoggedOrg(ctx context.Context, userID int64, orgID *int64) error
	UpdateToken(ctx context.Context, user *entity.User) error
	UpdateActive(ctx context.Context, userID int64, isActive bool) error
}
