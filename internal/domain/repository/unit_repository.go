package repository

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// UnitRepository unidades de medida.
type UnitRepository interface {
	Create(ctx context.Context, u *entity.Unit) error
	GetByID(ctx context.Context, id int64) (*entity.Unit, error)
	Update(ctx context.Context, u *entity.Unit) error
	List(ctx context.Context) ([]*entity.Unit, error)
}
