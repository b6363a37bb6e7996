package repository

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// AddressRepository define el puerto de persistencia para Address.
// Create y Update ejecutan Address.PrepareForSave.
type AddressRepository interface {
	Create(ctx context.Context, addr *entity.Address) error
	GetByID(ctx context.Context, id int64) (*entity.Address, error)
	GetByOdooID(ctx context.Context, odooID int64) (*entity.Address, error)
	Update(ctx context.Context, addr *entity.Address) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
