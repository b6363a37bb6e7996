package repository

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// PlaceRepository define el puerto de persistencia para Place.
// Las lecturas cargan Place.Address.
type PlaceRepository interface {
	Create(ctx context.Context, place *entity.Place) error
	GetByID(ctx context.Context, id int64) (*entity.Place, error)
	// GetInOrg devuelve domain.ErrNotFound si el local no existe o pertenece a otra organización.
	GetInOrg(ctx context.Context, orgID, id int64) (*entity.Place, error)
	Update(ctx context.Context, place *entity.Place) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	ListByOrg(ctx context.Context, orgID int64) ([]*entity.Place, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.Place, error)

	// ListDispatchByOrg locales activos marcados como dirección de despacho.
	ListDispatchByOrg(ctx context.Context, orgID int64) ([]*entity.Place, error)
	// FindDispatchByAddress local activo de despacho de la organización con esa dirección.
	// Devuelve domain.ErrNotFound si no hay ninguno.
	FindDispatchByAddress(ctx context.Context, orgID, addressID int64) (*entity.Place, error)
	// ExistsActiveWithAddress informa si la organización tiene un local activo con la dirección.
	ExistsActiveWithAddress(ctx context.Context, orgID, addressID int64) (bool, error)
	// ExistsByOrgAndOdooAddress informa si algún local de la organización usa la dirección Odoo dada.
	ExistsByOrgAndOdooAddress(ctx context.Context, orgID, odooAddressID int64) (bool, error)
}

// PeriodRepository ventanas semanales de los locales.
type PeriodRepository interface {
	Create(ctx context.Context, period *entity.Period) error
	// ListByPlace ordenados por (weekday, open_time).
	ListByPlace(ctx context.Context, placeID int64) ([]entity.Period, error)
	Delete(ctx context.Context, placeID, periodID int64) error
}
