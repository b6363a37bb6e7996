package repository

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// DistrictRepository define el puerto de persistencia para District.
// Las instancias devueltas traen asociado el cargador de días de despacho.
type DistrictRepository interface {
	Create(ctx context.Context, d *entity.District) error
	GetByID(ctx context.Context, id int64) (*entity.District, error)
	GetByUbigeo(ctx context.Context, ubigeo string) (*entity.District, error)
	List(ctx context.Context, department, province string) ([]*entity.District, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// ShippingDaysByGroup días de despacho de cada grupo al que pertenece el distrito.
	ShippingDaysByGroup(ctx context.Context, districtID int64) ([][]string, error)
}
