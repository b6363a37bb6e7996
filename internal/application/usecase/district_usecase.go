package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

// DateLayout formato de fecha aceptado en consultas de despacho.
const DateLayout = "2006-01-02"

// DistrictUseCase consultas de distritos y días de despacho.
type DistrictUseCase struct {
	districts repository.DistrictRepository
}

// NewDistrictUseCase construye el caso de uso.
func NewDistrictUseCase(districts repository.DistrictRepository) *DistrictUseCase {
	return &DistrictUseCase{districts: districts}
}

// GetByID obtiene un distrito.
func (uc *DistrictUseCase) GetByID(ctx context.Context, id int64) (*dto.DistrictResponse, error) {
	d, err := uc.districts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDistrictResponse(d), nil
}

// List filtra por departamento y provincia (vacío = sin filtro).
func (uc *DistrictUseCase) List(ctx context.Context, department, province string) ([]dto.DistrictResponse, error) {
	list, err := uc.districts.List(ctx, department, province)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DistrictResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDistrictResponse(d))
	}
	return out, nil
}

// CanShipInDay informa si se despacha al distrito en la fecha (YYYY-MM-DD).
func (uc *DistrictUseCase) CanShipInDay(ctx context.Context, id int64, date string) (*dto.CanShipResponse, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, validationField("date", "formato YYYY-MM-DD")
	}
	d, err := uc.districts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := d.CanShipInDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return &dto.CanShipResponse{DistrictID: id, Date: date, CanShip: ok}, nil
}

func toDistrictResponse(d *entity.District) *dto.DistrictResponse {
	return &dto.DistrictResponse{
		ID:          d.ID,
		Ubigeo:      d.Ubigeo,
		Name:        d.Name,
		DisplayName: d.DisplayableName(),
		Capital:     d.Capital,
		Department:  d.Department,
		Province:    d.Province,
		OdooID:      d.OdooID,
		Polygons:    len(d.Geom),
	}
}
