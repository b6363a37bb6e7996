package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/ports"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

// UnitUseCase unidades de medida. Tras cada guardado se notifica al hook.
type UnitUseCase struct {
	units repository.UnitRepository
	hook  ports.UnitSavedHook
	log   zerolog.Logger
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(units repository.UnitRepository, hook ports.UnitSavedHook, log zerolog.Logger) *UnitUseCase {
	return &UnitUseCase{units: units, hook: hook, log: log}
}

// Create crea una unidad (activa por defecto).
func (uc *UnitUseCase) Create(ctx context.Context, in dto.UnitRequest) (*dto.UnitResponse, error) {
	u := &entity.Unit{Activable: entity.Activable{IsActive: true}, Name: in.Name, ShortName: in.ShortName}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if err := uc.units.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.saved(ctx, u)
	return toUnitResponse(u), nil
}

// Update modifica nombre, abreviatura y estado.
func (uc *UnitUseCase) Update(ctx context.Context, id int64, in dto.UnitRequest) (*dto.UnitResponse, error) {
	u, err := uc.units.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Name, u.ShortName = in.Name, in.ShortName
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if err := uc.units.Update(ctx, u); err != nil {
		return nil, err
	}
	uc.saved(ctx, u)
	return toUnitResponse(u), nil
}

// List todas las unidades.
func (uc *UnitUseCase) List(ctx context.Context) ([]dto.UnitResponse, error) {
	list, err := uc.units.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUnitResponse(u))
	}
	return out, nil
}

func (uc *UnitUseCase) saved(ctx context.Context, u *entity.Unit) {
	if uc.hook == nil {
		return
	}
	if err := uc.hook.UnitSaved(ctx, u); err != nil {
		uc.log.Error().Err(err).Int64("unit_id", u.ID).Msg("falló el hook de unidad guardada")
	}
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	return &dto.UnitResponse{ID: u.ID, Name: u.Name, ShortName: u.ShortName, IsActive: u.IsActive}
}
