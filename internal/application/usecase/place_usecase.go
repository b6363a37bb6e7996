package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/ports"
	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

// PlaceUseCase locales, sus direcciones y sus horarios semanales.
type PlaceUseCase struct {
	tx        ports.TxRunner
	places    repository.PlaceRepository
	periods   repository.PeriodRepository
	addresses repository.AddressRepository
	setup     ports.PlaceSetupHook
	log       zerolog.Logger
}

// NewPlaceUseCase construye el caso de uso. setup se invoca tras crear locales que lo requieren.
func NewPlaceUseCase(
	tx ports.TxRunner,
	places repository.PlaceRepository,
	periods repository.PeriodRepository,
	addresses repository.AddressRepository,
	setup ports.PlaceSetupHook,
	log zerolog.Logger,
) *PlaceUseCase {
	return &PlaceUseCase{tx: tx, places: places, periods: periods, addresses: addresses, setup: setup, log: log}
}

// Create crea la dirección y el local en una transacción dentro de la organización de la sesión.
// Un org_id distinto en el cuerpo devuelve domain.ErrForbidden. Para locales tipo store
// se ejecuta después el hook de setup; su fallo se registra pero no revierte el alta.
func (uc *PlaceUseCase) Create(ctx context.Context, orgID int64, in dto.CreatePlaceRequest) (*dto.PlaceResponse, error) {
	if in.OrgID != nil && *in.OrgID != orgID {
		return nil, domain.ErrForbidden
	}
	in.OrgID = &orgID
	addr, err := addressFromRequest(in.Address)
	if err != nil {
		return nil, err
	}
	place := &entity.Place{
		Activable:       entity.Activable{IsActive: true},
		OrgID:           in.OrgID,
		Type:            in.Type,
		Name:            in.Name,
		Description:     in.Description,
		Phone:           in.Phone,
		Website:         in.Website,
		DispatchAddress: in.DispatchAddress,
	}
	if in.IsActive != nil {
		place.IsActive = *in.IsActive
	}
	if err := place.Validate(); err != nil {
		return nil, err
	}

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Addresses.Create(ctx, addr); err != nil {
			return err
		}
		place.AddressID = addr.ID
		return r.Places.Create(ctx, place)
	})
	if err != nil {
		return nil, err
	}
	place.Address = addr

	if place.NeedsSetup() && uc.setup != nil {
		if err := uc.setup.SetupPlace(ctx, place); err != nil {
			uc.log.Error().Err(err).Int64("place_id", place.ID).Msg("falló el setup del local")
		}
	}
	return toPlaceResponse(place), nil
}

func addressFromRequest(in dto.AddressRequest) (*entity.Address, error) {
	a := &entity.Address{
		Country:     in.Country,
		City:        in.City,
		Province:    in.Province,
		AddressName: in.AddressName,
		Detail:      in.Detail,
		OdooID:      in.OdooID,
	}
	var err error
	if a.ScheduleMin1, err = parseTime("schedule_min_1", in.ScheduleMin1); err != nil {
		return nil, err
	}
	if a.ScheduleMax1, err = parseTime("schedule_max_1", in.ScheduleMax1); err != nil {
		return nil, err
	}
	if a.ScheduleMin2, err = parseTime("schedule_min_2", in.ScheduleMin2); err != nil {
		return nil, err
	}
	if a.ScheduleMax2, err = parseTime("schedule_max_2", in.ScheduleMax2); err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID obtiene un local de la organización con su dirección.
func (uc *PlaceUseCase) GetByID(ctx context.Context, orgID, id int64) (*dto.PlaceResponse, error) {
	p, err := uc.places.GetInOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return toPlaceResponse(p), nil
}

// ListByOrg locales de una organización.
func (uc *PlaceUseCase) ListByOrg(ctx context.Context, orgID int64) ([]dto.PlaceResponse, error) {
	list, err := uc.places.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlaceResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPlaceResponse(p))
	}
	return out, nil
}

// Delete elimina el local y luego su dirección. Si la dirección no se puede borrar solo se registra.
func (uc *PlaceUseCase) Delete(ctx context.Context, orgID, id int64) error {
	p, err := uc.places.GetInOrg(ctx, orgID, id)
	if err != nil {
		return err
	}
	if err := uc.places.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.addresses.Delete(ctx, p.AddressID); err != nil {
		uc.log.Warn().Err(err).Int64("place_id", id).Int64("address_id", p.AddressID).
			Msg("no se pudo eliminar la dirección del local")
	}
	return nil
}

// ToggleActive activa o desactiva el local; la fecha de desactivación se normaliza al guardar.
func (uc *PlaceUseCase) ToggleActive(ctx context.Context, orgID, id int64) (entity.Message, error) {
	p, err := uc.places.GetInOrg(ctx, orgID, id)
	if err != nil {
		return entity.Message{}, err
	}
	msg := p.ToggleActive()
	if err := uc.places.Update(ctx, p); err != nil {
		return entity.Message{}, err
	}
	return msg, nil
}

// AddPeriod agrega una ventana semanal al local. No se valida solapamiento.
func (uc *PlaceUseCase) AddPeriod(ctx context.Context, orgID, placeID int64, in dto.PeriodRequest) (*dto.PeriodResponse, error) {
	open, err := parseTime("open_time", &in.OpenTime)
	if err != nil {
		return nil, err
	}
	closing, err := parseTime("close_time", &in.CloseTime)
	if err != nil {
		return nil, err
	}
	if open == nil || closing == nil {
		return nil, validationField("open_time", "apertura y cierre son obligatorios")
	}
	period := &entity.Period{PlaceID: placeID, Weekday: entity.Weekday(in.Weekday), OpenTime: *open, CloseTime: *closing}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.places.GetInOrg(ctx, orgID, placeID); err != nil {
		return nil, err
	}
	if err := uc.periods.Create(ctx, period); err != nil {
		return nil, err
	}
	out := toPeriodResponse(*period)
	return &out, nil
}

// ListPeriods ventanas del local ordenadas por (día, apertura).
func (uc *PlaceUseCase) ListPeriods(ctx context.Context, orgID, placeID int64) ([]dto.PeriodResponse, error) {
	if _, err := uc.places.GetInOrg(ctx, orgID, placeID); err != nil {
		return nil, err
	}
	periods, err := uc.periods.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, toPeriodResponse(p))
	}
	return out, nil
}

// DeletePeriod elimina una ventana del local.
func (uc *PlaceUseCase) DeletePeriod(ctx context.Context, orgID, placeID, periodID int64) error {
	if _, err := uc.places.GetInOrg(ctx, orgID, placeID); err != nil {
		return err
	}
	return uc.periods.Delete(ctx, placeID, periodID)
}

// IsOpen informa si el local atiende en el instante dado.
func (uc *PlaceUseCase) IsOpen(ctx context.Context, orgID, placeID int64, at time.Time) (*dto.OpenResponse, error) {
	p, err := uc.places.GetInOrg(ctx, orgID, placeID)
	if err != nil {
		return nil, err
	}
	periods, err := uc.periods.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	return &dto.OpenResponse{PlaceID: placeID, At: at, Open: p.IsActive && p.OpenAt(periods, at)}, nil
}
