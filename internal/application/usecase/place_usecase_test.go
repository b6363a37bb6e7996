package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/ports"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

type placeFixture struct {
	uc        *usecase.PlaceUseCase
	places    *fakePlaces
	periods   *fakePeriods
	addresses *fakeAddresses
	hook      *fakeSetupHook
}

func newPlaceFixture() *placeFixture {
	f := &placeFixture{
		places:    newFakePlaces(),
		periods:   &fakePeriods{},
		addresses: newFakeAddresses(),
		hook:      &fakeSetupHook{},
	}
	tx := &fakeTx{repos: ports.Repos{Places: f.places, Periods: f.periods, Addresses: f.addresses}}
	f.uc = usecase.NewPlaceUseCase(tx, f.places, f.periods, f.addresses, f.hook, nop)
	return f
}

const (
	placeOrg int64 = 1
	otherOrg int64 = 2
)

func placeRequest(placeType string) dto.CreatePlaceRequest {
	return dto.CreatePlaceRequest{
		OrgID: i64(placeOrg),
		Type:  placeType,
		Name:  "Tienda Miraflores",
		Address: dto.AddressRequest{
			Country:      "PE",
			AddressName:  "Av. Larco 345",
			ScheduleMin1: strPtr("09:00"),
			ScheduleMax1: strPtr("18:00"),
		},
	}
}

func TestPlaceCreate_StoreEjecutaSetup(t *testing.T) {
	f := newPlaceFixture()

	out, err := f.uc.Create(context.Background(), placeOrg, placeRequest(entity.PlaceStore))

	require.NoError(t, err)
	assert.True(t, out.IsActive)
	require.NotNil(t, out.Address)
	assert.Equal(t, "09:00", *out.Address.ScheduleMin1)
	assert.Equal(t, []int64{out.ID}, f.hook.calls)
	assert.Equal(t, out.Address.ID, f.places.items[out.ID].AddressID)
}

func TestPlaceCreate_OtrosTiposSinSetup(t *testing.T) {
	f := newPlaceFixture()

	_, err := f.uc.Create(context.Background(), placeOrg, placeRequest(entity.PlaceWarehouse))

	require.NoError(t, err)
	assert.Empty(t, f.hook.calls)
}

func TestPlaceCreate_FalloDeSetupNoRevierte(t *testing.T) {
	f := newPlaceFixture()
	f.hook.err = errors.New("inventario no disponible")

	out, err := f.uc.Create(context.Background(), placeOrg, placeRequest(entity.PlaceStore))

	require.NoError(t, err)
	assert.Contains(t, f.places.items, out.ID)
}

func TestPlaceCreate_VentanaInvertida(t *testing.T) {
	f := newPlaceFixture()
	in := placeRequest(entity.PlaceBar)
	in.Address.ScheduleMin1 = strPtr("20:00")

	_, err := f.uc.Create(context.Background(), placeOrg, in)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.places.items)
}

func TestPlaceCreate_HoraMalFormada(t *testing.T) {
	f := newPlaceFixture()
	in := placeRequest(entity.PlaceBar)
	in.Address.ScheduleMax1 = strPtr("6pm")

	_, err := f.uc.Create(context.Background(), placeOrg, in)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "schedule_max_1")
}

func TestPlaceDelete_BorraLaDireccion(t *testing.T) {
	f := newPlaceFixture()
	out, err := f.uc.Create(context.Background(), placeOrg, placeRequest(entity.PlaceBar))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), placeOrg, out.ID))
	assert.Empty(t, f.places.items)
	assert.Empty(t, f.addresses.items)
}

func TestPlaceDelete_FalloDeDireccionSoloSeRegistra(t *testing.T) {
	f := newPlaceFixture()
	out, err := f.uc.Create(context.Background(), placeOrg, placeRequest(entity.PlaceBar))
	require.NoError(t, err)
	f.addresses.deleteErr = errDB

	assert.NoError(t, f.uc.Delete(context.Background(), placeOrg, out.ID))
	assert.Empty(t, f.places.items)
}

func TestPlacePeriods_YHorario(t *testing.T) {
	f := newPlaceFixture()
	out, err := f.uc.Create(context.Background(), placeOrg, placeRequest(entity.PlaceRestaurant))
	require.NoError(t, err)

	p, err := f.uc.AddPeriod(context.Background(), placeOrg, out.ID, dto.PeriodRequest{Weekday: 0, OpenTime: "12:00", CloseTime: "16:00"})
	require.NoError(t, err)
	assert.Equal(t, "monday", p.DayName)

	_, err = f.uc.AddPeriod(context.Background(), placeOrg, out.ID, dto.PeriodRequest{Weekday: 8, OpenTime: "12:00", CloseTime: "16:00"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.AddPeriod(context.Background(), placeOrg, 999, dto.PeriodRequest{Weekday: 1, OpenTime: "12:00", CloseTime: "16:00"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	monday := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
	open, err := f.uc.IsOpen(context.Background(), placeOrg, out.ID, monday)
	require.NoError(t, err)
	assert.True(t, open.Open)

	list, err := f.uc.ListPeriods(context.Background(), placeOrg, out.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.uc.DeletePeriod(context.Background(), placeOrg, out.ID, list[0].ID))
	open, err = f.uc.IsOpen(context.Background(), placeOrg, out.ID, monday)
	require.NoError(t, err)
	assert.False(t, open.Open)
}

func TestPlaceToggleActive(t *testing.T) {
	f := newPlaceFixture()
	out, err := f.uc.Create(context.Background(), placeOrg, placeRequest(entity.PlaceBar))
	require.NoError(t, err)

	msg, err := f.uc.ToggleActive(context.Background(), placeOrg, out.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.MsgSetInactive, msg.Text)
	assert.False(t, f.places.items[out.ID].IsActive)
}

func TestPlaceCreate_SinOrgUsaLaDeLaSesion(t *testing.T) {
	f := newPlaceFixture()
	in := placeRequest(entity.PlaceBar)
	in.OrgID = nil

	out, err := f.uc.Create(context.Background(), placeOrg, in)

	require.NoError(t, err)
	require.NotNil(t, f.places.items[out.ID].OrgID)
	assert.Equal(t, placeOrg, *f.places.items[out.ID].OrgID)
}

func TestPlaceCreate_OrgDelCuerpoDistintaEsForbidden(t *testing.T) {
	f := newPlaceFixture()
	in := placeRequest(entity.PlaceBar)
	in.OrgID = i64(otherOrg)

	_, err := f.uc.Create(context.Background(), placeOrg, in)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.places.items)
}

func TestPlace_OtraOrganizacionNoVeNiModifica(t *testing.T) {
	f := newPlaceFixture()
	out, err := f.uc.Create(context.Background(), placeOrg, placeRequest(entity.PlaceRestaurant))
	require.NoError(t, err)
	ctx := context.Background()
	monday := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)

	_, err = f.uc.GetByID(ctx, otherOrg, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.ToggleActive(ctx, otherOrg, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.AddPeriod(ctx, otherOrg, out.ID, dto.PeriodRequest{Weekday: 0, OpenTime: "12:00", CloseTime: "16:00"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.ListPeriods(ctx, otherOrg, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.IsOpen(ctx, otherOrg, out.ID, monday)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.uc.DeletePeriod(ctx, otherOrg, out.ID, 1), domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Delete(ctx, otherOrg, out.ID), domain.ErrNotFound)

	assert.Contains(t, f.places.items, out.ID)
	assert.True(t, f.places.items[out.ID].IsActive)
	assert.Empty(t, f.periods.items)
}
