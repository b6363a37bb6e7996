package entity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

func TestCanShipInDay_SinGruposSiemprePermite(t *testing.T) {
	d := &entity.District{ID: 1}
	d.AttachShippingDays(func(ctx context.Context, id int64) ([][]string, error) {
		return nil, nil
	})

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		ok, err := d.CanShipInDay(context.Background(), start.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.True(t, ok, "sin días configurados la política es abierta")
	}
}

func TestCanShipInDay_SinLoader(t *testing.T) {
	d := &entity.District{ID: 1}
	ok, err := d.CanShipInDay(context.Background(), time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanShipInDay_ConGrupos(t *testing.T) {
	d := &entity.District{ID: 3}
	d.AttachShippingDays(func(ctx context.Context, id int64) ([][]string, error) {
		return [][]string{{"monday", "wednesday"}, {"Wednesday", "friday"}}, nil
	})

	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	friday := monday.AddDate(0, 0, 4)

	ok, err := d.CanShipInDay(context.Background(), monday)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = d.CanShipInDay(context.Background(), tuesday)
	assert.False(t, ok)

	ok, _ = d.CanShipInDay(context.Background(), friday)
	assert.True(t, ok)
}

func TestShippingDays_SeCalculaUnaVezPorInstancia(t *testing.T) {
	calls := 0
	groups := [][]string{{"monday"}}
	d := &entity.District{ID: 3}
	d.AttachShippingDays(func(ctx context.Context, id int64) ([][]string, error) {
		calls++
		return groups, nil
	})

	_, _ = d.ShippingDays(context.Background())
	groups = [][]string{{"sunday"}}
	days, err := d.ShippingDays(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, days, "monday", "la instancia conserva el conjunto calculado")
	assert.NotContains(t, days, "sunday")
}

func TestShippingDays_ErrorNoSeCachea(t *testing.T) {
	fail := true
	d := &entity.District{ID: 3}
	d.AttachShippingDays(func(ctx context.Context, id int64) ([][]string, error) {
		if fail {
			return nil, errors.New("db caída")
		}
		return [][]string{{"monday"}}, nil
	})

	_, err := d.ShippingDays(context.Background())
	require.Error(t, err)

	fail = false
	days, err := d.ShippingDays(context.Background())
	require.NoError(t, err)
	assert.Contains(t, days, "monday")
}

func TestDistrict_Nombres(t *testing.T) {
	d := &entity.District{Name: "SAN  JUAN DE LURIGANCHO", Department: "LIMA", Province: "LIMA"}
	assert.Equal(t, "San Juan De Lurigancho", d.DisplayableName())
	assert.Equal(t, "LIMA - LIMA - SAN  JUAN DE LURIGANCHO", d.String())
}

func TestDistrict_ValidateUbigeo(t *testing.T) {
	d := &entity.District{Ubigeo: "1501", Name: "LINCE", Department: "LIMA", Province: "LIMA"}
	assert.Error(t, d.Validate())
	d.Ubigeo = "150116"
	assert.NoError(t, d.Validate())
}
