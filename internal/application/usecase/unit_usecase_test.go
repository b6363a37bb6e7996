package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

type fakeUnits struct {
	items map[int64]*entity.Unit
}

func (f *fakeUnits) Create(ctx context.Context, u *entity.Unit) error {
	u.ID = int64(len(f.items) + 1)
	cp := *u
	f.items[u.ID] = &cp
	return nil
}

func (f *fakeUnits) GetByID(ctx context.Context, id int64) (*entity.Unit, error) {
	u, ok := f.items[id]
	if !ok {
		return nil, domain.NotFound("unit", id)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUnits) Update(ctx context.Context, u *entity.Unit) error {
	cp := *u
	f.items[u.ID] = &cp
	return nil
}

func (f *fakeUnits) List(ctx context.Context) ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range f.items {
		out = append(out, u)
	}
	return out, nil
}

type recordingUnitHook struct {
	saved []string
	err   error
}

func (h *recordingUnitHook) UnitSaved(ctx context.Context, u *entity.Unit) error {
	h.saved = append(h.saved, u.ShortName)
	return h.err
}

func TestUnit_HookTrasCadaGuardado(t *testing.T) {
	units := &fakeUnits{items: map[int64]*entity.Unit{}}
	hook := &recordingUnitHook{}
	uc := usecase.NewUnitUseCase(units, hook, nop)

	out, err := uc.Create(context.Background(), dto.UnitRequest{Name: "Kilogramo", ShortName: "kg"})
	require.NoError(t, err)
	assert.True(t, out.IsActive)

	inactive := false
	out, err = uc.Update(context.Background(), out.ID, dto.UnitRequest{Name: "Kilogramo", ShortName: "KG", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, out.IsActive)
	assert.Equal(t, []string{"kg", "KG"}, hook.saved)

	hook.err = errors.New("reetiquetado falló")
	_, err = uc.Update(context.Background(), out.ID, dto.UnitRequest{Name: "Kilo", ShortName: "kg"})
	assert.NoError(t, err, "el fallo del hook no invalida el guardado")
	assert.Equal(t, "Kilo", units.items[out.ID].Name)
}
