package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

func TestActivable_Transiciones(t *testing.T) {
	p := &entity.Place{Activable: entity.Activable{IsActive: true}}

	msg := p.SetActive()
	assert.Equal(t, entity.LevelError, msg.Level)
	assert.Equal(t, entity.MsgActiveAlready, msg.Text)
	assert.True(t, p.IsActive)

	msg = p.SetInactive()
	assert.True(t, msg.OK())
	assert.False(t, p.IsActive)

	msg = p.SetInactive()
	assert.Equal(t, entity.LevelError, msg.Level)
	assert.Equal(t, entity.MsgInactiveAlready, msg.Text)
}

func TestActivable_Toggle(t *testing.T) {
	u := &entity.Unit{}

	assert.Equal(t, entity.MsgSetActive, u.ToggleActive().Text)
	assert.True(t, u.IsActive)
	assert.Equal(t, entity.MsgSetInactive, u.ToggleActive().Text)
	assert.False(t, u.IsActive)
}

func TestNormalizeDeactivation(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)

	assert.Nil(t, entity.NormalizeDeactivation(true, &before, now), "activar limpia la fecha")
	assert.Equal(t, now, *entity.NormalizeDeactivation(false, nil, now), "desactivar fija la fecha si no existe")
	assert.Equal(t, before, *entity.NormalizeDeactivation(false, &before, now), "una fecha existente se conserva")
}
