package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/probaar-api/internal/application/usecase"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

func TestUserHasPermission(t *testing.T) {
	memberships := newFakeMemberships()
	roles := &fakeRoles{items: map[int64]*entity.AppRole{
		1: {ID: 1, Name: "operador", Permissions: []entity.AppRolePermission{{ID: 1, Permission: entity.PermPlaceView}}},
	}}
	_ = memberships.Create(context.Background(), &entity.Membership{OrganizationID: 5, UserID: 1, AppRoleID: i64(1)})
	_ = memberships.Create(context.Background(), &entity.Membership{OrganizationID: 5, UserID: 2})
	uc := usecase.NewRoleUseCase(memberships, roles)

	tests := []struct {
		name   string
		userID int64
		perm   string
		want   bool
	}{
		{"rol con permiso", 1, entity.PermPlaceView, true},
		{"rol sin permiso", 1, entity.PermCronJobRun, false},
		{"miembro sin rol", 2, entity.PermPlaceView, false},
		{"no miembro", 3, entity.PermPlaceView, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := uc.UserHasPermission(context.Background(), tt.userID, 5, tt.perm)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	_, err := uc.UserHasPermission(context.Background(), 1, 0, entity.PermPlaceView)
	assert.Error(t, err)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{entity.PermPlaceView}, list[0].Permissions)
}
