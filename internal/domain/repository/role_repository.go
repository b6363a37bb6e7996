package repository

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// RoleRepository catálogo de roles y permisos.
type RoleRepository interface {
	CreatePermission(ctx context.Context, p *entity.AppRolePermission) error
	CreateRole(ctx context.Context, role *entity.AppRole) error
	GrantPermission(ctx context.Context, roleID, permissionID int64) error
	// GetByID carga el rol con sus permisos.
	GetByID(ctx context.Context, id int64) (*entity.AppRole, error)
	List(ctx context.Context) ([]*entity.AppRole, error)
}
