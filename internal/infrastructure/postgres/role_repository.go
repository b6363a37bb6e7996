package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo tablas app_roles, app_role_permissions (permission UNIQUE) y app_role_permission_links.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador. Pasar pool o tx.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// CreatePermission persiste un permiso; un nombre repetido devuelve *domain.ConflictError.
func (r *RoleRepo) CreatePermission(ctx context.Context, p *entity.AppRolePermission) error {
	err := r.q.QueryRow(ctx, `INSERT INTO app_role_permissions (permission) VALUES ($1) RETURNING id`, p.Permission).Scan(&p.ID)
	if err != nil {
		return translateWriteError("insert permission", err)
	}
	return nil
}

// CreateRole persiste un rol (sin permisos).
func (r *RoleRepo) CreateRole(ctx context.Context, role *entity.AppRole) error {
	err := r.q.QueryRow(ctx, `INSERT INTO app_roles (name) VALUES ($1) RETURNING id`, role.Name).Scan(&role.ID)
	if err != nil {
		return translateWriteError("insert role", err)
	}
	return nil
}

// GrantPermission asocia un permiso a un rol (idempotente).
func (r *RoleRepo) GrantPermission(ctx context.Context, roleID, permissionID int64) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO app_role_permission_links (role_id, permission_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, roleID, permissionID)
	if err != nil {
		return translateWriteError("grant permission", err)
	}
	return nil
}

// GetByID carga el rol con sus permisos.
func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*entity.AppRole, error) {
	var role entity.AppRole
	err := r.q.QueryRow(ctx, `SELECT id, name FROM app_roles WHERE id = $1`, id).Scan(&role.ID, &role.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("app role", id)
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	perms, err := r.permissions(ctx, id)
	if err != nil {
		return nil, err
	}
	role.Permissions = perms
	return &role, nil
}

// List roles con sus permisos.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.AppRole, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM app_roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	var list []*entity.AppRole
	for rows.Next() {
		var role entity.AppRole
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	for _, role := range list {
		if role.Permissions, err = r.permissions(ctx, role.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *RoleRepo) permissions(ctx context.Context, roleID int64) ([]entity.AppRolePermission, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.permission
		  FROM app_role_permissions p
		  JOIN app_role_permission_links l ON l.permission_id = p.id
		 WHERE l.role_id = $1
		 ORDER BY p.permission`, roleID)
	if err != nil {
		return nil, fmt.Errorf("role permissions: %w", err)
	}
	defer rows.Close()
	var perms []entity.AppRolePermission
	for rows.Next() {
		var p entity.AppRolePermission
		if err := rows.Scan(&p.ID, &p.Permission); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}
