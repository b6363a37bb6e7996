package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

// RoleUseCase verifica permisos de un usuario dentro de una organización.
// Es el único punto de la aplicación que conoce cómo se asignan roles a miembros.
type RoleUseCase struct {
	memberships repository.MembershipRepository
	roles       repository.RoleRepository
}

// NewRoleUseCase construye el servicio de roles.
func NewRoleUseCase(memberships repository.MembershipRepository, roles repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{memberships: memberships, roles: roles}
}

// UserHasPermission informa si el rol del usuario en la organización incluye el permiso.
// Devuelve false (sin error) si no es miembro o no tiene rol.
// Devuelve error solo ante fallos de infraestructura.
func (uc *RoleUseCase) UserHasPermission(ctx context.Context, userID, orgID int64, permission string) (bool, error) {
	if userID == 0 || orgID == 0 || permission == "" {
		return false, fmt.Errorf("role: userID, orgID y permission son obligatorios")
	}
	m, err := uc.memberships.Get(ctx, orgID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if m.AppRoleID == nil {
		return false, nil
	}
	role, err := uc.roles.GetByID(ctx, *m.AppRoleID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role.HasPermission(permission), nil
}

// List catálogo de roles con sus permisos.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	list, err := uc.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRoleResponse(r))
	}
	return out, nil
}
