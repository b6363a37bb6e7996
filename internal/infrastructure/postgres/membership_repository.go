package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo tabla organization_memberships (ON DELETE CASCADE hacia organizations y users).
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador. Pasar pool o tx.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Create agrega al usuario a la organización.
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO organization_memberships (organization_id, user_id, app_role_id)
		VALUES ($1, $2, $3) RETURNING id`,
		m.OrganizationID, m.UserID, m.AppRoleID,
	).Scan(&m.ID)
	if err != nil {
		return translateWriteError("insert membership", err)
	}
	return nil
}

// IsMember informa si el usuario pertenece a la organización.
func (r *MembershipRepo) IsMember(ctx context.Context, orgID, userID int64) (bool, error) {
	return exists(ctx, r.q, "membership exists", `
		SELECT EXISTS (SELECT 1 FROM organization_memberships WHERE organization_id = $1 AND user_id = $2)`,
		orgID, userID)
}

// Get obtiene la membresía del usuario en la organización.
func (r *MembershipRepo) Get(ctx context.Context, orgID, userID int64) (*entity.Membership, error) {
	var m entity.Membership
	err := r.q.QueryRow(ctx, `
		SELECT id, organization_id, user_id, app_role_id
		  FROM organization_memberships WHERE organization_id = $1 AND user_id = $2`,
		orgID, userID,
	).Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.AppRoleID)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("membership", fmt.Sprintf("%d/%d", orgID, userID))
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// ListByUser membresías del usuario.
func (r *MembershipRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Membership, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, organization_id, user_id, app_role_id
		  FROM organization_memberships WHERE user_id = $1 ORDER BY organization_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	var list []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.AppRoleID); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete quita al usuario de la organización.
func (r *MembershipRepo) Delete(ctx context.Context, orgID, userID int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM organization_memberships WHERE organization_id = $1 AND user_id = $2`, orgID, userID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return checkAffected(tag, "membership", fmt.Sprintf("%d/%d", orgID, userID))
}
