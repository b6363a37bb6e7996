package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.RestrictionRepository = (*RestrictionRepo)(nil)

// RestrictionRepo tabla user_restrictions, UNIQUE (user_id, kind, object_id).
// object_id no tiene FK: la existencia la valida el registro de tipos restringibles.
type RestrictionRepo struct {
	q Querier
}

// NewRestrictionRepository construye el adaptador. Pasar pool o tx.
func NewRestrictionRepository(q Querier) *RestrictionRepo {
	return &RestrictionRepo{q: q}
}

// Create persiste la restricción; un duplicado devuelve *domain.ConflictError.
func (r *RestrictionRepo) Create(ctx context.Context, rs *entity.Restriction) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO user_restrictions (user_id, kind, object_id) VALUES ($1, $2, $3) RETURNING id`,
		rs.UserID, string(rs.Kind), rs.ObjectID,
	).Scan(&rs.ID)
	if err != nil {
		return translateWriteError("insert user restriction", err)
	}
	return nil
}

// GetByID obtiene una restricción.
func (r *RestrictionRepo) GetByID(ctx context.Context, id int64) (*entity.Restriction, error) {
	var (
		rs   entity.Restriction
		kind string
	)
	err := r.q.QueryRow(ctx, `SELECT id, user_id, kind, object_id FROM user_restrictions WHERE id = $1`, id).
		Scan(&rs.ID, &rs.UserID, &kind, &rs.ObjectID)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("user restriction", id)
		}
		return nil, fmt.Errorf("get user restriction: %w", err)
	}
	rs.Kind = entity.RestrictableKind(kind)
	return &rs, nil
}

// Delete elimina una restricción.
func (r *RestrictionRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM user_restrictions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user restriction: %w", err)
	}
	return checkAffected(tag, "user restriction", id)
}

// ListByUser restricciones del usuario.
func (r *RestrictionRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Restriction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, kind, object_id FROM user_restrictions WHERE user_id = $1 ORDER BY kind, object_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user restrictions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Restriction
	for rows.Next() {
		var (
			rs   entity.Restriction
			kind string
		)
		if err := rows.Scan(&rs.ID, &rs.UserID, &kind, &rs.ObjectID); err != nil {
			return nil, fmt.Errorf("scan user restriction: %w", err)
		}
		rs.Kind = entity.RestrictableKind(kind)
		list = append(list, &rs)
	}
	return list, rows.Err()
}

// ObjectIDs IDs restringidos al usuario para un tipo.
func (r *RestrictionRepo) ObjectIDs(ctx context.Context, userID int64, kind entity.RestrictableKind) ([]int64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT object_id FROM user_restrictions WHERE user_id = $1 AND kind = $2 ORDER BY object_id`,
		userID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("restricted object ids: %w", err)
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan restricted id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PlaceOdooAddressesByOrg por cada miembro de la organización con restricciones de local,
// el odoo_id de la dirección de cada local restringido. Los locales inexistentes aportan nil.
func (r *RestrictionRepo) PlaceOdooAddressesByOrg(ctx context.Context, orgID int64) (map[int64][]*int64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ur.user_id, a.odoo_id
		  FROM user_restrictions ur
		  JOIN organization_memberships m ON m.user_id = ur.user_id AND m.organization_id = $1
		  LEFT JOIN places p ON p.id = ur.object_id
		  LEFT JOIN addresses a ON a.id = p.address_id
		 WHERE ur.kind = $2`, orgID, string(entity.KindPlace))
	if err != nil {
		return nil, fmt.Errorf("org place restrictions: %w", err)
	}
	defer rows.Close()
	out := map[int64][]*int64{}
	for rows.Next() {
		var (
			userID int64
			odooID *int64
		)
		if err := rows.Scan(&userID, &odooID); err != nil {
			return nil, fmt.Errorf("scan org place restriction: %w", err)
		}
		out[userID] = append(out[userID], odooID)
	}
	return out, rows.Err()
}
