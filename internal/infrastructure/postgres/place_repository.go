package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.PlaceRepository = (*PlaceRepo)(nil)

const placeSelect = `
	SELECT p.id, p.is_active, p.org_id, p.address_id, p.type, p.name, p.description, p.phone, p.website,
	       p.dispatch_address, p.deactivated_at, ` + addressColumns + `
	  FROM places p
	  JOIN addresses a ON a.id = p.address_id`

// PlaceRepo implementación de PlaceRepository sobre PostgreSQL.
// org_id y address_id son ON DELETE RESTRICT.
type PlaceRepo struct {
	q Querier
}

// NewPlaceRepository construye el adaptador. Pasar pool o tx.
func NewPlaceRepository(q Querier) *PlaceRepo {
	return &PlaceRepo{q: q}
}

func scanPlace(row pgx.Row) (*entity.Place, error) {
	var p entity.Place
	var as addressScanner
	dest := append([]any{
		&p.ID, &p.IsActive, &p.OrgID, &p.AddressID, &p.Type, &p.Name, &p.Description, &p.Phone, &p.Website,
		&p.DispatchAddress, &p.DeactivatedAt,
	}, as.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.Address = as.address()
	return &p, nil
}

// Create persiste el local. DeactivatedAt se normaliza según IsActive.
func (r *PlaceRepo) Create(ctx context.Context, p *entity.Place) error {
	p.DeactivatedAt = entity.NormalizeDeactivation(p.IsActive, p.DeactivatedAt, timeNow())
	err := r.q.QueryRow(ctx, `
		INSERT INTO places (is_active, org_id, address_id, type, name, description, phone, website,
			dispatch_address, deactivated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		p.IsActive, p.OrgID, p.AddressID, p.Type, p.Name, p.Description, p.Phone, p.Website,
		p.DispatchAddress, p.DeactivatedAt,
	).Scan(&p.ID)
	if err != nil {
		return translateWriteError("insert place", err)
	}
	return nil
}

// GetByID obtiene un local con su dirección.
func (r *PlaceRepo) GetByID(ctx context.Context, id int64) (*entity.Place, error) {
	p, err := scanPlace(r.q.QueryRow(ctx, placeSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("place", id)
		}
		return nil, fmt.Errorf("get place: %w", err)
	}
	return p, nil
}

// GetInOrg obtiene un local solo si pertenece a la organización.
func (r *PlaceRepo) GetInOrg(ctx context.Context, orgID, id int64) (*entity.Place, error) {
	p, err := scanPlace(r.q.QueryRow(ctx, placeSelect+` WHERE p.id = $1 AND p.org_id = $2`, id, orgID))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("place", id)
		}
		return nil, fmt.Errorf("get place in organization: %w", err)
	}
	return p, nil
}

// Update actualiza el local. DeactivatedAt se normaliza según IsActive.
func (r *PlaceRepo) Update(ctx context.Context, p *entity.Place) error {
	p.DeactivatedAt = entity.NormalizeDeactivation(p.IsActive, p.DeactivatedAt, timeNow())
	tag, err := r.q.Exec(ctx, `
		UPDATE places SET is_active = $2, org_id = $3, address_id = $4, type = $5, name = $6,
			description = $7, phone = $8, website = $9, dispatch_address = $10, deactivated_at = $11
		WHERE id = $1`,
		p.ID, p.IsActive, p.OrgID, p.AddressID, p.Type, p.Name,
		p.Description, p.Phone, p.Website, p.DispatchAddress, p.DeactivatedAt,
	)
	if err != nil {
		return translateWriteError("update place", err)
	}
	return checkAffected(tag, "place", p.ID)
}

// Delete elimina el local (los periodos caen en cascada). La dirección la elimina el caso de uso.
func (r *PlaceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return translateWriteError("delete place", err)
	}
	return checkAffected(tag, "place", id)
}

// Exists informa si existe el local.
func (r *PlaceRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, "place exists", `SELECT EXISTS (SELECT 1 FROM places WHERE id = $1)`, id)
}

// ListByOrg locales de la organización.
func (r *PlaceRepo) ListByOrg(ctx context.Context, orgID int64) ([]*entity.Place, error) {
	return r.list(ctx, "list places", placeSelect+` WHERE p.org_id = $1 ORDER BY p.name, p.id`, orgID)
}

// ListByIDs locales con los IDs dados; los inexistentes se omiten.
func (r *PlaceRepo) ListByIDs(ctx context.Context, ids []int64) ([]*entity.Place, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, "list places by ids", placeSelect+` WHERE p.id = ANY($1) ORDER BY p.id`, ids)
}

// ListDispatchByOrg locales activos de despacho de la organización.
func (r *PlaceRepo) ListDispatchByOrg(ctx context.Context, orgID int64) ([]*entity.Place, error) {
	return r.list(ctx, "list dispatch places",
		placeSelect+` WHERE p.org_id = $1 AND p.is_active = true AND p.dispatch_address = true ORDER BY p.id`, orgID)
}

// FindDispatchByAddress primer local activo de despacho de la organización con la dirección dada.
func (r *PlaceRepo) FindDispatchByAddress(ctx context.Context, orgID, addressID int64) (*entity.Place, error) {
	p, err := scanPlace(r.q.QueryRow(ctx, placeSelect+`
		WHERE p.org_id = $1 AND p.address_id = $2 AND p.is_active = true AND p.dispatch_address = true
		ORDER BY p.id LIMIT 1`, orgID, addressID))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("dispatch place for address", addressID)
		}
		return nil, fmt.Errorf("find dispatch place: %w", err)
	}
	return p, nil
}

// ExistsActiveWithAddress informa si la organización tiene un local activo con la dirección.
func (r *PlaceRepo) ExistsActiveWithAddress(ctx context.Context, orgID, addressID int64) (bool, error) {
	return exists(ctx, r.q, "place with address exists", `
		SELECT EXISTS (SELECT 1 FROM places WHERE org_id = $1 AND address_id = $2 AND is_active = true)`,
		orgID, addressID)
}

// ExistsByOrgAndOdooAddress informa si algún local de la organización usa la dirección Odoo.
func (r *PlaceRepo) ExistsByOrgAndOdooAddress(ctx context.Context, orgID, odooAddressID int64) (bool, error) {
	return exists(ctx, r.q, "place with odoo address exists", `
		SELECT EXISTS (
			SELECT 1 FROM places p JOIN addresses a ON a.id = p.address_id
			 WHERE p.org_id = $1 AND a.odoo_id = $2)`,
		orgID, odooAddressID)
}

func (r *PlaceRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Place, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
