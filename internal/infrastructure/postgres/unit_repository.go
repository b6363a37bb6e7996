package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo tabla units.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una unidad.
func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	err := r.q.QueryRow(ctx, `INSERT INTO units (name, short_name, is_active) VALUES ($1, $2, $3) RETURNING id`,
		u.Name, u.ShortName, u.IsActive).Scan(&u.ID)
	if err != nil {
		return translateWriteError("insert unit", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *UnitRepo) GetByID(ctx context.Context, id int64) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(ctx, `SELECT id, name, short_name, is_active FROM units WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.ShortName, &u.IsActive)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("unit", id)
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// Update actualiza la unidad.
func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	tag, err := r.q.Exec(ctx, `UPDATE units SET name = $2, short_name = $3, is_active = $4 WHERE id = $1`,
		u.ID, u.Name, u.ShortName, u.IsActive)
	if err != nil {
		return translateWriteError("update unit", err)
	}
	return checkAffected(tag, "unit", u.ID)
}

// List unidades ordenadas por nombre.
func (r *UnitRepo) List(ctx context.Context) ([]*entity.Unit, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, short_name, is_active FROM units ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.ShortName, &u.IsActive); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
