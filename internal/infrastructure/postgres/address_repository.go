package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.AddressRepository = (*AddressRepo)(nil)

const addressColumns = `
	a.id, a.country, a.city, a.province, a.address_name, a.detail, a.date_creation, a.odoo_id,
	a.schedule_min_1, a.schedule_max_1, a.schedule_min_2, a.schedule_max_2`

// AddressRepo implementación de AddressRepository sobre PostgreSQL.
type AddressRepo struct {
	q Querier
}

// NewAddressRepository construye el adaptador. Pasar pool o tx.
func NewAddressRepository(q Querier) *AddressRepo {
	return &AddressRepo{q: q}
}

// addressScanner destinos intermedios para las columnas TIME.
type addressScanner struct {
	a                      entity.Address
	min1, max1, min2, max2 pgtype.Time
}

func (s *addressScanner) dest() []any {
	return []any{
		&s.a.ID, &s.a.Country, &s.a.City, &s.a.Province, &s.a.AddressName, &s.a.Detail, &s.a.DateCreation, &s.a.OdooID,
		&s.min1, &s.max1, &s.min2, &s.max2,
	}
}

func (s *addressScanner) address() *entity.Address {
	a := s.a
	a.ScheduleMin1, a.ScheduleMax1 = timeValue(s.min1), timeValue(s.max1)
	a.ScheduleMin2, a.ScheduleMax2 = timeValue(s.min2), timeValue(s.max2)
	return &a
}

func scanAddress(row pgx.Row) (*entity.Address, error) {
	var s addressScanner
	if err := row.Scan(s.dest()...); err != nil {
		return nil, err
	}
	return s.address(), nil
}

// Create valida, normaliza las ventanas horarias y persiste la dirección.
func (r *AddressRepo) Create(ctx context.Context, a *entity.Address) error {
	if err := a.PrepareForSave(); err != nil {
		return err
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO addresses (country, city, province, address_name, detail, odoo_id,
			schedule_min_1, schedule_max_1, schedule_min_2, schedule_max_2, date_creation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		RETURNING id, date_creation`,
		a.Country, a.City, a.Province, a.AddressName, a.Detail, a.OdooID,
		timeParam(a.ScheduleMin1), timeParam(a.ScheduleMax1), timeParam(a.ScheduleMin2), timeParam(a.ScheduleMax2),
	).Scan(&a.ID, &a.DateCreation)
	if err != nil {
		return translateWriteError("insert address", err)
	}
	return nil
}

// GetByID obtiene una dirección por ID.
func (r *AddressRepo) GetByID(ctx context.Context, id int64) (*entity.Address, error) {
	a, err := scanAddress(r.q.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses a WHERE a.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("address", id)
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

// GetByOdooID obtiene una dirección por su id en el ERP.
func (r *AddressRepo) GetByOdooID(ctx context.Context, odooID int64) (*entity.Address, error) {
	a, err := scanAddress(r.q.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses a WHERE a.odoo_id = $1`, odooID))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("address odoo_id", odooID)
		}
		return nil, fmt.Errorf("get address by odoo id: %w", err)
	}
	return a, nil
}

// Update valida, normaliza y actualiza la dirección.
func (r *AddressRepo) Update(ctx context.Context, a *entity.Address) error {
	if err := a.PrepareForSave(); err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE addresses SET
			country = $2, city = $3, province = $4, address_name = $5, detail = $6, odoo_id = $7,
			schedule_min_1 = $8, schedule_max_1 = $9, schedule_min_2 = $10, schedule_max_2 = $11
		WHERE id = $1`,
		a.ID, a.Country, a.City, a.Province, a.AddressName, a.Detail, a.OdooID,
		timeParam(a.ScheduleMin1), timeParam(a.ScheduleMax1), timeParam(a.ScheduleMin2), timeParam(a.ScheduleMax2),
	)
	if err != nil {
		return translateWriteError("update address", err)
	}
	return checkAffected(tag, "address", a.ID)
}

// Delete elimina la dirección. Falla con domain.ErrConflict si un local aún la referencia.
func (r *AddressRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return translateWriteError("delete address", err)
	}
	return checkAffected(tag, "address", id)
}

// Exists informa si existe la dirección.
func (r *AddressRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, "address exists", `SELECT EXISTS (SELECT 1 FROM addresses WHERE id = $1)`, id)
}
