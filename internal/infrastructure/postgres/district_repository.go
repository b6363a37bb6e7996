package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.DistrictRepository = (*DistrictRepo)(nil)

const districtSelect = `
	SELECT id, ubigeo, name, capital, department, province, ST_AsBinary(geom), odoo_id
	  FROM districts`

// DistrictRepo implementación de DistrictRepository sobre PostgreSQL/PostGIS.
// geom es MULTIPOLYGON SRID 4326 y viaja como WKB.
type DistrictRepo struct {
	q Querier
}

// NewDistrictRepository construye el adaptador. Pasar pool o tx.
func NewDistrictRepository(q Querier) *DistrictRepo {
	return &DistrictRepo{q: q}
}

func (r *DistrictRepo) scan(row pgx.Row) (*entity.District, error) {
	var (
		d   entity.District
		raw []byte
	)
	if err := row.Scan(&d.ID, &d.Ubigeo, &d.Name, &d.Capital, &d.Department, &d.Province, &raw, &d.OdooID); err != nil {
		return nil, err
	}
	geom, err := decodeMultiPolygon(raw)
	if err != nil {
		return nil, fmt.Errorf("district %d geom: %w", d.ID, err)
	}
	d.Geom = geom
	d.AttachShippingDays(r.ShippingDaysByGroup)
	return &d, nil
}

func decodeMultiPolygon(raw []byte) (orb.MultiPolygon, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	g, err := wkb.Unmarshal(raw)
	if err != nil {
		return nil, err
	}
	switch v := g.(type) {
	case orb.MultiPolygon:
		return v, nil
	case orb.Polygon:
		return orb.MultiPolygon{v}, nil
	default:
		return nil, fmt.Errorf("geometría %s no soportada", g.GeoJSONType())
	}
}

func encodeMultiPolygon(mp orb.MultiPolygon) ([]byte, error) {
	if len(mp) == 0 {
		return nil, nil
	}
	return wkb.Marshal(mp)
}

// Create persiste el distrito.
func (r *DistrictRepo) Create(ctx context.Context, d *entity.District) error {
	if err := d.Validate(); err != nil {
		return err
	}
	raw, err := encodeMultiPolygon(d.Geom)
	if err != nil {
		return fmt.Errorf("encode district geom: %w", err)
	}
	err = r.q.QueryRow(ctx, `
		INSERT INTO districts (ubigeo, name, capital, department, province, geom, odoo_id)
		VALUES ($1, $2, $3, $4, $5, ST_Multi(ST_GeomFromWKB($6, 4326)), $7)
		RETURNING id`,
		d.Ubigeo, d.Name, d.Capital, d.Department, d.Province, raw, d.OdooID,
	).Scan(&d.ID)
	if err != nil {
		return translateWriteError("insert district", err)
	}
	d.AttachShippingDays(r.ShippingDaysByGroup)
	return nil
}

// GetByID obtiene un distrito por ID (instancia nueva: días de despacho sin calcular).
func (r *DistrictRepo) GetByID(ctx context.Context, id int64) (*entity.District, error) {
	d, err := r.scan(r.q.QueryRow(ctx, districtSelect+` WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("district", id)
		}
		return nil, fmt.Errorf("get district: %w", err)
	}
	return d, nil
}

// GetByUbigeo obtiene un distrito por código UBIGEO.
func (r *DistrictRepo) GetByUbigeo(ctx context.Context, ubigeo string) (*entity.District, error) {
	d, err := r.scan(r.q.QueryRow(ctx, districtSelect+` WHERE ubigeo = $1`, ubigeo))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("district ubigeo", ubigeo)
		}
		return nil, fmt.Errorf("get district by ubigeo: %w", err)
	}
	return d, nil
}

// List distritos filtrados opcionalmente por departamento y provincia, ordenados por nombre.
func (r *DistrictRepo) List(ctx context.Context, department, province string) ([]*entity.District, error) {
	rows, err := r.q.Query(ctx, districtSelect+`
		WHERE ($1 = '' OR department = $1) AND ($2 = '' OR province = $2)
		ORDER BY department, province, name`, department, province)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	defer rows.Close()
	var list []*entity.District
	for rows.Next() {
		d, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan district: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Exists informa si existe el distrito.
func (r *DistrictRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, "district exists", `SELECT EXISTS (SELECT 1 FROM districts WHERE id = $1)`, id)
}

// ShippingDaysByGroup shipping_days (text[]) de cada grupo de despacho que incluye al distrito.
func (r *DistrictRepo) ShippingDaysByGroup(ctx context.Context, districtID int64) ([][]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT g.shipping_days
		  FROM shipping_groups g
		  JOIN shipping_group_districts gd ON gd.group_id = g.id
		 WHERE gd.district_id = $1`, districtID)
	if err != nil {
		return nil, fmt.Errorf("district shipping days: %w", err)
	}
	defer rows.Close()
	var groups [][]string
	for rows.Next() {
		var days []string
		if err := rows.Scan(&days); err != nil {
			return nil, fmt.Errorf("scan shipping days: %w", err)
		}
		groups = append(groups, days)
	}
	return groups, rows.Err()
}
