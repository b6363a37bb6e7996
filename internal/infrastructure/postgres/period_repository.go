package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.PeriodRepository = (*PeriodRepo)(nil)

// PeriodRepo tabla periods (ON DELETE CASCADE hacia places).
type PeriodRepo struct {
	q Querier
}

// NewPeriodRepository construye el adaptador. Pasar pool o tx.
func NewPeriodRepository(q Querier) *PeriodRepo {
	return &PeriodRepo{q: q}
}

// Create persiste un periodo.
func (r *PeriodRepo) Create(ctx context.Context, p *entity.Period) error {
	open, closeAt := p.OpenTime, p.CloseTime
	err := r.q.QueryRow(ctx, `
		INSERT INTO periods (place_id, weekday, open_time, close_time)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		p.PlaceID, int(p.Weekday), timeParam(&open), timeParam(&closeAt),
	).Scan(&p.ID)
	if err != nil {
		return translateWriteError("insert period", err)
	}
	return nil
}

// ListByPlace periodos del local ordenados por (weekday, open_time).
func (r *PeriodRepo) ListByPlace(ctx context.Context, placeID int64) ([]entity.Period, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, place_id, weekday, open_time, close_time
		  FROM periods WHERE place_id = $1
		 ORDER BY weekday, open_time`, placeID)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()
	var list []entity.Period
	for rows.Next() {
		var (
			p             entity.Period
			weekday       int
			open, closeAt pgtype.Time
		)
		if err := rows.Scan(&p.ID, &p.PlaceID, &weekday, &open, &closeAt); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		p.Weekday = entity.Weekday(weekday)
		p.OpenTime = entity.TimeOfDayFromMicroseconds(open.Microseconds)
		p.CloseTime = entity.TimeOfDayFromMicroseconds(closeAt.Microseconds)
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un periodo del local.
func (r *PeriodRepo) Delete(ctx context.Context, placeID, periodID int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM periods WHERE id = $1 AND place_id = $2`, periodID, placeID)
	if err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	return checkAffected(tag, "period", periodID)
}
