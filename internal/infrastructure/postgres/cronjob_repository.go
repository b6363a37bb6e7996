package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.CronJobRepository = (*CronJobRepo)(nil)

// CronJobRepo tabla cron_jobs. type no es único.
type CronJobRepo struct {
	q Querier
}

// NewCronJobRepository construye el adaptador. Pasar pool o tx.
func NewCronJobRepository(q Querier) *CronJobRepo {
	return &CronJobRepo{q: q}
}

func scanCronJob(row pgx.Row) (*entity.CronJob, error) {
	var j entity.CronJob
	if err := row.Scan(&j.ID, &j.Type, &j.Description, &j.Notes, &j.IsActive); err != nil {
		return nil, err
	}
	return &j, nil
}

// Create persiste una tarea.
func (r *CronJobRepo) Create(ctx context.Context, j *entity.CronJob) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO cron_jobs (type, description, notes, is_active) VALUES ($1, $2, $3, $4) RETURNING id`,
		j.Type, j.Description, j.Notes, j.IsActive,
	).Scan(&j.ID)
	if err != nil {
		return translateWriteError("insert cron job", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *CronJobRepo) GetByID(ctx context.Context, id int64) (*entity.CronJob, error) {
	j, err := scanCronJob(r.q.QueryRow(ctx, `SELECT id, type, description, notes, is_active FROM cron_jobs WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("cron job", id)
		}
		return nil, fmt.Errorf("get cron job: %w", err)
	}
	return j, nil
}

// Update actualiza la tarea.
func (r *CronJobRepo) Update(ctx context.Context, j *entity.CronJob) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE cron_jobs SET type = $2, description = $3, notes = $4, is_active = $5 WHERE id = $1`,
		j.ID, j.Type, j.Description, j.Notes, j.IsActive)
	if err != nil {
		return fmt.Errorf("update cron job: %w", err)
	}
	return checkAffected(tag, "cron job", j.ID)
}

// List todas las tareas ordenadas por tipo.
func (r *CronJobRepo) List(ctx context.Context) ([]*entity.CronJob, error) {
	rows, err := r.q.Query(ctx, `SELECT id, type, description, notes, is_active FROM cron_jobs ORDER BY type, id`)
	if err != nil {
		return nil, fmt.Errorf("list cron jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.CronJob
	for rows.Next() {
		j, err := scanCronJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cron job: %w", err)
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

// AnyActive informa si hay al menos una fila activa del tipo.
func (r *CronJobRepo) AnyActive(ctx context.Context, jobType string) (bool, error) {
	return exists(ctx, r.q, "active cron job", `SELECT EXISTS (SELECT 1 FROM cron_jobs WHERE type = $1 AND is_active = true)`, jobType)
}
