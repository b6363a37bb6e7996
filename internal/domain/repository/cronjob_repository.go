package repository

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// CronJobRepository registro de tareas programadas.
type CronJobRepository interface {
	Create(ctx context.Context, job *entity.CronJob) error
	GetByID(ctx context.Context, id int64) (*entity.CronJob, error)
	Update(ctx context.Context, job *entity.CronJob) error
	List(ctx context.Context) ([]*entity.CronJob, error)
	// AnyActive informa si existe al menos una fila activa del tipo.
	AnyActive(ctx context.Context, jobType string) (bool, error)
}
