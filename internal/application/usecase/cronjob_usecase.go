package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

// JobRunner ejecuta de inmediato el handler de un tipo de tarea.
type JobRunner interface {
	RunNow(ctx context.Context, jobType string) error
}

// CronJobUseCase registro de tareas programadas.
type CronJobUseCase struct {
	jobs   repository.CronJobRepository
	runner JobRunner
	log    zerolog.Logger
}

// NewCronJobUseCase construye el caso de uso.
func NewCronJobUseCase(jobs repository.CronJobRepository, runner JobRunner, log zerolog.Logger) *CronJobUseCase {
	return &CronJobUseCase{jobs: jobs, runner: runner, log: log}
}

// Create registra una tarea. Se permiten varias filas del mismo tipo.
func (uc *CronJobUseCase) Create(ctx context.Context, in dto.CreateCronJobRequest) (*dto.CronJobResponse, error) {
	if !entity.ValidJobType(in.Type) {
		return nil, validationField("type", "tipo de tarea desconocido")
	}
	job := &entity.CronJob{Type: in.Type, Description: in.Description, Notes: in.Notes, IsActive: in.IsActive}
	if err := uc.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return toCronJobResponse(job), nil
}

// List todas las tareas registradas.
func (uc *CronJobUseCase) List(ctx context.Context) ([]dto.CronJobResponse, error) {
	list, err := uc.jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CronJobResponse, 0, len(list))
	for _, j := range list {
		out = append(out, *toCronJobResponse(j))
	}
	return out, nil
}

// ToggleActive activa o desactiva la tarea.
func (uc *CronJobUseCase) ToggleActive(ctx context.Context, id int64) (entity.Message, error) {
	job, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return entity.Message{}, err
	}
	job.IsActive = !job.IsActive
	if err := uc.jobs.Update(ctx, job); err != nil {
		return entity.Message{}, err
	}
	if job.IsActive {
		return entity.Message{Level: entity.LevelSuccess, Text: entity.MsgSetActive}, nil
	}
	return entity.Message{Level: entity.LevelSuccess, Text: entity.MsgSetInactive}, nil
}

// Run ejecuta la tarea en el momento, aunque esté inactiva.
func (uc *CronJobUseCase) Run(ctx context.Context, id int64) error {
	job, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	uc.log.Info().Int64("cronjob_id", id).Str("type", job.Type).Msg("ejecución manual")
	return uc.runner.RunNow(ctx, job.Type)
}

func toCronJobResponse(j *entity.CronJob) *dto.CronJobResponse {
	return &dto.CronJobResponse{ID: j.ID, Type: j.Type, Description: j.Description, Notes: j.Notes, IsActive: j.IsActive}
}
