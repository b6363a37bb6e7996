package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ErrNoHandler no hay handler registrado para el tipo de tarea.
var ErrNoHandler = errors.New("tarea sin handler registrado")

// Handler ejecuta una tarea programada. La lógica vive fuera de este servicio.
type Handler func(ctx context.Context) error

// JobRegistry fuente del flag is_active de las tareas (tabla cron_jobs).
type JobRegistry interface {
	AnyActive(ctx context.Context, jobType string) (bool, error)
}

// Dispatcher programa los handlers con robfig/cron y, en cada disparo,
// solo los ejecuta si existe al menos una fila activa de ese tipo.
type Dispatcher struct {
	cron     *cron.Cron
	registry JobRegistry
	specs    map[string]string
	log      zerolog.Logger
	timeout  time.Duration

	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewDispatcher construye el despachador. specs: tipo de tarea -> expresión cron de 5 campos.
func NewDispatcher(registry JobRegistry, specs map[string]string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		cron:     cron.New(),
		registry: registry,
		specs:    specs,
		log:      log,
		timeout:  30 * time.Minute,
		handlers: map[string]Handler{},
	}
}

// Register asocia el handler de un tipo de tarea. Debe llamarse antes de Start.
func (d *Dispatcher) Register(jobType string, h Handler) {
	d.mu.Lock()
	d.handlers[jobType] = h
	d.mu.Unlock()
}

// Start registra una entrada cron por cada tipo con handler y expresión no vacía, y arranca el cron.
func (d *Dispatcher) Start() error {
	d.mu.RLock()
	types := make([]string, 0, len(d.handlers))
	for jobType := range d.handlers {
		types = append(types, jobType)
	}
	d.mu.RUnlock()
	sort.Strings(types)

	for _, jobType := range types {
		spec := d.specs[jobType]
		if spec == "" {
			d.log.Info().Str("job", jobType).Msg("tarea sin programación: solo ejecución manual")
			continue
		}
		jobType := jobType
		if _, err := d.cron.AddFunc(spec, func() { d.fire(jobType) }); err != nil {
			return fmt.Errorf("cron %s %q: %w", jobType, spec, err)
		}
		d.log.Info().Str("job", jobType).Str("cron", spec).Msg("tarea programada")
	}
	d.cron.Start()
	return nil
}

// Stop detiene el cron y espera a las ejecuciones en curso (o a que venza ctx).
func (d *Dispatcher) Stop(ctx context.Context) error {
	stopped := d.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) fire(jobType string) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	log := d.log.With().Str("job", jobType).Time("now", time.Now()).Logger()
	ran, err := d.Trigger(ctx, jobType)
	switch {
	case err != nil:
		log.Error().Err(err).Msg("tarea programada falló")
	case !ran:
		log.Debug().Msg("tarea inactiva: disparo omitido")
	default:
		log.Info().Msg("tarea programada completada")
	}
}

// Trigger ejecuta el handler solo si hay una fila activa del tipo. ran=false si se omitió.
func (d *Dispatcher) Trigger(ctx context.Context, jobType string) (ran bool, err error) {
	active, err := d.registry.AnyActive(ctx, jobType)
	if err != nil {
		return false, fmt.Errorf("estado de %s: %w", jobType, err)
	}
	if !active {
		return false, nil
	}
	return true, d.RunNow(ctx, jobType)
}

// RunNow ejecuta el handler del tipo de inmediato, sin consultar is_active (acción manual "run").
func (d *Dispatcher) RunNow(ctx context.Context, jobType string) error {
	d.mu.RLock()
	h, ok := d.handlers[jobType]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s: %w", jobType, ErrNoHandler)
	}
	return h(ctx)
}
