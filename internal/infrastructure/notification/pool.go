package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/probaar-api/internal/application/ports"
)

var _ ports.TaskSubmitter = (*Pool)(nil)

var (
	// ErrPoolClosed Submit después de Shutdown.
	ErrPoolClosed = errors.New("notification pool cerrado")
	// ErrQueueFull la cola de trabajos está llena.
	ErrQueueFull = errors.New("notification pool: cola llena")
)

type job struct {
	name string
	fn   func(ctx context.Context) error
}

// Pool ejecuta envíos de notificaciones en segundo plano con un número fijo de workers.
// Lo construye cmd/api y se cierra con Shutdown, que drena la cola pendiente.
type Pool struct {
	log    zerolog.Logger
	jobs   chan job
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// NewPool arranca workers goroutines que consumen una cola de queueSize trabajos.
func NewPool(workers, queueSize int, log zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		log:    log,
		jobs:   make(chan job, queueSize),
		group:  &errgroup.Group{},
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < workers; i++ {
		p.group.Go(p.worker)
	}
	return p
}

func (p *Pool) worker() error {
	for j := range p.jobs {
		p.run(j)
	}
	return nil
}

func (p *Pool) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Str("task", j.name).Interface("panic", r).Msg("panic en tarea de notificación")
		}
	}()
	if err := j.fn(p.ctx); err != nil {
		p.log.Error().Err(err).Str("task", j.name).Msg("tarea de notificación falló")
		return
	}
	p.log.Debug().Str("task", j.name).Msg("tarea de notificación completada")
}

// Submit encola la tarea sin bloquear.
func (p *Pool) Submit(name string, fn func(ctx context.Context) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.jobs <- job{name: name, fn: fn}:
		return nil
	default:
		return fmt.Errorf("%s: %w", name, ErrQueueFull)
	}
}

// Shutdown deja de aceptar tareas y espera a que se procese la cola.
// Si ctx vence antes, cancela el contexto de las tareas en curso y devuelve ctx.Err().
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- p.group.Wait() }()

	select {
	case err := <-done:
		p.cancel()
		return err
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}
