// Package hooks implementaciones por defecto de los puntos de extensión de locales y unidades.
// El bootstrap de inventario y el reetiquetado de productos viven en otro servicio;
// aquí solo se registra el evento.
package hooks

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/probaar-api/internal/application/ports"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

var (
	_ ports.PlaceSetupHook = (*Logging)(nil)
	_ ports.UnitSavedHook  = (*Logging)(nil)
)

// Logging hooks que solo escriben en el log.
type Logging struct {
	log zerolog.Logger
}

// NewLogging construye los hooks por defecto.
func NewLogging(log zerolog.Logger) *Logging {
	return &Logging{log: log}
}

// SetupPlace registra el alta de un local que requiere setup de inventario.
func (h *Logging) SetupPlace(ctx context.Context, place *entity.Place) error {
	ev := h.log.Info().Int64("place_id", place.ID).Str("type", place.Type)
	if place.OrgID != nil {
		ev = ev.Int64("org_id", *place.OrgID)
	}
	ev.Msg("setup de local pendiente de bootstrap de inventario")
	return nil
}

// UnitSaved registra el guardado de una unidad.
func (h *Logging) UnitSaved(ctx context.Context, unit *entity.Unit) error {
	h.log.Debug().Int64("unit_id", unit.ID).Str("short_name", unit.ShortName).Msg("unidad guardada")
	return nil
}

// Job devuelve un handler de tarea programada que solo registra la ejecución.
// La sincronización con Odoo y el reindexado los ejecutan otros servicios.
func (h *Logging) Job(jobType string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		h.log.Info().Str("job", jobType).Msg("tarea programada ejecutada")
		return nil
	}
}
