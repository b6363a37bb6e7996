package ports

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// PlaceSetupHook se invoca una vez tras crear un local que requiere setup (tipo STORE).
// El bootstrap de inventario vive fuera de este servicio.
type PlaceSetupHook interface {
	SetupPlace(ctx context.Context, place *entity.Place) error
}

// UnitSavedHook se invoca tras guardar una unidad (reetiquetado de productos que la usan).
type UnitSavedHook interface {
	UnitSaved(ctx context.Context, unit *entity.Unit) error
}
