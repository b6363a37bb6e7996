package entity

import "time"

// Tipos de local.
const (
	PlaceBar        = "bar"
	PlaceDisco      = "disco"
	PlaceRestaurant = "restaurant"
	PlaceStore      = "store"
	PlaceGeneral    = "general"
	PlaceWarehouse  = "warehouse"
)

// ValidPlaceType informa si t es un tipo de local conocido.
func ValidPlaceType(t string) bool {
	switch t {
	case PlaceBar, PlaceDisco, PlaceRestaurant, PlaceStore, PlaceGeneral, PlaceWarehouse:
		return true
	}
	return false
}

// Place local físico de una organización. Es dueño exclusivo de su Address:
// al eliminar el local se elimina la dirección.
type Place struct {
	ID int64
	Activable

	OrgID           *int64
	AddressID       int64
	Type            string
	Name            string
	Description     *string
	Phone           *string
	Website         *string
	DispatchAddress bool // puede usarse como origen/destino de despacho
	DeactivatedAt   *time.Time

	// Address se carga en las consultas que hacen join con addresses.
	Address *Address
}

func (p *Place) String() string { return p.Name }

// NeedsSetup indica si el alta del local requiere el bootstrap de inventario.
func (p *Place) NeedsSetup() bool {
	return p.Type == PlaceStore
}

// OpenAt informa si alguno de los periodos del local cubre el instante t.
func (p *Place) OpenAt(periods []Period, t time.Time) bool {
	wd := WeekdayOf(t)
	tod := TimeOfDayOf(t)
	for _, period := range periods {
		if period.PlaceID == p.ID && period.Covers(wd, tod) {
			return true
		}
	}
	return false
}

// Validate reglas verificadas antes de persistir.
func (p *Place) Validate() error {
	fields := map[string]string{}
	if p.Name == "" {
		fields["name"] = "es requerido"
	}
	if !ValidPlaceType(p.Type) {
		fields["type"] = "tipo de local desconocido"
	}
	if len(fields) > 0 {
		return validationError(fields)
	}
	return nil
}
