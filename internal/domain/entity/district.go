package entity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinUbigeoLength longitud mínima del código UBIGEO.
const MinUbigeoLength = 6

// ShippingDaysLoader devuelve, por cada grupo de despacho del distrito, sus días de despacho.
type ShippingDaysLoader func(ctx context.Context, districtID int64) ([][]string, error)

// District distrito de despacho con su polígono (SRID 4326).
// (Department, Province, Name) es único.
//
// Los días de despacho se calculan una sola vez por instancia y no se invalidan:
// quien necesite datos frescos tras cambiar los grupos debe obtener una instancia nueva.
type District struct {
	ID         int64
	Ubigeo     string
	Name       string
	Capital    string
	Department string
	Province   string
	Geom       orb.MultiPolygon
	OdooID     *int64

	mu           sync.Mutex
	loader       ShippingDaysLoader
	shippingDays map[string]struct{}
	loaded       bool
}

// AttachShippingDays asocia la fuente de grupos de despacho (la asigna el repositorio).
func (d *District) AttachShippingDays(loader ShippingDaysLoader) {
	d.mu.Lock()
	d.loader = loader
	d.mu.Unlock()
}

// ShippingDays conjunto derivado de días de despacho; vacío si no hay grupos configurados.
// Un error de carga no se cachea.
func (d *District) ShippingDays(ctx context.Context) (map[string]struct{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return d.shippingDays, nil
	}
	days := map[string]struct{}{}
	if d.loader != nil {
		groups, err := d.loader(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			for _, day := range g {
				days[strings.ToLower(day)] = struct{}{}
			}
		}
	}
	d.shippingDays = days
	d.loaded = true
	return days, nil
}

// CanShipInDay true si no hay días configurados (política abierta)
// o si el nombre del día de la fecha está en el conjunto.
func (d *District) CanShipInDay(ctx context.Context, date time.Time) (bool, error) {
	days, err := d.ShippingDays(ctx)
	if err != nil {
		return false, err
	}
	if len(days) == 0 {
		return true, nil
	}
	_, ok := days[strings.ToLower(date.Weekday().String())]
	return ok, nil
}

// DisplayableName nombre en formato título ("SAN ISIDRO" -> "San Isidro").
func (d *District) DisplayableName() string {
	return cases.Title(language.Spanish).String(strings.ToLower(strings.Join(strings.Fields(d.Name), " ")))
}

func (d *District) String() string {
	return d.Department + " - " + d.Province + " - " + d.Name
}

// Validate reglas del distrito.
func (d *District) Validate() error {
	fields := map[string]string{}
	if len(d.Ubigeo) < MinUbigeoLength {
		fields["ubigeo"] = "debe tener al menos 6 caracteres"
	}
	if d.Name == "" || d.Department == "" || d.Province == "" {
		fields["name"] = "departamento, provincia y nombre son requeridos"
	}
	if len(fields) > 0 {
		return validationError(fields)
	}
	return nil
}
