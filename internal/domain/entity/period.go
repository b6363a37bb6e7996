package entity

import "time"

// Weekday día de la semana con lunes = 0 ... domingo = 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// WeekdayOf convierte el día de t (domingo = 0 en Go) a Weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// Valid informa si el día está en 0..6.
func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

// String nombre en minúsculas ("monday").
func (w Weekday) String() string {
	if !w.Valid() {
		return ""
	}
	return weekdayNames[w]
}

// Period ventana semanal de apertura de un local. No se valida solapamiento.
type Period struct {
	ID        int64
	PlaceID   int64
	Weekday   Weekday
	OpenTime  TimeOfDay
	CloseTime TimeOfDay
}

func (p *Period) String() string { return p.Weekday.String() }

// Covers informa si el periodo incluye el día y la hora dados.
// Un cierre anterior a la apertura se interpreta como cierre pasada la medianoche.
// Apertura igual al cierre es un turno de 24 horas que termina a esa hora del día siguiente.
func (p *Period) Covers(wd Weekday, t TimeOfDay) bool {
	if p.CloseTime > p.OpenTime {
		return wd == p.Weekday && t >= p.OpenTime && t < p.CloseTime
	}
	if wd == p.Weekday && t >= p.OpenTime {
		return true
	}
	next := (p.Weekday + 1) % 7
	return wd == next && t < p.CloseTime
}

// Validate solo verifica el rango del día.
func (p *Period) Validate() error {
	if !p.Weekday.Valid() {
		return validationError(map[string]string{"weekday": "debe estar entre 0 y 6"})
	}
	return nil
}
