package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/probaar-api/internal/domain"
)

// TimeOfDay hora del día como desplazamiento desde medianoche (columnas TIME).
type TimeOfDay time.Duration

// NewTimeOfDay construye una hora a partir de horas y minutos.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// ParseTimeOfDay acepta "15:04" o "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second), nil
		}
	}
	return 0, fmt.Errorf("hora %q: %w", s, domain.ErrInvalidInput)
}

// TimeOfDayOf extrae la hora del día de un instante.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second)
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Microseconds representación usada por el tipo TIME de PostgreSQL.
func (t TimeOfDay) Microseconds() int64 {
	return time.Duration(t).Microseconds()
}

// TimeOfDayFromMicroseconds inversa de Microseconds.
func TimeOfDayFromMicroseconds(us int64) TimeOfDay {
	return TimeOfDay(time.Duration(us) * time.Microsecond)
}
