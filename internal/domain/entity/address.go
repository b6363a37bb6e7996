package entity

import (
	"time"

	"github.com/jhoicas/probaar-api/internal/domain"
)

// Address dirección física. OdooID correlaciona con el ERP externo (único).
// Tiene hasta dos ventanas horarias de atención (ScheduleMin1-ScheduleMax1, ScheduleMin2-ScheduleMax2).
type Address struct {
	ID           int64
	Country      string
	City         *string
	Province     *string
	AddressName  string
	Detail       *string
	DateCreation time.Time
	OdooID       *int64

	ScheduleMin1 *TimeOfDay
	ScheduleMax1 *TimeOfDay
	ScheduleMin2 *TimeOfDay
	ScheduleMax2 *TimeOfDay
}

func (a *Address) String() string {
	if a.City != nil && *a.City != "" {
		return a.AddressName + " - " + *a.City + ", " + a.Country
	}
	return a.AddressName + ", " + a.Country
}

// Validate verifica el orden de las ventanas horarias cuando ambos extremos están definidos.
func (a *Address) Validate() error {
	fields := map[string]string{}
	if a.AddressName == "" {
		fields["address_name"] = "es requerido"
	}
	if a.ScheduleMin1 != nil && a.ScheduleMax1 != nil && *a.ScheduleMin1 > *a.ScheduleMax1 {
		fields["schedule_min_1"] = "Schedule min 1 should be less than schedule max 1"
	}
	if a.ScheduleMin2 != nil && a.ScheduleMax2 != nil && *a.ScheduleMin2 > *a.ScheduleMax2 {
		fields["schedule_min_2"] = "Schedule min 2 should be less than schedule max 2"
	}
	if len(fields) > 0 {
		return validationError(fields)
	}
	return nil
}

// DiscardIncompleteSchedules anula ambos extremos de una ventana si falta alguno.
func (a *Address) DiscardIncompleteSchedules() {
	if a.ScheduleMin1 == nil || a.ScheduleMax1 == nil {
		a.ScheduleMin1, a.ScheduleMax1 = nil, nil
	}
	if a.ScheduleMin2 == nil || a.ScheduleMax2 == nil {
		a.ScheduleMin2, a.ScheduleMax2 = nil, nil
	}
}

// PrepareForSave valida y normaliza; se llama antes de cada INSERT/UPDATE.
func (a *Address) PrepareForSave() error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.DiscardIncompleteSchedules()
	return nil
}

func validationError(fields map[string]string) error {
	return &domain.ValidationError{Fields: fields}
}
