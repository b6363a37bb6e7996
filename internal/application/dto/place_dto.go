package dto

import "time"

// AddressRequest dirección; las ventanas horarias van en formato "HH:MM".
type AddressRequest struct {
	Country      string  `json:"country" validate:"required,len=2"`
	City         *string `json:"city"`
	Province     *string `json:"province"`
	AddressName  string  `json:"address_name" validate:"required,max=255"`
	Detail       *string `json:"detail"`
	OdooID       *int64  `json:"odoo_id" validate:"omitempty,gt=0"`
	ScheduleMin1 *string `json:"schedule_min_1"`
	ScheduleMax1 *string `json:"schedule_max_1"`
	ScheduleMin2 *string `json:"schedule_min_2"`
	ScheduleMax2 *string `json:"schedule_max_2"`
}

// AddressResponse salida de una dirección.
type AddressResponse struct {
	ID           int64     `json:"id"`
	Country      string    `json:"country"`
	City         *string   `json:"city,omitempty"`
	Province     *string   `json:"province,omitempty"`
	AddressName  string    `json:"address_name"`
	Detail       *string   `json:"detail,omitempty"`
	OdooID       *int64    `json:"odoo_id,omitempty"`
	ScheduleMin1 *string   `json:"schedule_min_1"`
	ScheduleMax1 *string   `json:"schedule_max_1"`
	ScheduleMin2 *string   `json:"schedule_min_2"`
	ScheduleMax2 *string   `json:"schedule_max_2"`
	DateCreation time.Time `json:"date_creation"`
}

// CreatePlaceRequest alta de local con su dirección.
type CreatePlaceRequest struct {
	OrgID           *int64         `json:"org_id"`
	Type            string         `json:"type" validate:"required,oneof=bar disco restaurant store general warehouse"`
	Name            string         `json:"name" validate:"required,max=255"`
	Description     *string        `json:"description"`
	Phone           *string        `json:"phone" validate:"omitempty,max=30"`
	Website         *string        `json:"website" validate:"omitempty,url"`
	DispatchAddress bool           `json:"dispatch_address"`
	IsActive        *bool          `json:"is_active"`
	Address         AddressRequest `json:"address" validate:"required"`
}

// PlaceResponse salida de un local.
type PlaceResponse struct {
	ID              int64            `json:"id"`
	OrgID           *int64           `json:"org_id"`
	Type            string           `json:"type"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	Phone           *string          `json:"phone,omitempty"`
	Website         *string          `json:"website,omitempty"`
	DispatchAddress bool             `json:"dispatch_address"`
	IsActive        bool             `json:"is_active"`
	DeactivatedAt   *time.Time       `json:"deactivated_at,omitempty"`
	Address         *AddressResponse `json:"address,omitempty"`
}

// PeriodRequest ventana semanal; weekday 0 = lunes.
type PeriodRequest struct {
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	OpenTime  string `json:"open_time" validate:"required"`
	CloseTime string `json:"close_time" validate:"required"`
}

// PeriodResponse salida de un periodo.
type PeriodResponse struct {
	ID        int64  `json:"id"`
	PlaceID   int64  `json:"place_id"`
	Weekday   int    `json:"weekday"`
	DayName   string `json:"day_name"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

// OpenResponse resultado de la consulta de horario.
type OpenResponse struct {
	PlaceID int64     `json:"place_id"`
	At      time.Time `json:"at"`
	Open    bool      `json:"open"`
}
