package dto

// UnitRequest alta o edición de unidad de medida.
type UnitRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	ShortName string `json:"short_name" validate:"required,max=20"`
	IsActive  *bool  `json:"is_active"`
}

// UnitResponse salida de una unidad.
type UnitResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	IsActive  bool   `json:"is_active"`
}
