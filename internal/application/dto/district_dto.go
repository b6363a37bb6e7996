package dto

// DistrictResponse salida de un distrito (sin geometría).
type DistrictResponse struct {
	ID          int64  `json:"id"`
	Ubigeo      string `json:"ubigeo"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Capital     string `json:"capital"`
	Department  string `json:"department"`
	Province    string `json:"province"`
	OdooID      *int64 `json:"odoo_id,omitempty"`
	Polygons    int    `json:"polygons"`
}

// CanShipResponse resultado de la consulta de día de despacho.
type CanShipResponse struct {
	DistrictID int64  `json:"district_id"`
	Date       string `json:"date"`
	CanShip    bool   `json:"can_ship"`
}
