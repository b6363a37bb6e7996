package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/probaar-api/internal/application/usecase"
)

// DistrictHandler consulta de distritos y días de despacho.
type DistrictHandler struct {
	uc *usecase.DistrictUseCase
}

// NewDistrictHandler construye el handler.
func NewDistrictHandler(uc *usecase.DistrictUseCase) *DistrictHandler {
	return &DistrictHandler{uc: uc}
}

// List godoc
// @Summary      Listar distritos
// @Tags         districts
// @Security     Bearer
// @Produce      json
// @Param        department  query  string  false  "Departamento"
// @Param        province    query  string  false  "Provincia"
// @Success      200  {array}  dto.DistrictResponse
// @Router       /api/districts [get]
func (h *DistrictHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("department"), c.Query("province"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener distrito
// @Tags         districts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del distrito"
// @Success      200  {object}  dto.DistrictResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/districts/{id} [get]
func (h *DistrictHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CanShip godoc
// @Summary      ¿Se despacha al distrito en la fecha?
// @Tags         districts
// @Security     Bearer
// @Produce      json
// @Param        id    path   int     true  "ID del distrito"
// @Param        date  query  string  true  "Fecha YYYY-MM-DD"
// @Success      200   {object}  dto.CanShipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/districts/{id}/can-ship [get]
func (h *DistrictHandler) CanShip(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CanShipInDay(c.UserContext(), id, c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
