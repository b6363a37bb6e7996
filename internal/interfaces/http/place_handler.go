package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
	"github.com/jhoicas/probaar-api/internal/domain"
)

// PlaceHandler maneja locales y sus horarios (protegido).
type PlaceHandler struct {
	uc  *usecase.PlaceUseCase
	val *Validator
}

// NewPlaceHandler construye el handler.
func NewPlaceHandler(uc *usecase.PlaceUseCase, val *Validator) *PlaceHandler {
	return &PlaceHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Crear local con su dirección
// @Description  El local se crea en la organización de sesión; un org_id distinto devuelve 403.
// @Tags         places
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlaceRequest  true  "Datos del local"
// @Success      201   {object}  dto.PlaceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/places [post]
func (h *PlaceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlaceRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	orgID, err := sessionOrg(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), orgID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Locales de la organización de sesión
// @Tags         places
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PlaceResponse
// @Router       /api/places [get]
func (h *PlaceHandler) List(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	if orgID == nil {
		return c.JSON([]dto.PlaceResponse{})
	}
	out, err := h.uc.ListByOrg(c.UserContext(), *orgID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener local
// @Tags         places
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del local"
// @Success      200  {object}  dto.PlaceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/places/{id} [get]
func (h *PlaceHandler) GetByID(c *fiber.Ctx) error {
	orgID, err := sessionOrg(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), orgID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar local y su dirección
// @Tags         places
// @Security     Bearer
// @Param        id   path  int  true  "ID del local"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/places/{id} [delete]
func (h *PlaceHandler) Delete(c *fiber.Ctx) error {
	orgID, err := sessionOrg(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), orgID, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleActive godoc
// @Summary      Activar/desactivar local
// @Tags         places
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del local"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/places/{id}/toggle-active [post]
func (h *PlaceHandler) ToggleActive(c *fiber.Ctx) error {
	orgID, err := sessionOrg(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	msg, err := h.uc.ToggleActive(c.UserContext(), orgID, id)
	if err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, msg)
}

// AddPeriod godoc
// @Summary      Agregar ventana semanal
// @Tags         places
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del local"
// @Param        body  body  dto.PeriodRequest  true  "weekday (0 = lunes), open_time, close_time"
// @Success      201   {object}  dto.PeriodResponse
// @Router       /api/places/{id}/periods [post]
func (h *PlaceHandler) AddPeriod(c *fiber.Ctx) error {
	orgID, err := sessionOrg(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.PeriodRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AddPeriod(c.UserContext(), orgID, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPeriods godoc
// @Summary      Ventanas semanales del local
// @Tags         places
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del local"
// @Success      200  {array}  dto.PeriodResponse
// @Router       /api/places/{id}/periods [get]
func (h *PlaceHandler) ListPeriods(c *fiber.Ctx) error {
	orgID, err := sessionOrg(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListPeriods(c.UserContext(), orgID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeletePeriod godoc
// @Summary      Eliminar ventana semanal
// @Tags         places
// @Security     Bearer
// @Param        id         path  int  true  "ID del local"
// @Param        periodId   path  int  true  "ID del periodo"
// @Success      204
// @Router       /api/places/{id}/periods/{periodId} [delete]
func (h *PlaceHandler) DeletePeriod(c *fiber.Ctx) error {
	orgID, err := sessionOrg(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	periodID, err := paramID(c, "periodId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeletePeriod(c.UserContext(), orgID, id, periodID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Open godoc
// @Summary      ¿Está abierto el local?
// @Tags         places
// @Security     Bearer
// @Produce      json
// @Param        id   path   int     true   "ID del local"
// @Param        at   query  string  false  "Instante RFC3339; por defecto ahora"
// @Success      200  {object}  dto.OpenResponse
// @Router       /api/places/{id}/open [get]
func (h *PlaceHandler) Open(c *fiber.Ctx) error {
	orgID, err := sessionOrg(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	at := time.Now()
	if v := c.Query("at"); v != "" {
		if at, err = time.Parse(time.RFC3339, v); err != nil {
			return writeError(c, domain.NewValidationError("at", "debe ser RFC3339"))
		}
	}
	out, err := h.uc.IsOpen(c.UserContext(), orgID, id, at)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
