package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
)

// RestrictionHandler alta y baja de restricciones de usuario.
type RestrictionHandler struct {
	uc  *usecase.RestrictionUseCase
	val *Validator
}

// NewRestrictionHandler construye el handler.
func NewRestrictionHandler(uc *usecase.RestrictionUseCase, val *Validator) *RestrictionHandler {
	return &RestrictionHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Restringir un objeto a un usuario
// @Tags         restrictions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRestrictionRequest  true  "Usuario, tipo y objeto"
// @Success      201   {object}  dto.RestrictionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restrictions [post]
func (h *RestrictionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRestrictionRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	orgID, err := sessionOrg(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Restrict(c.UserContext(), orgID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar restricción
// @Tags         restrictions
// @Security     Bearer
// @Param        id   path  int  true  "ID de la restricción"
// @Success      204
// @Router       /api/restrictions/{id} [delete]
func (h *RestrictionHandler) Delete(c *fiber.Ctx) error {
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
