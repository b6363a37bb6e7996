package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// UserHandler perfil del usuario y consulta de restricciones.
type UserHandler struct {
	users        *usecase.UserUseCase
	restrictions *usecase.RestrictionUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(users *usecase.UserUseCase, restrictions *usecase.RestrictionUseCase) *UserHandler {
	return &UserHandler{users: users, restrictions: restrictions}
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.users.Me(c.UserContext(), GetUserID(c), GetOrgID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Restrictions godoc
// @Summary      Restricciones de un usuario
// @Description  Solo para miembros de la organización de sesión. Con kind devuelve solo los IDs restringidos de ese tipo.
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id    path   int     true   "ID del usuario"
// @Param        kind  query  string  false  "place | organization | address | district"
// @Success      200   {array}   dto.RestrictionResponse
// @Success      200   {object}  dto.RestrictedIDsResponse
// @Router       /api/users/{id}/restrictions [get]
func (h *UserHandler) Restrictions(c *fiber.Ctx) error {
	orgID, err := sessionOrg(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if kind := c.Query("kind"); kind != "" {
		if err := h.restrictions.RequireMember(c.UserContext(), orgID, id); err != nil {
			return writeError(c, err)
		}
		ids, err := h.users.RestrictedObjectIDs(c.UserContext(), id, entity.RestrictableKind(kind))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.RestrictedIDsResponse{Kind: kind, IDs: ids})
	}
	out, err := h.restrictions.ListByUser(c.UserContext(), orgID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
