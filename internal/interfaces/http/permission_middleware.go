package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/probaar-api/internal/application/dto"
)

// permissionChecker es el contrato mínimo que necesita el middleware para verificar permisos.
// Lo implementa *usecase.RoleUseCase.
type permissionChecker interface {
	UserHasPermission(ctx context.Context, userID, orgID int64, permission string) (bool, error)
}

// RequirePermission devuelve un middleware Fiber que verifica que el rol del usuario en la
// organización del token incluya el permiso. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay usuario en el contexto.
//   - 403 Forbidden → token sin organización, o rol sin el permiso.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequirePermission(permission string, checker permissionChecker, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}
		orgID := GetOrgID(c)
		if orgID == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "NO_ORGANIZATION",
				Message: "el token no tiene organización de sesión",
			})
		}

		allowed, err := checker.UserHasPermission(c.UserContext(), userID, *orgID, permission)
		if err != nil {
			log.Error().Err(err).Int64("user_id", userID).Str("permission", permission).Msg("no se pudo verificar el permiso")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el permiso '" + permission + "' no está asignado a su rol",
			})
		}
		return c.Next()
	}
}
