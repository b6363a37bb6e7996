package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// writeMessage responde 200 para LevelSuccess/LevelWarning y 409 para transiciones rechazadas.
func writeMessage(c *fiber.Ctx, m entity.Message) error {
	status := fiber.StatusOK
	if m.Level == entity.LevelError {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(dto.MessageResponse{Level: m.Level, Message: m.Text})
}
