package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
)

// CronJobHandler registro y ejecución manual de tareas programadas.
type CronJobHandler struct {
	uc  *usecase.CronJobUseCase
	val *Validator
}

// NewCronJobHandler construye el handler.
func NewCronJobHandler(uc *usecase.CronJobUseCase, val *Validator) *CronJobHandler {
	return &CronJobHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Registrar tarea programada
// @Tags         cronjobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCronJobRequest  true  "Tipo y descripción"
// @Success      201   {object}  dto.CronJobResponse
// @Router       /api/cronjobs [post]
func (h *CronJobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCronJobRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tareas programadas
// @Tags         cronjobs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CronJobResponse
// @Router       /api/cronjobs [get]
func (h *CronJobHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleActive godoc
// @Summary      Activar/desactivar tarea
// @Tags         cronjobs
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tarea"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/cronjobs/{id}/toggle-active [post]
func (h *CronJobHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	msg, err := h.uc.ToggleActive(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, msg)
}

// Run godoc
// @Summary      Ejecutar tarea ahora
// @Description  Ignora is_active.
// @Tags         cronjobs
// @Security     Bearer
// @Param        id   path  int  true  "ID de la tarea"
// @Success      202
// @Router       /api/cronjobs/{id}/run [post]
func (h *CronJobHandler) Run(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Run(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}
