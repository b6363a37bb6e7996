package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/probaar-api/internal/application/auth"
	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
)

// AuthHandler maneja registro, activación, login y cambio de organización.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	users *usecase.UserUseCase
	val   *Validator
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase, val *Validator) *AuthHandler {
	return &AuthHandler{uc: uc, users: users, val: val}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  La cuenta queda inactiva y se envía un enlace de activación por correo.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  El token incluye el claim org con la organización de sesión.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Activar cuenta
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ActivateRequest  true  "token"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.MessageResponse
// @Router       /api/auth/activate [post]
func (h *AuthHandler) Activate(c *fiber.Ctx) error {
	var in dto.ActivateRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	msg, err := h.users.Activate(c.UserContext(), in.Token)
	if err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, msg)
}

// SwitchOrganization godoc
// @Summary      Cambiar organización de sesión
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SwitchOrganizationRequest  true  "organization_id"
// @Success      200   {object}  dto.LoginResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/switch-org [post]
func (h *AuthHandler) SwitchOrganization(c *fiber.Ctx) error {
	var in dto.SwitchOrganizationRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SwitchOrganization(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
