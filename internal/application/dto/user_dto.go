package dto

import "time"

// RegisterRequest alta de cuenta. La cuenta queda inactiva hasta activarla con el token enviado por correo.
type RegisterRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=150"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName string  `json:"first_name" validate:"omitempty,max=150"`
	LastName  string  `json:"last_name" validate:"omitempty,max=150"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Cellphone *string `json:"cellphone" validate:"omitempty,max=20"`
}

// UserResponse salida de un usuario (sin password ni token).
type UserResponse struct {
	ID                  int64     `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	IsActive            bool      `json:"is_active"`
	Gender              *string   `json:"gender,omitempty"`
	ShowOnboardingModal bool      `json:"show_onboarding_modal"`
	DateJoined          time.Time `json:"date_joined"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT (claim org = organización de sesión) y usuario.
type LoginResponse struct {
	Token        string                `json:"token"`
	User         UserResponse          `json:"user"`
	Organization *OrganizationResponse `json:"organization,omitempty"`
}

// ActivateRequest token recibido por correo.
type ActivateRequest struct {
	Token string `json:"token" validate:"required"`
}

// SwitchOrganizationRequest cambio de organización de sesión.
type SwitchOrganizationRequest struct {
	OrganizationID int64 `json:"organization_id" validate:"required,gt=0"`
}

// MeResponse perfil del usuario autenticado con su organización de sesión.
type MeResponse struct {
	User               UserResponse          `json:"user"`
	LoggedOrganization *OrganizationResponse `json:"logged_organization,omitempty"`
	Role               *RoleResponse         `json:"role,omitempty"`
}

// RoleResponse rol de aplicación con sus permisos.
type RoleResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
