package entity

import (
	"strings"
	"time"
)

// Géneros.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Valores de show_onboarding_modal.
const (
	OnboardingShow = "true"
	OnboardingHide = "false"
)

// Mensajes de cuenta de usuario.
const (
	MsgUserActiveAlready    = "User is active already."
	MsgAccountActiveAlready = "Account is active already."
	MsgAccountActivated     = "Account has been activated successfully."
	MsgTokenAlreadySet      = "User has a token already."
	MsgTokenSet             = "Token set successfully."
	MsgActivationSendFailed = "An error has occurred. Login to receive an activation link."
	MsgActivationSent       = "An activation email has been sent to your email \"%s\". Please click on the activation link."
	MsgTokenExpired         = "Activation link has expired. Login to receive a new one."
)

// User cuenta de usuario. Pertenece a organizaciones vía Membership.
// LegacyLoggedOrgID es el último puntero persistido a la organización de sesión.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt
	IsActive     bool

	LegacyLoggedOrgID *int64

	Gender              *string
	ShowOnboardingModal string
	Cellphone           *string
	City                *string
	Country             *string

	Token     *string
	DateToken *time.Time

	LastDateViewBanner *time.Time
	DateJoined         time.Time
}

// FullName nombre y apellido.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) String() string {
	if name := u.FullName(); name != "" {
		return name + " - " + u.Username
	}
	return u.Username
}

// Activate activa la cuenta. Si ya estaba activa devuelve LevelError sin cambios.
func (u *User) Activate() Message {
	if u.IsActive {
		return Message{Level: LevelError, Text: MsgAccountActiveAlready}
	}
	u.IsActive = true
	return Message{Level: LevelSuccess, Text: MsgAccountActivated}
}

// SetToken asigna el token de activación/recuperación. Sin force no pisa uno existente.
func (u *User) SetToken(token string, now time.Time, force bool) Message {
	if u.Token != nil && *u.Token != "" && !force {
		return Message{Level: LevelError, Text: MsgTokenAlreadySet}
	}
	u.Token = &token
	u.DateToken = &now
	return Message{Level: LevelSuccess, Text: MsgTokenSet}
}

// TokenExpired informa si el token fue emitido hace ttl o más. Sin fecha de emisión
// se considera vencido; ttl <= 0 desactiva la expiración.
func (u *User) TokenExpired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	if u.DateToken == nil {
		return true
	}
	return !now.Before(u.DateToken.Add(ttl))
}

// ClearToken invalida el token tras usarlo.
func (u *User) ClearToken() {
	u.Token = nil
	u.DateToken = nil
}

// ActiveMemberEmail email de un miembro activo de una organización.
type ActiveMemberEmail struct {
	UserID int64
	Email  string
}
