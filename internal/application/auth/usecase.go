package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
	"github.com/jhoicas/probaar-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionResolver resuelve la organización de sesión y el rol del usuario.
type SessionResolver interface {
	LoggedOrganization(ctx context.Context, user *entity.User, claimOrgID *int64) (*entity.Organization, error)
	AppRoleForLoggedOrg(ctx context.Context, user *entity.User, claimOrgID *int64) (*entity.AppRole, error)
	QueueActivationEmail(user *entity.User) error
}

// AuthUseCase casos de uso de autenticación: registro, activación, login y cambio de organización.
type AuthUseCase struct {
	users       repository.UserRepository
	memberships repository.MembershipRepository
	sessions    SessionResolver
	jwtCfg      JWTConfig
	log         zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	users repository.UserRepository,
	memberships repository.MembershipRepository,
	sessions SessionResolver,
	jwtCfg JWTConfig,
	log zerolog.Logger,
) *AuthUseCase {
	return &AuthUseCase{users: users, memberships: memberships, sessions: sessions, jwtCfg: jwtCfg, log: log}
}

// Register crea un usuario inactivo con token de activación y encola el correo de activación.
// Devuelve *domain.ConflictError si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Constraint: "users_email_key"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:            in.Username,
		Email:               email,
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		PasswordHash:        string(hash),
		Gender:              in.Gender,
		Cellphone:           in.Cellphone,
		ShowOnboardingModal: entity.OnboardingShow,
	}
	user.SetToken(uuid.NewString(), time.Now(), true)
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.sessions.QueueActivationEmail(user); err != nil {
		uc.log.Error().Err(err).Int64("user_id", user.ID).Msg("no se pudo encolar el correo de activación")
	}
	out := toUserResponse(user)
	return &out, nil
}

// Login verifica email/password y emite un JWT cuyo claim org es la organización de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	return uc.issue(ctx, user, nil)
}

// SwitchOrganization emite un token nuevo para otra organización de la que el usuario es miembro.
func (uc *AuthUseCase) SwitchOrganization(ctx context.Context, userID int64, in dto.SwitchOrganizationRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	member, err := uc.memberships.IsMember(ctx, in.OrganizationID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrForbidden
	}
	orgID := in.OrganizationID
	if err := uc.users.UpdateLegacyLoggedOrg(ctx, userID, &orgID); err != nil {
		return nil, err
	}
	user.LegacyLoggedOrgID = &orgID
	return uc.issue(ctx, user, &orgID)
}

func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User, claimOrgID *int64) (*dto.LoginResponse, error) {
	org, err := uc.sessions.LoggedOrganization(ctx, user, claimOrgID)
	if err != nil {
		return nil, err
	}
	var (
		orgID    *int64
		orgResp  *dto.OrganizationResponse
		roleName string
	)
	if org != nil {
		orgID = &org.ID
		orgResp = toOrganizationResponse(org)
		role, err := uc.sessions.AppRoleForLoggedOrg(ctx, user, orgID)
		if err != nil {
			return nil, err
		}
		if role != nil {
			roleName = role.Name
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, orgID, roleName, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user), Organization: orgResp}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		IsActive:            u.IsActive,
		Gender:              u.Gender,
		ShowOnboardingModal: u.ShowOnboardingModal == entity.OnboardingShow,
		DateJoined:          u.DateJoined,
	}
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	return &dto.OrganizationResponse{
		ID:                   o.ID,
		Type:                 o.Type,
		Orgcode:              o.Orgcode,
		Name:                 o.FullName(),
		CommercialName:       o.CommercialName,
		Country:              o.Country,
		DocumentType:         o.DocumentType,
		DocumentNumber:       o.DocumentNumber,
		IsActive:             o.IsActive,
		Blocked:              o.Blocked,
		BlockingReason:       o.BlockingReason,
		UnblockingReason:     o.UnblockingReason,
		TemporarilyUnblocked: o.IsTemporarilyUnblocked(),
		PaymentTerm:          o.PaymentTerm,
		PaymentTermDays:      o.PaymentTermDays,
		MinOrderAmount:       o.MinOrderAmount,
		DaysBeforeBlocking:   o.DaysBeforeBlocking,
		OdooPartnerID:        o.OdooPartnerID,
		DateCreation:         o.DateCreation,
	}
}
