package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/ports"
	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios: organización de sesión,
// restricciones de acceso y activación de cuenta.
type UserUseCase struct {
	users        repository.UserRepository
	orgs         repository.OrganizationRepository
	memberships  repository.MembershipRepository
	roles        repository.RoleRepository
	restrictions repository.RestrictionRepository
	places       repository.PlaceRepository
	mailer       ports.Mailer
	tasks        ports.TaskSubmitter
	baseURL      string
	tokenTTL     time.Duration
	log          zerolog.Logger
	now          func() time.Time
}

// NewUserUseCase construye el caso de uso con sus puertos. tokenTTL es la vigencia
// del token de activación; 0 no expira.
func NewUserUseCase(
	users repository.UserRepository,
	orgs repository.OrganizationRepository,
	memberships repository.MembershipRepository,
	roles repository.RoleRepository,
	restrictions repository.RestrictionRepository,
	places repository.PlaceRepository,
	mailer ports.Mailer,
	tasks ports.TaskSubmitter,
	baseURL string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *UserUseCase {
	return &UserUseCase{
		users:        users,
		orgs:         orgs,
		memberships:  memberships,
		roles:        roles,
		restrictions: restrictions,
		places:       places,
		mailer:       mailer,
		tasks:        tasks,
		baseURL:      baseURL,
		tokenTTL:     tokenTTL,
		log:          log,
		now:          time.Now,
	}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return uc.users.GetByID(ctx, id)
}

// LoggedOrganization resuelve la organización de sesión.
//
// Prioridad: claimOrgID (domain.ErrNotFound si no existe), puntero legado del usuario,
// primera organización activa. El resultado siempre es una organización de la que el
// usuario es miembro: si no lo es, se usa la primera activa y se persiste el puntero corregido.
// Devuelve nil si el usuario no pertenece a ninguna organización activa.
func (uc *UserUseCase) LoggedOrganization(ctx context.Context, user *entity.User, claimOrgID *int64) (*entity.Organization, error) {
	var org *entity.Organization
	switch {
	case claimOrgID != nil && *claimOrgID > 0:
		o, err := uc.orgs.GetByID(ctx, *claimOrgID)
		if err != nil {
			return nil, err
		}
		org = o
	case user.LegacyLoggedOrgID != nil:
		o, err := uc.orgs.GetByID(ctx, *user.LegacyLoggedOrgID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		org = o
	}

	if org != nil {
		member, err := uc.memberships.IsMember(ctx, org.ID, user.ID)
		if err != nil {
			return nil, err
		}
		if member {
			return org, nil
		}
		uc.log.Warn().
			Int64("user_id", user.ID).
			Int64("org_id", org.ID).
			Msg("organización de sesión sin membresía: se usa la primera disponible")
	}

	first, err := uc.orgs.FirstActiveForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.persistLegacyOrg(ctx, user, first); err != nil {
		return nil, err
	}
	return first, nil
}

func (uc *UserUseCase) persistLegacyOrg(ctx context.Context, user *entity.User, org *entity.Organization) error {
	var id *int64
	if org != nil {
		id = &org.ID
	}
	if sameID(user.LegacyLoggedOrgID, id) {
		return nil
	}
	if err := uc.users.UpdateLegacyLoggedOrg(ctx, user.ID, id); err != nil {
		return err
	}
	user.LegacyLoggedOrgID = id
	return nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// HasAvailableOrganizations informa si el usuario pertenece a alguna organización activa.
func (uc *UserUseCase) HasAvailableOrganizations(ctx context.Context, userID int64) (bool, error) {
	org, err := uc.orgs.FirstActiveForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return org != nil, nil
}

// FirstAvailableOrganization primera organización activa del usuario; nil si no tiene.
func (uc *UserUseCase) FirstAvailableOrganization(ctx context.Context, userID int64) (*entity.Organization, error) {
	return uc.orgs.FirstActiveForUser(ctx, userID)
}

// AppRoleForLoggedOrg rol del usuario en la organización de sesión; nil si no tiene rol.
func (uc *UserUseCase) AppRoleForLoggedOrg(ctx context.Context, user *entity.User, claimOrgID *int64) (*entity.AppRole, error) {
	org, err := uc.LoggedOrganization(ctx, user, claimOrgID)
	if err != nil || org == nil {
		return nil, err
	}
	return uc.roleIn(ctx, org.ID, user.ID)
}

func (uc *UserUseCase) roleIn(ctx context.Context, orgID, userID int64) (*entity.AppRole, error) {
	m, err := uc.memberships.Get(ctx, orgID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if m.AppRoleID == nil {
		return nil, nil
	}
	return uc.roles.GetByID(ctx, *m.AppRoleID)
}

// Me perfil del usuario con su organización de sesión y rol.
func (uc *UserUseCase) Me(ctx context.Context, userID int64, claimOrgID *int64) (*dto.MeResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	org, err := uc.LoggedOrganization(ctx, user, claimOrgID)
	if err != nil {
		return nil, err
	}
	out := &dto.MeResponse{User: toUserResponse(user)}
	if org != nil {
		out.LoggedOrganization = toOrganizationResponse(org)
		role, err := uc.roleIn(ctx, org.ID, user.ID)
		if err != nil {
			return nil, err
		}
		out.Role = toRoleResponse(role)
	}
	return out, nil
}

// RestrictedObjectIDs IDs de los objetos del tipo dado a los que el usuario no tiene acceso.
func (uc *UserUseCase) RestrictedObjectIDs(ctx context.Context, userID int64, kind entity.RestrictableKind) ([]int64, error) {
	if !kind.Valid() {
		return nil, validationField("kind", "tipo desconocido")
	}
	return uc.restrictions.ObjectIDs(ctx, userID, kind)
}

// RestrictedPlaceIDs locales restringidos.
func (uc *UserUseCase) RestrictedPlaceIDs(ctx context.Context, userID int64) ([]int64, error) {
	return uc.restrictions.ObjectIDs(ctx, userID, entity.KindPlace)
}

// RestrictedAddressIDs direcciones de los locales restringidos.
func (uc *UserUseCase) RestrictedAddressIDs(ctx context.Context, userID int64) ([]int64, error) {
	places, err := uc.restrictedPlaces(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(places))
	for _, p := range places {
		ids = append(ids, p.AddressID)
	}
	return ids, nil
}

// RestrictedOdooAddressIDs odoo_id de las direcciones de los locales restringidos.
// Las direcciones sin odoo_id se omiten.
func (uc *UserUseCase) RestrictedOdooAddressIDs(ctx context.Context, userID int64) ([]int64, error) {
	places, err := uc.restrictedPlaces(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(places))
	for _, p := range places {
		if p.Address != nil && p.Address.OdooID != nil {
			ids = append(ids, *p.Address.OdooID)
		}
	}
	return ids, nil
}

func (uc *UserUseCase) restrictedPlaces(ctx context.Context, userID int64) ([]*entity.Place, error) {
	ids, err := uc.RestrictedPlaceIDs(ctx, userID)
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	return uc.places.ListByIDs(ctx, ids)
}

// SetToken genera y persiste un token de activación. Sin force no reemplaza uno existente.
func (uc *UserUseCase) SetToken(ctx context.Context, user *entity.User, force bool) (entity.Message, error) {
	msg := user.SetToken(uuid.NewString(), uc.now(), force)
	if !msg.OK() {
		return msg, nil
	}
	if err := uc.users.UpdateToken(ctx, user); err != nil {
		return entity.Message{}, err
	}
	return msg, nil
}

// Activate activa la cuenta asociada al token y lo invalida.
// Un token vencido devuelve LevelError; el siguiente envío emite uno nuevo.
func (uc *UserUseCase) Activate(ctx context.Context, token string) (entity.Message, error) {
	user, err := uc.users.GetByToken(ctx, token)
	if err != nil {
		return entity.Message{}, err
	}
	if !user.IsActive && user.TokenExpired(uc.now(), uc.tokenTTL) {
		return entity.Message{Level: entity.LevelError, Text: entity.MsgTokenExpired}, nil
	}
	msg := user.Activate()
	if !msg.OK() {
		return msg, nil
	}
	if err := uc.users.UpdateActive(ctx, user.ID, true); err != nil {
		return entity.Message{}, err
	}
	user.ClearToken()
	if err := uc.users.UpdateToken(ctx, user); err != nil {
		return entity.Message{}, err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("cuenta activada")
	return msg, nil
}

// SendActivationEmail envía el enlace de activación de forma síncrona.
// Un fallo de envío se informa con LevelError y no como error.
func (uc *UserUseCase) SendActivationEmail(ctx context.Context, user *entity.User) (entity.Message, error) {
	if user.IsActive {
		return entity.Message{Level: entity.LevelError, Text: entity.MsgUserActiveAlready}, nil
	}
	if user.Token == nil || *user.Token == "" || user.TokenExpired(uc.now(), uc.tokenTTL) {
		if _, err := uc.SetToken(ctx, user, true); err != nil {
			return entity.Message{}, err
		}
	}
	email, err := activationEmail(user, uc.baseURL)
	if err != nil {
		return entity.Message{}, err
	}
	if err := uc.mailer.Send(ctx, email); err != nil {
		uc.log.Error().Err(err).Int64("user_id", user.ID).Msg("no se pudo enviar el correo de activación")
		return entity.Message{Level: entity.LevelError, Text: entity.MsgActivationSendFailed}, nil
	}
	return entity.Message{Level: entity.LevelSuccess, Text: fmt.Sprintf(entity.MsgActivationSent, user.Email)}, nil
}

// QueueActivationEmail encola el correo de activación en el pool de notificaciones.
// Se usa tras crear un usuario inactivo.
func (uc *UserUseCase) QueueActivationEmail(user *entity.User) error {
	u := *user
	return uc.tasks.Submit(fmt.Sprintf("activation user=%d", user.ID), func(ctx context.Context) error {
		msg, err := uc.SendActivationEmail(ctx, &u)
		if err != nil {
			return err
		}
		if !msg.OK() {
			return errors.New(msg.Text)
		}
		return nil
	})
}
