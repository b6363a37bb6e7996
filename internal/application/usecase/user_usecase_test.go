package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/probaar-api/internal/application/usecase"
	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

const activationTTL = 72 * time.Hour

type userFixture struct {
	uc           *usecase.UserUseCase
	users        *fakeUsers
	orgs         *fakeOrgs
	memberships  *fakeMemberships
	roles        *fakeRoles
	restrictions *fakeRestrictions
	places       *fakePlaces
	mailer       *fakeMailer
	tasks        *syncTasks
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:        newFakeUsers(),
		orgs:         newFakeOrgs(),
		memberships:  newFakeMemberships(),
		roles:        &fakeRoles{items: map[int64]*entity.AppRole{}},
		restrictions: newFakeRestrictions(),
		places:       newFakePlaces(),
		mailer:       &fakeMailer{},
		tasks:        &syncTasks{},
	}
	f.uc = usecase.NewUserUseCase(f.users, f.orgs, f.memberships, f.roles, f.restrictions, f.places,
		f.mailer, f.tasks, "https://app.example.com", activationTTL, nop)
	return f
}

func (f *userFixture) member(orgID, userID int64) {
	_ = f.memberships.Create(context.Background(), &entity.Membership{OrganizationID: orgID, UserID: userID})
}

// ──────────────────────────────────────────────────────────────────────────────
// Organización de sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestLoggedOrganization_Claim(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1})
	f.orgs.add(&entity.Organization{ID: 5})
	f.member(5, 1)

	org, err := f.uc.LoggedOrganization(context.Background(), u, i64(5))

	require.NoError(t, err)
	assert.Equal(t, int64(5), org.ID)
	assert.Zero(t, f.users.legacyUpdates, "el claim no toca el puntero legado")
}

func TestLoggedOrganization_ClaimInexistente(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1})

	_, err := f.uc.LoggedOrganization(context.Background(), u, i64(404))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoggedOrganization_ClaimSinMembresiaUsaFallback(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1})
	f.orgs.add(&entity.Organization{ID: 5})
	first := f.orgs.add(&entity.Organization{ID: 6})
	f.orgs.firstActive[1] = first
	f.member(6, 1)

	org, err := f.uc.LoggedOrganization(context.Background(), u, i64(5))

	require.NoError(t, err)
	assert.Equal(t, int64(6), org.ID)
}

func TestLoggedOrganization_PunteroLegado(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1, LegacyLoggedOrgID: i64(5)})
	f.orgs.add(&entity.Organization{ID: 5})
	f.member(5, 1)

	org, err := f.uc.LoggedOrganization(context.Background(), u, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(5), org.ID)
	assert.Zero(t, f.users.legacyUpdates)
}

func TestLoggedOrganization_PunteroLegadoSinMembresiaSeCorrige(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1, LegacyLoggedOrgID: i64(5)})
	f.orgs.add(&entity.Organization{ID: 5})
	f.orgs.firstActive[1] = f.orgs.add(&entity.Organization{ID: 8})
	f.member(8, 1)

	org, err := f.uc.LoggedOrganization(context.Background(), u, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(8), org.ID)
	assert.Equal(t, 1, f.users.legacyUpdates)
	assert.Equal(t, int64(8), *f.users.items[1].LegacyLoggedOrgID, "se persiste el puntero corregido")
	assert.Equal(t, int64(8), *u.LegacyLoggedOrgID)
}

func TestLoggedOrganization_PunteroLegadoBorrado(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1, LegacyLoggedOrgID: i64(5)})
	f.orgs.firstActive[1] = f.orgs.add(&entity.Organization{ID: 8})
	f.member(8, 1)

	org, err := f.uc.LoggedOrganization(context.Background(), u, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(8), org.ID)
}

func TestLoggedOrganization_SinPunteroPersisteLaPrimera(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1})
	f.orgs.firstActive[1] = f.orgs.add(&entity.Organization{ID: 3})
	f.member(3, 1)

	org, err := f.uc.LoggedOrganization(context.Background(), u, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), org.ID)
	assert.Equal(t, int64(3), *f.users.items[1].LegacyLoggedOrgID)

	_, err = f.uc.LoggedOrganization(context.Background(), u, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.users.legacyUpdates, "la segunda resolución usa el puntero")
}

func TestLoggedOrganization_SinOrganizaciones(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1})

	org, err := f.uc.LoggedOrganization(context.Background(), u, nil)

	require.NoError(t, err)
	assert.Nil(t, org)
	assert.Zero(t, f.users.legacyUpdates)

	ok, err := f.uc.HasAvailableOrganizations(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAppRoleForLoggedOrg(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1, LegacyLoggedOrgID: i64(5)})
	f.orgs.add(&entity.Organization{ID: 5})
	f.roles.items[2] = &entity.AppRole{ID: 2, Name: "admin"}
	_ = f.memberships.Create(context.Background(), &entity.Membership{OrganizationID: 5, UserID: 1, AppRoleID: i64(2)})

	role, err := f.uc.AppRoleForLoggedOrg(context.Background(), u, nil)
	require.NoError(t, err)
	assert.Equal(t, "admin", role.Name)

	me, err := f.uc.Me(context.Background(), 1, nil)
	require.NoError(t, err)
	require.NotNil(t, me.LoggedOrganization)
	assert.Equal(t, int64(5), me.LoggedOrganization.ID)
	assert.Equal(t, "admin", me.Role.Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restricciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRestrictedAddresses(t *testing.T) {
	f := newUserFixture()
	f.restrictions.objectIDs[1] = []int64{20, 21}
	f.places.items[20] = &entity.Place{ID: 20, AddressID: 200, Address: &entity.Address{ID: 200, OdooID: i64(900)}}
	f.places.items[21] = &entity.Place{ID: 21, AddressID: 201, Address: &entity.Address{ID: 201}}

	ids, err := f.uc.RestrictedAddressIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{200, 201}, ids)

	odoo, err := f.uc.RestrictedOdooAddressIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{900}, odoo)

	_, err = f.uc.RestrictedObjectIDs(context.Background(), 1, entity.RestrictableKind("product"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Activación
// ──────────────────────────────────────────────────────────────────────────────

func TestSendActivationEmail(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1, Username: "ana", Email: "ana@example.com"})

	msg, err := f.uc.SendActivationEmail(context.Background(), u)

	require.NoError(t, err)
	assert.True(t, msg.OK())
	assert.Contains(t, msg.Text, "ana@example.com")
	require.Len(t, f.mailer.sent, 1)
	require.NotNil(t, u.Token)
	assert.Contains(t, f.mailer.sent[0].HTML, "https://app.example.com/activate?token="+*u.Token)
	assert.Equal(t, u.Token, f.users.items[1].Token)
}

func TestSendActivationEmail_UsuarioActivo(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1, IsActive: true})

	msg, err := f.uc.SendActivationEmail(context.Background(), u)

	require.NoError(t, err)
	assert.Equal(t, entity.MsgUserActiveAlready, msg.Text)
	assert.Empty(t, f.mailer.sent)
}

func TestSendActivationEmail_FalloDeEnvio(t *testing.T) {
	f := newUserFixture()
	f.mailer.err = errors.New("smtp caído")
	u := f.users.add(&entity.User{ID: 1, Email: "ana@example.com", Token: strPtr("tok")})

	msg, err := f.uc.SendActivationEmail(context.Background(), u)

	require.NoError(t, err)
	assert.Equal(t, entity.LevelError, msg.Level)
	assert.Equal(t, entity.MsgActivationSendFailed, msg.Text)

	require.NoError(t, f.uc.QueueActivationEmail(u))
	require.Len(t, f.tasks.errs, 1)
	assert.EqualError(t, f.tasks.errs[0], entity.MsgActivationSendFailed)
}

func TestActivate(t *testing.T) {
	f := newUserFixture()
	issued := time.Now().Add(-time.Hour)
	f.users.add(&entity.User{ID: 1, Token: strPtr("tok-1"), DateToken: &issued})

	msg, err := f.uc.Activate(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, entity.MsgAccountActivated, msg.Text)
	assert.True(t, f.users.items[1].IsActive)
	assert.Nil(t, f.users.items[1].Token, "el token se invalida")

	_, err = f.uc.Activate(context.Background(), "tok-1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestActivate_TokenVencido(t *testing.T) {
	f := newUserFixture()
	issued := time.Now().Add(-activationTTL - time.Minute)
	f.users.add(&entity.User{ID: 1, Token: strPtr("tok-1"), DateToken: &issued})

	msg, err := f.uc.Activate(context.Background(), "tok-1")

	require.NoError(t, err)
	assert.Equal(t, entity.LevelError, msg.Level)
	assert.Equal(t, entity.MsgTokenExpired, msg.Text)
	assert.False(t, f.users.items[1].IsActive)
}

func TestActivate_TokenSinFechaSeConsideraVencido(t *testing.T) {
	f := newUserFixture()
	f.users.add(&entity.User{ID: 1, Token: strPtr("tok-1")})

	msg, err := f.uc.Activate(context.Background(), "tok-1")

	require.NoError(t, err)
	assert.Equal(t, entity.MsgTokenExpired, msg.Text)
	assert.False(t, f.users.items[1].IsActive)
}

func TestSendActivationEmail_TokenVencidoSeRenueva(t *testing.T) {
	f := newUserFixture()
	issued := time.Now().Add(-activationTTL - time.Minute)
	u := f.users.add(&entity.User{ID: 1, Email: "ana@example.com", Token: strPtr("viejo"), DateToken: &issued})

	msg, err := f.uc.SendActivationEmail(context.Background(), u)

	require.NoError(t, err)
	assert.True(t, msg.OK())
	require.NotNil(t, f.users.items[1].Token)
	assert.NotEqual(t, "viejo", *f.users.items[1].Token)
	assert.False(t, f.users.items[1].TokenExpired(time.Now(), activationTTL))
}

func TestSetToken_SinForceNoReemplaza(t *testing.T) {
	f := newUserFixture()
	u := f.users.add(&entity.User{ID: 1, Token: strPtr("old")})

	msg, err := f.uc.SetToken(context.Background(), u, false)
	require.NoError(t, err)
	assert.Equal(t, entity.MsgTokenAlreadySet, msg.Text)

	msg, err = f.uc.SetToken(context.Background(), u, true)
	require.NoError(t, err)
	assert.True(t, msg.OK())
	assert.NotEqual(t, "old", *f.users.items[1].Token)
}
