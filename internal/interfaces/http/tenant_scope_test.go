package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
	apphttp "github.com/jhoicas/probaar-api/internal/interfaces/http"
)

const otherOrgID = int64(99)

// stubOrgs solo implementa lo que usa el bloqueo.
type stubOrgs struct {
	repository.OrganizationRepository
	items  map[int64]*entity.Organization
	writes []int64
}

func (s *stubOrgs) GetByID(_ context.Context, id int64) (*entity.Organization, error) {
	o, ok := s.items[id]
	if !ok {
		return nil, domain.NotFound("organization", id)
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrgs) UpdateBlocking(_ context.Context, o *entity.Organization) error {
	s.writes = append(s.writes, o.ID)
	return nil
}

// stubPlaces solo implementa la búsqueda acotada por organización.
type stubPlaces struct {
	repository.PlaceRepository
	items map[int64]*entity.Place
}

func (s *stubPlaces) GetInOrg(_ context.Context, orgID, id int64) (*entity.Place, error) {
	p, ok := s.items[id]
	if !ok || p.OrgID == nil || *p.OrgID != orgID {
		return nil, domain.NotFound("place", id)
	}
	return p, nil
}

type stubMemberships struct {
	repository.MembershipRepository
	members map[int64][]int64
}

func (s *stubMemberships) IsMember(_ context.Context, orgID, userID int64) (bool, error) {
	for _, id := range s.members[orgID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func send(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", token(t, orgPtr(testOrgID), "admin"))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

func newValidator(t *testing.T) *apphttp.Validator {
	t.Helper()
	v, err := apphttp.NewValidator()
	require.NoError(t, err)
	return v
}

func orgApp(t *testing.T, orgs *stubOrgs, checker *fakeChecker) *fiber.App {
	uc := usecase.NewOrganizationUseCase(nil, orgs, nil, nil, nil, nil, zerolog.Nop())
	h := apphttp.NewOrganizationHandler(uc, newValidator(t))
	app := fiber.New()
	auth := apphttp.AuthMiddleware(testJWTSecret)
	app.Post("/api/organizations/:id/block", auth,
		apphttp.RequirePermission(entity.PermOrganizationBlock, checker, zerolog.Nop()), h.Block)
	app.Get("/api/organizations/:id/emails", auth,
		apphttp.RequirePermission(entity.PermOrganizationView, checker, zerolog.Nop()), h.Emails)
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// Organizaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestOrganizationBlock_OtraOrganizacionEsForbidden(t *testing.T) {
	orgs := &stubOrgs{items: map[int64]*entity.Organization{
		testOrgID:  {ID: testOrgID},
		otherOrgID: {ID: otherOrgID},
	}}
	checker := &fakeChecker{grants: map[int64][]string{testOrgID: {entity.PermOrganizationBlock}}}
	app := orgApp(t, orgs, checker)

	resp := send(t, app, http.MethodPost, "/api/organizations/99/block", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
	assert.Empty(t, orgs.writes, "la organización ajena no se modifica")
}

func TestOrganizationBlock_PropiaOrganizacion(t *testing.T) {
	orgs := &stubOrgs{items: map[int64]*entity.Organization{testOrgID: {ID: testOrgID}}}
	checker := &fakeChecker{grants: map[int64][]string{testOrgID: {entity.PermOrganizationBlock}}}
	app := orgApp(t, orgs, checker)

	resp := send(t, app, http.MethodPost, "/api/organizations/42/block", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.BlockingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Changed)
	assert.Equal(t, []int64{testOrgID}, orgs.writes)
}

func TestOrganizationEmails_OdooAddressNoNumericoEs400(t *testing.T) {
	checker := &fakeChecker{grants: map[int64][]string{testOrgID: {entity.PermOrganizationView}}}
	app := orgApp(t, &stubOrgs{}, checker)

	for _, q := range []string{"abc", "0", "-5", "1.5"} {
		resp := send(t, app, http.MethodGet, "/api/organizations/42/emails?odoo_address_id="+q, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "VALIDATION", errorCode(t, resp), q)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Locales
// ──────────────────────────────────────────────────────────────────────────────

func placeApp(t *testing.T, places *stubPlaces) *fiber.App {
	uc := usecase.NewPlaceUseCase(nil, places, nil, nil, nil, zerolog.Nop())
	h := apphttp.NewPlaceHandler(uc, newValidator(t))
	app := fiber.New()
	auth := apphttp.AuthMiddleware(testJWTSecret)
	app.Post("/api/places", auth, h.Create)
	app.Get("/api/places/:id", auth, h.GetByID)
	return app
}

func TestPlaceGet_DeOtraOrganizacionEs404(t *testing.T) {
	places := &stubPlaces{items: map[int64]*entity.Place{
		5: {ID: 5, OrgID: orgPtr(otherOrgID), Name: "Ajeno", Type: entity.PlaceBar},
		6: {ID: 6, OrgID: orgPtr(testOrgID), Name: "Propio", Type: entity.PlaceBar},
	}}
	app := placeApp(t, places)

	resp := send(t, app, http.MethodGet, "/api/places/5", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	own := send(t, app, http.MethodGet, "/api/places/6", "")
	defer own.Body.Close()
	assert.Equal(t, http.StatusOK, own.StatusCode)
}

func TestPlaceCreate_OrgIDAjenoEnElCuerpoEsForbidden(t *testing.T) {
	app := placeApp(t, &stubPlaces{})
	body := `{"org_id": 99, "type": "bar", "name": "Bar Centro", "address": {"country": "PE", "address_name": "Jr. Union 100"}}`

	resp := send(t, app, http.MethodPost, "/api/places", body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Restricciones
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRestrictions_UsuarioDeOtraOrganizacionEsForbidden(t *testing.T) {
	memberships := &stubMemberships{members: map[int64][]int64{otherOrgID: {8}}}
	uc := usecase.NewRestrictionUseCase(nil, nil, memberships, nil)
	h := apphttp.NewUserHandler(nil, uc)
	app := fiber.New()
	app.Get("/api/users/:id/restrictions", apphttp.AuthMiddleware(testJWTSecret), h.Restrictions)

	for _, path := range []string{"/api/users/8/restrictions", "/api/users/8/restrictions?kind=place"} {
		resp := send(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		resp.Body.Close()
	}
}
