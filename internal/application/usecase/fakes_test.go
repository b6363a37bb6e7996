package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/probaar-api/internal/application/ports"
	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

var errDB = errors.New("db caída")

var nop = zerolog.Nop()

func i64(v int64) *int64 { return &v }

// ─── organizaciones ──────────────────────────────────────────────────────────

type fakeOrgs struct {
	nextID         int64
	items          map[int64]*entity.Organization
	members        map[int64][]entity.ActiveMemberEmail
	firstActive    map[int64]*entity.Organization
	memberOf       map[int64][]int64
	orgcodeUpdates int
	blockingWrites int
}

func newFakeOrgs() *fakeOrgs {
	return &fakeOrgs{
		nextID:      100,
		items:       map[int64]*entity.Organization{},
		members:     map[int64][]entity.ActiveMemberEmail{},
		firstActive: map[int64]*entity.Organization{},
		memberOf:    map[int64][]int64{},
	}
}

func (f *fakeOrgs) add(o *entity.Organization) *entity.Organization {
	f.items[o.ID] = o
	return o
}

func (f *fakeOrgs) Create(ctx context.Context, o *entity.Organization) error {
	f.nextID++
	o.ID = f.nextID
	o.NormalizeBlocking()
	cp := *o
	f.items[o.ID] = &cp
	return nil
}

func (f *fakeOrgs) GetByID(ctx context.Context, id int64) (*entity.Organization, error) {
	o, ok := f.items[id]
	if !ok {
		return nil, domain.NotFound("organization", id)
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrgs) Update(ctx context.Context, o *entity.Organization) error {
	o.NormalizeBlocking()
	cp := *o
	f.items[o.ID] = &cp
	return nil
}

func (f *fakeOrgs) UpdateBlocking(ctx context.Context, o *entity.Organization) error {
	f.blockingWrites++
	return f.Update(ctx, o)
}

func (f *fakeOrgs) UpdateOrgcode(ctx context.Context, id int64, orgcode string) error {
	f.orgcodeUpdates++
	f.items[id].Orgcode = orgcode
	return nil
}

func (f *fakeOrgs) UpdateActive(ctx context.Context, id int64, isActive bool) error {
	f.items[id].IsActive = isActive
	return nil
}

func (f *fakeOrgs) ListByMember(ctx context.Context, userID int64, limit, offset int) ([]*entity.Organization, error) {
	out := make([]*entity.Organization, 0, len(f.memberOf[userID]))
	for _, id := range f.memberOf[userID] {
		if o, ok := f.items[id]; ok {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeOrgs) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

func (f *fakeOrgs) FirstActiveForUser(ctx context.Context, userID int64) (*entity.Organization, error) {
	return f.firstActive[userID], nil
}

func (f *fakeOrgs) ActiveMemberEmails(ctx context.Context, orgID int64) ([]entity.ActiveMemberEmail, error) {
	return f.members[orgID], nil
}

// ─── usuarios ────────────────────────────────────────────────────────────────

type fakeUsers struct {
	nextID        int64
	items         map[int64]*entity.User
	legacyUpdates int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{items: map[int64]*entity.User{}}
}

func (f *fakeUsers) add(u *entity.User) *entity.User {
	f.items[u.ID] = u
	return u
}

func (f *fakeUsers) Create(ctx context.Context, u *entity.User) error {
	for _, existing := range f.items {
		if existing.Email == u.Email {
			return &domain.ConflictError{Constraint: "users_email_key"}
		}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.items[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, ok := f.items[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) GetByToken(ctx context.Context, token string) (*entity.User, error) {
	for _, u := range f.items {
		if u.Token != nil && *u.Token == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) Update(ctx context.Context, u *entity.User) error {
	cp := *u
	f.items[u.ID] = &cp
	return nil
}

func (f *fakeUsers) UpdateLegacyLoggedOrg(ctx context.Context, userID int64, orgID *int64) error {
	f.legacyUpdates++
	f.items[userID].LegacyLoggedOrgID = orgID
	return nil
}

func (f *fakeUsers) UpdateToken(ctx context.Context, u *entity.User) error {
	f.items[u.ID].Token = u.Token
	f.items[u.ID].DateToken = u.DateToken
	return nil
}

func (f *fakeUsers) UpdateActive(ctx context.Context, userID int64, isActive bool) error {
	f.items[userID].IsActive = isActive
	return nil
}

// ─── membresías ──────────────────────────────────────────────────────────────

type memberKey struct{ org, user int64 }

type fakeMemberships struct {
	items map[memberKey]*entity.Membership
}

func newFakeMemberships() *fakeMemberships {
	return &fakeMemberships{items: map[memberKey]*entity.Membership{}}
}

func (f *fakeMemberships) Create(ctx context.Context, m *entity.Membership) error {
	k := memberKey{m.OrganizationID, m.UserID}
	if _, ok := f.items[k]; ok {
		return &domain.ConflictError{Constraint: "organization_memberships_organization_id_user_id_key"}
	}
	m.ID = int64(len(f.items) + 1)
	f.items[k] = m
	return nil
}

func (f *fakeMemberships) IsMember(ctx context.Context, orgID, userID int64) (bool, error) {
	_, ok := f.items[memberKey{orgID, userID}]
	return ok, nil
}

func (f *fakeMemberships) Get(ctx context.Context, orgID, userID int64) (*entity.Membership, error) {
	m, ok := f.items[memberKey{orgID, userID}]
	if !ok {
		return nil, domain.NotFound("membership", orgID)
	}
	return m, nil
}

func (f *fakeMemberships) ListByUser(ctx context.Context, userID int64) ([]*entity.Membership, error) {
	var out []*entity.Membership
	for k, m := range f.items {
		if k.user == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberships) Delete(ctx context.Context, orgID, userID int64) error {
	delete(f.items, memberKey{orgID, userID})
	return nil
}

// ─── locales, periodos y direcciones ─────────────────────────────────────────

type fakePlaces struct {
	nextID    int64
	items     map[int64]*entity.Place
	odooByOrg map[int64][]int64
	existsErr error
}

func newFakePlaces() *fakePlaces {
	return &fakePlaces{items: map[int64]*entity.Place{}, odooByOrg: map[int64][]int64{}}
}

func (f *fakePlaces) Create(ctx context.Context, p *entity.Place) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakePlaces) GetByID(ctx context.Context, id int64) (*entity.Place, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, domain.NotFound("place", id)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlaces) GetInOrg(ctx context.Context, orgID, id int64) (*entity.Place, error) {
	p, ok := f.items[id]
	if !ok || p.OrgID == nil || *p.OrgID != orgID {
		return nil, domain.NotFound("place", id)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlaces) Update(ctx context.Context, p *entity.Place) error {
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakePlaces) Delete(ctx context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.NotFound("place", id)
	}
	delete(f.items, id)
	return nil
}

func (f *fakePlaces) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

func (f *fakePlaces) ListByOrg(ctx context.Context, orgID int64) ([]*entity.Place, error) {
	var out []*entity.Place
	for _, p := range f.items {
		if p.OrgID != nil && *p.OrgID == orgID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlaces) ListByIDs(ctx context.Context, ids []int64) ([]*entity.Place, error) {
	var out []*entity.Place
	for _, id := range ids {
		if p, ok := f.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlaces) ListDispatchByOrg(ctx context.Context, orgID int64) ([]*entity.Place, error) {
	var out []*entity.Place
	for _, p := range f.items {
		if p.OrgID != nil && *p.OrgID == orgID && p.IsActive && p.DispatchAddress {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlaces) FindDispatchByAddress(ctx context.Context, orgID, addressID int64) (*entity.Place, error) {
	for _, p := range f.items {
		if p.OrgID != nil && *p.OrgID == orgID && p.IsActive && p.DispatchAddress && p.AddressID == addressID {
			return p, nil
		}
	}
	return nil, domain.NotFound("place", addressID)
}

func (f *fakePlaces) ExistsActiveWithAddress(ctx context.Context, orgID, addressID int64) (bool, error) {
	for _, p := range f.items {
		if p.OrgID != nil && *p.OrgID == orgID && p.IsActive && p.AddressID == addressID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlaces) ExistsByOrgAndOdooAddress(ctx context.Context, orgID, odooAddressID int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, id := range f.odooByOrg[orgID] {
		if id == odooAddressID {
			return true, nil
		}
	}
	return false, nil
}

type fakePeriods struct {
	items []entity.Period
}

func (f *fakePeriods) Create(ctx context.Context, p *entity.Period) error {
	p.ID = int64(len(f.items) + 1)
	f.items = append(f.items, *p)
	return nil
}

func (f *fakePeriods) ListByPlace(ctx context.Context, placeID int64) ([]entity.Period, error) {
	var out []entity.Period
	for _, p := range f.items {
		if p.PlaceID == placeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePeriods) Delete(ctx context.Context, placeID, periodID int64) error {
	for i, p := range f.items {
		if p.PlaceID == placeID && p.ID == periodID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.NotFound("period", periodID)
}

type fakeAddresses struct {
	nextID    int64
	items     map[int64]*entity.Address
	deleteErr error
}

func newFakeAddresses() *fakeAddresses {
	return &fakeAddresses{items: map[int64]*entity.Address{}}
}

func (f *fakeAddresses) Create(ctx context.Context, a *entity.Address) error {
	if err := a.PrepareForSave(); err != nil {
		return err
	}
	f.nextID++
	a.ID = f.nextID
	f.items[a.ID] = a
	return nil
}

func (f *fakeAddresses) GetByID(ctx context.Context, id int64) (*entity.Address, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, domain.NotFound("address", id)
	}
	return a, nil
}

func (f *fakeAddresses) GetByOdooID(ctx context.Context, odooID int64) (*entity.Address, error) {
	for _, a := range f.items {
		if a.OdooID != nil && *a.OdooID == odooID {
			return a, nil
		}
	}
	return nil, domain.NotFound("address", odooID)
}

func (f *fakeAddresses) Update(ctx context.Context, a *entity.Address) error {
	if err := a.PrepareForSave(); err != nil {
		return err
	}
	f.items[a.ID] = a
	return nil
}

func (f *fakeAddresses) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.items, id)
	return nil
}

func (f *fakeAddresses) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

// ─── restricciones y roles ───────────────────────────────────────────────────

type fakeRestrictions struct {
	items     []*entity.Restriction
	byOrg     map[int64]map[int64][]*int64
	byOrgErr  error
	objectIDs map[int64][]int64
}

func newFakeRestrictions() *fakeRestrictions {
	return &fakeRestrictions{byOrg: map[int64]map[int64][]*int64{}, objectIDs: map[int64][]int64{}}
}

func (f *fakeRestrictions) Create(ctx context.Context, r *entity.Restriction) error {
	for _, x := range f.items {
		if x.UserID == r.UserID && x.Kind == r.Kind && x.ObjectID == r.ObjectID {
			return &domain.ConflictError{Constraint: "user_restrictions_user_id_kind_object_id_key"}
		}
	}
	r.ID = int64(len(f.items) + 1)
	f.items = append(f.items, r)
	return nil
}

func (f *fakeRestrictions) GetByID(ctx context.Context, id int64) (*entity.Restriction, error) {
	for _, r := range f.items {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.NotFound("restriction", id)
}

func (f *fakeRestrictions) Delete(ctx context.Context, id int64) error {
	for i, r := range f.items {
		if r.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.NotFound("restriction", id)
}

func (f *fakeRestrictions) ListByUser(ctx context.Context, userID int64) ([]*entity.Restriction, error) {
	var out []*entity.Restriction
	for _, r := range f.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRestrictions) ObjectIDs(ctx context.Context, userID int64, kind entity.RestrictableKind) ([]int64, error) {
	if kind == entity.KindPlace {
		return f.objectIDs[userID], nil
	}
	return nil, nil
}

func (f *fakeRestrictions) PlaceOdooAddressesByOrg(ctx context.Context, orgID int64) (map[int64][]*int64, error) {
	if f.byOrgErr != nil {
		return nil, f.byOrgErr
	}
	return f.byOrg[orgID], nil
}

type fakeRoles struct {
	items map[int64]*entity.AppRole
}

func (f *fakeRoles) CreatePermission(ctx context.Context, p *entity.AppRolePermission) error { return nil }
func (f *fakeRoles) CreateRole(ctx context.Context, r *entity.AppRole) error { return nil }
func (f *fakeRoles) GrantPermission(ctx context.Context, roleID, permissionID int64) error { return nil }

func (f *fakeRoles) GetByID(ctx context.Context, id int64) (*entity.AppRole, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, domain.NotFound("app_role", id)
	}
	return r, nil
}

func (f *fakeRoles) List(ctx context.Context) ([]*entity.AppRole, error) {
	var out []*entity.AppRole
	for _, r := range f.items {
		out = append(out, r)
	}
	return out, nil
}

// ─── puertos de aplicación ───────────────────────────────────────────────────

// fakeTx ejecuta el callback sobre los mismos fakes, sin rollback.
type fakeTx struct {
	repos ports.Repos
	calls int
}

func (f *fakeTx) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	f.calls++
	return fn(f.repos)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []ports.Email
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg ports.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) recipients() []string {
	var out []string
	for _, m := range f.sent {
		out = append(out, m.To...)
	}
	return out
}

// syncTasks ejecuta las tareas en el acto.
type syncTasks struct {
	names     []string
	errs      []error
	submitErr error
}

func (s *syncTasks) Submit(name string, task func(ctx context.Context) error) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	s.names = append(s.names, name)
	s.errs = append(s.errs, task(context.Background()))
	return nil
}

type fakeSetupHook struct {
	calls []int64
	err   error
}

func (f *fakeSetupHook) SetupPlace(ctx context.Context, p *entity.Place) error {
	f.calls = append(f.calls, p.ID)
	return f.err
}
