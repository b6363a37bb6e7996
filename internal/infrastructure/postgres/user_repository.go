package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `
	id, username, email, first_name, last_name, password_hash, is_active, legacy_logged_org_id,
	gender, show_onboarding_modal, cellphone, city, country, token, date_token,
	last_date_view_banner, date_joined`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.IsActive, &u.LegacyLoggedOrgID,
		&u.Gender, &u.ShowOnboardingModal, &u.Cellphone, &u.City, &u.Country, &u.Token, &u.DateToken,
		&u.LastDateViewBanner, &u.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario y asigna ID y DateJoined.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (
			username, email, first_name, last_name, password_hash, is_active, legacy_logged_org_id,
			gender, show_onboarding_modal, cellphone, city, country, token, date_token, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())
		RETURNING id, date_joined`
	err := r.q.QueryRow(ctx, query,
		u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.IsActive, u.LegacyLoggedOrgID,
		u.Gender, u.ShowOnboardingModal, u.Cellphone, u.City, u.Country, u.Token, u.DateToken,
	).Scan(&u.ID, &u.DateJoined)
	if err != nil {
		return translateWriteError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) LIMIT 1`, email)
}

// GetByToken obtiene el usuario dueño del token de activación.
func (r *UserRepo) GetByToken(ctx context.Context, token string) (*entity.User, error) {
	return r.getOne(ctx, "get user by token", `SELECT `+userColumns+` FROM users WHERE token = $1`, token)
}

func (r *UserRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Update actualiza el perfil del usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET
			username = $2, email = $3, first_name = $4, last_name = $5, password_hash = $6,
			is_active = $7, legacy_logged_org_id = $8, gender = $9, show_onboarding_modal = $10,
			cellphone = $11, city = $12, country = $13, last_date_view_banner = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash,
		u.IsActive, u.LegacyLoggedOrgID, u.Gender, u.ShowOnboardingModal,
		u.Cellphone, u.City, u.Country, u.LastDateViewBanner,
	)
	if err != nil {
		return translateWriteError("update user", err)
	}
	return checkAffected(tag, "user", u.ID)
}

// UpdateLegacyLoggedOrg persiste el puntero a la organización de sesión.
func (r *UserRepo) UpdateLegacyLoggedOrg(ctx context.Context, userID int64, orgID *int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET legacy_logged_org_id = $2 WHERE id = $1`, userID, orgID)
	if err != nil {
		return fmt.Errorf("update legacy logged org: %w", err)
	}
	return checkAffected(tag, "user", userID)
}

// UpdateToken persiste token y date_token.
func (r *UserRepo) UpdateToken(ctx context.Context, u *entity.User) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET token = $2, date_token = $3 WHERE id = $1`, u.ID, u.Token, u.DateToken)
	if err != nil {
		return translateWriteError("update user token", err)
	}
	return checkAffected(tag, "user", u.ID)
}

// UpdateActive persiste is_active.
func (r *UserRepo) UpdateActive(ctx context.Context, userID int64, isActive bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET is_active = $2 WHERE id = $1`, userID, isActive)
	if err != nil {
		return fmt.Errorf("update user active: %w", err)
	}
	return checkAffected(tag, "user", userID)
}
