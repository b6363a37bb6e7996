package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

const organizationColumns = `
	o.id, o.is_active, o.type, o.orgcode, o.commercial_name, o.legal_name, o.first_name, o.last_name,
	o.country, o.document_type, o.document_number, o.blocked, o.blocking_reason, o.unblocking_reason,
	o.payment_term, o.payment_term_days, o.min_order_amount, o.days_before_blocking,
	o.fiscal_address_id, o.default_shipping_address_id, o.odoo_partner_id,
	o.cluster_odoo_id, o.cluster_odoo_name, o.date_creation`

// OrganizationRepo implementación de OrganizationRepository sobre PostgreSQL (usable con pool o tx).
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

func scanOrganization(row pgx.Row) (*entity.Organization, error) {
	var o entity.Organization
	err := row.Scan(
		&o.ID, &o.IsActive, &o.Type, &o.Orgcode, &o.CommercialName, &o.LegalName, &o.FirstName, &o.LastName,
		&o.Country, &o.DocumentType, &o.DocumentNumber, &o.Blocked, &o.BlockingReason, &o.UnblockingReason,
		&o.PaymentTerm, &o.PaymentTermDays, &o.MinOrderAmount, &o.DaysBeforeBlocking,
		&o.FiscalAddressID, &o.DefaultShippingAddressID, &o.OdooPartnerID,
		&o.ClusterOdooID, &o.ClusterOdooName, &o.DateCreation,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste una nueva organización y asigna ID y DateCreation.
func (r *OrganizationRepo) Create(ctx context.Context, o *entity.Organization) error {
	o.NormalizeBlocking()
	query := `
		INSERT INTO organizations (
			is_active, type, orgcode, commercial_name, legal_name, first_name, last_name,
			country, document_type, document_number, blocked, blocking_reason, unblocking_reason,
			payment_term, payment_term_days, min_order_amount, days_before_blocking,
			fiscal_address_id, default_shipping_address_id, odoo_partner_id,
			cluster_odoo_id, cluster_odoo_name, date_creation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, now())
		RETURNING id, date_creation`
	err := r.q.QueryRow(ctx, query,
		o.IsActive, o.Type, o.Orgcode, o.CommercialName, o.LegalName, o.FirstName, o.LastName,
		o.Country, o.DocumentType, o.DocumentNumber, o.Blocked, o.BlockingReason, o.UnblockingReason,
		o.PaymentTerm, o.PaymentTermDays, o.MinOrderAmount, o.DaysBeforeBlocking,
		o.FiscalAddressID, o.DefaultShippingAddressID, o.OdooPartnerID,
		o.ClusterOdooID, o.ClusterOdooName,
	).Scan(&o.ID, &o.DateCreation)
	if err != nil {
		return translateWriteError("insert organization", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id int64) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o WHERE o.id = $1`
	o, err := scanOrganization(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("organization", id)
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return o, nil
}

// Update actualiza todos los campos editables de la organización.
func (r *OrganizationRepo) Update(ctx context.Context, o *entity.Organization) error {
	o.NormalizeBlocking()
	query := `
		UPDATE organizations SET
			is_active = $2, type = $3, orgcode = $4, commercial_name = $5, legal_name = $6,
			first_name = $7, last_name = $8, country = $9, document_type = $10, document_number = $11,
			blocked = $12, blocking_reason = $13, unblocking_reason = $14, payment_term = $15,
			payment_term_days = $16, min_order_amount = $17, days_before_blocking = $18,
			fiscal_address_id = $19, default_shipping_address_id = $20, odoo_partner_id = $21,
			cluster_odoo_id = $22, cluster_odoo_name = $23
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.IsActive, o.Type, o.Orgcode, o.CommercialName, o.LegalName,
		o.FirstName, o.LastName, o.Country, o.DocumentType, o.DocumentNumber,
		o.Blocked, o.BlockingReason, o.UnblockingReason, o.PaymentTerm,
		o.PaymentTermDays, o.MinOrderAmount, o.DaysBeforeBlocking,
		o.FiscalAddressID, o.DefaultShippingAddressID, o.OdooPartnerID,
		o.ClusterOdooID, o.ClusterOdooName,
	)
	if err != nil {
		return translateWriteError("update organization", err)
	}
	return checkAffected(tag, "organization", o.ID)
}

// UpdateBlocking persiste el estado de bloqueo (blocked, blocking_reason, unblocking_reason).
func (r *OrganizationRepo) UpdateBlocking(ctx context.Context, o *entity.Organization) error {
	o.NormalizeBlocking()
	tag, err := r.q.Exec(ctx, `
		UPDATE organizations SET blocked = $2, blocking_reason = $3, unblocking_reason = $4
		WHERE id = $1`,
		o.ID, o.Blocked, o.BlockingReason, o.UnblockingReason,
	)
	if err != nil {
		return fmt.Errorf("update organization blocking: %w", err)
	}
	return checkAffected(tag, "organization", o.ID)
}

// UpdateOrgcode segunda escritura del orgcode autogenerado.
func (r *OrganizationRepo) UpdateOrgcode(ctx context.Context, id int64, orgcode string) error {
	tag, err := r.q.Exec(ctx, `UPDATE organizations SET orgcode = $2 WHERE id = $1`, id, orgcode)
	if err != nil {
		return translateWriteError("update orgcode", err)
	}
	return checkAffected(tag, "organization", id)
}

// UpdateActive persiste is_active.
func (r *OrganizationRepo) UpdateActive(ctx context.Context, id int64, isActive bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE organizations SET is_active = $2 WHERE id = $1`, id, isActive)
	if err != nil {
		return fmt.Errorf("update organization active: %w", err)
	}
	return checkAffected(tag, "organization", id)
}

// List devuelve organizaciones con paginación, más recientes primero.
func (r *OrganizationRepo) ListByMember(ctx context.Context, userID int64, limit, offset int) ([]*entity.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		  FROM organizations o
		  JOIN organization_memberships m ON m.organization_id = o.id
		 WHERE m.user_id = $1
		 ORDER BY o.date_creation DESC, o.id DESC
		 LIMIT $2 OFFSET $3`
	return r.list(ctx, "list organizations by member", query, userID, limit, offset)
}

// Exists informa si existe la organización.
func (r *OrganizationRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, "organization exists", `SELECT EXISTS (SELECT 1 FROM organizations WHERE id = $1)`, id)
}

// FirstActiveForUser primera organización activa del usuario; nil si no pertenece a ninguna.
func (r *OrganizationRepo) FirstActiveForUser(ctx context.Context, userID int64) (*entity.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		  FROM organizations o
		  JOIN organization_memberships m ON m.organization_id = o.id
		 WHERE m.user_id = $1 AND o.is_active = true
		 ORDER BY o.id
		 LIMIT 1`
	o, err := scanOrganization(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("first active organization: %w", err)
	}
	return o, nil
}

// ActiveMemberEmails emails de los usuarios activos miembros de la organización (sin filtrar vacíos).
func (r *OrganizationRepo) ActiveMemberEmails(ctx context.Context, orgID int64) ([]entity.ActiveMemberEmail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT u.id, u.email
		  FROM users u
		  JOIN organization_memberships m ON m.user_id = u.id
		 WHERE m.organization_id = $1 AND u.is_active = true
		 ORDER BY u.id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("active member emails: %w", err)
	}
	defer rows.Close()
	var list []entity.ActiveMemberEmail
	for rows.Next() {
		var e entity.ActiveMemberEmail
		if err := rows.Scan(&e.UserID, &e.Email); err != nil {
			return nil, fmt.Errorf("scan member email: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *OrganizationRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Organization, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
