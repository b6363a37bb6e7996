package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/ports"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

// Mensajes del envío masivo.
const (
	MsgBroadcastQueued       = "Message queued for %d recipient(s)."
	MsgBroadcastNoRecipients = "The organization has no active members matching the filter."
	MsgBroadcastFailed       = "The message could not be queued. Try again later."
)

// OrganizationUseCase ciclo de vida de organizaciones: alta, bloqueo y comunicación con sus miembros.
type OrganizationUseCase struct {
	tx           ports.TxRunner
	orgs         repository.OrganizationRepository
	places       repository.PlaceRepository
	restrictions repository.RestrictionRepository
	mailer       ports.Mailer
	tasks        ports.TaskSubmitter
	log          zerolog.Logger
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(
	tx ports.TxRunner,
	orgs repository.OrganizationRepository,
	places repository.PlaceRepository,
	restrictions repository.RestrictionRepository,
	mailer ports.Mailer,
	tasks ports.TaskSubmitter,
	log zerolog.Logger,
) *OrganizationUseCase {
	return &OrganizationUseCase{
		tx:           tx,
		orgs:         orgs,
		places:       places,
		restrictions: restrictions,
		mailer:       mailer,
		tasks:        tasks,
		log:          log,
	}
}

// Create crea la organización y, si creatorID > 0, agrega al creador como miembro.
// Con orgcode vacío se usa el centinela y se reescribe a "organization_{id}" en la misma transacción.
func (uc *OrganizationUseCase) Create(ctx context.Context, creatorID int64, in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org := &entity.Organization{
		Activable:                entity.Activable{IsActive: true},
		Type:                     in.Type,
		Orgcode:                  in.Orgcode,
		CommercialName:           in.CommercialName,
		LegalName:                in.LegalName,
		FirstName:                in.FirstName,
		LastName:                 in.LastName,
		Country:                  strings.ToUpper(in.Country),
		DocumentType:             in.DocumentType,
		DocumentNumber:           in.DocumentNumber,
		PaymentTerm:              in.PaymentTerm,
		PaymentTermDays:          in.PaymentTermDays,
		MinOrderAmount:           in.MinOrderAmount,
		DaysBeforeBlocking:       entity.DefaultDaysBeforeBlocking,
		FiscalAddressID:          in.FiscalAddressID,
		DefaultShippingAddressID: in.DefaultShippingAddressID,
		OdooPartnerID:            in.OdooPartnerID,
	}
	if org.Orgcode == "" {
		org.Orgcode = entity.AutogenerateOrgcode
	}
	if org.Country == "" {
		org.Country = "PE"
	}
	if in.DaysBeforeBlocking != nil {
		org.DaysBeforeBlocking = *in.DaysBeforeBlocking
	}
	if err := org.Validate(); err != nil {
		return nil, err
	}

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Organizations.Create(ctx, org); err != nil {
			return err
		}
		if org.AssignAutogeneratedOrgcode() {
			if err := r.Organizations.UpdateOrgcode(ctx, org.ID, org.Orgcode); err != nil {
				return err
			}
		}
		if creatorID > 0 {
			return r.Memberships.Create(ctx, &entity.Membership{OrganizationID: org.ID, UserID: creatorID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("org_id", org.ID).Str("orgcode", org.Orgcode).Msg("organización creada")
	return toOrganizationResponse(org), nil
}

// GetByID obtiene una organización.
func (uc *OrganizationUseCase) GetByID(ctx context.Context, id int64) (*dto.OrganizationResponse, error) {
	org, err := uc.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// List lista, con paginación, las organizaciones de las que el usuario es miembro.
func (uc *OrganizationUseCase) List(ctx context.Context, userID int64, page dto.PageRequest) (*dto.OrganizationListResponse, error) {
	page.DefaultPage()
	list, err := uc.orgs.ListByMember(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrganizationResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrganizationResponse(o))
	}
	return &dto.OrganizationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Block bloquea la organización ("" = falta de pago). changed=false si ya estaba bloqueada.
func (uc *OrganizationUseCase) Block(ctx context.Context, id int64, reason string) (*dto.BlockingResponse, error) {
	return uc.transition(ctx, id, "bloqueo", func(o *entity.Organization) bool { return o.Block(reason) })
}

// Unblock desbloquea la organización ("" = pago).
// changed=false si no estaba bloqueada ni desbloqueada temporalmente.
func (uc *OrganizationUseCase) Unblock(ctx context.Context, id int64, reason string) (*dto.BlockingResponse, error) {
	return uc.transition(ctx, id, "desbloqueo", func(o *entity.Organization) bool { return o.Unblock(reason) })
}

// SetBlockingStatusByDueInvoices único disparador automático: bloquea si hay facturas vencidas, si no desbloquea.
func (uc *OrganizationUseCase) SetBlockingStatusByDueInvoices(ctx context.Context, id int64, dueInvoices int) (*dto.BlockingResponse, error) {
	if dueInvoices < 0 {
		return nil, validationField("due_invoices", "no puede ser negativo")
	}
	return uc.transition(ctx, id, "facturas vencidas", func(o *entity.Organization) bool {
		return o.SetBlockingStatusByDueInvoices(dueInvoices)
	})
}

func (uc *OrganizationUseCase) transition(ctx context.Context, id int64, action string, apply func(*entity.Organization) bool) (*dto.BlockingResponse, error) {
	org, err := uc.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	changed := apply(org)
	if changed {
		if err := uc.orgs.UpdateBlocking(ctx, org); err != nil {
			return nil, err
		}
		uc.log.Info().
			Int64("org_id", org.ID).
			Str("action", action).
			Bool("blocked", org.Blocked).
			Msg("estado de bloqueo actualizado")
	}
	return &dto.BlockingResponse{Changed: changed, Organization: *toOrganizationResponse(org)}, nil
}

// ToggleActive activa o desactiva la organización.
func (uc *OrganizationUseCase) ToggleActive(ctx context.Context, id int64) (entity.Message, error) {
	org, err := uc.orgs.GetByID(ctx, id)
	if err != nil {
		return entity.Message{}, err
	}
	msg := org.ToggleActive()
	if msg.OK() {
		if err := uc.orgs.UpdateActive(ctx, id, org.IsActive); err != nil {
			return entity.Message{}, err
		}
	}
	return msg, nil
}

// ActiveUserEmails emails no vacíos de los miembros activos.
//
// Con forOdooAddressID se excluye a los miembros que tienen restricciones de local y ninguna
// sobre un local con esa dirección. Si la dirección no pertenece a ningún local de la organización,
// o si falla la consulta de restricciones, se devuelve la lista sin filtrar.
func (uc *OrganizationUseCase) ActiveUserEmails(ctx context.Context, orgID int64, forOdooAddressID *int64) ([]string, error) {
	members, err := uc.orgs.ActiveMemberEmails(ctx, orgID)
	if err != nil {
		return nil, err
	}
	excluded := uc.excludedByAddress(ctx, orgID, forOdooAddressID)

	emails := make([]string, 0, len(members))
	for _, m := range members {
		if excluded[m.UserID] || strings.TrimSpace(m.Email) == "" {
			continue
		}
		emails = append(emails, m.Email)
	}
	return emails, nil
}

func (uc *OrganizationUseCase) excludedByAddress(ctx context.Context, orgID int64, target *int64) map[int64]bool {
	if target == nil || *target == 0 {
		return nil
	}
	log := uc.log.With().Int64("org_id", orgID).Int64("odoo_address_id", *target).Logger()

	found, err := uc.places.ExistsByOrgAndOdooAddress(ctx, orgID, *target)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo validar la dirección de despacho: se ignoran los filtros")
		return nil
	}
	if !found {
		log.Warn().Msg("dirección Odoo inválida para la organización: se ignoran los filtros")
		return nil
	}

	byUser, err := uc.restrictions.PlaceOdooAddressesByOrg(ctx, orgID)
	if err != nil {
		log.Error().Err(err).Msg("no se pudieron obtener las restricciones: se ignoran los filtros")
		return nil
	}
	excluded := make(map[int64]bool)
	for userID, odooIDs := range byUser {
		if !slices.ContainsFunc(odooIDs, func(id *int64) bool { return id != nil && *id == *target }) {
			excluded[userID] = true
		}
	}
	return excluded
}

// Broadcast encola un correo por destinatario en el pool de notificaciones.
func (uc *OrganizationUseCase) Broadcast(ctx context.Context, orgID int64, in dto.BroadcastRequest) (entity.Message, error) {
	org, err := uc.orgs.GetByID(ctx, orgID)
	if err != nil {
		return entity.Message{}, err
	}
	emails, err := uc.ActiveUserEmails(ctx, orgID, in.OdooAddressID)
	if err != nil {
		return entity.Message{}, err
	}
	if len(emails) == 0 {
		return entity.Message{Level: entity.LevelWarning, Text: MsgBroadcastNoRecipients}, nil
	}

	msgs := make([]ports.Email, 0, len(emails))
	for _, to := range emails {
		m, err := broadcastEmail(org, to, in.Subject, in.Body)
		if err != nil {
			return entity.Message{}, err
		}
		msgs = append(msgs, m)
	}

	err = uc.tasks.Submit(fmt.Sprintf("broadcast org=%d", orgID), func(ctx context.Context) error {
		var errs []error
		for _, m := range msgs {
			if err := uc.mailer.Send(ctx, m); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("org_id", orgID).Msg("no se pudo encolar el envío masivo")
		return entity.Message{Level: entity.LevelError, Text: MsgBroadcastFailed}, nil
	}
	return entity.Message{Level: entity.LevelSuccess, Text: fmt.Sprintf(MsgBroadcastQueued, len(msgs))}, nil
}

// ShippingAddresses direcciones de los locales activos de despacho.
func (uc *OrganizationUseCase) ShippingAddresses(ctx context.Context, orgID int64) ([]dto.AddressResponse, error) {
	places, err := uc.places.ListDispatchByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AddressResponse, 0, len(places))
	for _, p := range places {
		if p.Address != nil {
			out = append(out, *toAddressResponse(p.Address))
		}
	}
	return out, nil
}

// ShippingAddressFromAddressID dirección de despacho con ese ID.
// Devuelve domain.ErrNotFound si ningún local activo de despacho de la organización la usa.
func (uc *OrganizationUseCase) ShippingAddressFromAddressID(ctx context.Context, orgID, addressID int64) (*entity.Address, error) {
	place, err := uc.places.FindDispatchByAddress(ctx, orgID, addressID)
	if err != nil {
		return nil, err
	}
	return place.Address, nil
}

// HasAddress informa si la organización tiene un local activo con la dirección.
func (uc *OrganizationUseCase) HasAddress(ctx context.Context, orgID, addressID int64) (bool, error) {
	return uc.places.ExistsActiveWithAddress(ctx, orgID, addressID)
}
