package usecase

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

// ExistsFunc verifica la existencia de un objeto restringible.
type ExistsFunc func(ctx context.Context, id int64) (bool, error)

// RestrictableRegistry resuelve, por tipo, cómo verificar que el objeto referenciado existe.
type RestrictableRegistry map[entity.RestrictableKind]ExistsFunc

// NewRestrictableRegistry registra los tipos restringibles conocidos.
func NewRestrictableRegistry(
	places repository.PlaceRepository,
	orgs repository.OrganizationRepository,
	addresses repository.AddressRepository,
	districts repository.DistrictRepository,
) RestrictableRegistry {
	return RestrictableRegistry{
		entity.KindPlace:        places.Exists,
		entity.KindOrganization: orgs.Exists,
		entity.KindAddress:      addresses.Exists,
		entity.KindDistrict:     districts.Exists,
	}
}

// RestrictionUseCase alta y consulta de restricciones de acceso.
// Solo opera sobre usuarios miembros de la organización de la sesión.
type RestrictionUseCase struct {
	restrictions repository.RestrictionRepository
	users        repository.UserRepository
	memberships  repository.MembershipRepository
	registry     RestrictableRegistry
}

// NewRestrictionUseCase construye el caso de uso.
func NewRestrictionUseCase(
	restrictions repository.RestrictionRepository,
	users repository.UserRepository,
	memberships repository.MembershipRepository,
	registry RestrictableRegistry,
) *RestrictionUseCase {
	return &RestrictionUseCase{restrictions: restrictions, users: users, memberships: memberships, registry: registry}
}

// RequireMember devuelve domain.ErrForbidden si el usuario no pertenece a la organización.
func (uc *RestrictionUseCase) RequireMember(ctx context.Context, orgID, userID int64) error {
	ok, err := uc.memberships.IsMember(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

// Restrict niega al usuario el acceso al objeto.
// domain.ErrNotFound si el objeto no existe; *domain.ConflictError si la restricción ya existe.
func (uc *RestrictionUseCase) Restrict(ctx context.Context, orgID int64, in dto.CreateRestrictionRequest) (*dto.RestrictionResponse, error) {
	kind := entity.RestrictableKind(in.Kind)
	exists, ok := uc.registry[kind]
	if !ok {
		return nil, validationField("kind", "tipo no restringible")
	}
	if _, err := uc.users.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	if err := uc.RequireMember(ctx, orgID, in.UserID); err != nil {
		return nil, err
	}
	found, err := exists(ctx, in.ObjectID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound(string(kind), in.ObjectID)
	}
	r := &entity.Restriction{UserID: in.UserID, Kind: kind, ObjectID: in.ObjectID}
	if err := uc.restrictions.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRestrictionResponse(r), nil
}

// ListByUser restricciones de un miembro de la organización.
func (uc *RestrictionUseCase) ListByUser(ctx context.Context, orgID, userID int64) ([]dto.RestrictionResponse, error) {
	if err := uc.RequireMember(ctx, orgID, userID); err != nil {
		return nil, err
	}
	list, err := uc.restrictions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RestrictionResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRestrictionResponse(r))
	}
	return out, nil
}

// Delete elimina una restricción de un miembro de la organización.
func (uc *RestrictionUseCase) Delete(ctx context.Context, orgID, id int64) error {
	r, err := uc.restrictions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.RequireMember(ctx, orgID, r.UserID); err != nil {
		return err
	}
	return uc.restrictions.Delete(ctx, id)
}

func toRestrictionResponse(r *entity.Restriction) *dto.RestrictionResponse {
	return &dto.RestrictionResponse{ID: r.ID, UserID: r.UserID, Kind: string(r.Kind), ObjectID: r.ObjectID}
}
