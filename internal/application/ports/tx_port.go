package ports

import (
	"context"

	"github.com/jhoicas/probaar-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Organizations repository.OrganizationRepository
	Users         repository.UserRepository
	Memberships   repository.MembershipRepository
	Places        repository.PlaceRepository
	Periods       repository.PeriodRepository
	Addresses     repository.AddressRepository
	Restrictions  repository.RestrictionRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
