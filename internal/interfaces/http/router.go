package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/probaar-api/internal/application/auth"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	OrganizationUC *usecase.OrganizationUseCase
	PlaceUC        *usecase.PlaceUseCase
	DistrictUC     *usecase.DistrictUseCase
	RestrictionUC  *usecase.RestrictionUseCase
	RoleUC         *usecase.RoleUseCase
	CronJobUC      *usecase.CronJobUseCase
	UnitUC         *usecase.UnitUseCase
	Validator      *Validator
	JWTSecret      string
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	perm := func(p string) fiber.Handler { return RequirePermission(p, deps.RoleUC, deps.Log) }

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, deps.Validator)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/activate", authHandler.Activate)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/switch-org", authHandler.SwitchOrganization)

	userHandler := NewUserHandler(deps.UserUC, deps.RestrictionUC)
	protected.Get("/me", userHandler.Me)
	protected.Get("/users/:id/restrictions", perm(entity.PermRestrictionChange), userHandler.Restrictions)

	// Organizations
	orgs := protected.Group("/organizations")
	orgHandler := NewOrganizationHandler(deps.OrganizationUC, deps.Validator)
	orgs.Get("/", perm(entity.PermOrganizationView), orgHandler.List)
	orgs.Post("/", orgHandler.Create)
	orgs.Get("/:id", perm(entity.PermOrganizationView), orgHandler.GetByID)
	orgs.Post("/:id/block", perm(entity.PermOrganizationBlock), orgHandler.Block)
	orgs.Post("/:id/unblock", perm(entity.PermOrganizationBlock), orgHandler.Unblock)
	orgs.Post("/:id/due-invoices", perm(entity.PermOrganizationBlock), orgHandler.DueInvoices)
	orgs.Post("/:id/toggle-active", perm(entity.PermOrganizationChange), orgHandler.ToggleActive)
	orgs.Get("/:id/emails", perm(entity.PermOrganizationView), orgHandler.Emails)
	orgs.Post("/:id/broadcast", perm(entity.PermOrganizationChange), orgHandler.Broadcast)
	orgs.Get("/:id/shipping-addresses", perm(entity.PermOrganizationView), orgHandler.ShippingAddresses)

	// Places
	places := protected.Group("/places")
	placeHandler := NewPlaceHandler(deps.PlaceUC, deps.Validator)
	places.Post("/", perm(entity.PermPlaceChange), placeHandler.Create)
	places.Get("/", perm(entity.PermPlaceView), placeHandler.List)
	places.Get("/:id", perm(entity.PermPlaceView), placeHandler.GetByID)
	places.Delete("/:id", perm(entity.PermPlaceChange), placeHandler.Delete)
	places.Post("/:id/toggle-active", perm(entity.PermPlaceChange), placeHandler.ToggleActive)
	places.Get("/:id/periods", perm(entity.PermPlaceView), placeHandler.ListPeriods)
	places.Post("/:id/periods", perm(entity.PermPlaceChange), placeHandler.AddPeriod)
	places.Delete("/:id/periods/:periodId", perm(entity.PermPlaceChange), placeHandler.DeletePeriod)
	places.Get("/:id/open", perm(entity.PermPlaceView), placeHandler.Open)

	// Districts
	districts := protected.Group("/districts")
	districtHandler := NewDistrictHandler(deps.DistrictUC)
	districts.Get("/", districtHandler.List)
	districts.Get("/:id", districtHandler.GetByID)
	districts.Get("/:id/can-ship", districtHandler.CanShip)

	// Restrictions
	restrictions := protected.Group("/restrictions", perm(entity.PermRestrictionChange))
	restrictionHandler := NewRestrictionHandler(deps.RestrictionUC, deps.Validator)
	restrictions.Post("/", restrictionHandler.Create)
	restrictions.Delete("/:id", restrictionHandler.Delete)

	// Roles y unidades
	protected.Get("/roles", NewRoleHandler(deps.RoleUC).List)
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC, deps.Validator)
	units.Get("/", unitHandler.List)
	units.Post("/", perm(entity.PermPlaceChange), unitHandler.Create)
	units.Put("/:id", perm(entity.PermPlaceChange), unitHandler.Update)

	// CronJobs
	cronjobs := protected.Group("/cronjobs", perm(entity.PermCronJobRun))
	cronHandler := NewCronJobHandler(deps.CronJobUC, deps.Validator)
	cronjobs.Get("/", cronHandler.List)
	cronjobs.Post("/", cronHandler.Create)
	cronjobs.Post("/:id/toggle-active", cronHandler.ToggleActive)
	cronjobs.Post("/:id/run", cronHandler.Run)
}
