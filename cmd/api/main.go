package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/probaar-api/internal/application/auth"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/infrastructure/hooks"
	"github.com/jhoicas/probaar-api/internal/infrastructure/mail"
	"github.com/jhoicas/probaar-api/internal/infrastructure/notification"
	"github.com/jhoicas/probaar-api/internal/infrastructure/postgres"
	"github.com/jhoicas/probaar-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/probaar-api/internal/interfaces/http"
	"github.com/jhoicas/probaar-api/pkg/config"
	"github.com/jhoicas/probaar-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orgRepo := postgres.NewOrganizationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	placeRepo := postgres.NewPlaceRepository(pool)
	periodRepo := postgres.NewPeriodRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)
	restrictionRepo := postgres.NewRestrictionRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	districtRepo := postgres.NewDistrictRepository(pool)
	cronRepo := postgres.NewCronJobRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Envío de correos en segundo plano
	mailer := mail.NewSMTPMailer(cfg.SMTP, log.Component("mail"))
	tasks := notification.NewPool(cfg.Notifications.Workers, cfg.Notifications.QueueSize, log.Component("notification"))

	// Tareas programadas: cada disparo se omite si no hay una fila activa del tipo
	defaultHooks := hooks.NewLogging(log.Component("hooks"))
	dispatcher := scheduler.NewDispatcher(cronRepo, cfg.Cron.Specs, log.Component("scheduler"))
	for _, jobType := range entity.JobTypes {
		dispatcher.Register(jobType, defaultHooks.Job(jobType))
	}
	if err := dispatcher.Start(); err != nil {
		log.Fatal().Err(err).Msg("programar tareas")
	}

	userUC := usecase.NewUserUseCase(
		userRepo, orgRepo, membershipRepo, roleRepo, restrictionRepo, placeRepo,
		mailer, tasks, cfg.App.BaseURL, cfg.App.ActivationTokenTTL, log.Component("users"),
	)
	orgUC := usecase.NewOrganizationUseCase(
		txRunner, orgRepo, placeRepo, restrictionRepo, mailer, tasks, log.Component("organizations"),
	)
	placeUC := usecase.NewPlaceUseCase(txRunner, placeRepo, periodRepo, addressRepo, defaultHooks, log.Component("places"))
	districtUC := usecase.NewDistrictUseCase(districtRepo)
	restrictionUC := usecase.NewRestrictionUseCase(
		restrictionRepo, userRepo, membershipRepo,
		usecase.NewRestrictableRegistry(placeRepo, orgRepo, addressRepo, districtRepo),
	)
	roleUC := usecase.NewRoleUseCase(membershipRepo, roleRepo)
	cronUC := usecase.NewCronJobUseCase(cronRepo, dispatcher, log.Component("cronjobs"))
	unitUC := usecase.NewUnitUseCase(unitRepo, defaultHooks, log.Component("units"))
	authUC := auth.NewAuthUseCase(userRepo, membershipRepo, userUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	validator, err := httpRouter.NewValidator()
	if err != nil {
		log.Fatal().Err(err).Msg("registrar traducciones del validador")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs (generar con `swag init -g cmd/api/main.go`)
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Probaar API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		OrganizationUC: orgUC,
		PlaceUC:        placeUC,
		DistrictUC:     districtUC,
		RestrictionUC:  restrictionUC,
		RoleUC:         roleUC,
		CronJobUC:      cronUC,
		UnitUC:         unitUC,
		Validator:      validator,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("detener tareas programadas")
	}
	if err := tasks.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("vaciar cola de notificaciones")
	}

	log.Info().Msg("aplicación detenida")
}
