package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pguia/registry/internal/auth"
	"github.com/pguia/registry/internal/config"
	"github.com/pguia/registry/internal/database"
	"github.com/pguia/registry/internal/repository"
	"github.com/pguia/registry/internal/service"
	"github.com/pguia/registry/internal/storage"
)

// App holds all application components
type App struct {
	Config              *config.Config
	Database            *database.Database
	Authorizer          *service.Authorizer
	UserService         *service.UserService
	OrganizationService *service.OrganizationService
	TeamService         *service.TeamService
	BuildService        *service.BuildService
	CacheService        service.CacheService
}

// InitializeApp initializes all application components
func InitializeApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.AutoMigrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info().Msg("Database connection established successfully")

	permissionRepo := repository.NewPermissionRepository(db.DB)
	roleRepo := repository.NewRoleRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	orgRepo := repository.NewOrganizationRepository(db.DB)
	teamRepo := repository.NewTeamRepository(db.DB)
	buildRepo := repository.NewBuildRepository(db.DB)

	seeder := service.NewSeeder(roleRepo, permissionRepo, userRepo, &cfg.Bootstrap)
	if err := seeder.Seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed catalogs: %w", err)
	}

	codec, err := auth.NewTokenCodec(
		cfg.Auth.JWTSecret,
		cfg.Auth.JWTAlgorithm,
		time.Duration(cfg.Auth.TokenTTLSeconds)*time.Second,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}

	store, err := storage.NewS3Store(&cfg.Storage)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	cacheService, err := service.NewCache(&cfg.Cache)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	log.Info().
		Str("type", cfg.Cache.Type).
		Bool("enabled", cfg.Cache.Enabled).
		Msg("Cache initialized")

	authorizer := service.NewAuthorizer(userRepo, codec)
	userService := service.NewUserService(userRepo, roleRepo, orgRepo, teamRepo, &cfg.Bootstrap)
	orgService := service.NewOrganizationService(orgRepo, userRepo)
	teamService := service.NewTeamService(teamRepo, orgRepo, userRepo)
	allocator := service.NewShortIDAllocator(buildRepo)
	buildService := service.NewBuildService(buildRepo, teamRepo, store, allocator, cacheService)

	log.Info().Msg("Registry services initialized successfully")

	return &App{
		Config:              cfg,
		Database:            db,
		Authorizer:          authorizer,
		UserService:         userService,
		OrganizationService: orgService,
		TeamService:         teamService,
		BuildService:        buildService,
		CacheService:        cacheService,
	}, nil
}

// Close cleans up application resources
func (app *App) Close() error {
	log.Info().Msg("Closing application resources")
	if app.Database != nil {
		return app.Database.Close()
	}
	return nil
}

// Run starts the application and waits for shutdown signal
func Run(app *App) error {
	log.Info().
		Str("address", app.Config.Server.Address).
		Msg("Registry core is ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	return nil
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app, err := InitializeApp()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer app.Close()

	if err := Run(app); err != nil {
		log.Fatal().Err(err).Msg("Application error")
	}
}
