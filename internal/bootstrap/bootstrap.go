package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mikelitos05/asistencias/internal/app/controllers"
	appMigrations "github.com/mikelitos05/asistencias/internal/app/migrations"
	appRepos "github.com/mikelitos05/asistencias/internal/app/repositories"
	appRoutes "github.com/mikelitos05/asistencias/internal/app/routes"
	appServices "github.com/mikelitos05/asistencias/internal/app/services"
	"github.com/mikelitos05/asistencias/internal/config"
	"github.com/mikelitos05/asistencias/internal/db"
	appMiddleware "github.com/mikelitos05/asistencias/internal/middleware"
	pkgAuth "github.com/mikelitos05/asistencias/internal/pkg/auth"
	"github.com/mikelitos05/asistencias/internal/pkg/filestorage"
	"github.com/mikelitos05/asistencias/internal/pkg/helpers"
	"github.com/mikelitos05/asistencias/internal/pkg/logger"
	"github.com/mikelitos05/asistencias/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	ParkService            appServices.ParkService
	CatalogService         appServices.CatalogService
	EnrollmentService      appServices.EnrollmentService
	AttendanceService      appServices.AttendanceService
	PeriodService          appServices.PeriodService
	AppConfigService       appServices.AppConfigService
	ImportExportService    appServices.ImportExportService
	AuthController         *appControllers.AuthController
	ParkController         *appControllers.ParkController
	ProgramController      *appControllers.ProgramController
	SocialServerController *appControllers.SocialServerController
	AttendanceController   *appControllers.AttendanceController
	PeriodController       *appControllers.PeriodController
	ConfigController       *appControllers.ConfigController
	ImportExportController *appControllers.ImportExportController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Logger                 zerolog.Logger
	FileStorage            *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Pool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	// The static file route serves stored photos; the base URL must match it.
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	ledger := appServices.NewCapacityLedger(deps.Repos.ScheduleRepository, lgr)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.ParkService = appServices.NewParkService(deps.Repos.ParkRepository, lgr)
	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.ProgramRepository,
		deps.Repos.ScheduleRepository,
		deps.Repos.ParkRepository,
		ledger,
		lgr,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.SocialServerRepository,
		deps.Repos.ScheduleRepository,
		deps.Repos.ParkRepository,
		lgr,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.AttendanceRepository,
		deps.Repos.SocialServerRepository,
		deps.Repos.ParkRepository,
		deps.FileStorage,
		appServices.AttendancePolicy{
			EnforceParkMatch: cfg.Attendance.EnforceParkMatch,
			RequirePhoto:     cfg.Attendance.RequirePhoto,
		},
		lgr,
	)
	deps.PeriodService = appServices.NewPeriodService(deps.Repos.PeriodRepository, lgr)
	deps.AppConfigService = appServices.NewAppConfigService(deps.Repos.AppConfigRepository, lgr)
	deps.ImportExportService = appServices.NewImportExportService(
		deps.Repos.SocialServerRepository,
		deps.Repos.ScheduleRepository,
		deps.Repos.ParkRepository,
		deps.Repos.ProgramRepository,
		deps.Repos.PeriodRepository,
		deps.CatalogService,
		cfg.Import.DefaultScheduleCapacity,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ParkController = appControllers.NewParkController(deps.ParkService)
	deps.ProgramController = appControllers.NewProgramController(deps.CatalogService)
	deps.SocialServerController = appControllers.NewSocialServerController(deps.EnrollmentService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService, deps.AppConfigService)
	deps.PeriodController = appControllers.NewPeriodController(deps.PeriodService)
	deps.ConfigController = appControllers.NewConfigController(deps.AppConfigService)
	deps.ImportExportController = appControllers.NewImportExportController(deps.ImportExportService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ParkController,
		deps.ProgramController,
		deps.SocialServerController,
		deps.AttendanceController,
		deps.PeriodController,
		deps.ConfigController,
		deps.ImportExportController,
		deps.AuthMiddleware,
		cfg.Server.StoragePath,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
