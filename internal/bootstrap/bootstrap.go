// Package bootstrap wires the application together: configuration, logging,
// database, migrations, repositories, services, controllers and routes.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/emrekb/coursedeck/internal/app/auth"
	appControllers "github.com/emrekb/coursedeck/internal/app/controllers"
	appMigrations "github.com/emrekb/coursedeck/internal/app/migrations"
	appRepos "github.com/emrekb/coursedeck/internal/app/repositories"
	appRoutes "github.com/emrekb/coursedeck/internal/app/routes"
	appServices "github.com/emrekb/coursedeck/internal/app/services"
	"github.com/emrekb/coursedeck/internal/config"
	"github.com/emrekb/coursedeck/internal/db"
	appMiddleware "github.com/emrekb/coursedeck/internal/middleware"
	pkgAuth "github.com/emrekb/coursedeck/internal/pkg/auth"
	"github.com/emrekb/coursedeck/internal/pkg/helpers"
	"github.com/emrekb/coursedeck/internal/pkg/logger"
	"github.com/emrekb/coursedeck/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	RoleResolver         *appAuth.Resolver
	Policy               *appAuth.Policy
	AuthService          *appServices.AuthService
	CourseService        *appServices.CourseService
	LessonService        *appServices.LessonService
	EnrollmentService    *appServices.EnrollmentService
	GradeService         *appServices.GradeService
	ReportService        *appServices.ReportService
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	LessonController     *appControllers.LessonController
	EnrollmentController *appControllers.EnrollmentController
	GradeController      *appControllers.GradeController
	ReportController     *appControllers.ReportController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A local .env file, when present, is loaded before the config so its
// variables take part in the env override pass.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Could not load .env file")
	}

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
// seeds demo data when enabled.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

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

	if cfg.Seed.Enabled {
		if err := seed.CreateDemoData(context.Background(), dbPool, lgr); err != nil {
			// Demo data is a convenience, never a startup blocker
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.RoleResolver = appAuth.NewResolver(deps.Repos.InstructorRepository)
	deps.Policy = appAuth.NewPolicy()

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.InstructorRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.LessonRepository,
		deps.Repos.EnrollmentRepository,
		deps.Policy,
		lgr,
	)
	deps.LessonService = appServices.NewLessonService(
		deps.Repos.LessonRepository,
		deps.Repos.CourseRepository,
		deps.Policy,
		lgr,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		lgr,
	)
	deps.GradeService = appServices.NewGradeService(
		deps.Repos.GradeRepository,
		deps.Repos.EnrollmentRepository,
		deps.Policy,
		lgr,
	)
	deps.ReportService = appServices.NewReportService(
		deps.Repos.ReportRepository,
		deps.Repos.CourseRepository,
		deps.Repos.LessonRepository,
		deps.Policy,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.RoleResolver)
	deps.LessonController = appControllers.NewLessonController(deps.LessonService, deps.RoleResolver)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, deps.RoleResolver)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService, deps.RoleResolver)
	deps.ReportController = appControllers.NewReportController(deps.ReportService, deps.RoleResolver)

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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.LessonController,
		deps.EnrollmentController,
		deps.GradeController,
		deps.ReportController,
		deps.AuthMiddleware,
	)

	return router
}
