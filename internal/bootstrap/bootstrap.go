package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/clgres/resultapi/internal/app/controllers"
	"github.com/clgres/resultapi/internal/app/grading"
	appMigrations "github.com/clgres/resultapi/internal/app/migrations"
	appRepos "github.com/clgres/resultapi/internal/app/repositories"
	appRoutes "github.com/clgres/resultapi/internal/app/routes"
	appServices "github.com/clgres/resultapi/internal/app/services"
	"github.com/clgres/resultapi/internal/config"
	"github.com/clgres/resultapi/internal/db"
	appMiddleware "github.com/clgres/resultapi/internal/middleware"
	"github.com/clgres/resultapi/internal/pkg/logger"
	"github.com/clgres/resultapi/internal/seed"
	"github.com/clgres/resultapi/internal/store"
	firestorestore "github.com/clgres/resultapi/internal/store/firestore"
	"github.com/clgres/resultapi/internal/store/memory"
	postgresstore "github.com/clgres/resultapi/internal/store/postgres"
	redisstore "github.com/clgres/resultapi/internal/store/redis"
)

// DefaultConfigPath is used when CONFIG_PATH is not set
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store            store.DocumentStore
	Repos            *appRepos.Repositories
	Aggregator       *grading.Aggregator
	ResultService    appServices.ResultService
	ResultController *appControllers.ResultController
	HealthController *appControllers.HealthController
	Logger           zerolog.Logger
}

// Close releases the document store
func (d *Dependencies) Close() error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Close()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = config.GetEnv("CONFIG_PATH", DefaultConfigPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the document store selected by cfg.Store.Driver.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (store.DocumentStore, error) {
	lgr.Info().Str("driver", cfg.Store.Driver).Msg("Opening document store...")

	switch cfg.Store.Driver {
	case config.DriverFirestore:
		st, err := firestorestore.New(ctx, firestorestore.Config{
			ProjectID:       cfg.Firestore.ProjectID,
			CredentialsFile: cfg.Firestore.CredentialsFile,
			PingCollection:  cfg.Store.Collection,
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to create Firestore client")
			return nil, err
		}
		lgr.Info().Str("project", cfg.Firestore.ProjectID).Msg("Firestore client created.")
		return st, nil

	case config.DriverPostgres:
		return setupPostgres(ctx, cfg, lgr)

	case config.DriverRedis:
		redisCfg := redisstore.DefaultConfig()
		redisCfg.Addr = cfg.GetRedisAddr()
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		if cfg.Redis.PoolSize > 0 {
			redisCfg.PoolSize = cfg.Redis.PoolSize
		}

		st := redisstore.New(redisCfg)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := st.Ping(pingCtx); err != nil {
			lgr.Error().Err(err).Str("addr", redisCfg.Addr).Msg("Failed to ping Redis")
			_ = st.Close()
			return nil, err
		}
		lgr.Info().Str("addr", redisCfg.Addr).Msg("Redis connection successfully established.")
		return st, nil

	case config.DriverMemory:
		mem := memory.New()
		if cfg.Store.SeedDemo {
			seed.CreateDemoData(mem, cfg.Store.Collection, cfg.Store.Semesters, lgr)
		}
		return mem, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// setupPostgres establishes the database connection and runs migrations.
func setupPostgres(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (store.DocumentStore, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return postgresstore.New(database.Pool), nil
}

// BuildDependencies initializes the repository, service and controllers over st.
func BuildDependencies(cfg *config.Config, st store.DocumentStore, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Store: st, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(st, cfg.Store.Collection, cfg.Store.Semesters)

	deps.Aggregator = grading.NewAggregator(grading.CGPAPolicy(cfg.Grading.CGPAPolicy))
	lgr.Info().Str("cgpaPolicy", string(deps.Aggregator.Policy())).Msg("Grading configured")

	deps.ResultService = appServices.NewResultService(
		deps.Repos.ResultRepository,
		deps.Aggregator,
		cfg.Grading.SemesterKeyPrefix,
		lgr,
	)

	deps.ResultController = appControllers.NewResultController(deps.ResultService)
	deps.HealthController = appControllers.NewHealthController(deps.Repos.ResultRepository, cfg.Store.Driver)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Timeout(cfg.GetRequestTimeout()),
	)

	appRoutes.SetupRouter(router, deps.ResultController, deps.HealthController)

	return router, nil
}
