package setup

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/rueidis"
	"github.com/tupperbox/tupperbox/internal/cache"
	"github.com/tupperbox/tupperbox/internal/database"
	"github.com/tupperbox/tupperbox/internal/redis"
	"github.com/tupperbox/tupperbox/internal/setup/config"
	"github.com/tupperbox/tupperbox/internal/setup/telemetry"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config     *config.Config     // Application configuration
	Logger     *zap.Logger        // Main application logger
	DBLogger   *zap.Logger        // Database-specific logger
	DB         *database.Client   // Database connection pool
	Redis      rueidis.Client     // Shared Redis client
	Cache      *cache.Cache       // Namespaced cache accessors
	LogManager *telemetry.Manager // Log management system
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
// The stores are connected but not yet checked; call Init before serving.
func InitializeApp(ctx context.Context, component, logDir string) (*App, error) {
	// Load app configuration
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(component, logDir, &cfg.Debug, true)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	if configDir != "" {
		logger.Info("Loaded config file", zap.String("dir", configDir))
	}

	redisClient, err := redis.NewClient(ctx, &cfg.Redis, logger)
	if err != nil {
		logManager.Stop()
		return nil, err
	}

	dbLogger = dbLogger.Named("database")
	db := database.NewConnection(&cfg.PostgreSQL, dbLogger)

	// Bundle all initialized components
	return &App{
		Config:     cfg,
		Logger:     logger,
		DBLogger:   dbLogger,
		DB:         db,
		Redis:      redisClient,
		Cache:      cache.New(redisClient, logger),
		LogManager: logManager,
	}, nil
}

// Init runs the startup checks against every store.
func (s *App) Init(ctx context.Context) error {
	if err := s.DB.Init(ctx, s.Cache, s.Config.Import.Files); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	return nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup() {
	// Close database connections
	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis after Postgres
	s.Redis.Close()
	s.Logger.Info("Redis connection closed")

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	s.LogManager.Stop()
}
