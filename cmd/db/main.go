package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tupperbox/tupperbox/cmd/db/commands"
	"github.com/tupperbox/tupperbox/internal/database"
	"github.com/tupperbox/tupperbox/internal/setup/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Setup dependencies
	deps, cleanup, err := setupDependencies()
	if err != nil {
		return fmt.Errorf("failed to setup dependencies: %w", err)
	}
	defer cleanup()

	app := &cli.Command{
		Name:  "db",
		Usage: "Database management tool",
		Commands: append(
			commands.MigrationCommands(deps),
			commands.CheckCommands(deps)...,
		),
	}

	return app.Run(ctx, os.Args)
}

// setupDependencies loads the config and prepares the database client.
// Nothing is dialed until a command runs.
func setupDependencies() (*commands.CLIDependencies, func(), error) {
	// Load full configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Create development logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db := database.NewConnection(&cfg.PostgreSQL, logger.Named("database"))

	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}

	return &commands.CLIDependencies{
		DB:          db,
		Redis:       &cfg.Redis,
		ImportFiles: cfg.Import.Files,
		Logger:      logger,
	}, cleanup, nil
}
