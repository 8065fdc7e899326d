package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tupperbox/tupperbox/internal/setup"
)

const (
	// BotLogDir specifies where bot log files are stored.
	BotLogDir = "logs/bot_logs"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// Initialize application with required dependencies
	app, err := setup.InitializeApp(ctx, "bot", BotLogDir)
	if err != nil {
		return err
	}
	defer app.Cleanup()

	// Refuse to serve until both stores pass their checks
	if err := app.Init(ctx); err != nil {
		return err
	}

	app.Logger.Info("Bot has been started. Waiting for interrupt signal to gracefully shutdown...")

	<-ctx.Done()

	app.Logger.Info("Shutting down")

	return nil
}
