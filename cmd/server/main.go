package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/esti34/capsule/internal/app"
	"github.com/esti34/capsule/internal/config"
	"github.com/esti34/capsule/internal/server"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	container := app.New(app.Dependencies{Config: cfg, Fs: afero.NewOsFs(), LogOutput: os.Stdout})
	defer container.Shutdown()

	// Create a new server instance.
	s, err := server.New(container)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	// Register all application routes.
	s.RegisterRoutes()

	// Start the server; it returns after a graceful shutdown.
	return s.Start(ctx)
}
