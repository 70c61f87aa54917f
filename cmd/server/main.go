// Package main implements the entry point for the wardrobe API server,
// which tracks clothes through their wear/wash lifecycle and serves
// analytics derived from the activity ledger.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/closetkeep/wardrobe-api/internal/config"
	"github.com/closetkeep/wardrobe-api/internal/platform/logger"
)

// main loads configuration, wires the application, and runs the HTTP
// server until a shutdown signal arrives.
func main() {
	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to build application", "error", err)
		log.Fatalf("Failed to build application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		log.Fatalf("Server exited with error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"backend", cfg.Database.Backend)

	return cfg, appLogger, nil
}
