package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/closetkeep/wardrobe-api/internal/backup"
	"github.com/closetkeep/wardrobe-api/internal/config"
	"github.com/closetkeep/wardrobe-api/internal/platform/memory"
	"github.com/closetkeep/wardrobe-api/internal/platform/postgres"
	"github.com/closetkeep/wardrobe-api/internal/platform/sqlite"
	"github.com/closetkeep/wardrobe-api/internal/service"
	"github.com/closetkeep/wardrobe-api/internal/service/auth"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// application holds the wired dependency graph: one record store, the
// services over it, and the auth boundary. Everything is constructed up
// front so a misconfiguration fails at startup, not mid-request.
type application struct {
	config *config.Config
	logger *slog.Logger

	recordStore store.RecordStore

	categoryService    service.CategoryService
	clothService       service.ClothService
	outfitService      service.OutfitService
	activityService    service.ActivityService
	laundryService     service.LaundryService
	tripService        service.TripService
	preferencesService service.PreferencesService
	auditService       service.AuditService
	backupService      backup.Service

	jwtService  auth.JWTService
	authService auth.AuthService
}

// newApplication builds the full dependency graph from configuration.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	rs, err := openStore(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Database.Backend, err)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		recordStore: rs,
	}

	if err := app.buildServices(rs, logger); err != nil {
		// The store is already open; close it so a failed build does not
		// leak the connection.
		_ = rs.Close()
		return nil, err
	}

	if err := app.authService.EnsureDefaultUser(ctx, cfg.Auth.DefaultUserEmail, cfg.Auth.DefaultUserPassword); err != nil {
		_ = rs.Close()
		return nil, fmt.Errorf("failed to seed default user: %w", err)
	}

	return app, nil
}

// openStore selects and opens the configured storage backend.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (store.RecordStore, error) {
	switch cfg.Backend {
	case "memory":
		return memory.NewStore(), nil
	case "sqlite":
		return sqlite.NewStore(cfg.Path)
	case "postgres":
		return postgres.Open(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Backend)
	}
}

func (app *application) buildServices(rs store.RecordStore, logger *slog.Logger) error {
	var err error

	if app.auditService, err = service.NewAuditService(rs, logger); err != nil {
		return fmt.Errorf("failed to build audit service: %w", err)
	}

	if app.categoryService, err = service.NewCategoryService(rs, app.auditService, logger); err != nil {
		return fmt.Errorf("failed to build category service: %w", err)
	}

	if app.clothService, err = service.NewClothService(rs, app.categoryService, app.auditService, logger); err != nil {
		return fmt.Errorf("failed to build cloth service: %w", err)
	}

	if app.preferencesService, err = service.NewPreferencesService(rs, logger); err != nil {
		return fmt.Errorf("failed to build preferences service: %w", err)
	}

	if app.outfitService, err = service.NewOutfitService(rs, app.preferencesService, app.auditService, logger); err != nil {
		return fmt.Errorf("failed to build outfit service: %w", err)
	}

	if app.activityService, err = service.NewActivityService(rs, app.clothService, logger); err != nil {
		return fmt.Errorf("failed to build activity service: %w", err)
	}

	if app.laundryService, err = service.NewLaundryService(rs, logger); err != nil {
		return fmt.Errorf("failed to build laundry service: %w", err)
	}

	if app.tripService, err = service.NewTripService(rs, logger); err != nil {
		return fmt.Errorf("failed to build trip service: %w", err)
	}

	if app.backupService, err = backup.NewService(rs, logger); err != nil {
		return fmt.Errorf("failed to build backup service: %w", err)
	}

	if app.jwtService, err = auth.NewJWTService(app.config.Auth); err != nil {
		return fmt.Errorf("failed to build JWT service: %w", err)
	}

	if app.authService, err = auth.NewAuthService(rs, app.jwtService, auth.NewBcryptVerifier(), logger); err != nil {
		return fmt.Errorf("failed to build auth service: %w", err)
	}

	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if err := app.recordStore.Close(); err != nil {
		app.logger.Error("Failed to close record store", "error", err)
	}
}
