package service

import (
	"context"
	"log/slog"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/logger"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// AuditService appends best-effort audit entries for destructive and bulk
// operations. Record never fails the caller: append errors are logged and
// swallowed, so audit trouble cannot abort a primary operation.
type AuditService interface {
	// Record appends an audit entry. Failures are logged, never returned.
	Record(ctx context.Context, action, entity, entityID, detail string)

	// List returns every audit entry.
	List(ctx context.Context) ([]*domain.AuditEntry, error)
}

type auditService struct {
	entries *store.Collection[domain.AuditEntry]
	logger  *slog.Logger
}

// NewAuditService creates a new AuditService backed by the given record
// store.
func NewAuditService(rs store.RecordStore, log *slog.Logger) (AuditService, error) {
	if rs == nil {
		return nil, domain.NewValidationError("recordStore", "cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &auditService{
		entries: store.NewCollection[domain.AuditEntry](rs, store.TableAuditLogs),
		logger:  log.With(slog.String("component", "audit_service")),
	}, nil
}

func (s *auditService) Record(ctx context.Context, action, entity, entityID, detail string) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := domain.NewAuditEntry(action, entity, entityID, detail)
	if err != nil {
		log.Warn("failed to build audit entry",
			slog.String("action", action),
			slog.String("error", err.Error()))
		return
	}

	if err := s.entries.Put(ctx, entry.ID, entry); err != nil {
		log.Warn("failed to append audit entry",
			slog.String("action", action),
			slog.String("entity", entity),
			slog.String("error", err.Error()))
	}
}

func (s *auditService) List(ctx context.Context) ([]*domain.AuditEntry, error) {
	entries, err := s.entries.GetAll(ctx)
	if err != nil {
		return nil, NewServiceError("audit", "list", "failed to load audit entries", err)
	}
	return entries, nil
}
