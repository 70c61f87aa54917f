package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/logger"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// BatchResult reports a laundry batch. Each ID is processed independently:
// missing clothes and non-matching source states are counted as skipped and
// never abort the rest of the batch.
//
// HistoryFailures lists cloth IDs whose wash-history append failed. The
// state transitions themselves succeeded; only the telemetry is missing.
type BatchResult struct {
	Updated         int             `json:"updated"`
	Skipped         int             `json:"skipped"`
	Clothes         []*domain.Cloth `json:"clothes"`
	Cleaned         []*domain.Cloth `json:"cleaned,omitempty"`
	NeedsPressing   []*domain.Cloth `json:"needsPressing,omitempty"`
	HistoryFailures []string        `json:"historyFailures,omitempty"`
}

// TelemetryDegraded reports whether any wash-history append failed while
// the primary transitions succeeded.
func (r *BatchResult) TelemetryDegraded() bool {
	return len(r.HistoryFailures) > 0
}

// LaundryService runs batch state transitions over the cloth lifecycle.
// Only matching source states transition; anything else is a no-op.
type LaundryService interface {
	// WashClothes moves each dirty cloth to needs_pressing (if it requires
	// pressing) or clean, resetting its wear count. Results are partitioned
	// into Cleaned and NeedsPressing. Appends a wash history event per
	// transition, best-effort.
	WashClothes(ctx context.Context, clothIDs []string) (*BatchResult, error)

	// PressClothes moves each needs_pressing cloth to clean. Appends a
	// press history event per transition, best-effort.
	PressClothes(ctx context.Context, clothIDs []string) (*BatchResult, error)

	// MarkDirty forces each non-dirty cloth to dirty without touching its
	// wear count.
	MarkDirty(ctx context.Context, clothIDs []string) (*BatchResult, error)

	// WashHistory returns the wash/press events for one cloth, most recent
	// first.
	WashHistory(ctx context.Context, clothID string) ([]*domain.WashHistoryEvent, error)
}

type laundryService struct {
	clothes *store.Collection[domain.Cloth]
	history *store.Collection[domain.WashHistoryEvent]
	logger  *slog.Logger
}

// NewLaundryService creates a new LaundryService backed by the given
// record store.
func NewLaundryService(rs store.RecordStore, log *slog.Logger) (LaundryService, error) {
	if rs == nil {
		return nil, domain.NewValidationError("recordStore", "cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &laundryService{
		clothes: store.NewCollection[domain.Cloth](rs, store.TableClothes),
		history: store.NewCollection[domain.WashHistoryEvent](rs, store.TableWashHistory),
		logger:  log.With(slog.String("component", "laundry_service")),
	}, nil
}

func (s *laundryService) WashClothes(ctx context.Context, clothIDs []string) (*BatchResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	result := &BatchResult{}

	for _, clothID := range clothIDs {
		cloth, ok := s.loadForTransition(ctx, clothID, result)
		if !ok {
			continue
		}
		if cloth.Status != domain.ClothStatusDirty {
			result.Skipped++
			continue
		}

		if cloth.RequiresPressing {
			cloth.Status = domain.ClothStatusNeedsPressing
		} else {
			cloth.Status = domain.ClothStatusClean
		}
		cloth.CurrentWearCount = 0
		cloth.UpdatedAt = nowUTC()

		if err := s.clothes.Put(ctx, cloth.ID, cloth); err != nil {
			log.Error("failed to save washed cloth",
				slog.String("cloth_id", cloth.ID),
				slog.String("error", err.Error()))
			result.Skipped++
			continue
		}

		result.Updated++
		result.Clothes = append(result.Clothes, cloth)
		if cloth.Status == domain.ClothStatusNeedsPressing {
			result.NeedsPressing = append(result.NeedsPressing, cloth)
		} else {
			result.Cleaned = append(result.Cleaned, cloth)
		}

		s.appendHistory(ctx, cloth.ID, domain.WashActionWash, result)
	}

	log.Info("wash batch completed",
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("needs_pressing", len(result.NeedsPressing)))
	return result, nil
}

func (s *laundryService) PressClothes(ctx context.Context, clothIDs []string) (*BatchResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	result := &BatchResult{}

	for _, clothID := range clothIDs {
		cloth, ok := s.loadForTransition(ctx, clothID, result)
		if !ok {
			continue
		}
		if cloth.Status != domain.ClothStatusNeedsPressing {
			result.Skipped++
			continue
		}

		cloth.Status = domain.ClothStatusClean
		cloth.UpdatedAt = nowUTC()

		if err := s.clothes.Put(ctx, cloth.ID, cloth); err != nil {
			log.Error("failed to save pressed cloth",
				slog.String("cloth_id", cloth.ID),
				slog.String("error", err.Error()))
			result.Skipped++
			continue
		}

		result.Updated++
		result.Clothes = append(result.Clothes, cloth)

		s.appendHistory(ctx, cloth.ID, domain.WashActionPress, result)
	}

	log.Info("press batch completed",
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

func (s *laundryService) MarkDirty(ctx context.Context, clothIDs []string) (*BatchResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	result := &BatchResult{}

	for _, clothID := range clothIDs {
		cloth, ok := s.loadForTransition(ctx, clothID, result)
		if !ok {
			continue
		}
		if cloth.Status == domain.ClothStatusDirty {
			result.Skipped++
			continue
		}

		// Wear count is deliberately kept: the item was worn that many
		// times since its last wash regardless of why it is dirty now.
		cloth.Status = domain.ClothStatusDirty
		cloth.UpdatedAt = nowUTC()

		if err := s.clothes.Put(ctx, cloth.ID, cloth); err != nil {
			log.Error("failed to save dirty cloth",
				slog.String("cloth_id", cloth.ID),
				slog.String("error", err.Error()))
			result.Skipped++
			continue
		}

		result.Updated++
		result.Clothes = append(result.Clothes, cloth)
	}

	log.Info("mark-dirty batch completed",
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

func (s *laundryService) WashHistory(ctx context.Context, clothID string) ([]*domain.WashHistoryEvent, error) {
	events, err := s.history.GetAll(ctx)
	if err != nil {
		return nil, NewServiceError("laundry", "wash_history", "failed to load wash history", err)
	}

	filtered := make([]*domain.WashHistoryEvent, 0, len(events))
	for _, event := range events {
		if event.ClothID == clothID {
			filtered = append(filtered, event)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	return filtered, nil
}

// loadForTransition fetches a cloth for a batch step. A missing cloth or a
// load failure counts as skipped and reports false.
func (s *laundryService) loadForTransition(ctx context.Context, clothID string, result *BatchResult) (*domain.Cloth, bool) {
	cloth, err := s.clothes.GetByID(ctx, clothID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to load cloth for laundry batch",
				slog.String("cloth_id", clothID),
				slog.String("error", err.Error()))
		}
		result.Skipped++
		return nil, false
	}
	return cloth, true
}

// appendHistory records a wash/press event. Failure degrades telemetry
// only: it is logged, noted on the result, and never fails the batch.
func (s *laundryService) appendHistory(ctx context.Context, clothID string, action domain.WashAction, result *BatchResult) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := domain.NewWashHistoryEvent(clothID, action)
	if err == nil {
		err = s.history.Put(ctx, event.ID, event)
	}
	if err != nil {
		log.Warn("failed to append wash history event",
			slog.String("cloth_id", clothID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()))
		result.HistoryFailures = append(result.HistoryFailures, clothID)
	}
}
