package service

import (
	"context"
	"log/slog"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/logger"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// PreferencesUpdate carries a partial update of the preference document;
// nil fields are left unchanged.
type PreferencesUpdate struct {
	Notifications   *domain.NotificationPreferences `json:"notifications,omitempty"`
	FilterChips     []string                        `json:"filterChips,omitempty"`
	WardrobeView    *string                         `json:"wardrobeView,omitempty"`
	WardrobeSort    *string                         `json:"wardrobeSort,omitempty"`
	InsightsModules []string                        `json:"insightsModules,omitempty"`
	Currency        *string                         `json:"currency,omitempty"`
}

// PreferencesService manages the singleton preference document. Reads
// always merge the stored document over the fixed defaults, so partial or
// missing documents never crash a caller.
type PreferencesService interface {
	// Get returns the preference document merged over defaults.
	Get(ctx context.Context) (*domain.UserPreferences, error)

	// Update applies a partial update and returns the merged result.
	Update(ctx context.Context, update PreferencesUpdate) (*domain.UserPreferences, error)

	// MergeTagUsage merges the given canonical tags into the suggestion set
	// and bumps each tag's {count, lastUsed} statistic. The outfit write
	// path calls this with the outfit's full current tag set on every write
	// that touches tags, so counts accumulate on unchanged tags too.
	MergeTagUsage(ctx context.Context, tags []string) error
}

type preferencesService struct {
	prefs  *store.Collection[domain.UserPreferences]
	logger *slog.Logger
}

// NewPreferencesService creates a new PreferencesService backed by the
// given record store.
func NewPreferencesService(rs store.RecordStore, log *slog.Logger) (PreferencesService, error) {
	if rs == nil {
		return nil, domain.NewValidationError("recordStore", "cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &preferencesService{
		prefs:  store.NewCollection[domain.UserPreferences](rs, store.TablePreferences),
		logger: log.With(slog.String("component", "preferences_service")),
	}, nil
}

func (s *preferencesService) Get(ctx context.Context) (*domain.UserPreferences, error) {
	stored, err := s.prefs.GetByID(ctx, domain.PreferencesID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.DefaultPreferences(), nil
		}
		return nil, NewServiceError("preferences", "get", "failed to load preferences", err)
	}
	return stored.Merge(), nil
}

func (s *preferencesService) Update(ctx context.Context, update PreferencesUpdate) (*domain.UserPreferences, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prefs, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if update.Notifications != nil {
		prefs.Notifications = *update.Notifications
	}
	if update.FilterChips != nil {
		prefs.FilterChips = update.FilterChips
	}
	if update.WardrobeView != nil {
		prefs.WardrobeView = *update.WardrobeView
	}
	if update.WardrobeSort != nil {
		prefs.WardrobeSort = *update.WardrobeSort
	}
	if update.InsightsModules != nil {
		prefs.InsightsModules = update.InsightsModules
	}
	if update.Currency != nil {
		prefs.Currency = *update.Currency
	}
	prefs.UpdatedAt = nowUTC()

	if err := s.prefs.Put(ctx, domain.PreferencesID, prefs); err != nil {
		return nil, NewServiceError("preferences", "update", "failed to save preferences", err)
	}

	log.Info("preferences updated")
	return prefs, nil
}

func (s *preferencesService) MergeTagUsage(ctx context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	prefs, err := s.Get(ctx)
	if err != nil {
		return err
	}

	now := nowUTC()
	for _, tag := range tags {
		found := false
		for _, suggestion := range prefs.TagSuggestions {
			if suggestion == tag {
				found = true
				break
			}
		}
		if !found {
			prefs.TagSuggestions = append(prefs.TagSuggestions, tag)
		}

		stat := prefs.TagStats[tag]
		stat.Count++
		stat.LastUsed = now
		prefs.TagStats[tag] = stat
	}
	prefs.UpdatedAt = now

	if err := s.prefs.Put(ctx, domain.PreferencesID, prefs); err != nil {
		return NewServiceError("preferences", "merge_tag_usage", "failed to save preferences", err)
	}

	return nil
}
