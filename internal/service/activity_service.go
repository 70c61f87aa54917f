package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/logger"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// WearCounter applies wear-count increments to clothes. It is satisfied by
// ClothService and substituted by fakes in tests. A missing cloth must
// return (nil, nil), not an error, so ledger side effects skip dangling
// references.
type WearCounter interface {
	IncrementWear(ctx context.Context, id string) (*domain.Cloth, error)
}

// ActivityData carries the caller-supplied fields for logging an activity.
// Kind selects which reference field is read: OutfitID for outfit
// activities, ClothIDs for individual ones.
type ActivityData struct {
	Date     string                `json:"date"`
	Time     string                `json:"time,omitempty"`
	Kind     domain.ActivityKind   `json:"type"`
	OutfitID string                `json:"outfitId,omitempty"`
	ClothIDs []string              `json:"clothIds,omitempty"`
	Status   domain.ActivityStatus `json:"status,omitempty"`
	Notes    string                `json:"notes,omitempty"`
}

// ActivityUpdate carries a partial update; nil fields are left unchanged.
type ActivityUpdate struct {
	Date   *string                `json:"date,omitempty"`
	Time   *string                `json:"time,omitempty"`
	Status *domain.ActivityStatus `json:"status,omitempty"`
	Notes  *string                `json:"notes,omitempty"`
}

// ActivityDetails is the display-ready resolution of an activity log.
// Referents deleted since the log was written appear as placeholders.
type ActivityDetails struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Items    []string `json:"items"`
}

// DeletedPlaceholder stands in for a referent that no longer exists.
const DeletedPlaceholder = "(deleted)"

// ActivityService is the activity ledger: it records wear and plan events
// and drives cloth wear counts as a side effect.
//
// The ledger is only partially reversible: removing a log never rolls back
// wear counts it already applied. Log deletion is not event undo.
type ActivityService interface {
	// Log records an activity. Status defaults to worn and time to the
	// current wall clock. Wear counts are applied to every reachable cloth
	// only when the status is worn, and AppliedWearCounts records that.
	// Returns store.ErrOutfitNotFound / store.ErrClothNotFound when a
	// reference is missing, before anything is written.
	Log(ctx context.Context, data ActivityData) (*domain.ActivityLog, error)

	// Get retrieves an activity log by ID.
	Get(ctx context.Context, id string) (*domain.ActivityLog, error)

	// List returns every activity log.
	List(ctx context.Context) ([]*domain.ActivityLog, error)

	// Update applies a partial update. A transition from planned to worn
	// applies wear counts exactly once, guarded by AppliedWearCounts.
	Update(ctx context.Context, id string, update ActivityUpdate) (*domain.ActivityLog, error)

	// Remove deletes the log without reversing applied wear counts.
	Remove(ctx context.Context, id string) error

	// GroupByDate returns all logs keyed by their YYYY-MM-DD date, each
	// day's logs sorted by creation time.
	GroupByDate(ctx context.Context) (map[string][]*domain.ActivityLog, error)

	// ResolveDetails maps an activity to a display-ready summary,
	// substituting placeholders for deleted referents.
	ResolveDetails(ctx context.Context, id string) (*ActivityDetails, error)
}

type activityService struct {
	activities *store.Collection[domain.ActivityLog]
	outfits    *store.Collection[domain.Outfit]
	clothes    *store.Collection[domain.Cloth]
	wear       WearCounter
	logger     *slog.Logger
}

// NewActivityService creates a new ActivityService. The wear counter
// applies increment side effects.
func NewActivityService(rs store.RecordStore, wear WearCounter, log *slog.Logger) (ActivityService, error) {
	if rs == nil {
		return nil, domain.NewValidationError("recordStore", "cannot be nil", nil)
	}
	if wear == nil {
		return nil, domain.NewValidationError("wearCounter", "cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &activityService{
		activities: store.NewCollection[domain.ActivityLog](rs, store.TableActivityLogs),
		outfits:    store.NewCollection[domain.Outfit](rs, store.TableOutfits),
		clothes:    store.NewCollection[domain.Cloth](rs, store.TableClothes),
		wear:       wear,
		logger:     log.With(slog.String("component", "activity_service")),
	}, nil
}

func (s *activityService) Log(ctx context.Context, data ActivityData) (*domain.ActivityLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Reference validation happens before any write.
	switch data.Kind {
	case domain.ActivityKindOutfit:
		if _, err := s.outfits.GetByID(ctx, data.OutfitID); err != nil {
			if store.IsNotFoundError(err) {
				return nil, fmt.Errorf("%w: %s", store.ErrOutfitNotFound, data.OutfitID)
			}
			return nil, NewServiceError("activity", "log", "failed to load outfit", err)
		}
	case domain.ActivityKindIndividual:
		for _, clothID := range data.ClothIDs {
			if _, err := s.clothes.GetByID(ctx, clothID); err != nil {
				if store.IsNotFoundError(err) {
					return nil, fmt.Errorf("%w: %s", store.ErrClothNotFound, clothID)
				}
				return nil, NewServiceError("activity", "log", "failed to load cloth", err)
			}
		}
	default:
		return nil, domain.ErrActivityKindInvalid
	}

	var entry *domain.ActivityLog
	var err error
	switch data.Kind {
	case domain.ActivityKindOutfit:
		entry, err = domain.NewOutfitActivity(data.Date, data.OutfitID, data.Status)
	case domain.ActivityKindIndividual:
		entry, err = domain.NewIndividualActivity(data.Date, data.ClothIDs, data.Status)
	}
	if err != nil {
		return nil, err
	}
	if data.Time != "" {
		entry.Time = data.Time
	}
	entry.Notes = data.Notes

	if entry.IsWorn() {
		if err := s.applyWearCounts(ctx, entry); err != nil {
			return nil, err
		}
		entry.AppliedWearCounts = true
	}

	if err := s.activities.Put(ctx, entry.ID, entry); err != nil {
		return nil, NewServiceError("activity", "log", "failed to save activity", err)
	}

	log.Info("activity logged",
		slog.String("activity_id", entry.ID),
		slog.String("date", entry.Date),
		slog.String("kind", string(entry.Kind)),
		slog.String("status", string(entry.Status)))
	return entry, nil
}

func (s *activityService) Get(ctx context.Context, id string) (*domain.ActivityLog, error) {
	entry, err := s.activities.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrActivityNotFound, id)
		}
		return nil, NewServiceError("activity", "get", "failed to load activity", err)
	}
	return entry, nil
}

func (s *activityService) List(ctx context.Context) ([]*domain.ActivityLog, error) {
	entries, err := s.activities.GetAll(ctx)
	if err != nil {
		return nil, NewServiceError("activity", "list", "failed to load activities", err)
	}
	return entries, nil
}

func (s *activityService) Update(ctx context.Context, id string, update ActivityUpdate) (*domain.ActivityLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	wasWorn := entry.IsWorn()

	if update.Date != nil {
		entry.Date = *update.Date
	}
	if update.Time != nil {
		entry.Time = *update.Time
	}
	if update.Status != nil {
		entry.Status = *update.Status
	}
	if update.Notes != nil {
		entry.Notes = *update.Notes
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	// A plan becoming a worn event applies wear counts exactly once.
	if !wasWorn && entry.IsWorn() && !entry.AppliedWearCounts {
		if err := s.applyWearCounts(ctx, entry); err != nil {
			return nil, err
		}
		entry.AppliedWearCounts = true
	}

	if err := s.activities.Put(ctx, entry.ID, entry); err != nil {
		return nil, NewServiceError("activity", "update", "failed to save activity", err)
	}

	log.Info("activity updated",
		slog.String("activity_id", id),
		slog.String("status", string(entry.Status)))
	return entry, nil
}

func (s *activityService) Remove(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Applied wear counts stay applied: deleting the journal entry does
	// not undo the wear event it recorded.
	if err := s.activities.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", store.ErrActivityNotFound, id)
		}
		return NewServiceError("activity", "remove", "failed to delete activity", err)
	}

	log.Info("activity removed", slog.String("activity_id", id))
	return nil
}

func (s *activityService) GroupByDate(ctx context.Context) (map[string][]*domain.ActivityLog, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*domain.ActivityLog)
	for _, entry := range entries {
		grouped[entry.Date] = append(grouped[entry.Date], entry)
	}
	for _, day := range grouped {
		sort.Slice(day, func(i, j int) bool { return day[i].CreatedAt.Before(day[j].CreatedAt) })
	}

	return grouped, nil
}

func (s *activityService) ResolveDetails(ctx context.Context, id string) (*ActivityDetails, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &ActivityDetails{
		Subtitle: entry.Date,
		Items:    []string{},
	}
	if entry.Time != "" {
		details.Subtitle = entry.Date + " " + entry.Time
	}

	switch entry.Kind {
	case domain.ActivityKindOutfit:
		clothIDs := []string{}
		outfit, err := s.outfits.GetByID(ctx, entry.OutfitID)
		switch {
		case err == nil:
			details.Title = outfit.Name
			clothIDs = outfit.ClothIDs
		case store.IsNotFoundError(err):
			details.Title = DeletedPlaceholder
		default:
			return nil, NewServiceError("activity", "resolve_details", "failed to load outfit", err)
		}
		if err := s.resolveClothNames(ctx, clothIDs, details); err != nil {
			return nil, err
		}
	case domain.ActivityKindIndividual:
		details.Title = "Individual items"
		if err := s.resolveClothNames(ctx, entry.ClothIDs, details); err != nil {
			return nil, err
		}
	}

	return details, nil
}

func (s *activityService) resolveClothNames(ctx context.Context, clothIDs []string, details *ActivityDetails) error {
	for _, clothID := range clothIDs {
		cloth, err := s.clothes.GetByID(ctx, clothID)
		switch {
		case err == nil:
			details.Items = append(details.Items, cloth.Name)
		case store.IsNotFoundError(err):
			details.Items = append(details.Items, DeletedPlaceholder)
		default:
			return NewServiceError("activity", "resolve_details", "failed to load cloth", err)
		}
	}
	return nil
}

// applyWearCounts increments every cloth reachable from the activity:
// the outfit's clothes for outfit activities, the log's own cloth list
// for individual ones. Dangling references are skipped silently.
func (s *activityService) applyWearCounts(ctx context.Context, entry *domain.ActivityLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var clothIDs []string
	switch entry.Kind {
	case domain.ActivityKindOutfit:
		outfit, err := s.outfits.GetByID(ctx, entry.OutfitID)
		if err != nil {
			if store.IsNotFoundError(err) {
				log.Warn("wear counts skipped, outfit missing",
					slog.String("activity_id", entry.ID),
					slog.String("outfit_id", entry.OutfitID))
				return nil
			}
			return NewServiceError("activity", "apply_wear_counts", "failed to load outfit", err)
		}
		clothIDs = outfit.ClothIDs
	case domain.ActivityKindIndividual:
		clothIDs = entry.ClothIDs
	}

	for _, clothID := range clothIDs {
		if _, err := s.wear.IncrementWear(ctx, clothID); err != nil {
			return NewServiceError("activity", "apply_wear_counts", "failed to increment wear", err)
		}
	}

	return nil
}
