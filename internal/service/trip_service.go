package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/logger"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// TripData carries the caller-supplied fields for creating a trip.
type TripData struct {
	Name        string `json:"name"`
	Destination string `json:"destination,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// TripUpdate carries a partial update; nil fields are left unchanged.
type TripUpdate struct {
	Name        *string `json:"name,omitempty"`
	Destination *string `json:"destination,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// TripService manages packing lists and the reusable essentials they
// reference. References are validated when added; nothing maintains them
// afterward.
type TripService interface {
	// Create adds a new trip.
	Create(ctx context.Context, data TripData) (*domain.Trip, error)

	// Get retrieves a trip by ID.
	Get(ctx context.Context, id string) (*domain.Trip, error)

	// List returns every trip.
	List(ctx context.Context) ([]*domain.Trip, error)

	// Update applies a partial update.
	Update(ctx context.Context, id string, update TripUpdate) (*domain.Trip, error)

	// Delete removes a trip. Essentials are reusable and survive.
	Delete(ctx context.Context, id string) error

	// AddCloth adds a cloth reference to the trip's packing list.
	// Returns store.ErrClothNotFound if the cloth does not exist.
	AddCloth(ctx context.Context, tripID, clothID string) (*domain.Trip, error)

	// RemoveCloth removes a cloth reference; absent references are no-ops.
	RemoveCloth(ctx context.Context, tripID, clothID string) (*domain.Trip, error)

	// AddOutfit adds an outfit reference to the trip's packing list.
	// Returns store.ErrOutfitNotFound if the outfit does not exist.
	AddOutfit(ctx context.Context, tripID, outfitID string) (*domain.Trip, error)

	// RemoveOutfit removes an outfit reference; absent references are no-ops.
	RemoveOutfit(ctx context.Context, tripID, outfitID string) (*domain.Trip, error)

	// AddEssential adds an essential reference to the trip's packing list.
	// Returns store.ErrEssentialNotFound if the essential does not exist.
	AddEssential(ctx context.Context, tripID, essentialID string) (*domain.Trip, error)

	// RemoveEssential removes an essential reference; absent references are
	// no-ops.
	RemoveEssential(ctx context.Context, tripID, essentialID string) (*domain.Trip, error)

	// CreateEssential adds a reusable packing-list label.
	CreateEssential(ctx context.Context, name, icon string) (*domain.Essential, error)

	// ListEssentials returns every essential.
	ListEssentials(ctx context.Context) ([]*domain.Essential, error)

	// DeleteEssential removes an essential. Trips referencing it keep their
	// dangling reference.
	DeleteEssential(ctx context.Context, id string) error
}

type tripService struct {
	trips      *store.Collection[domain.Trip]
	clothes    *store.Collection[domain.Cloth]
	outfits    *store.Collection[domain.Outfit]
	essentials *store.Collection[domain.Essential]
	logger     *slog.Logger
}

// NewTripService creates a new TripService backed by the given record
// store.
func NewTripService(rs store.RecordStore, log *slog.Logger) (TripService, error) {
	if rs == nil {
		return nil, domain.NewValidationError("recordStore", "cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &tripService{
		trips:      store.NewCollection[domain.Trip](rs, store.TableTrips),
		clothes:    store.NewCollection[domain.Cloth](rs, store.TableClothes),
		outfits:    store.NewCollection[domain.Outfit](rs, store.TableOutfits),
		essentials: store.NewCollection[domain.Essential](rs, store.TableEssentials),
		logger:     log.With(slog.String("component", "trip_service")),
	}, nil
}

func (s *tripService) Create(ctx context.Context, data TripData) (*domain.Trip, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	trip, err := domain.NewTrip(data.Name)
	if err != nil {
		return nil, err
	}
	trip.Destination = data.Destination
	trip.StartDate = data.StartDate
	trip.EndDate = data.EndDate
	trip.Notes = data.Notes

	if err := s.trips.Put(ctx, trip.ID, trip); err != nil {
		return nil, NewServiceError("trip", "create", "failed to save trip", err)
	}

	log.Info("trip created",
		slog.String("trip_id", trip.ID),
		slog.String("name", trip.Name))
	return trip, nil
}

func (s *tripService) Get(ctx context.Context, id string) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrTripNotFound, id)
		}
		return nil, NewServiceError("trip", "get", "failed to load trip", err)
	}
	return trip, nil
}

func (s *tripService) List(ctx context.Context) ([]*domain.Trip, error) {
	trips, err := s.trips.GetAll(ctx)
	if err != nil {
		return nil, NewServiceError("trip", "list", "failed to load trips", err)
	}
	return trips, nil
}

func (s *tripService) Update(ctx context.Context, id string, update TripUpdate) (*domain.Trip, error) {
	trip, err := s.trips.Update(ctx, id, func(t *domain.Trip) error {
		if update.Name != nil {
			t.Name = *update.Name
		}
		if update.Destination != nil {
			t.Destination = *update.Destination
		}
		if update.StartDate != nil {
			t.StartDate = *update.StartDate
		}
		if update.EndDate != nil {
			t.EndDate = *update.EndDate
		}
		if update.Notes != nil {
			t.Notes = *update.Notes
		}
		t.UpdatedAt = nowUTC()
		return t.Validate()
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrTripNotFound, id)
		}
		return nil, err
	}
	return trip, nil
}

func (s *tripService) Delete(ctx context.Context, id string) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", store.ErrTripNotFound, id)
		}
		return NewServiceError("trip", "delete", "failed to delete trip", err)
	}
	return nil
}

func (s *tripService) AddCloth(ctx context.Context, tripID, clothID string) (*domain.Trip, error) {
	if _, err := s.clothes.GetByID(ctx, clothID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrClothNotFound, clothID)
		}
		return nil, NewServiceError("trip", "add_cloth", "failed to load cloth", err)
	}
	return s.mutateRefs(ctx, tripID, func(t *domain.Trip) {
		t.ClothIDs = appendRef(t.ClothIDs, clothID)
	})
}

func (s *tripService) RemoveCloth(ctx context.Context, tripID, clothID string) (*domain.Trip, error) {
	return s.mutateRefs(ctx, tripID, func(t *domain.Trip) {
		t.ClothIDs = removeRef(t.ClothIDs, clothID)
	})
}

func (s *tripService) AddOutfit(ctx context.Context, tripID, outfitID string) (*domain.Trip, error) {
	if _, err := s.outfits.GetByID(ctx, outfitID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrOutfitNotFound, outfitID)
		}
		return nil, NewServiceError("trip", "add_outfit", "failed to load outfit", err)
	}
	return s.mutateRefs(ctx, tripID, func(t *domain.Trip) {
		t.OutfitIDs = appendRef(t.OutfitIDs, outfitID)
	})
}

func (s *tripService) RemoveOutfit(ctx context.Context, tripID, outfitID string) (*domain.Trip, error) {
	return s.mutateRefs(ctx, tripID, func(t *domain.Trip) {
		t.OutfitIDs = removeRef(t.OutfitIDs, outfitID)
	})
}

func (s *tripService) AddEssential(ctx context.Context, tripID, essentialID string) (*domain.Trip, error) {
	if _, err := s.essentials.GetByID(ctx, essentialID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrEssentialNotFound, essentialID)
		}
		return nil, NewServiceError("trip", "add_essential", "failed to load essential", err)
	}
	return s.mutateRefs(ctx, tripID, func(t *domain.Trip) {
		t.EssentialIDs = appendRef(t.EssentialIDs, essentialID)
	})
}

func (s *tripService) RemoveEssential(ctx context.Context, tripID, essentialID string) (*domain.Trip, error) {
	return s.mutateRefs(ctx, tripID, func(t *domain.Trip) {
		t.EssentialIDs = removeRef(t.EssentialIDs, essentialID)
	})
}

func (s *tripService) CreateEssential(ctx context.Context, name, icon string) (*domain.Essential, error) {
	essential, err := domain.NewEssential(name)
	if err != nil {
		return nil, err
	}
	essential.Icon = icon

	if err := s.essentials.Put(ctx, essential.ID, essential); err != nil {
		return nil, NewServiceError("trip", "create_essential", "failed to save essential", err)
	}
	return essential, nil
}

func (s *tripService) ListEssentials(ctx context.Context) ([]*domain.Essential, error) {
	essentials, err := s.essentials.GetAll(ctx)
	if err != nil {
		return nil, NewServiceError("trip", "list_essentials", "failed to load essentials", err)
	}
	return essentials, nil
}

func (s *tripService) DeleteEssential(ctx context.Context, id string) error {
	if err := s.essentials.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", store.ErrEssentialNotFound, id)
		}
		return NewServiceError("trip", "delete_essential", "failed to delete essential", err)
	}
	return nil
}

func (s *tripService) mutateRefs(ctx context.Context, tripID string, mutate func(*domain.Trip)) (*domain.Trip, error) {
	trip, err := s.trips.Update(ctx, tripID, func(t *domain.Trip) error {
		mutate(t)
		t.UpdatedAt = nowUTC()
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrTripNotFound, tripID)
		}
		return nil, err
	}
	return trip, nil
}

func appendRef(refs []string, id string) []string {
	for _, ref := range refs {
		if ref == id {
			return refs
		}
	}
	return append(refs, id)
}

func removeRef(refs []string, id string) []string {
	out := refs[:0]
	for _, ref := range refs {
		if ref != id {
			out = append(out, ref)
		}
	}
	return out
}
