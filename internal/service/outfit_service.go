package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/logger"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// OutfitData carries the caller-supplied fields for creating an outfit.
type OutfitData struct {
	Name     string   `json:"name"`
	ClothIDs []string `json:"clothIds"`
	Tags     []string `json:"tags,omitempty"`
	Occasion string   `json:"occasion,omitempty"`
	Favorite bool     `json:"favorite,omitempty"`
}

// OutfitUpdate carries a partial update; nil fields are left unchanged.
type OutfitUpdate struct {
	Name     *string  `json:"name,omitempty"`
	ClothIDs []string `json:"clothIds,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Occasion *string  `json:"occasion,omitempty"`
	Favorite *bool    `json:"favorite,omitempty"`
}

// OutfitService manages named cloth groupings and the tag-suggestion
// bookkeeping that rides along with every outfit write.
type OutfitService interface {
	// Create validates every cloth reference, normalizes tags, persists the
	// outfit, then merges its tags into the preference suggestion set and
	// per-tag usage stats. The stat merge is part of the outfit write, not
	// an optional afterthought.
	// Returns store.ErrClothNotFound naming the first missing cloth ID.
	Create(ctx context.Context, data OutfitData) (*domain.Outfit, error)

	// Get retrieves an outfit by ID.
	Get(ctx context.Context, id string) (*domain.Outfit, error)

	// List returns every outfit.
	List(ctx context.Context) ([]*domain.Outfit, error)

	// Update applies a partial update. When tags are present they are
	// re-normalized and the suggestion/stat merge runs again over the
	// outfit's full current tag set, so counts accumulate for unchanged
	// tags on every update that touches tags.
	Update(ctx context.Context, id string, update OutfitUpdate) (*domain.Outfit, error)

	// Delete removes an outfit. Activity logs referencing it are left
	// untouched; readers substitute placeholders.
	Delete(ctx context.Context, id string) error
}

type outfitService struct {
	outfits *store.Collection[domain.Outfit]
	clothes *store.Collection[domain.Cloth]
	prefs   PreferencesService
	audit   AuditService
	logger  *slog.Logger
}

// NewOutfitService creates a new OutfitService. The preferences service
// receives tag usage merges; the audit service may be nil.
func NewOutfitService(rs store.RecordStore, prefs PreferencesService, audit AuditService, log *slog.Logger) (OutfitService, error) {
	if rs == nil {
		return nil, domain.NewValidationError("recordStore", "cannot be nil", nil)
	}
	if prefs == nil {
		return nil, domain.NewValidationError("preferences", "cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &outfitService{
		outfits: store.NewCollection[domain.Outfit](rs, store.TableOutfits),
		clothes: store.NewCollection[domain.Cloth](rs, store.TableClothes),
		prefs:   prefs,
		audit:   audit,
		logger:  log.With(slog.String("component", "outfit_service")),
	}, nil
}

func (s *outfitService) Create(ctx context.Context, data OutfitData) (*domain.Outfit, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validateClothRefs(ctx, data.ClothIDs); err != nil {
		return nil, err
	}

	outfit, err := domain.NewOutfit(data.Name, data.ClothIDs, data.Tags)
	if err != nil {
		return nil, err
	}
	outfit.Occasion = data.Occasion
	outfit.Favorite = data.Favorite

	if err := s.outfits.Put(ctx, outfit.ID, outfit); err != nil {
		return nil, NewServiceError("outfit", "create", "failed to save outfit", err)
	}

	if err := s.prefs.MergeTagUsage(ctx, outfit.Tags); err != nil {
		// The outfit itself is saved; surface the stat merge failure so the
		// caller knows the write was only partially applied.
		return nil, NewServiceError("outfit", "create", "outfit saved but tag stats merge failed", err)
	}

	log.Info("outfit created",
		slog.String("outfit_id", outfit.ID),
		slog.String("name", outfit.Name),
		slog.Int("cloth_count", len(outfit.ClothIDs)))
	return outfit, nil
}

func (s *outfitService) Get(ctx context.Context, id string) (*domain.Outfit, error) {
	outfit, err := s.outfits.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrOutfitNotFound, id)
		}
		return nil, NewServiceError("outfit", "get", "failed to load outfit", err)
	}
	return outfit, nil
}

func (s *outfitService) List(ctx context.Context) ([]*domain.Outfit, error) {
	outfits, err := s.outfits.GetAll(ctx)
	if err != nil {
		return nil, NewServiceError("outfit", "list", "failed to load outfits", err)
	}
	return outfits, nil
}

func (s *outfitService) Update(ctx context.Context, id string, update OutfitUpdate) (*domain.Outfit, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.ClothIDs != nil {
		if err := s.validateClothRefs(ctx, update.ClothIDs); err != nil {
			return nil, err
		}
	}

	tagsTouched := update.Tags != nil

	outfit, err := s.outfits.Update(ctx, id, func(o *domain.Outfit) error {
		if update.Name != nil {
			o.Name = *update.Name
		}
		if update.ClothIDs != nil {
			o.ClothIDs = update.ClothIDs
		}
		if tagsTouched {
			o.Tags = domain.NormalizeTags(update.Tags)
		}
		if update.Occasion != nil {
			o.Occasion = *update.Occasion
		}
		if update.Favorite != nil {
			o.Favorite = *update.Favorite
		}
		o.UpdatedAt = nowUTC()
		return o.Validate()
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrOutfitNotFound, id)
		}
		return nil, err
	}

	if tagsTouched {
		if err := s.prefs.MergeTagUsage(ctx, outfit.Tags); err != nil {
			return nil, NewServiceError("outfit", "update", "outfit saved but tag stats merge failed", err)
		}
	}

	log.Info("outfit updated", slog.String("outfit_id", id))
	return outfit, nil
}

func (s *outfitService) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.outfits.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", store.ErrOutfitNotFound, id)
		}
		return NewServiceError("outfit", "delete", "failed to delete outfit", err)
	}

	if s.audit != nil {
		s.audit.Record(ctx, "delete", "outfit", id, "")
	}
	log.Info("outfit deleted", slog.String("outfit_id", id))
	return nil
}

// validateClothRefs confirms every referenced cloth exists before any
// write. The first missing reference fails the whole operation.
func (s *outfitService) validateClothRefs(ctx context.Context, clothIDs []string) error {
	for _, clothID := range clothIDs {
		if _, err := s.clothes.GetByID(ctx, clothID); err != nil {
			if store.IsNotFoundError(err) {
				return fmt.Errorf("%w: %s", store.ErrClothNotFound, clothID)
			}
			return NewServiceError("outfit", "validate_cloth_refs", "failed to load cloth", err)
		}
	}
	return nil
}
