package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/logger"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// MaxWearResolver resolves the effective wear limit for a category. It is
// satisfied by CategoryService and substituted by fakes in tests.
type MaxWearResolver interface {
	ResolveMaxWearCount(ctx context.Context, categoryID string) (int, error)
}

// ClothData carries the caller-supplied fields for creating a cloth.
type ClothData struct {
	Name             string  `json:"name"`
	CategoryID       string  `json:"categoryId"`
	Cost             float64 `json:"cost,omitempty"`
	RequiresPressing bool    `json:"requiresPressing,omitempty"`
	Favorite         bool    `json:"favorite,omitempty"`
	Brand            string  `json:"brand,omitempty"`
	Color            string  `json:"color,omitempty"`
	Fabric           string  `json:"fabric,omitempty"`
	Size             string  `json:"size,omitempty"`
	Season           string  `json:"season,omitempty"`
	ImageURL         string  `json:"imageUrl,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

// ClothUpdate carries a partial update; nil fields are left unchanged.
// Status and wear counts are deliberately absent: those move only through
// the wear and laundry operations.
type ClothUpdate struct {
	Name             *string  `json:"name,omitempty"`
	CategoryID       *string  `json:"categoryId,omitempty"`
	Cost             *float64 `json:"cost,omitempty"`
	RequiresPressing *bool    `json:"requiresPressing,omitempty"`
	Favorite         *bool    `json:"favorite,omitempty"`
	IsArchived       *bool    `json:"isArchived,omitempty"`
	Brand            *string  `json:"brand,omitempty"`
	Color            *string  `json:"color,omitempty"`
	Fabric           *string  `json:"fabric,omitempty"`
	Size             *string  `json:"size,omitempty"`
	Season           *string  `json:"season,omitempty"`
	ImageURL         *string  `json:"imageUrl,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

// ClothService manages wardrobe items and their wear-count state machine.
// Status stays consistent with CurrentWearCount against the resolved wear
// limit of the item's category.
type ClothService interface {
	// Create adds a new cloth, clean with zero wear counts.
	// Returns store.ErrCategoryNotFound if the category does not exist.
	Create(ctx context.Context, data ClothData) (*domain.Cloth, error)

	// Get retrieves a cloth by ID.
	Get(ctx context.Context, id string) (*domain.Cloth, error)

	// List returns every cloth.
	List(ctx context.Context) ([]*domain.Cloth, error)

	// Update applies a partial update. Moving the cloth to another category
	// validates the category exists first.
	Update(ctx context.Context, id string, update ClothUpdate) (*domain.Cloth, error)

	// Delete removes a cloth. Outfits and activity logs referencing it are
	// left untouched; readers substitute placeholders for dangling refs.
	Delete(ctx context.Context, id string) error

	// IncrementWear adds one wear. When the new count reaches the resolved
	// wear limit the cloth turns dirty, otherwise status is unchanged.
	// A missing cloth is not an error: it returns (nil, nil) so ledger
	// side effects skip dangling references silently.
	IncrementWear(ctx context.Context, id string) (*domain.Cloth, error)

	// DecrementWear removes one wear, flooring at zero. A count below the
	// resolved limit turns the cloth clean, at or above keeps it dirty.
	// Like IncrementWear, a missing cloth returns (nil, nil).
	//
	// A needs_pressing item whose count drops below the limit comes back
	// clean, skipping the press step. Inherited behavior, kept on purpose.
	DecrementWear(ctx context.Context, id string) (*domain.Cloth, error)
}

type clothService struct {
	clothes    *store.Collection[domain.Cloth]
	categories *store.Collection[domain.Category]
	resolver   MaxWearResolver
	audit      AuditService
	logger     *slog.Logger
}

// NewClothService creates a new ClothService. The resolver supplies
// category wear limits; the audit service may be nil.
func NewClothService(rs store.RecordStore, resolver MaxWearResolver, audit AuditService, log *slog.Logger) (ClothService, error) {
	if rs == nil {
		return nil, domain.NewValidationError("recordStore", "cannot be nil", nil)
	}
	if resolver == nil {
		return nil, domain.NewValidationError("resolver", "cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &clothService{
		clothes:    store.NewCollection[domain.Cloth](rs, store.TableClothes),
		categories: store.NewCollection[domain.Category](rs, store.TableCategories),
		resolver:   resolver,
		audit:      audit,
		logger:     log.With(slog.String("component", "cloth_service")),
	}, nil
}

func (s *clothService) Create(ctx context.Context, data ClothData) (*domain.Cloth, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.categories.GetByID(ctx, data.CategoryID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrCategoryNotFound, data.CategoryID)
		}
		return nil, NewServiceError("cloth", "create", "failed to load category", err)
	}

	cloth, err := domain.NewCloth(data.Name, data.CategoryID)
	if err != nil {
		return nil, err
	}
	cloth.Cost = data.Cost
	cloth.RequiresPressing = data.RequiresPressing
	cloth.Favorite = data.Favorite
	cloth.Brand = data.Brand
	cloth.Color = data.Color
	cloth.Fabric = data.Fabric
	cloth.Size = data.Size
	cloth.Season = data.Season
	cloth.ImageURL = data.ImageURL
	cloth.Notes = data.Notes

	if err := cloth.Validate(); err != nil {
		return nil, err
	}

	if err := s.clothes.Put(ctx, cloth.ID, cloth); err != nil {
		return nil, NewServiceError("cloth", "create", "failed to save cloth", err)
	}

	log.Info("cloth created",
		slog.String("cloth_id", cloth.ID),
		slog.String("category_id", cloth.CategoryID),
		slog.String("name", cloth.Name))
	return cloth, nil
}

func (s *clothService) Get(ctx context.Context, id string) (*domain.Cloth, error) {
	cloth, err := s.clothes.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrClothNotFound, id)
		}
		return nil, NewServiceError("cloth", "get", "failed to load cloth", err)
	}
	return cloth, nil
}

func (s *clothService) List(ctx context.Context) ([]*domain.Cloth, error) {
	clothes, err := s.clothes.GetAll(ctx)
	if err != nil {
		return nil, NewServiceError("cloth", "list", "failed to load clothes", err)
	}
	return clothes, nil
}

func (s *clothService) Update(ctx context.Context, id string, update ClothUpdate) (*domain.Cloth, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *update.CategoryID); err != nil {
			if store.IsNotFoundError(err) {
				return nil, fmt.Errorf("%w: %s", store.ErrCategoryNotFound, *update.CategoryID)
			}
			return nil, NewServiceError("cloth", "update", "failed to load category", err)
		}
	}

	cloth, err := s.clothes.Update(ctx, id, func(c *domain.Cloth) error {
		if update.Name != nil {
			c.Name = *update.Name
		}
		if update.CategoryID != nil {
			c.CategoryID = *update.CategoryID
		}
		if update.Cost != nil {
			c.Cost = *update.Cost
		}
		if update.RequiresPressing != nil {
			c.RequiresPressing = *update.RequiresPressing
		}
		if update.Favorite != nil {
			c.Favorite = *update.Favorite
		}
		if update.IsArchived != nil {
			c.IsArchived = *update.IsArchived
		}
		if update.Brand != nil {
			c.Brand = *update.Brand
		}
		if update.Color != nil {
			c.Color = *update.Color
		}
		if update.Fabric != nil {
			c.Fabric = *update.Fabric
		}
		if update.Size != nil {
			c.Size = *update.Size
		}
		if update.Season != nil {
			c.Season = *update.Season
		}
		if update.ImageURL != nil {
			c.ImageURL = *update.ImageURL
		}
		if update.Notes != nil {
			c.Notes = *update.Notes
		}
		c.UpdatedAt = nowUTC()
		return c.Validate()
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrClothNotFound, id)
		}
		return nil, err
	}

	log.Info("cloth updated", slog.String("cloth_id", id))
	return cloth, nil
}

func (s *clothService) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.clothes.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", store.ErrClothNotFound, id)
		}
		return NewServiceError("cloth", "delete", "failed to delete cloth", err)
	}

	if s.audit != nil {
		s.audit.Record(ctx, "delete", "cloth", id, "")
	}
	log.Info("cloth deleted", slog.String("cloth_id", id))
	return nil
}

func (s *clothService) IncrementWear(ctx context.Context, id string) (*domain.Cloth, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cloth, err := s.clothes.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("increment wear skipped, cloth missing", slog.String("cloth_id", id))
			return nil, nil
		}
		return nil, NewServiceError("cloth", "increment_wear", "failed to load cloth", err)
	}

	maxWear, err := s.resolver.ResolveMaxWearCount(ctx, cloth.CategoryID)
	if err != nil {
		return nil, NewServiceError("cloth", "increment_wear", "failed to resolve wear limit", err)
	}

	cloth.CurrentWearCount++
	cloth.TotalWearCount++
	if cloth.CurrentWearCount >= maxWear {
		cloth.Status = domain.ClothStatusDirty
	}
	cloth.UpdatedAt = nowUTC()

	if err := s.clothes.Put(ctx, cloth.ID, cloth); err != nil {
		return nil, NewServiceError("cloth", "increment_wear", "failed to save cloth", err)
	}

	log.Debug("wear incremented",
		slog.String("cloth_id", id),
		slog.Int("current_wear_count", cloth.CurrentWearCount),
		slog.String("status", string(cloth.Status)))
	return cloth, nil
}

func (s *clothService) DecrementWear(ctx context.Context, id string) (*domain.Cloth, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cloth, err := s.clothes.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("decrement wear skipped, cloth missing", slog.String("cloth_id", id))
			return nil, nil
		}
		return nil, NewServiceError("cloth", "decrement_wear", "failed to load cloth", err)
	}

	maxWear, err := s.resolver.ResolveMaxWearCount(ctx, cloth.CategoryID)
	if err != nil {
		return nil, NewServiceError("cloth", "decrement_wear", "failed to resolve wear limit", err)
	}

	if cloth.CurrentWearCount > 0 {
		cloth.CurrentWearCount--
	}
	if cloth.TotalWearCount > 0 {
		cloth.TotalWearCount--
	}
	if cloth.CurrentWearCount < maxWear {
		cloth.Status = domain.ClothStatusClean
	} else {
		cloth.Status = domain.ClothStatusDirty
	}
	cloth.UpdatedAt = nowUTC()

	if err := s.clothes.Put(ctx, cloth.ID, cloth); err != nil {
		return nil, NewServiceError("cloth", "decrement_wear", "failed to save cloth", err)
	}

	log.Debug("wear decremented",
		slog.String("cloth_id", id),
		slog.Int("current_wear_count", cloth.CurrentWearCount),
		slog.String("status", string(cloth.Status)))
	return cloth, nil
}
