package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/logger"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// ErrCategoryCycle indicates a re-parent operation would create a cycle in
// the category tree.
var ErrCategoryCycle = errors.New("category parent chain would form a cycle")

// CategoryData carries the caller-supplied fields for creating a category.
type CategoryData struct {
	Name              string            `json:"name"`
	MaxWearCount      *int              `json:"maxWearCount,omitempty"`
	Icon              string            `json:"icon,omitempty"`
	IsHidden          bool              `json:"isHidden,omitempty"`
	DefaultProperties map[string]string `json:"defaultProperties,omitempty"`
}

// CategoryUpdate carries a partial update; nil fields are left unchanged.
// PromoteToRoot clears the parent link; ClearMaxWearCount removes the
// category's own wear limit so it inherits again.
type CategoryUpdate struct {
	Name              *string           `json:"name,omitempty"`
	ParentID          *string           `json:"parentId,omitempty"`
	PromoteToRoot     bool              `json:"promoteToRoot,omitempty"`
	MaxWearCount      *int              `json:"maxWearCount,omitempty"`
	ClearMaxWearCount bool              `json:"clearMaxWearCount,omitempty"`
	Icon              *string           `json:"icon,omitempty"`
	IsHidden          *bool             `json:"isHidden,omitempty"`
	DefaultProperties map[string]string `json:"defaultProperties,omitempty"`
}

// CategoryService manages the category forest and its inheritable wear
// policy.
type CategoryService interface {
	// AddRoot creates a new top-level category.
	AddRoot(ctx context.Context, data CategoryData) (*domain.Category, error)

	// AddChild creates a new category under parentID.
	// Returns store.ErrCategoryNotFound if the parent does not exist.
	AddChild(ctx context.Context, parentID string, data CategoryData) (*domain.Category, error)

	// Get retrieves a category by ID.
	Get(ctx context.Context, id string) (*domain.Category, error)

	// List returns every category.
	List(ctx context.Context) ([]*domain.Category, error)

	// Update applies a partial update. Re-parenting validates that the new
	// parent exists and that the move keeps the forest acyclic.
	Update(ctx context.Context, id string, update CategoryUpdate) (*domain.Category, error)

	// Remove deletes a category.
	// Returns store.ErrCategoryHasChildren while subcategories reference it.
	Remove(ctx context.Context, id string) error

	// ResolveMaxWearCount returns the category's wear limit, walking up the
	// parent chain to the nearest ancestor that defines one and defaulting
	// to domain.DefaultMaxWearCount. A missing category resolves to the
	// default so wear bookkeeping stays robust against dangling references.
	ResolveMaxWearCount(ctx context.Context, id string) (int, error)
}

type categoryService struct {
	categories *store.Collection[domain.Category]
	audit      AuditService
	logger     *slog.Logger
}

// NewCategoryService creates a new CategoryService backed by the given
// record store. The audit service may be nil.
func NewCategoryService(rs store.RecordStore, audit AuditService, log *slog.Logger) (CategoryService, error) {
	if rs == nil {
		return nil, domain.NewValidationError("recordStore", "cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &categoryService{
		categories: store.NewCollection[domain.Category](rs, store.TableCategories),
		audit:      audit,
		logger:     log.With(slog.String("component", "category_service")),
	}, nil
}

func (s *categoryService) AddRoot(ctx context.Context, data CategoryData) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.NewCategory(data.Name)
	if err != nil {
		return nil, err
	}
	applyCategoryData(category, data)

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categories.Put(ctx, category.ID, category); err != nil {
		return nil, NewServiceError("category", "add_root", "failed to save category", err)
	}

	log.Info("category created",
		slog.String("category_id", category.ID),
		slog.String("name", category.Name))
	return category, nil
}

func (s *categoryService) AddChild(ctx context.Context, parentID string, data CategoryData) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.categories.GetByID(ctx, parentID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrCategoryNotFound, parentID)
		}
		return nil, NewServiceError("category", "add_child", "failed to load parent", err)
	}

	category, err := domain.NewChildCategory(parentID, data.Name)
	if err != nil {
		return nil, err
	}
	applyCategoryData(category, data)

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categories.Put(ctx, category.ID, category); err != nil {
		return nil, NewServiceError("category", "add_child", "failed to save category", err)
	}

	log.Info("subcategory created",
		slog.String("category_id", category.ID),
		slog.String("parent_id", parentID),
		slog.String("name", category.Name))
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrCategoryNotFound, id)
		}
		return nil, NewServiceError("category", "get", "failed to load category", err)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, NewServiceError("category", "list", "failed to load categories", err)
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id string, update CategoryUpdate) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Re-parent validation reads the whole forest before any write.
	if update.ParentID != nil {
		if err := s.validateReparent(ctx, id, *update.ParentID); err != nil {
			return nil, err
		}
	}

	category, err := s.categories.Update(ctx, id, func(c *domain.Category) error {
		if update.Name != nil {
			c.Name = *update.Name
		}
		if update.PromoteToRoot {
			c.ParentID = nil
		} else if update.ParentID != nil {
			parentID := *update.ParentID
			c.ParentID = &parentID
		}
		if update.ClearMaxWearCount {
			c.MaxWearCount = nil
		} else if update.MaxWearCount != nil {
			limit := *update.MaxWearCount
			c.MaxWearCount = &limit
		}
		if update.Icon != nil {
			c.Icon = *update.Icon
		}
		if update.IsHidden != nil {
			c.IsHidden = *update.IsHidden
		}
		if update.DefaultProperties != nil {
			c.DefaultProperties = update.DefaultProperties
		}
		c.UpdatedAt = nowUTC()
		return c.Validate()
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrCategoryNotFound, id)
		}
		return nil, err
	}

	log.Info("category updated", slog.String("category_id", id))
	return category, nil
}

func (s *categoryService) Remove(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return NewServiceError("category", "remove", "failed to load categories", err)
	}

	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == id {
			log.Warn("category deletion blocked by child",
				slog.String("category_id", id),
				slog.String("child_id", c.ID))
			return fmt.Errorf("%w: %s", store.ErrCategoryHasChildren, id)
		}
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", store.ErrCategoryNotFound, id)
		}
		return NewServiceError("category", "remove", "failed to delete category", err)
	}

	s.auditBestEffort(ctx, "delete", "category", id, "")
	log.Info("category deleted", slog.String("category_id", id))
	return nil
}

func (s *categoryService) ResolveMaxWearCount(ctx context.Context, id string) (int, error) {
	// Visited guards hold the walk together even if a legacy store contains
	// a cycle; resolution then falls back to the default.
	visited := make(map[string]struct{})
	current := id

	for current != "" {
		if _, ok := visited[current]; ok {
			s.logger.Warn("cycle detected while resolving wear limit",
				slog.String("category_id", id))
			break
		}
		visited[current] = struct{}{}

		category, err := s.categories.GetByID(ctx, current)
		if err != nil {
			if store.IsNotFoundError(err) {
				break
			}
			return 0, NewServiceError("category", "resolve_max_wear_count", "failed to load category", err)
		}

		if category.MaxWearCount != nil {
			return *category.MaxWearCount, nil
		}
		if category.ParentID == nil {
			break
		}
		current = *category.ParentID
	}

	return domain.DefaultMaxWearCount, nil
}

// validateReparent checks that the new parent exists and that the move
// keeps the forest acyclic, before anything is written.
func (s *categoryService) validateReparent(ctx context.Context, id, newParentID string) error {
	if newParentID == id {
		return fmt.Errorf("%w: %s", ErrCategoryCycle, id)
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return NewServiceError("category", "update", "failed to load categories", err)
	}

	arena := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		arena[c.ID] = c
	}

	if _, ok := arena[newParentID]; !ok {
		return fmt.Errorf("%w: %s", store.ErrCategoryNotFound, newParentID)
	}

	// Walk up from the new parent; reaching id means id would become its
	// own ancestor. The visited set terminates the walk if the stored
	// forest already contains a cycle.
	visited := make(map[string]struct{})
	current := newParentID
	for {
		if _, ok := visited[current]; ok {
			return nil
		}
		visited[current] = struct{}{}

		parent, ok := arena[current]
		if !ok || parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == id {
			return fmt.Errorf("%w: %s", ErrCategoryCycle, id)
		}
		current = *parent.ParentID
	}
}

func (s *categoryService) auditBestEffort(ctx context.Context, action, entity, entityID, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, action, entity, entityID, detail)
}

func applyCategoryData(category *domain.Category, data CategoryData) {
	if data.MaxWearCount != nil {
		limit := *data.MaxWearCount
		category.MaxWearCount = &limit
	}
	category.Icon = data.Icon
	category.IsHidden = data.IsHidden
	if data.DefaultProperties != nil {
		category.DefaultProperties = data.DefaultProperties
	}
}
