package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxWearCount is the wear limit applied when neither a category nor
// any of its ancestors define one.
const DefaultMaxWearCount = 2

// Category-specific validation errors
var (
	// ErrCategoryIDEmpty is returned when a category ID is empty.
	ErrCategoryIDEmpty = fmt.Errorf("%w: category ID cannot be empty", ErrValidation)

	// ErrCategoryNameEmpty is returned when a category name is empty.
	ErrCategoryNameEmpty = fmt.Errorf("%w: category name cannot be empty", ErrValidation)

	// ErrCategoryWearCountNegative is returned when a category's wear limit
	// is zero or negative.
	ErrCategoryWearCountNegative = fmt.Errorf("%w: category max wear count must be positive", ErrValidation)
)

// Category classifies clothes into a forest of types (e.g. Tops > T-Shirts).
// MaxWearCount is optional; when nil the limit is inherited from the nearest
// ancestor that defines one, falling back to DefaultMaxWearCount at the root.
type Category struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	ParentID          *string           `json:"parentId"`
	MaxWearCount      *int              `json:"maxWearCount,omitempty"`
	Icon              string            `json:"icon,omitempty"`
	IsHidden          bool              `json:"isHidden"`
	DefaultProperties map[string]string `json:"defaultProperties,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// NewCategory creates a new root Category with the given name.
// It generates a new ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewCategory(name string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// NewChildCategory creates a new Category under the given parent ID.
// Existence of the parent is the caller's responsibility; the service layer
// validates it before persisting.
func NewChildCategory(parentID, name string) (*Category, error) {
	category, err := NewCategory(name)
	if err != nil {
		return nil, err
	}
	category.ParentID = &parentID
	return category, nil
}

// Validate checks if the Category has valid data.
// Returns an error if any field fails validation.
func (c *Category) Validate() error {
	if c.ID == "" {
		return ErrCategoryIDEmpty
	}

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if c.MaxWearCount != nil && *c.MaxWearCount <= 0 {
		return ErrCategoryWearCountNegative
	}

	return nil
}

// IsSubcategory reports whether the category has a parent.
func (c *Category) IsSubcategory() bool {
	return c.ParentID != nil
}
