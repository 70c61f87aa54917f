package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ClothStatus represents the laundry state of a cloth.
type ClothStatus string

// Possible cloth status values
const (
	ClothStatusClean         ClothStatus = "clean"
	ClothStatusDirty         ClothStatus = "dirty"
	ClothStatusNeedsPressing ClothStatus = "needs_pressing"
)

// IsValid reports whether the status is one of the known enum values.
func (s ClothStatus) IsValid() bool {
	switch s {
	case ClothStatusClean, ClothStatusDirty, ClothStatusNeedsPressing:
		return true
	}
	return false
}

// Common validation errors for Cloth
var (
	ErrClothIDEmpty         = fmt.Errorf("%w: cloth ID cannot be empty", ErrValidation)
	ErrClothNameEmpty       = fmt.Errorf("%w: cloth name cannot be empty", ErrValidation)
	ErrClothCategoryEmpty   = fmt.Errorf("%w: cloth category ID cannot be empty", ErrValidation)
	ErrClothStatusInvalid   = fmt.Errorf("%w: invalid cloth status", ErrValidation)
	ErrClothWearCountForbid = fmt.Errorf("%w: cloth wear counts cannot be negative", ErrValidation)
	ErrClothCostNegative    = fmt.Errorf("%w: cloth cost cannot be negative", ErrValidation)
)

// Cloth represents a single wardrobe item. Status is kept consistent with
// CurrentWearCount against the resolved wear limit of its category: the
// service layer owns every transition (wear, wash, press, mark-dirty).
//
// CurrentWearCount counts wears since the last wash; TotalWearCount counts
// wears over the item's lifetime and is what the insights engine falls back
// to when no activity history exists.
type Cloth struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	CategoryID       string      `json:"categoryId"`
	Status           ClothStatus `json:"status"`
	CurrentWearCount int         `json:"currentWearCount"`
	TotalWearCount   int         `json:"totalWearCount"`
	Cost             float64     `json:"cost"`
	RequiresPressing bool        `json:"requiresPressing"`
	Favorite         bool        `json:"favorite"`
	IsArchived       bool        `json:"isArchived"`
	Brand            string      `json:"brand,omitempty"`
	Color            string      `json:"color,omitempty"`
	Fabric           string      `json:"fabric,omitempty"`
	Size             string      `json:"size,omitempty"`
	Season           string      `json:"season,omitempty"`
	ImageURL         string      `json:"imageUrl,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// NewCloth creates a new Cloth in the given category.
// It generates a new ID, starts the item clean with zero wear counts, and
// sets the creation/update timestamps.
// Returns an error if validation fails.
func NewCloth(name, categoryID string) (*Cloth, error) {
	now := time.Now().UTC()
	cloth := &Cloth{
		ID:         uuid.NewString(),
		Name:       name,
		CategoryID: categoryID,
		Status:     ClothStatusClean,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := cloth.Validate(); err != nil {
		return nil, err
	}

	return cloth, nil
}

// Validate checks if the Cloth has valid data.
// Returns an error if any field fails validation.
func (c *Cloth) Validate() error {
	if c.ID == "" {
		return ErrClothIDEmpty
	}

	if c.Name == "" {
		return ErrClothNameEmpty
	}

	if c.CategoryID == "" {
		return ErrClothCategoryEmpty
	}

	if !c.Status.IsValid() {
		return ErrClothStatusInvalid
	}

	if c.CurrentWearCount < 0 || c.TotalWearCount < 0 {
		return ErrClothWearCountForbid
	}

	if c.Cost < 0 {
		return ErrClothCostNegative
	}

	return nil
}
