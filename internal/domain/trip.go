package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Trip and Essential
var (
	ErrTripIDEmpty       = fmt.Errorf("%w: trip ID cannot be empty", ErrValidation)
	ErrTripNameEmpty     = fmt.Errorf("%w: trip name cannot be empty", ErrValidation)
	ErrEssentialIDEmpty  = fmt.Errorf("%w: essential ID cannot be empty", ErrValidation)
	ErrEssentialNameTrim = fmt.Errorf("%w: essential name cannot be empty", ErrValidation)
)

// Trip is a packing list: a named date range with references to clothes,
// outfits, and reusable essentials. References carry no cross-entity
// invariants beyond existing at the time they are added.
type Trip struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Destination  string    `json:"destination,omitempty"`
	StartDate    string    `json:"startDate,omitempty"`
	EndDate      string    `json:"endDate,omitempty"`
	ClothIDs     []string  `json:"clothIds,omitempty"`
	OutfitIDs    []string  `json:"outfitIds,omitempty"`
	EssentialIDs []string  `json:"essentialIds,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewTrip creates a new Trip with the given name.
func NewTrip(name string) (*Trip, error) {
	now := time.Now().UTC()
	trip := &Trip{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := trip.Validate(); err != nil {
		return nil, err
	}

	return trip, nil
}

// Validate checks if the Trip has valid data.
func (t *Trip) Validate() error {
	if t.ID == "" {
		return ErrTripIDEmpty
	}

	if t.Name == "" {
		return ErrTripNameEmpty
	}

	return nil
}

// Essential is a reusable packing-list label (passport, charger, ...)
// usable across trips.
type Essential struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEssential creates a new Essential with the given name.
func NewEssential(name string) (*Essential, error) {
	essential := &Essential{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := essential.Validate(); err != nil {
		return nil, err
	}

	return essential, nil
}

// Validate checks if the Essential has valid data.
func (e *Essential) Validate() error {
	if e.ID == "" {
		return ErrEssentialIDEmpty
	}

	if e.Name == "" {
		return ErrEssentialNameTrim
	}

	return nil
}
