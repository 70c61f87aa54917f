package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Outfit
var (
	ErrOutfitIDEmpty    = fmt.Errorf("%w: outfit ID cannot be empty", ErrValidation)
	ErrOutfitNameEmpty  = fmt.Errorf("%w: outfit name cannot be empty", ErrValidation)
	ErrOutfitNoClothes  = fmt.Errorf("%w: outfit must reference at least one cloth", ErrValidation)
	ErrOutfitClothEmpty = fmt.Errorf("%w: outfit cloth IDs cannot be empty", ErrValidation)
)

// Outfit is a named grouping of cloth references. Tags are stored in their
// canonical form (see NormalizeTags). Cloth references are validated at
// creation time only; a cloth deleted later leaves a dangling reference
// that readers must tolerate.
type Outfit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClothIDs  []string  `json:"clothIds"`
	Tags      []string  `json:"tags,omitempty"`
	Occasion  string    `json:"occasion,omitempty"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewOutfit creates a new Outfit with the given name and cloth references.
// Tags are normalized to their canonical form. Returns an error if
// validation fails.
func NewOutfit(name string, clothIDs, tags []string) (*Outfit, error) {
	now := time.Now().UTC()
	outfit := &Outfit{
		ID:        uuid.NewString(),
		Name:      name,
		ClothIDs:  clothIDs,
		Tags:      NormalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := outfit.Validate(); err != nil {
		return nil, err
	}

	return outfit, nil
}

// Validate checks if the Outfit has valid data.
// Returns an error if any field fails validation.
func (o *Outfit) Validate() error {
	if o.ID == "" {
		return ErrOutfitIDEmpty
	}

	if o.Name == "" {
		return ErrOutfitNameEmpty
	}

	if len(o.ClothIDs) == 0 {
		return ErrOutfitNoClothes
	}

	for _, id := range o.ClothIDs {
		if id == "" {
			return ErrOutfitClothEmpty
		}
	}

	return nil
}

// NormalizeTags converts tags to their canonical form: trimmed, prefixed
// with '#' if absent, lowercased, and de-duplicated preserving the first
// occurrence. Empty tags are dropped. The operation is idempotent.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "#" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tag = strings.ToLower(tag)
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}

	return normalized
}
