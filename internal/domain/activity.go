package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActivityKind discriminates what an activity log refers to: a stored
// outfit or an ad-hoc list of individual clothes. It is a closed enum;
// code that branches on it should switch exhaustively rather than probe
// for populated fields.
type ActivityKind string

// Possible activity kind values
const (
	ActivityKindOutfit     ActivityKind = "outfit"
	ActivityKindIndividual ActivityKind = "individual"
)

// IsValid reports whether the kind is one of the known enum values.
func (k ActivityKind) IsValid() bool {
	return k == ActivityKindOutfit || k == ActivityKindIndividual
}

// ActivityStatus represents whether an activity happened or is planned.
type ActivityStatus string

// Possible activity status values
const (
	ActivityStatusWorn    ActivityStatus = "worn"
	ActivityStatusPlanned ActivityStatus = "planned"
)

// IsValid reports whether the status is one of the known enum values.
func (s ActivityStatus) IsValid() bool {
	return s == ActivityStatusWorn || s == ActivityStatusPlanned
}

// Common validation errors for ActivityLog
var (
	ErrActivityIDEmpty       = fmt.Errorf("%w: activity ID cannot be empty", ErrValidation)
	ErrActivityDateInvalid   = fmt.Errorf("%w: activity date must be YYYY-MM-DD", ErrValidation)
	ErrActivityKindInvalid   = fmt.Errorf("%w: invalid activity kind", ErrValidation)
	ErrActivityStatusInvalid = fmt.Errorf("%w: invalid activity status", ErrValidation)
	ErrActivityOutfitEmpty   = fmt.Errorf("%w: outfit activity requires an outfit ID", ErrValidation)
	ErrActivityClothesEmpty  = fmt.Errorf("%w: individual activity requires cloth IDs", ErrValidation)
)

// DateLayout is the calendar-day key format used by activity logs.
const DateLayout = "2006-01-02"

// TimeLayout is the wall-clock format used by activity logs.
const TimeLayout = "15:04"

// ActivityLog records wearing an outfit or individual clothes on a given
// day, or a plan to do so. AppliedWearCounts tracks whether the wear-count
// side effect has been applied to the referenced clothes, so a plan that
// later becomes a worn event increments counts exactly once.
//
// Deleting a log does not reverse wear counts already applied; the log is
// a journal entry, not the authoritative wear state.
type ActivityLog struct {
	ID                string         `json:"id"`
	Date              string         `json:"date"`
	Time              string         `json:"time,omitempty"`
	Kind              ActivityKind   `json:"type"`
	OutfitID          string         `json:"outfitId,omitempty"`
	ClothIDs          []string       `json:"clothIds,omitempty"`
	Status            ActivityStatus `json:"status"`
	AppliedWearCounts bool           `json:"appliedWearCounts"`
	Notes             string         `json:"notes,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// NewOutfitActivity creates an ActivityLog of kind outfit for the given day.
func NewOutfitActivity(date, outfitID string, status ActivityStatus) (*ActivityLog, error) {
	log := newActivity(date, status)
	log.Kind = ActivityKindOutfit
	log.OutfitID = outfitID

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// NewIndividualActivity creates an ActivityLog of kind individual for the
// given day.
func NewIndividualActivity(date string, clothIDs []string, status ActivityStatus) (*ActivityLog, error) {
	log := newActivity(date, status)
	log.Kind = ActivityKindIndividual
	log.ClothIDs = clothIDs

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

func newActivity(date string, status ActivityStatus) *ActivityLog {
	now := time.Now().UTC()
	if status == "" {
		status = ActivityStatusWorn
	}
	return &ActivityLog{
		ID:        uuid.NewString(),
		Date:      date,
		Time:      now.Format(TimeLayout),
		Status:    status,
		CreatedAt: now,
	}
}

// Validate checks if the ActivityLog has valid data.
// Returns an error if any field fails validation.
func (a *ActivityLog) Validate() error {
	if a.ID == "" {
		return ErrActivityIDEmpty
	}

	if _, err := time.Parse(DateLayout, a.Date); err != nil {
		return ErrActivityDateInvalid
	}

	if !a.Kind.IsValid() {
		return ErrActivityKindInvalid
	}

	if !a.Status.IsValid() {
		return ErrActivityStatusInvalid
	}

	switch a.Kind {
	case ActivityKindOutfit:
		if a.OutfitID == "" {
			return ErrActivityOutfitEmpty
		}
	case ActivityKindIndividual:
		if len(a.ClothIDs) == 0 {
			return ErrActivityClothesEmpty
		}
	}

	return nil
}

// IsWorn reports whether the activity represents a realized wear event.
func (a *ActivityLog) IsWorn() bool {
	return a.Status == ActivityStatusWorn
}
