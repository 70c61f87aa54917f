package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WashAction represents the kind of laundry event recorded in history.
type WashAction string

// Possible wash history actions
const (
	WashActionWash  WashAction = "wash"
	WashActionPress WashAction = "press"
)

// Common validation errors for WashHistoryEvent
var (
	ErrWashEventIDEmpty       = fmt.Errorf("%w: wash event ID cannot be empty", ErrValidation)
	ErrWashEventClothEmpty    = fmt.Errorf("%w: wash event cloth ID cannot be empty", ErrValidation)
	ErrWashEventActionInvalid = fmt.Errorf("%w: invalid wash event action", ErrValidation)
)

// WashHistoryEvent is a best-effort telemetry record of a wash or press.
// It feeds per-item history views and metrics; it is never authoritative
// for cloth state.
type WashHistoryEvent struct {
	ID        string     `json:"id"`
	ClothID   string     `json:"clothId"`
	Action    WashAction `json:"action"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewWashHistoryEvent creates a new WashHistoryEvent for the given cloth.
func NewWashHistoryEvent(clothID string, action WashAction) (*WashHistoryEvent, error) {
	event := &WashHistoryEvent{
		ID:        uuid.NewString(),
		ClothID:   clothID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the WashHistoryEvent has valid data.
func (e *WashHistoryEvent) Validate() error {
	if e.ID == "" {
		return ErrWashEventIDEmpty
	}

	if e.ClothID == "" {
		return ErrWashEventClothEmpty
	}

	if e.Action != WashActionWash && e.Action != WashActionPress {
		return ErrWashEventActionInvalid
	}

	return nil
}
