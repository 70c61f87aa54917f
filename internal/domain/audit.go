package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for AuditEntry
var (
	ErrAuditIDEmpty     = fmt.Errorf("%w: audit entry ID cannot be empty", ErrValidation)
	ErrAuditActionEmpty = fmt.Errorf("%w: audit entry action cannot be empty", ErrValidation)
)

// AuditEntry records a destructive or bulk operation for later inspection.
// Audit logging is best-effort telemetry: failures to append are logged and
// swallowed, never propagated to the operation being audited.
type AuditEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity,omitempty"`
	EntityID  string    `json:"entityId,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAuditEntry creates a new AuditEntry for the given action.
func NewAuditEntry(action, entity, entityID, detail string) (*AuditEntry, error) {
	entry := &AuditEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the AuditEntry has valid data.
func (e *AuditEntry) Validate() error {
	if e.ID == "" {
		return ErrAuditIDEmpty
	}

	if e.Action == "" {
		return ErrAuditActionEmpty
	}

	return nil
}
