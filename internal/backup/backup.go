// Package backup implements whole-store export and import. A backup is a
// single JSON document holding every user-facing collection plus an export
// timestamp; restoring one replaces the store's contents wholesale.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// Document is the backup wire format. ExportDate is required on import;
// every collection key is optional and applied independently.
type Document struct {
	ExportDate   time.Time                  `json:"exportDate"`
	Categories   []*domain.Category         `json:"categories,omitempty"`
	Clothes      []*domain.Cloth            `json:"clothes,omitempty"`
	Outfits      []*domain.Outfit           `json:"outfits,omitempty"`
	ActivityLogs []*domain.ActivityLog      `json:"activity_logs,omitempty"`
	Trips        []*domain.Trip             `json:"trips,omitempty"`
	Essentials   []*domain.Essential        `json:"essentials,omitempty"`
	WashHistory  []*domain.WashHistoryEvent `json:"wash_history,omitempty"`

	// Preferences is a zero-or-one element list, matching the stored
	// singleton table's shape.
	Preferences []*domain.UserPreferences `json:"preferences,omitempty"`
}

// Result is what import returns to the caller. Import never surfaces a
// raw error; failures become {Success: false, Message} so a UI can show
// the message without special-casing panics.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Counts  map[string]int `json:"counts,omitempty"`
}

// Service exports and imports whole-store backups.
type Service interface {
	// Export snapshots every collection into one document.
	Export(ctx context.Context) (*Document, error)

	// Import replaces the store's collections with the document's
	// contents. A document without an export date is rejected and the
	// store is left untouched.
	Import(ctx context.Context, doc *Document) *Result
}

type service struct {
	rs     store.RecordStore
	logger *slog.Logger
}

// NewService creates a backup Service over the given record store.
func NewService(rs store.RecordStore, log *slog.Logger) (Service, error) {
	if rs == nil {
		return nil, domain.NewValidationError("recordStore", "cannot be nil", nil)
	}
	if log == nil {
		return nil, domain.NewValidationError("logger", "cannot be nil", nil)
	}

	return &service{
		rs:     rs,
		logger: log.With(slog.String("component", "backup_service")),
	}, nil
}

func (s *service) Export(ctx context.Context) (*Document, error) {
	doc := &Document{ExportDate: time.Now().UTC()}

	if err := readAll(ctx, s.rs, store.TableCategories, &doc.Categories); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s.rs, store.TableClothes, &doc.Clothes); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s.rs, store.TableOutfits, &doc.Outfits); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s.rs, store.TableActivityLogs, &doc.ActivityLogs); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s.rs, store.TableTrips, &doc.Trips); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s.rs, store.TableEssentials, &doc.Essentials); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s.rs, store.TableWashHistory, &doc.WashHistory); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s.rs, store.TablePreferences, &doc.Preferences); err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *service) Import(ctx context.Context, doc *Document) *Result {
	if doc == nil || doc.ExportDate.IsZero() {
		// Reject before touching anything. This is the InvalidFormat
		// case: the document is not a backup we produced.
		return &Result{
			Success: false,
			Message: "not a valid backup: missing export date",
		}
	}

	// The account and audit trail are not part of the backup document,
	// so only the collections it can carry are cleared.
	for _, table := range backupTables() {
		if err := s.rs.Clear(ctx, table); err != nil {
			return &Result{
				Success: false,
				Message: fmt.Sprintf("failed to clear %s: %v", table, err),
			}
		}
	}

	counts := make(map[string]int)

	// Each collection is written independently. A failure stops the
	// import with a partial-state message but earlier writes stay; there
	// is no rollback across collections.
	writes := []struct {
		table store.Table
		write func() (int, error)
	}{
		{store.TableCategories, func() (int, error) { return writeAll(ctx, s.rs, store.TableCategories, doc.Categories, categoryID) }},
		{store.TableClothes, func() (int, error) { return writeAll(ctx, s.rs, store.TableClothes, doc.Clothes, clothID) }},
		{store.TableOutfits, func() (int, error) { return writeAll(ctx, s.rs, store.TableOutfits, doc.Outfits, outfitID) }},
		{store.TableActivityLogs, func() (int, error) { return writeAll(ctx, s.rs, store.TableActivityLogs, doc.ActivityLogs, activityID) }},
		{store.TableTrips, func() (int, error) { return writeAll(ctx, s.rs, store.TableTrips, doc.Trips, tripID) }},
		{store.TableEssentials, func() (int, error) { return writeAll(ctx, s.rs, store.TableEssentials, doc.Essentials, essentialID) }},
		{store.TableWashHistory, func() (int, error) { return writeAll(ctx, s.rs, store.TableWashHistory, doc.WashHistory, washEventID) }},
		{store.TablePreferences, func() (int, error) { return s.writePreferences(ctx, doc.Preferences) }},
	}

	for _, w := range writes {
		n, err := w.write()
		if err != nil {
			s.logger.Error("import write failed",
				slog.String("table", string(w.table)),
				slog.String("error", err.Error()))
			return &Result{
				Success: false,
				Message: fmt.Sprintf("import failed writing %s; store may be partially restored: %v", w.table, err),
				Counts:  counts,
			}
		}
		if n > 0 {
			counts[string(w.table)] = n
		}
	}

	s.logger.Info("backup imported",
		slog.Time("export_date", doc.ExportDate),
		slog.Int("collections", len(counts)))

	return &Result{
		Success: true,
		Message: "backup imported",
		Counts:  counts,
	}
}

// writePreferences never trusts the imported document verbatim: it is
// rebuilt field by field with type coercion and defaults first.
func (s *service) writePreferences(ctx context.Context, prefs []*domain.UserPreferences) (int, error) {
	if len(prefs) == 0 {
		return 0, nil
	}

	sanitized := domain.SanitizePreferences(prefs[0])
	doc, err := json.Marshal(sanitized)
	if err != nil {
		return 0, fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := s.rs.Put(ctx, store.TablePreferences, domain.PreferencesID, doc); err != nil {
		return 0, err
	}
	return 1, nil
}

// backupTables lists the collections the backup document carries, in
// write order.
func backupTables() []store.Table {
	return []store.Table{
		store.TableCategories,
		store.TableClothes,
		store.TableOutfits,
		store.TableActivityLogs,
		store.TableTrips,
		store.TableEssentials,
		store.TableWashHistory,
		store.TablePreferences,
	}
}

func readAll[T any](ctx context.Context, rs store.RecordStore, table store.Table, out *[]*T) error {
	records, err := rs.GetAll(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", table, err)
	}

	entities := make([]*T, 0, len(records))
	for _, record := range records {
		entity := new(T)
		if err := json.Unmarshal(record.Doc, entity); err != nil {
			return fmt.Errorf("failed to decode %s/%s: %w", table, record.ID, err)
		}
		entities = append(entities, entity)
	}

	*out = entities
	return nil
}

func writeAll[T any](ctx context.Context, rs store.RecordStore, table store.Table, entities []*T, id func(*T) string) (int, error) {
	if len(entities) == 0 {
		return 0, nil
	}

	records := make([]store.Record, 0, len(entities))
	for _, entity := range entities {
		doc, err := json.Marshal(entity)
		if err != nil {
			return 0, fmt.Errorf("failed to encode %s record: %w", table, err)
		}
		records = append(records, store.Record{ID: id(entity), Doc: doc})
	}

	if err := rs.BulkPut(ctx, table, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func categoryID(c *domain.Category) string          { return c.ID }
func clothID(c *domain.Cloth) string                { return c.ID }
func outfitID(o *domain.Outfit) string              { return o.ID }
func activityID(a *domain.ActivityLog) string       { return a.ID }
func tripID(t *domain.Trip) string                  { return t.ID }
func essentialID(e *domain.Essential) string        { return e.ID }
func washEventID(e *domain.WashHistoryEvent) string { return e.ID }
