// Package store provides the abstract keyed record store the wardrobe
// engine persists into, plus typed collection views over it.
package store

import (
	"context"
	"encoding/json"
)

// Table names a record collection in the store. The set of tables is fixed;
// backends may pre-create them but must at minimum treat unknown tables as
// empty collections.
type Table string

// The fixed tables of the wardrobe store.
const (
	TableCategories   Table = "categories"
	TableClothes      Table = "clothes"
	TableOutfits      Table = "outfits"
	TableTrips        Table = "trips"
	TableActivityLogs Table = "activity_logs"
	TablePreferences  Table = "preferences"
	TableUser         Table = "user"
	TableAuditLogs    Table = "audit_logs"
	TableEssentials   Table = "essentials"
	TableWashHistory  Table = "wash_history"
)

// Tables returns every table in the store, in a stable order. Backup export
// and import iterate this list.
func Tables() []Table {
	return []Table{
		TableCategories,
		TableClothes,
		TableOutfits,
		TableTrips,
		TableActivityLogs,
		TablePreferences,
		TableUser,
		TableAuditLogs,
		TableEssentials,
		TableWashHistory,
	}
}

// Record is a raw store record: a JSON document keyed by its string ID.
type Record struct {
	ID  string
	Doc json.RawMessage
}

// RecordStore is the keyed collection store every backend implements.
// Records are JSON documents keyed by a string ID within a named table.
//
// The store offers no transaction spanning multiple writes: a compound
// service operation issues its writes sequentially and a crash mid-sequence
// leaves partial state. This is acceptable for a single-user, single-writer
// system; callers must serialize dependent operations themselves.
type RecordStore interface {
	// GetAll returns every record in the table. An unknown or empty table
	// yields an empty slice, not an error.
	GetAll(ctx context.Context, table Table) ([]Record, error)

	// GetByID returns the record with the given ID.
	// Returns ErrNotFound if no such record exists.
	GetByID(ctx context.Context, table Table, id string) (json.RawMessage, error)

	// Put inserts or replaces the record with the given ID.
	Put(ctx context.Context, table Table, id string, doc json.RawMessage) error

	// BulkPut inserts or replaces every given record.
	BulkPut(ctx context.Context, table Table, records []Record) error

	// Delete removes the record with the given ID.
	// Returns ErrNotFound if no such record exists.
	Delete(ctx context.Context, table Table, id string) error

	// BulkDelete removes every record in ids. Missing IDs are skipped;
	// the batch never aborts on an absent record.
	BulkDelete(ctx context.Context, table Table, ids []string) error

	// Clear removes every record in the table.
	Clear(ctx context.Context, table Table) error

	// Close releases any resources held by the backend.
	Close() error
}
