// Package memory provides an in-memory implementation of the record store
// used for tests and ephemeral environments.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/closetkeep/wardrobe-api/internal/store"
)

// Compile-time assertion that Store implements store.RecordStore.
var _ store.RecordStore = (*Store)(nil)

// Store keeps every table as a map of id to raw JSON document, guarded by
// a single RWMutex. Reads return copies, so callers can never mutate the
// stored documents in place.
type Store struct {
	mu     sync.RWMutex
	tables map[store.Table]map[string]json.RawMessage
}

// NewStore creates an empty in-memory record store with every table
// pre-created.
func NewStore() *Store {
	tables := make(map[store.Table]map[string]json.RawMessage)
	for _, table := range store.Tables() {
		tables[table] = make(map[string]json.RawMessage)
	}
	return &Store{tables: tables}
}

func (s *Store) table(table store.Table) map[string]json.RawMessage {
	t, ok := s.tables[table]
	if !ok {
		t = make(map[string]json.RawMessage)
		s.tables[table] = t
	}
	return t
}

// GetAll implements store.RecordStore.GetAll. Records are returned sorted
// by ID for deterministic iteration.
func (s *Store) GetAll(_ context.Context, table store.Table) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.tables[table]
	records := make([]store.Record, 0, len(t))
	for id, doc := range t {
		records = append(records, store.Record{ID: id, Doc: cloneDoc(doc)})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	return records, nil
}

// GetByID implements store.RecordStore.GetByID.
func (s *Store) GetByID(_ context.Context, table store.Table, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.tables[table][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", store.ErrNotFound, table, id)
	}

	return cloneDoc(doc), nil
}

// Put implements store.RecordStore.Put.
func (s *Store) Put(_ context.Context, table store.Table, id string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table(table)[id] = cloneDoc(doc)
	return nil
}

// BulkPut implements store.RecordStore.BulkPut.
func (s *Store) BulkPut(_ context.Context, table store.Table, records []store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(table)
	for _, record := range records {
		t[record.ID] = cloneDoc(record.Doc)
	}
	return nil
}

// Delete implements store.RecordStore.Delete.
func (s *Store) Delete(_ context.Context, table store.Table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tables[table]
	if _, ok := t[id]; !ok {
		return fmt.Errorf("%w: %s/%s", store.ErrNotFound, table, id)
	}

	delete(t, id)
	return nil
}

// BulkDelete implements store.RecordStore.BulkDelete. Missing IDs are
// skipped.
func (s *Store) BulkDelete(_ context.Context, table store.Table, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tables[table]
	for _, id := range ids {
		delete(t, id)
	}
	return nil
}

// Clear implements store.RecordStore.Clear.
func (s *Store) Clear(_ context.Context, table store.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[table] = make(map[string]json.RawMessage)
	return nil
}

// Close implements store.RecordStore.Close. It is a no-op for the
// in-memory backend.
func (s *Store) Close() error {
	return nil
}

func cloneDoc(doc json.RawMessage) json.RawMessage {
	if doc == nil {
		return nil
	}
	clone := make(json.RawMessage, len(doc))
	copy(clone, doc)
	return clone
}
