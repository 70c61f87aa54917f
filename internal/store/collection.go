package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection is a typed view over one table of a RecordStore. It handles
// the JSON round-trip so services work with domain structs, not raw
// documents.
//
// Update implements the store's partial-merge semantics as a
// read-modify-write: the current document is decoded, mutated in place,
// and written back whole.
type Collection[T any] struct {
	rs    RecordStore
	table Table
}

// NewCollection creates a typed Collection for the given table.
func NewCollection[T any](rs RecordStore, table Table) *Collection[T] {
	return &Collection[T]{rs: rs, table: table}
}

// Table returns the table this collection reads and writes.
func (c *Collection[T]) Table() Table {
	return c.table
}

// GetAll returns every entity in the table.
func (c *Collection[T]) GetAll(ctx context.Context) ([]*T, error) {
	records, err := c.rs.GetAll(ctx, c.table)
	if err != nil {
		return nil, err
	}

	entities := make([]*T, 0, len(records))
	for _, record := range records {
		entity := new(T)
		if err := json.Unmarshal(record.Doc, entity); err != nil {
			return nil, NewStoreError(c.table, "get_all", fmt.Sprintf("decode record %s", record.ID), err)
		}
		entities = append(entities, entity)
	}

	return entities, nil
}

// GetByID returns the entity with the given ID.
// Returns ErrNotFound if no such record exists.
func (c *Collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	doc, err := c.rs.GetByID(ctx, c.table, id)
	if err != nil {
		return nil, err
	}

	entity := new(T)
	if err := json.Unmarshal(doc, entity); err != nil {
		return nil, NewStoreError(c.table, "get_by_id", fmt.Sprintf("decode record %s", id), err)
	}

	return entity, nil
}

// Put inserts or replaces the entity under the given ID.
func (c *Collection[T]) Put(ctx context.Context, id string, entity *T) error {
	doc, err := json.Marshal(entity)
	if err != nil {
		return NewStoreError(c.table, "put", fmt.Sprintf("encode record %s", id), err)
	}
	return c.rs.Put(ctx, c.table, id, doc)
}

// Update applies a partial merge to the entity with the given ID: the
// stored document is decoded, passed to mutate, and written back.
// Returns ErrNotFound if no such record exists; if mutate returns an
// error nothing is written.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(*T) error) (*T, error) {
	entity, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(entity); err != nil {
		return nil, err
	}

	if err := c.Put(ctx, id, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

// Delete removes the entity with the given ID.
// Returns ErrNotFound if no such record exists.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.rs.Delete(ctx, c.table, id)
}
