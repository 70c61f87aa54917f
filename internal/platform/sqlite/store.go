// Package sqlite provides a single-file SQLite implementation of the
// record store, the default backend for local installs.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/closetkeep/wardrobe-api/internal/store"
)

// Compile-time assertion that Store implements store.RecordStore.
var _ store.RecordStore = (*Store)(nil)

// Store persists records in one SQLite table keyed by (tbl, id) with the
// JSON document in a BLOB column. Table names are constrained to the fixed
// store.Tables set by the schema's consumers, so no per-table DDL exists.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if necessary) the SQLite database at path and
// ensures the records table exists.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "wardrobe.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		tbl TEXT NOT NULL,
		id  TEXT NOT NULL,
		doc BLOB NOT NULL,
		PRIMARY KEY (tbl, id)
	)`); err != nil {
		return nil, fmt.Errorf("create records table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// GetAll implements store.RecordStore.GetAll.
func (s *Store) GetAll(ctx context.Context, table store.Table) ([]store.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, doc FROM records WHERE tbl = ? ORDER BY id`, string(table))
	if err != nil {
		return nil, store.NewStoreError(table, "get_all", "query records", err)
	}
	defer func() { _ = rows.Close() }()

	var records []store.Record
	for rows.Next() {
		var record store.Record
		var doc []byte
		if err := rows.Scan(&record.ID, &doc); err != nil {
			return nil, store.NewStoreError(table, "get_all", "scan record", err)
		}
		record.Doc = json.RawMessage(doc)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(table, "get_all", "iterate records", err)
	}

	if records == nil {
		records = []store.Record{}
	}
	return records, nil
}

// GetByID implements store.RecordStore.GetByID.
func (s *Store) GetByID(ctx context.Context, table store.Table, id string) (json.RawMessage, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM records WHERE tbl = ? AND id = ?`, string(table), id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", store.ErrNotFound, table, id)
	}
	if err != nil {
		return nil, store.NewStoreError(table, "get_by_id", "query record", err)
	}

	return json.RawMessage(doc), nil
}

// Put implements store.RecordStore.Put.
func (s *Store) Put(ctx context.Context, table store.Table, id string, doc json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (tbl, id, doc) VALUES (?, ?, ?)
		 ON CONFLICT (tbl, id) DO UPDATE SET doc = excluded.doc`,
		string(table), id, []byte(doc))
	if err != nil {
		return store.NewStoreError(table, "put", "upsert record", err)
	}
	return nil
}

// BulkPut implements store.RecordStore.BulkPut. The batch is written in a
// single database transaction so a bulk import never leaves a table half
// written at the storage layer.
func (s *Store) BulkPut(ctx context.Context, table store.Table, records []store.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.NewStoreError(table, "bulk_put", "begin transaction", err)
	}

	for _, record := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (tbl, id, doc) VALUES (?, ?, ?)
			 ON CONFLICT (tbl, id) DO UPDATE SET doc = excluded.doc`,
			string(table), record.ID, []byte(record.Doc)); err != nil {
			_ = tx.Rollback()
			return store.NewStoreError(table, "bulk_put", fmt.Sprintf("upsert record %s", record.ID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return store.NewStoreError(table, "bulk_put", "commit transaction", err)
	}
	return nil
}

// Delete implements store.RecordStore.Delete.
func (s *Store) Delete(ctx context.Context, table store.Table, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE tbl = ? AND id = ?`, string(table), id)
	if err != nil {
		return store.NewStoreError(table, "delete", "delete record", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError(table, "delete", "rows affected", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", store.ErrNotFound, table, id)
	}
	return nil
}

// BulkDelete implements store.RecordStore.BulkDelete. Missing IDs are
// skipped.
func (s *Store) BulkDelete(ctx context.Context, table store.Table, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.NewStoreError(table, "bulk_delete", "begin transaction", err)
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM records WHERE tbl = ? AND id = ?`, string(table), id); err != nil {
			_ = tx.Rollback()
			return store.NewStoreError(table, "bulk_delete", fmt.Sprintf("delete record %s", id), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return store.NewStoreError(table, "bulk_delete", "commit transaction", err)
	}
	return nil
}

// Clear implements store.RecordStore.Clear.
func (s *Store) Clear(ctx context.Context, table store.Table) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE tbl = ?`, string(table)); err != nil {
		return store.NewStoreError(table, "clear", "delete records", err)
	}
	return nil
}

// Close implements store.RecordStore.Close.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the configured database path.
func (s *Store) Path() string {
	return s.path
}
