// Package postgres provides a PostgreSQL implementation of the record
// store for installs that keep the wardrobe database on a server.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/closetkeep/wardrobe-api/internal/store"
)

// Compile-time assertion that Store implements store.RecordStore.
var _ store.RecordStore = (*Store)(nil)

// Store persists records in one PostgreSQL table keyed by (tbl, id) with
// the JSON document in a JSONB column. The schema is managed by the goose
// migrations embedded in this package.
type Store struct {
	db *sql.DB
}

// Open establishes a pooled connection to the database at url, verifies it
// with a ping, and runs any pending migrations.
func Open(ctx context.Context, url string) (*Store, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing database connection. The caller is
// responsible for having run migrations.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		panic("db cannot be nil")
	}
	return &Store{db: db}
}

// GetAll implements store.RecordStore.GetAll.
func (s *Store) GetAll(ctx context.Context, table store.Table) ([]store.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, doc FROM records WHERE tbl = $1 ORDER BY id`, string(table))
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
		`SELECT doc FROM records WHERE tbl = $1 AND id = $2`, string(table), id).Scan(&doc)
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
		`INSERT INTO records (tbl, id, doc) VALUES ($1, $2, $3)
		 ON CONFLICT (tbl, id) DO UPDATE SET doc = EXCLUDED.doc`,
		string(table), id, []byte(doc))
	if err != nil {
		return store.NewStoreError(table, "put", "upsert record", err)
	}
	return nil
}

// BulkPut implements store.RecordStore.BulkPut. The batch is written in a
// single database transaction.
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
			`INSERT INTO records (tbl, id, doc) VALUES ($1, $2, $3)
			 ON CONFLICT (tbl, id) DO UPDATE SET doc = EXCLUDED.doc`,
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
		`DELETE FROM records WHERE tbl = $1 AND id = $2`, string(table), id)
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
			`DELETE FROM records WHERE tbl = $1 AND id = $2`, string(table), id); err != nil {
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
		`DELETE FROM records WHERE tbl = $1`, string(table)); err != nil {
		return store.NewStoreError(table, "clear", "delete records", err)
	}
	return nil
}

// Close implements store.RecordStore.Close.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB {
	return s.db
}
