// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
)

// DuckDB keeps values in a kv_store table.
type DuckDB struct {
	db   *sql.DB
	owns bool
}

// OpenDuckDB opens (or creates) the database at path. An empty path opens an
// in-memory database.
func OpenDuckDB(path string) (*DuckDB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	d := &DuckDB{db: db, owns: true}
	if err := d.CreateSchema(); err != nil {
		db.Close()

		return nil, err
	}

	return d, nil
}

// NewDuckDB uses an already open database. Close leaves it open.
func NewDuckDB(db *sql.DB) (*DuckDB, error) {
	d := &DuckDB{db: db}
	if err := d.CreateSchema(); err != nil {
		return nil, err
	}

	return d, nil
}

// CreateSchema creates the kv_store table.
func (d *DuckDB) CreateSchema() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv_store (
			key VARCHAR PRIMARY KEY,
			value VARCHAR NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating kv_store: %w", err)
	}

	return nil
}

// Get implements KV.
func (d *DuckDB) Get(key string) (string, bool, error) {
	var value string

	err := d.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}

	return value, true, nil
}

// Set implements KV.
func (d *DuckDB) Set(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// Remove implements KV.
func (d *DuckDB) Remove(key string) error {
	if _, err := d.db.Exec(`DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}

	return nil
}

// Close closes the database when it was opened by OpenDuckDB.
func (d *DuckDB) Close() error {
	if !d.owns {
		return nil
	}

	return d.db.Close()
}
