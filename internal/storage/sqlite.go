package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLite keeps each top-level key as a row of a single table. Set and
// Remove run in one transaction each.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps writers serialized within the process.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (unixepoch())
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, defaults Document) (Document, error) {
	query := `SELECT key, value FROM documents`
	var args []any
	if defaults != nil {
		if len(defaults) == 0 {
			return Document{}, nil
		}
		placeholders := make([]string, 0, len(defaults))
		for k := range defaults {
			placeholders = append(placeholders, "?")
			args = append(args, k)
		}
		query += ` WHERE key IN (` + strings.Join(placeholders, ",") + `)`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	stored := Document{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		stored[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading document rows: %w", err)
	}
	return pick(stored, defaults), nil
}

func (s *SQLite) Set(ctx context.Context, doc Document) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO documents (key, value, updated_at) VALUES (?, ?, unixepoch())
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for k, v := range doc {
			if !json.Valid(v) {
				return fmt.Errorf("value for %q is not valid JSON", k)
			}
			if _, err := stmt.ExecContext(ctx, k, string(v)); err != nil {
				return fmt.Errorf("writing %q: %w", k, err)
			}
		}
		return nil
	})
}

func (s *SQLite) Remove(ctx context.Context, keys ...string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, k); err != nil {
				return fmt.Errorf("removing %q: %w", k, err)
			}
		}
		return nil
	})
}

func (s *SQLite) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
