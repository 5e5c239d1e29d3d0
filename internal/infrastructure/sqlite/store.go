// Package sqlite is the single-file storage backend. It holds the same
// tables as the PostgreSQL backend and upgrades legacy databases in place.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultPath is used when no path is configured.
const DefaultPath = "data/events.db"

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and brings its schema up to
// date. Pass ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: writes are serialized and ":memory:" stays one database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		title        TEXT    NOT NULL,
		description  TEXT    NOT NULL DEFAULT '',
		event_date   TEXT    NOT NULL,
		event_time   TEXT    NOT NULL DEFAULT '18:00',
		location     TEXT    NOT NULL DEFAULT '',
		source       TEXT    NOT NULL,
		source_url   TEXT    NOT NULL DEFAULT '',
		tags         TEXT    NOT NULL DEFAULT '',
		language     TEXT    NOT NULL DEFAULT 'ru',
		ai_processed INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS events_event_date_idx ON events (event_date)`,
	`CREATE TABLE IF NOT EXISTS user_languages (
		user_id    TEXT PRIMARY KEY,
		language   TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if err := s.migrateLanguageColumn(ctx); err != nil {
		return err
	}
	return s.migrateUniqueKey(ctx)
}

// migrateLanguageColumn upgrades events tables created before records were
// partitioned by language. Existing rows become Russian.
func (s *Store) migrateLanguageColumn(ctx context.Context) error {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pragma_table_info('events') WHERE name='language'",
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("check language column: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		"ALTER TABLE events ADD COLUMN language TEXT NOT NULL DEFAULT 'ru'",
	); err != nil {
		return fmt.Errorf("add language column: %w", err)
	}
	return nil
}

func (s *Store) migrateUniqueKey(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unique key migration: %w", err)
	}
	defer tx.Rollback()

	// Keep the oldest row of any key that collided before the index existed.
	if _, err := tx.ExecContext(ctx, `
DELETE FROM events WHERE id NOT IN (
    SELECT MIN(id) FROM events GROUP BY source, event_date, language
)`); err != nil {
		return fmt.Errorf("drop duplicate events: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"CREATE UNIQUE INDEX IF NOT EXISTS events_source_date_language_key ON events (source, event_date, language)",
	); err != nil {
		return fmt.Errorf("create unique key: %w", err)
	}
	return tx.Commit()
}
