// Package store persists normalized tables to SQLite, one dataset per
// (league, season, kind). Cell values are stored as the raw text the parser
// produced; typing them is a downstream ETL concern.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ovsand/footstat/tabular"
)

// ErrNotFound is returned when no dataset matches the requested key.
var ErrNotFound = errors.New("store: dataset not found")

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	league     TEXT NOT NULL,
	season     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	source_url TEXT NOT NULL DEFAULT '',
	fields     TEXT NOT NULL,
	fetched_at TEXT NOT NULL,
	UNIQUE (league, season, kind)
);
CREATE TABLE IF NOT EXISTS dataset_rows (
	dataset_id INTEGER NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
	idx        INTEGER NOT NULL,
	cells      TEXT NOT NULL,
	PRIMARY KEY (dataset_id, idx)
);
`

// Meta identifies one collected dataset.
type Meta struct {
	League    string
	Season    string
	Kind      string // "fixtures", "standings", "team_stats"
	SourceURL string
	FetchedAt time.Time
}

// Store is a SQLite-backed dataset repository.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the dataset database at path with the
// production pragmas applied and the schema ensured. The caller must
// blank-import a driver registering as "sqlite":
//
//	import _ "modernc.org/sqlite"
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ensure schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory store for testing. MaxOpenConns is pinned
// to 1 so every query hits the same in-memory database; Close is registered
// with t.Cleanup.
func OpenMemory(t testing.TB) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("store.OpenMemory: %v", err)
	}
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTable stores a normalized table under meta's key, replacing any prior
// dataset for the same (league, season, kind). The whole write is one
// transaction.
func (s *Store) SaveTable(ctx context.Context, meta Meta, t tabular.Table) error {
	fields, err := json.Marshal(t.Fields)
	if err != nil {
		return fmt.Errorf("store: encode fields: %w", err)
	}
	fetchedAt := meta.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM datasets WHERE league = ? AND season = ? AND kind = ?`,
		meta.League, meta.Season, meta.Kind); err != nil {
		return fmt.Errorf("store: replace dataset: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO datasets (league, season, kind, source_url, fields, fetched_at)
		 VALUES (?,?,?,?,?,?)`,
		meta.League, meta.Season, meta.Kind, meta.SourceURL,
		string(fields), fetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store: insert dataset: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: dataset id: %w", err)
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO dataset_rows (dataset_id, idx, cells) VALUES (?,?,?)`)
	if err != nil {
		return fmt.Errorf("store: prepare rows: %w", err)
	}
	defer ins.Close()

	for i, row := range t.Rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("store: encode row %d: %w", i, err)
		}
		if _, err := ins.ExecContext(ctx, id, i, string(cells)); err != nil {
			return fmt.Errorf("store: insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// LoadTable reads back the dataset stored under (league, season, kind).
func (s *Store) LoadTable(ctx context.Context, league, season, kind string) (tabular.Table, Meta, error) {
	var (
		id        int64
		meta      = Meta{League: league, Season: season, Kind: kind}
		fieldsRaw string
		fetchedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source_url, fields, fetched_at FROM datasets
		 WHERE league = ? AND season = ? AND kind = ?`,
		league, season, kind).Scan(&id, &meta.SourceURL, &fieldsRaw, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return tabular.Table{}, Meta{}, fmt.Errorf("%w: %s/%s/%s", ErrNotFound, league, season, kind)
	}
	if err != nil {
		return tabular.Table{}, Meta{}, fmt.Errorf("store: load dataset: %w", err)
	}

	var t tabular.Table
	if err := json.Unmarshal([]byte(fieldsRaw), &t.Fields); err != nil {
		return tabular.Table{}, Meta{}, fmt.Errorf("store: decode fields: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
		meta.FetchedAt = ts
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT cells FROM dataset_rows WHERE dataset_id = ? ORDER BY idx`, id)
	if err != nil {
		return tabular.Table{}, Meta{}, fmt.Errorf("store: load rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return tabular.Table{}, Meta{}, fmt.Errorf("store: scan row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return tabular.Table{}, Meta{}, fmt.Errorf("store: decode row: %w", err)
		}
		t.Rows = append(t.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return tabular.Table{}, Meta{}, fmt.Errorf("store: iterate rows: %w", err)
	}
	return t, meta, nil
}
