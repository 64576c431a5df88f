// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists computation runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/diagdiff/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20
)

// Store manages the run history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			source TEXT,
			digest TEXT NOT NULL,
			mode TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			width INTEGER NOT NULL,
			difference INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_digest ON runs(digest)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts run and returns it with ID set. A zero CreatedAt is
// replaced with the current time.
func (s *Store) Record(ctx context.Context, run types.Run) (types.Run, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, source, digest, mode, row_count, width, difference)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.CreatedAt.Format(time.RFC3339Nano), run.Source, run.Digest,
		string(run.Mode), run.Rows, run.Width, run.Difference,
	)
	if err != nil {
		return types.Run{}, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Run{}, fmt.Errorf("reading run id: %w", err)
	}
	run.ID = id
	return run, nil
}

// List returns the most recent runs, newest first. limit <= 0 uses the
// configured default.
func (s *Store) List(ctx context.Context, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, digest, mode, row_count, width, difference
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var (
			r         types.Run
			createdAt string
			source    sql.NullString
			mode      string
		)
		if err := rows.Scan(&r.ID, &createdAt, &source, &r.Digest, &mode, &r.Rows, &r.Width, &r.Difference); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run time %q: %w", createdAt, err)
		}
		r.CreatedAt = t
		r.Source = source.String
		r.Mode = types.Mode(mode)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Export writes up to limit runs to w as yaml or json.
func (s *Store) Export(ctx context.Context, w io.Writer, format string, limit int) error {
	runs, err := s.List(ctx, limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []types.Run{}
	}

	switch format {
	case "yaml", "":
		data, err := yaml.Marshal(runs)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}
