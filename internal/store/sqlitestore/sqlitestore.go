// Package sqlitestore keeps the snapshot document in a single SQLite row.
// The body is the same pretty-printed JSON the file backend writes, so the
// two backends are interchangeable.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/Makepad-fr/checklist/internal/model"
	"github.com/Makepad-fr/checklist/internal/store"
)

const schema = `CREATE TABLE IF NOT EXISTS snapshot (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	body TEXT NOT NULL
)`

const (
	selectSnapshot = `SELECT body FROM snapshot WHERE id = 1`
	upsertSnapshot = `INSERT INTO snapshot (id, body) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET body = excluded.body`
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open creates the database file (and its directory) if needed and ensures
// the schema exists. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir data dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one connection: ":memory:" databases are per-connection
	db.SetMaxOpenConns(1)

	s, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing handle and ensures the schema exists.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (model.Collection, error) {
	var body string
	err := s.db.QueryRowContext(ctx, selectSnapshot).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Collection{}, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return store.Decode([]byte(body))
}

func (s *Store) Save(ctx context.Context, c model.Collection) error {
	b, err := store.Encode(c)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, upsertSnapshot, string(b)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
