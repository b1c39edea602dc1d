package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Makepad-fr/checklist/internal/model"
	"github.com/Makepad-fr/checklist/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// Hand edits may carry comments and trailing commas; they are stripped on
// read and gone after the next save.

// DefaultPath is where the snapshot lives relative to the working directory.
var DefaultPath = filepath.Join("data", "tables.json")

type Store struct {
	path string
	mu   sync.Mutex // orders saves made through this Store
}

var _ store.Store = (*Store)(nil)

// New returns a store rooted at path. An empty path means DefaultPath.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path reports the snapshot file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Load(ctx context.Context) (model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Collection{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return store.Decode(b)
}

func (s *Store) Save(ctx context.Context, c model.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := store.Encode(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeAtomic(s.path, b)
}

// writeAtomic replaces path with b so readers see either the old or the new
// document, never a torn one. Each call writes its own temp file, so
// concurrent writers, even from other processes, only race on the rename:
// the last one wins.
func writeAtomic(path string, b []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir data dir: %w", err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create tmp: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(b); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod tmp: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("fsync tmp: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename tmp: %w", err)
	}

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
