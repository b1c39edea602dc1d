// Package store defines the snapshot persistence boundary. A Store holds one
// document: the whole Collection. Saves replace it; there is no merge.
package store

import (
	"context"
	"errors"

	"github.com/Makepad-fr/checklist/internal/model"
)

// ErrCorrupt marks a snapshot that exists but cannot be parsed.
var ErrCorrupt = errors.New("snapshot is corrupt")

// Store loads and replaces the full Collection.
//
// Load returns an empty Collection, not an error, when nothing has been
// saved yet. Implementations do not coordinate concurrent writers: the last
// Save wins.
type Store interface {
	Load(ctx context.Context) (model.Collection, error)
	Save(ctx context.Context, c model.Collection) error
}
