package jsonstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Makepad-fr/checklist/internal/model"
	"github.com/Makepad-fr/checklist/internal/store"
)

func sample() model.Collection {
	return model.Collection{
		{ID: "t1", Name: "Groceries", Items: []model.Item{
			{ID: "i1", Text: "Milk", Amount: 2, IsChecked: true},
			{ID: "i2", Text: "Eggs", Amount: 12},
		}},
		{ID: "t2", Name: "Empty"},
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "data", "tables.json"))

	c, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Len(t, c, 0)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", "dir", "tables.json"))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sample()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(sample()), "got %+v", got)
	assert.NotNil(t, got[1].Items)

	assertNoTempFiles(t, s.Path())
}

func assertNoTempFiles(t *testing.T, path string) {
	t.Helper()
	left, err := filepath.Glob(path + ".*.tmp")
	require.NoError(t, err)
	assert.Empty(t, left, "temp files should be renamed away")
}

func TestSaveIsIdempotent(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "tables.json"))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sample()))
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, sample()))
	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSaveReplacesWholeDocument(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "tables.json"))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sample()))
	require.NoError(t, s.Save(ctx, model.Collection{{ID: "t9", Name: "Only"}}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Only", got[0].Name)
}

func TestLoadCorruptFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tables.json")
	require.NoError(t, os.WriteFile(p, []byte("nope"), 0o644))

	_, err := New(p).Load(context.Background())
	assert.ErrorIs(t, err, store.ErrCorrupt)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(filepath.Join(t.TempDir(), "tables.json"))
	assert.ErrorIs(t, s.Save(ctx, sample()), context.Canceled)
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, New("").Path())
}

func TestConcurrentStoresOnOnePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.json")
	a, b := New(path), New(path)
	ctx := context.Background()

	var g errgroup.Group
	for w, s := range []*Store{a, b} {
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				c := model.Collection{{ID: "t1", Name: fmt.Sprintf("writer %d save %d", w, i)}}
				if err := s.Save(ctx, c); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	got, err := a.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, []string{"writer 0 save 99", "writer 1 save 99"}, got[0].Name)
	assertNoTempFiles(t, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
