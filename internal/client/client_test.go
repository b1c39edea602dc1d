package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/checklist/internal/model"
	"github.com/Makepad-fr/checklist/internal/server"
	"github.com/Makepad-fr/checklist/internal/store"
	"github.com/Makepad-fr/checklist/internal/store/jsonstore"
	"github.com/Makepad-fr/checklist/internal/syncer"
)

func liveService(t *testing.T) (*Client, *jsonstore.Store) {
	t.Helper()
	st := jsonstore.New(filepath.Join(t.TempDir(), "tables.json"))
	srv := httptest.NewServer(server.New(server.Config{Store: st}).Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client()), st
}

func TestRoundTripThroughService(t *testing.T) {
	c, st := liveService(t)
	ctx := context.Background()

	got, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 0)

	want := model.Collection{{ID: "t1", Name: "Groceries", Items: []model.Item{{ID: "i1", Text: "Milk", Amount: 2}}}}
	require.NoError(t, c.Save(ctx, want))

	got, err = c.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	onDisk, err := st.Load(ctx)
	require.NoError(t, err)
	assert.True(t, onDisk.Equal(want))
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"Failed to read tables"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)

	_, err := c.Load(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Status)
	assert.Equal(t, http.MethodGet, se.Method)
	assert.Contains(t, se.Error(), "Failed to read tables")

	err = c.Save(context.Background(), model.Collection{})
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.MethodPost, se.Method)
}

func TestMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Load(context.Background())
	assert.ErrorIs(t, err, store.ErrCorrupt)

	err = New(srv.URL, nil).Save(context.Background(), nil)
	assert.ErrorContains(t, err, "not acknowledged")
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Load(context.Background())
	assert.Error(t, err)
}

// The controller, the client and the service together: a burst of edits
// reaches the snapshot file as one write of the final state.
func TestControllerPersistsThroughService(t *testing.T) {
	c, st := liveService(t)

	ctrl := syncer.New(c, syncer.WithDelay(20*time.Millisecond))
	t.Cleanup(ctrl.Close)
	require.NoError(t, ctrl.Load(context.Background()))

	tid := ctrl.AddTable("Groceries")
	iid := ctrl.AddItem(tid, "Milk", 2)
	ctrl.ToggleItem(tid, iid)

	require.Eventually(t, func() bool {
		got, err := st.Load(context.Background())
		return err == nil && len(got) == 1 && len(got[0].Items) == 1 && got[0].Items[0].IsChecked
	}, 2*time.Second, 10*time.Millisecond)

	got, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got[0].Name)
	assert.Equal(t, 2, got[0].Items[0].Amount)
}
