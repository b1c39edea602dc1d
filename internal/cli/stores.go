package cli

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/checklist/internal/client"
	"github.com/Makepad-fr/checklist/internal/config"
	"github.com/Makepad-fr/checklist/internal/store"
	"github.com/Makepad-fr/checklist/internal/store/jsonstore"
	"github.com/Makepad-fr/checklist/internal/store/sqlitestore"
)

// openStore opens the configured backend. The returned func releases it.
func openStore(ctx context.Context, sc config.StoreConfig) (store.Store, func() error, error) {
	switch sc.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(ctx, sqlitePath(sc.Path))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return jsonstore.New(sc.Path), func() error { return nil }, nil
	}
}

// sqlitePath swaps a .json extension for .db so the default store.path can
// serve both backends.
func sqlitePath(p string) string {
	if strings.EqualFold(filepath.Ext(p), ".json") {
		return strings.TrimSuffix(p, filepath.Ext(p)) + ".db"
	}
	return p
}

// remoteStore talks to the store service at cc.URL.
func remoteStore(cc config.ClientConfig) store.Store {
	return client.New(cc.URL, &http.Client{Timeout: cc.Timeout})
}

// clientStore picks the local backend when local is set, the service
// otherwise.
func clientStore(ctx context.Context, cfg *config.Config, local bool) (store.Store, func() error, error) {
	if local {
		return openStore(ctx, cfg.Store)
	}
	return remoteStore(cfg.Client), func() error { return nil }, nil
}
