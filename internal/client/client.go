// Package client talks to the store service and implements store.Store on
// top of it, so a sync controller can persist through HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Makepad-fr/checklist/internal/model"
	"github.com/Makepad-fr/checklist/internal/store"
)

const tablesPath = "/api/tables"

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Method string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, tablesPath, e.Status, e.Body)
}

type Client struct {
	base string
	http *http.Client
}

var _ store.Store = (*Client)(nil)

// New returns a client for the service at baseURL. A nil hc uses
// http.DefaultClient; per-call deadlines come from the context.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

// Load fetches the whole Collection.
func (c *Client) Load(ctx context.Context) (model.Collection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+tablesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var tables model.Collection
	if err := json.Unmarshal(body, &tables); err != nil {
		return nil, fmt.Errorf("decode tables: %w: %w", store.ErrCorrupt, err)
	}
	return tables.Normalize(), nil
}

// Save replaces the whole Collection.
func (c *Client) Save(ctx context.Context, tables model.Collection) error {
	payload, err := json.Marshal(tables.Normalize())
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+tablesPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}
	var ack struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &ack); err != nil || !ack.Success {
		return fmt.Errorf("save not acknowledged: %s", strings.TrimSpace(string(body)))
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, tablesPath, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: req.Method, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
