// Package syncer keeps the in-memory Collection a client edits and mirrors it
// to a store.
//
// Edits are optimistic: Mutate applies them at once and readers see the new
// state immediately. Persistence is a trailing-edge debounce over whole
// snapshots, so after a burst of edits only the final state is written.
// A failed write is logged and dropped; the next edit schedules a fresh one.
package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Makepad-fr/checklist/internal/logging"
	"github.com/Makepad-fr/checklist/internal/model"
	"github.com/Makepad-fr/checklist/internal/store"
)

const (
	DefaultDelay   = 500 * time.Millisecond
	DefaultTimeout = 5 * time.Second
)

// PersistFunc observes the outcome of every write attempt.
type PersistFunc func(snapshot model.Collection, err error)

type Option func(*Controller)

// WithDelay sets the quiet period before a write.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithTimeout bounds each Load and Save call.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPersistHook registers fn to run after each write attempt.
func WithPersistHook(fn PersistFunc) Option {
	return func(c *Controller) { c.onPersist = fn }
}

// Controller owns the canonical client-side Collection.
// It is "not loaded" until Load returns; edits made before that are kept in
// memory but never written.
type Controller struct {
	store     store.Store
	logger    *slog.Logger
	delay     time.Duration
	timeout   time.Duration
	onPersist PersistFunc
	debounce  *Debouncer
	saveMu    sync.Mutex // one write at a time, each sending the latest state

	mu      sync.Mutex
	tables  model.Collection
	loaded  bool
	focused string
}

func New(s store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:   s,
		logger:  logging.Discard(),
		delay:   DefaultDelay,
		timeout: DefaultTimeout,
		tables:  model.Collection{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.debounce = NewDebouncer(c.delay, c.persist)
	return c
}

// Load fetches the stored Collection and marks the controller loaded. When
// the store is unreachable or returns garbage the controller starts empty;
// the error is still returned so a caller can tell the user.
func (c *Controller) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tables, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn("load failed, starting empty", "error", err)
		tables = model.Collection{}
	}

	c.mu.Lock()
	c.tables = tables.Normalize()
	c.loaded = true
	c.pruneFocus()
	c.mu.Unlock()

	c.logger.Debug("loaded", "tables", len(tables))
	return err
}

// Loaded reports whether Load has completed.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Snapshot returns a copy of the current Collection.
func (c *Controller) Snapshot() model.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tables.Clone()
}

// Mutate applies fn to the current Collection and schedules a write when
// the result differs. fn receives a private copy and must not retain it.
// It reports whether anything changed.
func (c *Controller) Mutate(fn func(model.Collection) model.Collection) bool {
	c.mu.Lock()
	next := fn(c.tables.Clone())
	if next == nil {
		next = model.Collection{}
	}
	if next.Equal(c.tables) {
		c.mu.Unlock()
		return false
	}
	c.tables = next
	c.pruneFocus()
	loaded := c.loaded
	c.mu.Unlock()

	if loaded {
		c.schedulePersist()
	}
	return true
}

func (c *Controller) schedulePersist() {
	c.debounce.Trigger()
}

// Pending reports whether a debounced write is waiting to fire.
func (c *Controller) Pending() bool {
	return c.debounce.Pending()
}

// Flush writes immediately if a write is pending, then waits for any write
// already in flight.
func (c *Controller) Flush(ctx context.Context) error {
	if c.debounce.Cancel() {
		return c.save(ctx)
	}
	// a fired timer counts as running until persist returns
	c.debounce.Wait()
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	return nil
}

// Close drops a pending write without running it.
func (c *Controller) Close() {
	c.debounce.Cancel()
}

// persist is the debounce callback. Errors are logged and dropped.
func (c *Controller) persist() {
	_ = c.save(context.Background())
}

func (c *Controller) save(ctx context.Context) error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	snapshot := c.Snapshot()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.store.Save(ctx, snapshot)
	if err != nil {
		c.logger.Error("failed to save tables", "error", err)
	} else {
		c.logger.Debug("saved", "tables", len(snapshot))
	}
	if c.onPersist != nil {
		c.onPersist(snapshot, err)
	}
	return err
}

// Focused returns the focused table id, or "".
func (c *Controller) Focused() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

// ToggleFocus focuses tableID, or clears focus if it is already focused.
// Focus is view state and never persisted.
func (c *Controller) ToggleFocus(tableID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.focused == tableID {
		c.focused = ""
		return
	}
	if _, ok := c.tables.Find(tableID); ok {
		c.focused = tableID
	}
}

// Visible returns the tables matching query, narrowed to the focused table
// when one is set.
func (c *Controller) Visible(query string) model.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.tables.Filter(query)
	if c.focused == "" {
		return out
	}
	if t, ok := out.Find(c.focused); ok {
		return model.Collection{t}
	}
	return model.Collection{}
}

// pruneFocus clears focus once its table is gone. Callers hold c.mu.
func (c *Controller) pruneFocus() {
	if c.focused == "" {
		return
	}
	if _, ok := c.tables.Find(c.focused); !ok {
		c.focused = ""
	}
}
