package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/checklist/internal/model"
	"github.com/Makepad-fr/checklist/internal/syncer"
)

type memStore struct {
	mu      sync.Mutex
	tables  model.Collection
	saves   int
	loadErr error
}

func (s *memStore) Load(context.Context) (model.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.tables.Clone(), nil
}

func (s *memStore) Save(_ context.Context, c model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = c.Clone()
	s.saves++
	return nil
}

func (s *memStore) snapshot() (model.Collection, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables.Clone(), s.saves
}

// start builds a loaded model. The debounce is long enough that nothing is
// written unless the test flushes.
func start(t *testing.T, st *memStore) (Model, *syncer.Controller) {
	t.Helper()
	ctrl := syncer.New(st, syncer.WithDelay(time.Hour))
	t.Cleanup(ctrl.Close)

	m := New(context.Background(), ctrl)
	next, _ := m.Update(m.Init()())
	return next.(Model), ctrl
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func TestGroceriesFlow(t *testing.T) {
	st := &memStore{}
	m, ctrl := start(t, st)

	m = send(m, "a", "Groceries", "enter")
	require.Len(t, ctrl.Snapshot(), 1)
	assert.Equal(t, "Groceries", ctrl.Snapshot()[0].Name)

	m = send(m, "enter")
	assert.Equal(t, screenItems, m.screen)

	m = send(m, "a", "Milk", "enter", "a", "Bread", "enter")
	m = send(m, "up", " ", "+")

	got := ctrl.Snapshot()[0]
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Milk", got.Items[0].Text)
	assert.True(t, got.Items[0].IsChecked)
	assert.Equal(t, 2, got.Items[0].Amount)
	assert.Equal(t, "Bread", got.Items[1].Text)
	assert.False(t, got.Items[1].IsChecked)
	assert.Equal(t, model.DefaultAmount, got.Items[1].Amount)
	assert.Equal(t, "1 of 2 completed", got.Progress())
	assert.Contains(t, m.View(), "Milk")

	_, saves := st.snapshot()
	assert.Zero(t, saves, "nothing written before the quiet period")
	assert.True(t, ctrl.Pending())

	require.NoError(t, ctrl.Flush(context.Background()))
	stored, saves := st.snapshot()
	assert.Equal(t, 1, saves)
	assert.True(t, stored.Equal(ctrl.Snapshot()))
}

func TestBlankInputIsRefused(t *testing.T) {
	m, ctrl := start(t, &memStore{})

	m = send(m, "a", "   ", "enter")
	assert.Equal(t, inputAddTable, m.mode)
	assert.NotEmpty(t, m.inputErr)

	m = send(m, "esc")
	assert.Equal(t, inputNone, m.mode)
	assert.Empty(t, ctrl.Snapshot())
	assert.False(t, ctrl.Pending())
}

func TestRenameTable(t *testing.T) {
	m, ctrl := start(t, &memStore{tables: model.Collection{{ID: "t1", Name: "Grocries", Items: []model.Item{}}}})

	m = send(m, "e", "backspace", "backspace", "backspace", "backspace", "eries", "enter")
	assert.Equal(t, "Groceries", ctrl.Snapshot()[0].Name)
	assert.Equal(t, inputNone, m.mode)
}

func TestFocusThenDeleteClearsFocus(t *testing.T) {
	st := &memStore{tables: model.Collection{
		{ID: "t1", Name: "Groceries", Items: []model.Item{}},
		{ID: "t2", Name: "Hardware", Items: []model.Item{}},
	}}
	m, ctrl := start(t, st)

	m = send(m, "f")
	assert.Equal(t, "t1", ctrl.Focused())
	assert.Len(t, m.tables.Items(), 1)

	m = send(m, "d")
	assert.Empty(t, ctrl.Focused())
	require.Len(t, m.tables.Items(), 1)
	sel, ok := m.selectedTable()
	require.True(t, ok)
	assert.Equal(t, "t2", sel.ID)
}

func TestSearchNarrowsTables(t *testing.T) {
	st := &memStore{tables: model.Collection{
		{ID: "t1", Name: "Groceries", Items: []model.Item{}},
		{ID: "t2", Name: "Hardware", Items: []model.Item{}},
	}}
	m, _ := start(t, st)

	m = send(m, "/", "GRO")
	assert.Len(t, m.tables.Items(), 1, "filters while typing")

	m = send(m, "enter")
	assert.Equal(t, "GRO", m.query)
	assert.Len(t, m.tables.Items(), 1)

	m = send(m, "esc")
	assert.Empty(t, m.query)
	assert.Len(t, m.tables.Items(), 2)
}

func TestAmountEditing(t *testing.T) {
	st := &memStore{tables: model.Collection{
		{ID: "t1", Name: "Groceries", Items: []model.Item{{ID: "i1", Text: "Milk", Amount: 1}}},
	}}
	m, ctrl := start(t, st)
	m = send(m, "enter")

	amount := func() int { return ctrl.Snapshot()[0].Items[0].Amount }

	m = send(m, "-", "-")
	assert.Equal(t, 0, amount(), "never below zero")

	m = send(m, "n", "backspace", "abc", "enter")
	assert.Equal(t, inputAmount, m.mode)
	assert.Equal(t, "amount must be a number", m.inputErr)

	m = send(m, "esc", "n", "backspace", "12", "enter")
	assert.Equal(t, 12, amount())

	m = send(m, "n", "backspace", "backspace", "-3", "enter")
	assert.Equal(t, 0, amount())
	assert.Equal(t, inputNone, m.mode)
}

func TestEditAndDeleteItem(t *testing.T) {
	st := &memStore{tables: model.Collection{
		{ID: "t1", Name: "Groceries", Items: []model.Item{{ID: "i1", Text: "Mlk", Amount: 1}}},
	}}
	m, ctrl := start(t, st)
	m = send(m, "enter", "e", "backspace", "backspace", "ilk", "enter")
	assert.Equal(t, "Milk", ctrl.Snapshot()[0].Items[0].Text)

	m = send(m, "d")
	assert.Empty(t, ctrl.Snapshot()[0].Items)
	assert.Empty(t, m.items.Items())

	m = send(m, "esc")
	assert.Equal(t, screenTables, m.screen)
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	m, ctrl := start(t, &memStore{loadErr: errors.New("connection refused")})

	assert.True(t, ctrl.Loaded())
	assert.Contains(t, m.status, "store unavailable")
	assert.Empty(t, m.tables.Items())
}

func TestSavedMessageUpdatesStatus(t *testing.T) {
	m, _ := start(t, &memStore{})

	next, _ := m.Update(savedMsg{})
	assert.Contains(t, next.(Model).status, "saved")

	next, _ = m.Update(savedMsg{err: errors.New("boom")})
	assert.Contains(t, next.(Model).status, "save failed")
}

func TestQuit(t *testing.T) {
	m, _ := start(t, &memStore{})

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTypingQInInputDoesNotQuit(t *testing.T) {
	m, ctrl := start(t, &memStore{})

	m = send(m, "a", "q", "enter")
	require.Len(t, ctrl.Snapshot(), 1)
	assert.Equal(t, "q", ctrl.Snapshot()[0].Name)
	assert.Equal(t, inputNone, m.mode)
}
