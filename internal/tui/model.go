// Package tui is the interactive terminal client. It renders the tables held
// by a syncer.Controller and turns key presses into controller edits; the
// controller takes care of writing them back.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/checklist/internal/model"
	"github.com/Makepad-fr/checklist/internal/syncer"
	"github.com/Makepad-fr/checklist/internal/ui"
)

type screen int

const (
	screenTables screen = iota
	screenItems
)

type inputMode int

const (
	inputNone inputMode = iota
	inputAddTable
	inputRenameTable
	inputAddItem
	inputEditItem
	inputAmount
	inputSearch
)

// loadedMsg reports the outcome of the initial Load.
type loadedMsg struct{ err error }

// savedMsg reports the outcome of a background write.
type savedMsg struct{ err error }

type Model struct {
	ctx  context.Context
	ctrl *syncer.Controller
	keys keyMap

	screen  screen
	tableID string // open table on screenItems
	query   string

	tables list.Model
	items  list.Model

	mode     inputMode
	editID   string
	ti       textinput.Model
	inputErr string

	status        string
	width, height int
}

func newList(d list.ItemDelegate, extra func() []key.Binding) list.Model {
	l := list.New(nil, d, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra
	return l
}

// New builds the model around ctrl. Init loads the controller, so ctrl
// should not have been loaded yet.
func New(ctx context.Context, ctrl *syncer.Controller) Model {
	m := Model{
		ctx:    ctx,
		ctrl:   ctrl,
		keys:   defaultKeys(),
		width:  80,
		height: 24,
	}
	m.tables = newList(tableDelegate{}, func() []key.Binding { return append(m.keys.tableHelp(), m.keys.Quit) })
	m.tables.SetStatusBarItemName("table", "tables")
	m.items = newList(itemDelegate{}, func() []key.Binding { return append(m.keys.itemHelp(), m.keys.Quit) })
	m.items.SetStatusBarItemName("item", "items")

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.resize()
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("store unavailable, starting empty")
		} else {
			m.status = ""
		}
		m.refresh()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("save failed")
		} else {
			m.status = successStyle.Render("✔ saved")
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.screen == screenItems {
			return m.updateItems(msg)
		}
		return m.updateTables(msg)
	}

	var cmd tea.Cmd
	if m.mode != inputNone {
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	if m.screen == screenItems {
		m.items, cmd = m.items.Update(msg)
	} else {
		m.tables, cmd = m.tables.Update(msg)
	}
	return m, cmd
}

func (m Model) updateTables(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel, hasSel := m.selectedTable()

	switch {
	case key.Matches(msg, m.keys.Add):
		cmd := m.startInput(inputAddTable, "", "New table name...")
		return m, cmd
	case key.Matches(msg, m.keys.Search):
		cmd := m.startInput(inputSearch, m.query, "Search tables...")
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		m.query = ""
		m.refresh()
		return m, nil
	}
	if !hasSel {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Edit):
		m.editID = sel.ID
		cmd := m.startInput(inputRenameTable, sel.Name, "Table name...")
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		m.ctrl.DeleteTable(sel.ID)
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.ctrl.ToggleFocus(sel.ID)
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		m.screen = screenItems
		m.tableID = sel.ID
		m.items.Select(0)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.tables, cmd = m.tables.Update(msg)
	return m, cmd
}

func (m Model) updateItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenTables
		m.tableID = ""
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Add):
		cmd := m.startInput(inputAddItem, "", "New item...")
		return m, cmd
	}

	it, ok := m.selectedItem()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.ToggleItem(m.tableID, it.ID)
	case key.Matches(msg, m.keys.More):
		m.ctrl.SetAmount(m.tableID, it.ID, it.Amount+1)
	case key.Matches(msg, m.keys.Less):
		m.ctrl.SetAmount(m.tableID, it.ID, it.Amount-1)
	case key.Matches(msg, m.keys.Delete):
		m.ctrl.DeleteItem(m.tableID, it.ID)
	case key.Matches(msg, m.keys.Edit):
		m.editID = it.ID
		cmd := m.startInput(inputEditItem, it.Text, "Item text...")
		return m, cmd
	case key.Matches(msg, m.keys.Amount):
		m.editID = it.ID
		cmd := m.startInput(inputAmount, strconv.Itoa(it.Amount), "Amount...")
		return m, cmd
	default:
		var cmd tea.Cmd
		m.items, cmd = m.items.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m *Model) startInput(mode inputMode, value, placeholder string) tea.Cmd {
	m.mode = mode
	m.inputErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	m.resize()
	return m.ti.Focus()
}

func (m *Model) stopInput() {
	m.mode = inputNone
	m.editID = ""
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.stopInput()
		return m, nil
	case "enter":
		if err := m.submit(strings.TrimSpace(m.ti.Value())); err != "" {
			m.inputErr = err
			return m, nil
		}
		m.stopInput()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	if m.mode == inputSearch {
		m.query = m.ti.Value()
		m.refresh()
	}
	return m, cmd
}

// submit applies the pending input and returns a message when it was refused.
func (m *Model) submit(value string) string {
	switch m.mode {
	case inputSearch:
		m.query = value
		return ""
	case inputAmount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return "amount must be a number"
		}
		m.ctrl.SetAmount(m.tableID, m.editID, n)
		return ""
	}

	if value == "" {
		return "cannot be empty"
	}
	switch m.mode {
	case inputAddTable:
		m.ctrl.AddTable(value)
	case inputRenameTable:
		m.ctrl.RenameTable(m.editID, value)
	case inputAddItem:
		m.ctrl.AddItem(m.tableID, value, model.DefaultAmount)
		m.items.Select(len(m.items.Items()))
	case inputEditItem:
		m.ctrl.SetText(m.tableID, m.editID, value)
	}
	return ""
}

func (m Model) selectedTable() (model.Table, bool) {
	e, ok := m.tables.SelectedItem().(tableEntry)
	return e.table, ok
}

func (m Model) selectedItem() (model.Item, bool) {
	e, ok := m.items.SelectedItem().(itemEntry)
	return e.item, ok
}

// refresh rebuilds both lists from the controller.
func (m *Model) refresh() {
	visible := m.ctrl.Visible(m.query)
	focused := m.ctrl.Focused()

	entries := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		entries = append(entries, tableEntry{table: t, focused: t.ID == focused})
	}
	m.tables.SetItems(entries)
	clampSelection(&m.tables)

	all := m.ctrl.Snapshot()
	checked, pending := all.Stats()
	title := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Tables"),
		successStyle.Render("✔"), checked,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(all),
	)
	if m.query != "" {
		title += mutedStyle.Render("  /" + m.query)
	}
	m.tables.Title = title

	if m.screen != screenItems {
		return
	}
	t, ok := all.Find(m.tableID)
	if !ok {
		m.screen = screenTables
		m.tableID = ""
		return
	}
	rows := make([]list.Item, 0, len(t.Items))
	for _, it := range t.Items {
		rows = append(rows, itemEntry{item: it})
	}
	m.items.SetItems(rows)
	clampSelection(&m.items)

	done, _ := t.Stats()
	m.items.Title = fmt.Sprintf("%s  %s  %s",
		titleStyle.Render(t.Name),
		mutedStyle.Render(ui.ProgressBar(done, len(t.Items), 16)),
		mutedStyle.Render(t.Progress()),
	)
}

func clampSelection(l *list.Model) {
	n := len(l.Items())
	if n > 0 && l.Index() >= n {
		l.Select(n - 1)
	}
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != inputNone {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	m.tables.SetSize(m.width-4, h)
	m.items.SetSize(m.width-4, h)
}

func (m Model) View() string {
	content := m.tables.View()
	if m.screen == screenItems {
		content = m.items.View()
	}

	if m.mode != inputNone {
		title := inputTitle(m.mode)
		if m.inputErr != "" {
			title += " " + errorStyle.Render(m.inputErr)
		}
		content += "\n" + frameStyle.Render(title+"\n"+m.ti.View())
	}
	if m.status != "" {
		content += "\n" + m.status
	}
	return frameStyle.Render(content)
}

func inputTitle(mode inputMode) string {
	switch mode {
	case inputAddTable:
		return "Add table"
	case inputRenameTable:
		return "Rename table"
	case inputAddItem:
		return "Add item"
	case inputEditItem:
		return "Edit item"
	case inputAmount:
		return "Set amount"
	case inputSearch:
		return "Search"
	}
	return ""
}
