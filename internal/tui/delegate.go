package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/checklist/internal/model"
)

// tableEntry adapts a Table to bubbles/list.Item.
type tableEntry struct {
	table   model.Table
	focused bool
}

func (e tableEntry) FilterValue() string { return e.table.Name }

// itemEntry adapts an Item to bubbles/list.Item.
type itemEntry struct {
	item model.Item
}

func (e itemEntry) FilterValue() string { return e.item.Text }

func cursor(m list.Model, index int) string {
	if index == m.Index() {
		return selectedStyle.Render(">") + " "
	}
	return "  "
}

// Single-line delegates, one for each screen.
type tableDelegate struct{}

func (tableDelegate) Height() int                         { return 1 }
func (tableDelegate) Spacing() int                        { return 0 }
func (tableDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (tableDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	e, ok := li.(tableEntry)
	if !ok {
		return
	}
	mark := " "
	if e.focused {
		mark = accentStyle.Render(focusMark)
	}
	caption := e.table.Progress()
	if caption == "" {
		caption = "empty"
	}
	fmt.Fprintf(w, "%s%s %s  %s\n", cursor(m, index), mark, titleStyle.Render(e.table.Name), mutedStyle.Render(caption))
}

type itemDelegate struct{}

func (itemDelegate) Height() int                         { return 1 }
func (itemDelegate) Spacing() int                        { return 0 }
func (itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	e, ok := li.(itemEntry)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := e.item.Text
	if e.item.IsChecked {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	amount := pendingStyle.Render(fmt.Sprintf("×%d", e.item.Amount))
	fmt.Fprintf(w, "%s%s %s  %s\n", cursor(m, index), box, text, amount)
}
