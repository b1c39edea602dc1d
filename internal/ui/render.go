package ui

import (
	"fmt"

	"github.com/Makepad-fr/checklist/internal/model"
)

const maxTextWidth = 80

// CollectionLines renders every table for a one-shot listing. With group
// set, each table lists pending items before checked ones.
func CollectionLines(c model.Collection, group bool) []string {
	t := Current()
	checked, pending := c.Stats()
	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			C(t.Title, "Tables"),
			C(t.Success, t.SymDone), checked,
			C(t.Pending, t.SymPending), pending,
			C(t.Accent, "Total"), len(c),
		),
		C(t.Muted, ProgressBar(checked, checked+pending, 28)),
	}

	if len(c) == 0 {
		return append(lines, "", C(t.Muted, "no tables"), "", C(t.Muted, "Tip: run `checklist tui` to add one"))
	}
	for _, tbl := range c {
		lines = append(lines, "")
		lines = append(lines, TableLines(tbl, group)...)
	}
	return lines
}

// TableLines renders one table: a heading with its progress, then items.
func TableLines(tbl model.Table, group bool) []string {
	t := Current()
	heading := C(t.Accent, tbl.Name)
	if p := tbl.Progress(); p != "" {
		heading += "  " + C(t.Muted, p)
	}
	lines := []string{heading}

	if !group {
		return append(lines, itemLines(tbl.Items)...)
	}
	var pend, done []model.Item
	for _, it := range tbl.Items {
		if it.IsChecked {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	lines = append(lines, C(t.Muted, "Pending"))
	lines = append(lines, itemLines(pend)...)
	lines = append(lines, C(t.Muted, "Done"))
	return append(lines, itemLines(done)...)
}

func itemLines(items []model.Item) []string {
	t := Current()
	if len(items) == 0 {
		return []string{C(t.Muted, "  (none)")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		box, color := t.BoxUnchecked, t.Muted
		if it.IsChecked {
			box, color = t.BoxChecked, t.Success
		}
		text := it.Text
		if r := []rune(text); len(r) > maxTextWidth {
			text = string(r[:maxTextWidth-3]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			C(dim, fmt.Sprintf("%2d.", i+1)),
			C(color, box),
			text,
			C(t.Pending, fmt.Sprintf("×%d", it.Amount)),
		))
	}
	return out
}
