package ui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Makepad-fr/checklist/internal/model"
)

// RenderTable writes one row per item. markdown switches to a Markdown table.
func RenderTable(w io.Writer, c model.Collection, markdown bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "#", "Item", "Amount", "Checked"})

	rows := 0
	for _, tbl := range c {
		if len(tbl.Items) == 0 {
			t.AppendRow(table.Row{tbl.Name, "", "(none)", "", ""})
			rows++
			continue
		}
		for i, it := range tbl.Items {
			checked := ""
			if it.IsChecked {
				checked = "yes"
			}
			t.AppendRow(table.Row{tbl.Name, i + 1, it.Text, it.Amount, checked})
			rows++
		}
	}

	if markdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", rows)
}
