package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/checklist/internal/model"
)

func plain(t *testing.T, theme string) {
	t.Helper()
	SetColorForcing(false, true)
	require.NoError(t, SetTheme(theme))
	t.Cleanup(func() {
		SetColorForcing(false, false)
		_ = SetTheme("classic")
	})
}

func groceries() model.Collection {
	return model.Collection{{ID: "t1", Name: "Groceries", Items: []model.Item{
		{ID: "i1", Text: "Milk", Amount: 2, IsChecked: true},
		{ID: "i2", Text: "Bread", Amount: 1},
	}}}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 5, "█████ 100%"},
		{1, 1, 1, "█████ 100%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.done, tt.total, tt.width))
	}
}

func TestCollectionLines(t *testing.T) {
	plain(t, "mono")

	lines := CollectionLines(groceries(), false)
	out := strings.Join(lines, "\n")
	assert.Contains(t, lines[0], "x 1  - 1  Total 1")
	assert.Contains(t, out, "Groceries  1 of 2 completed")
	assert.Contains(t, out, " 1. [x] Milk ×2")
	assert.Contains(t, out, " 2. [ ] Bread ×1")
}

func TestGroupedLines(t *testing.T) {
	plain(t, "mono")

	lines := TableLines(groceries()[0], true)
	require.Len(t, lines, 5)
	assert.Equal(t, "Pending", lines[1])
	assert.Contains(t, lines[2], "Bread")
	assert.Equal(t, "Done", lines[3])
	assert.Contains(t, lines[4], "Milk")
}

func TestEmptyCollection(t *testing.T) {
	plain(t, "classic")

	out := strings.Join(CollectionLines(model.Collection{}, false), "\n")
	assert.Contains(t, out, "no tables")
}

func TestPanelAlignsWideRunes(t *testing.T) {
	plain(t, "mono")

	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "☑ 日本"})
	rows := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Equal(t, visibleWidth(rows[0]), visibleWidth(r), r)
	}
}

func TestColorForcing(t *testing.T) {
	SetColorForcing(true, false)
	t.Cleanup(func() { SetColorForcing(false, false) })

	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))
	SetColorForcing(true, true)
	assert.Equal(t, "x", C(fgRed, "x"))
}

func TestUnknownTheme(t *testing.T) {
	plain(t, "neon")
	assert.Error(t, SetTheme("sepia"))
	assert.Equal(t, "neon", Current().Name)
}

func TestOKAndFail(t *testing.T) {
	plain(t, "classic")
	var buf bytes.Buffer
	OK(&buf, "saved")
	Fail(&buf, "nope")
	assert.Equal(t, "✔ saved\n✖ nope\n", buf.String())
}

func TestRenderTable(t *testing.T) {
	c := append(groceries(), model.Table{ID: "t2", Name: "Hardware", Items: []model.Item{}})

	var buf bytes.Buffer
	RenderTable(&buf, c, false)
	out := buf.String()
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "(3 rows)")

	buf.Reset()
	RenderTable(&buf, c, true)
	assert.Contains(t, buf.String(), "| Groceries | 1 | Milk | 2 | yes |")
}
