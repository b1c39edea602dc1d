package model

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultAmount is used when a new item is added without a usable amount.
const DefaultAmount = 1

// NewID returns a fresh identifier for tables and items.
// Tests swap it for a deterministic sequence.
var NewID = func() string { return uuid.NewString() }

// Every transformation below returns a new Collection and leaves its
// receiver untouched, so a snapshot handed to a store stays stable.

// Clone returns a deep copy. The result always has non-nil item slices.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, t := range c {
		items := make([]Item, len(t.Items))
		copy(items, t.Items)
		t.Items = items
		out[i] = t
	}
	return out
}

// Normalize returns a copy that encodes as `[]` rather than `null` at
// every level.
func (c Collection) Normalize() Collection { return c.Clone() }

// Equal reports whether both collections hold the same tables and items in
// the same order. Nil and empty slices compare equal.
func (c Collection) Equal(o Collection) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		a, b := c[i], o[i]
		if a.ID != b.ID || a.Name != b.Name || len(a.Items) != len(b.Items) {
			return false
		}
		for j := range a.Items {
			if a.Items[j] != b.Items[j] {
				return false
			}
		}
	}
	return true
}

// Find returns the table with the given id.
func (c Collection) Find(tableID string) (Table, bool) {
	for _, t := range c {
		if t.ID == tableID {
			return t, true
		}
	}
	return Table{}, false
}

// Filter keeps tables whose name contains query, ignoring case.
// An empty query keeps everything.
func (c Collection) Filter(query string) Collection {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Clone()
	}
	out := Collection{}
	for _, t := range c.Clone() {
		if strings.Contains(strings.ToLower(t.Name), q) {
			out = append(out, t)
		}
	}
	return out
}

// AddTable appends an empty table. Blank names are ignored and yield "".
func (c Collection) AddTable(name string) (Collection, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.Clone(), ""
	}
	id := NewID()
	out := append(c.Clone(), Table{ID: id, Name: name, Items: []Item{}})
	return out, id
}

// RenameTable sets a new name; blank names are ignored.
func (c Collection) RenameTable(tableID, name string) Collection {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.Clone()
	}
	return c.updateTable(tableID, func(t *Table) { t.Name = name })
}

// DeleteTable drops the table and everything in it.
func (c Collection) DeleteTable(tableID string) Collection {
	out := Collection{}
	for _, t := range c.Clone() {
		if t.ID != tableID {
			out = append(out, t)
		}
	}
	return out
}

// AddItem appends an unchecked item to a table. Amounts below 1 fall back
// to DefaultAmount. Blank text or an unknown table yields "".
func (c Collection) AddItem(tableID, text string, amount int) (Collection, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return c.Clone(), ""
	}
	if _, ok := c.Find(tableID); !ok {
		return c.Clone(), ""
	}
	if amount < 1 {
		amount = DefaultAmount
	}
	id := NewID()
	out := c.updateTable(tableID, func(t *Table) {
		t.Items = append(t.Items, Item{ID: id, Text: text, Amount: amount})
	})
	return out, id
}

// ToggleItem flips the checked state of one item.
func (c Collection) ToggleItem(tableID, itemID string) Collection {
	return c.updateItem(tableID, itemID, func(it *Item) { it.IsChecked = !it.IsChecked })
}

// SetAmount stores a new amount, clamping negatives to zero.
func (c Collection) SetAmount(tableID, itemID string, amount int) Collection {
	if amount < 0 {
		amount = 0
	}
	return c.updateItem(tableID, itemID, func(it *Item) { it.Amount = amount })
}

// SetText relabels an item; blank text is ignored.
func (c Collection) SetText(tableID, itemID, text string) Collection {
	text = strings.TrimSpace(text)
	if text == "" {
		return c.Clone()
	}
	return c.updateItem(tableID, itemID, func(it *Item) { it.Text = text })
}

// DeleteItem removes one item from a table.
func (c Collection) DeleteItem(tableID, itemID string) Collection {
	return c.updateTable(tableID, func(t *Table) {
		kept := make([]Item, 0, len(t.Items))
		for _, it := range t.Items {
			if it.ID != itemID {
				kept = append(kept, it)
			}
		}
		t.Items = kept
	})
}

func (c Collection) updateTable(tableID string, fn func(*Table)) Collection {
	out := c.Clone()
	for i := range out {
		if out[i].ID == tableID {
			fn(&out[i])
		}
	}
	return out
}

func (c Collection) updateItem(tableID, itemID string, fn func(*Item)) Collection {
	return c.updateTable(tableID, func(t *Table) {
		for j := range t.Items {
			if t.Items[j].ID == itemID {
				fn(&t.Items[j])
			}
		}
	})
}
