package model

import "fmt"

// Stats counts checked and unchecked items in a table.
func (t Table) Stats() (checked, pending int) {
	for _, it := range t.Items {
		if it.IsChecked {
			checked++
		} else {
			pending++
		}
	}
	return
}

// Progress renders the "N of M completed" caption, or "" for an empty table.
func (t Table) Progress() string {
	if len(t.Items) == 0 {
		return ""
	}
	checked, _ := t.Stats()
	return fmt.Sprintf("%d of %d completed", checked, len(t.Items))
}

// Stats sums item counts over every table.
func (c Collection) Stats() (checked, pending int) {
	for _, t := range c {
		d, p := t.Stats()
		checked += d
		pending += p
	}
	return
}
