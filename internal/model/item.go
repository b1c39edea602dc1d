package model

// Item is one line of a checklist table.
// JSON keys match the snapshot format the web client writes.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Amount    int    `json:"amount"`
	IsChecked bool   `json:"isChecked"`
}

// Table is a named, ordered list of items. Insertion order is display order.
type Table struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Collection is the whole persisted unit.
type Collection []Table
