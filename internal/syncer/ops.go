package syncer

import "github.com/Makepad-fr/checklist/internal/model"

// The helpers below wrap Mutate for each edit a client can make. An edit
// that leaves the Collection unchanged (blank text, unknown id) schedules
// no write.

// AddTable creates a table and returns its id ("" for a blank name).
func (c *Controller) AddTable(name string) string {
	var id string
	c.Mutate(func(tables model.Collection) model.Collection {
		var next model.Collection
		next, id = tables.AddTable(name)
		return next
	})
	return id
}

func (c *Controller) RenameTable(tableID, name string) {
	c.Mutate(func(tables model.Collection) model.Collection {
		return tables.RenameTable(tableID, name)
	})
}

// DeleteTable removes the table and clears focus if it was focused.
func (c *Controller) DeleteTable(tableID string) {
	c.Mutate(func(tables model.Collection) model.Collection {
		return tables.DeleteTable(tableID)
	})
}

// AddItem appends an item and returns its id ("" when nothing was added).
func (c *Controller) AddItem(tableID, text string, amount int) string {
	var id string
	c.Mutate(func(tables model.Collection) model.Collection {
		var next model.Collection
		next, id = tables.AddItem(tableID, text, amount)
		return next
	})
	return id
}

func (c *Controller) ToggleItem(tableID, itemID string) {
	c.Mutate(func(tables model.Collection) model.Collection {
		return tables.ToggleItem(tableID, itemID)
	})
}

func (c *Controller) SetAmount(tableID, itemID string, amount int) {
	c.Mutate(func(tables model.Collection) model.Collection {
		return tables.SetAmount(tableID, itemID, amount)
	})
}

func (c *Controller) SetText(tableID, itemID, text string) {
	c.Mutate(func(tables model.Collection) model.Collection {
		return tables.SetText(tableID, itemID, text)
	})
}

func (c *Controller) DeleteItem(tableID, itemID string) {
	c.Mutate(func(tables model.Collection) model.Collection {
		return tables.DeleteItem(tableID, itemID)
	})
}
