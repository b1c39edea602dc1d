package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Open   key.Binding
	Back   key.Binding
	Focus  key.Binding
	Search key.Binding
	Toggle key.Binding
	More   key.Binding
	Less   key.Binding
	Amount key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Focus:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check")),
		More:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "amount+1")),
		Less:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "amount-1")),
		Amount: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "set amount")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) tableHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Open, k.Focus, k.Search}
}

func (k keyMap) itemHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.More, k.Less, k.Amount, k.Delete, k.Back}
}
