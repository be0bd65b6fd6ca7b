package components

import "charm.land/bubbles/v2/key"

// Shared navigation bindings.
var (
	KeyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	KeyDown   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	KeySelect = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	KeyBack   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	KeyNext   = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field"))
	KeyPrev   = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field"))
)
