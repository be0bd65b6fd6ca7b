package review

import "charm.land/bubbles/v2/key"

var (
	keyReveal = key.NewBinding(key.WithKeys("space", "enter"), key.WithHelp("space", "show answer"))
	keyHard   = key.NewBinding(key.WithKeys("1", "h"), key.WithHelp("1", "hard"))
	keyMedium = key.NewBinding(key.WithKeys("2", "m"), key.WithHelp("2", "medium"))
	keyEasy   = key.NewBinding(key.WithKeys("3", "e"), key.WithHelp("3", "easy"))
	keySkip   = key.NewBinding(key.WithKeys("s", "tab"), key.WithHelp("s", "skip"))
	keyQuit   = key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "quit"))
	keyYes    = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "end session"))
	keyNo     = key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "keep going"))
)
