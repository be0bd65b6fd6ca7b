package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/kokostudy/koko/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Update moves the selection and runs the selected item's action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, KeyUp):
		m.Selected = m.step(-1)
	case key.Matches(kmsg, KeyDown):
		m.Selected = m.step(1)
	case key.Matches(kmsg, KeySelect):
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// step returns the next enabled index in direction dir, or the current one.
func (m Menu) step(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

// View renders the items as arcade buttons of the given width.
func (m Menu) View(th theme.Theme, width int) string {
	buttons := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			buttons[i] = ArcadeButton(th, item.Label, ButtonDisabled, width)
		case i == m.Selected:
			buttons[i] = ArcadeButton(th, item.Label, ButtonSelected, width)
		default:
			buttons[i] = ArcadeButton(th, item.Label, ButtonNormal, width)
		}
	}
	return strings.Join(buttons, "\n")
}
