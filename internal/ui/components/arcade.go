package components

import (
	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/ui/theme"
)

// ButtonState selects how ArcadeButton draws.
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonSelected
	ButtonDisabled
)

// ContentWidth returns the uniform inner width used for all sections so
// stacked boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// CabinetFrame wraps content in a double border centered in width x height.
func CabinetFrame(th theme.Theme, content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(th.Palette.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded card at content width cw.
func ArcadeCard(th theme.Theme, content string, cw int) string {
	return th.Card().
		Width(cw - 2).
		Align(lipgloss.Center).
		Render(content)
}

// ArcadeButton renders a bordered button.
func ArcadeButton(th theme.Theme, label string, state ButtonState, width int) string {
	st := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch state {
	case ButtonSelected:
		return st.Bold(true).
			Foreground(th.Palette.BgDark).
			Background(th.Palette.Primary).
			BorderForeground(th.Palette.Primary).
			Render("▸ " + label)
	case ButtonDisabled:
		return st.Foreground(th.Palette.TextDim).
			BorderForeground(th.Palette.Border).
			Render(label)
	default:
		return st.Foreground(th.Palette.Text).
			BorderForeground(th.Palette.Border).
			Render(label)
	}
}
