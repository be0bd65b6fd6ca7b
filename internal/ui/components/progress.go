package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/ui/theme"
)

// ProgressBar displays done out of total as a horizontal bar.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// Percent returns the completed fraction in [0, 1]. An empty bar is complete.
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 1
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

// View renders the bar followed by "done/total".
func (p ProgressBar) View(th theme.Theme) string {
	var label string
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(th.Palette.Text).Render(p.Label) + "  "
	}
	count := fmt.Sprintf("  %d/%d", p.Done, p.Total)

	barWidth := max(p.Width-lipgloss.Width(label)-len(count), 4)
	filled := int(float64(barWidth) * p.Percent())

	return label +
		lipgloss.NewStyle().Background(th.Palette.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(th.Palette.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(th.Palette.TextDim).Render(count)
}
