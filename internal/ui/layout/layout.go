package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	CompactWidthThreshold  = 90
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is what the header shows on its right side.
type Status struct {
	Coins  int
	Streak int
	Due    int
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(th theme.Theme, width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(th.Palette.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\n%s needs at least %d x %d\n\nCurrent: %d x %d",
			th.Labels.Companion, MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the header bar: app title, screen title, status.
func RenderHeader(th theme.Theme, title string, st Status, width int) string {
	left := lipgloss.NewStyle().
		Foreground(th.Palette.Primary).
		Bold(true).
		Render(" " + th.Assets.Badge + " " + th.Labels.Companion)

	center := lipgloss.NewStyle().
		Foreground(th.Palette.Text).
		Render(title)

	accent := lipgloss.NewStyle().Foreground(th.Palette.Accent)
	right := accent.Render(fmt.Sprintf("🪙 %d", st.Coins)) + "   " +
		accent.Render(fmt.Sprintf("🔥 %d", st.Streak))
	if !IsCompactWidth(width) {
		right += "   " + lipgloss.NewStyle().Foreground(th.Palette.Secondary).Render(fmt.Sprintf("📚 %d due", st.Due))
	}

	innerWidth := max(width-4, 0)
	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	leftGap := max((innerWidth-centerLen)/2-leftLen, 1)
	rightGap := max(innerWidth-leftLen-leftGap-centerLen-rightLen, 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Palette.Border).
		Render(content)
}

// RenderFooter renders the footer with key hints.
func RenderFooter(th theme.Theme, hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(th.Palette.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(th.Palette.TextDim).Render(h.Description))
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Palette.Border).
		Render("  " + strings.Join(parts, "   "))
}

// ContentHeight returns the height left for a screen between header and footer.
func ContentHeight(header, footer string, total int) int {
	return max(total-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	styled := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		Render(content)

	return header + "\n" + styled + "\n" + footer
}
