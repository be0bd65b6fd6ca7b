package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/ui/theme"
)

// Six-row block letters for the companion names.
var glyphs = map[rune][6]string{
	'K': {
		"██╗  ██╗",
		"██║ ██╔╝",
		"█████╔╝ ",
		"██╔═██╗ ",
		"██║  ██╗",
		"╚═╝  ╚═╝",
	},
	'O': {
		" ██████╗ ",
		"██╔═══██╗",
		"██║   ██║",
		"██║   ██║",
		"╚██████╔╝",
		" ╚═════╝ ",
	},
	'M': {
		"███╗   ███╗",
		"████╗ ████║",
		"██╔████╔██║",
		"██║╚██╔╝██║",
		"██║ ╚═╝ ██║",
		"╚═╝     ╚═╝",
	},
	'A': {
		" █████╗ ",
		"██╔══██╗",
		"███████║",
		"██╔══██║",
		"██║  ██║",
		"╚═╝  ╚═╝",
	},
	'X': {
		"██╗  ██╗",
		"╚██╗██╔╝",
		" ╚███╔╝ ",
		" ██╔██╗ ",
		"██╔╝ ██╗",
		"╚═╝  ╚═╝",
	},
}

// blockText spells word in block letters. It reports false if a letter has
// no glyph.
func blockText(word string) (string, bool) {
	var rows [6]strings.Builder
	for _, r := range strings.ToUpper(word) {
		g, ok := glyphs[r]
		if !ok {
			return "", false
		}
		for i := range rows {
			rows[i].WriteString(g[i])
		}
	}
	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n"), true
}

// spaced returns "K O K O" style text.
func spaced(word string) string {
	return strings.Join(strings.Split(strings.ToUpper(word), ""), " ")
}

// RenderBanner returns the companion's name as a banner in the theme's
// primary color, falling back to spaced letters when the terminal is too
// narrow or a letter has no glyph.
func RenderBanner(th theme.Theme, width int) string {
	style := lipgloss.NewStyle().
		Foreground(th.Palette.Primary).
		Bold(true)

	name := th.Labels.Companion
	art, ok := blockText(name)
	if !ok || lipgloss.Width(art)+2 > width {
		return style.Render(spaced(name))
	}
	return style.Render(art)
}
