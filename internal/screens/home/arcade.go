package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/ui/theme"
)

// renderTitle returns the app title with the theme badge on both sides.
func renderTitle(th theme.Theme, cw int) string {
	title := fmt.Sprintf("%s  %s  %s", th.Assets.Badge, th.Labels.AppTitle, th.Assets.Badge)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(th.Title().Render(title))
}

// renderStatsBar renders coins, tickets, streak and due cards in a
// bordered box matching the content width.
func renderStatsBar(th theme.Theme, ov rewards.Overview, due, cw int, compact bool) string {
	coins := lipgloss.NewStyle().Foreground(th.Palette.Accent).Bold(true)
	tickets := lipgloss.NewStyle().Foreground(th.Palette.Secondary).Bold(true)
	streak := lipgloss.NewStyle().Foreground(th.Palette.Primary).Bold(true)
	dim := th.Dim()

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			coins.Render(fmt.Sprintf("🪙%d", ov.Companion.Funds)),
			tickets.Render(fmt.Sprintf("🎫%d", ov.Companion.BusTickets)),
			streak.Render(fmt.Sprintf("🔥%d", ov.Streak)),
			dueText(th, due, true, dim),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			coins.Render(fmt.Sprintf("🪙 %d COINS", ov.Companion.Funds)),
			tickets.Render(fmt.Sprintf("🎫 %d TICKETS", ov.Companion.BusTickets)),
			streak.Render(fmt.Sprintf("🔥 %d DAY STREAK", ov.Streak)),
			dueText(th, due, false, dim),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(th.Palette.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func dueText(th theme.Theme, due int, compact bool, dim lipgloss.Style) string {
	active := th.Highlight().Bold(true)
	switch {
	case due == 0 && compact:
		return dim.Render("📚0")
	case due == 0:
		return dim.Render("📚 NONE DUE")
	case compact:
		return active.Render(fmt.Sprintf("📚%d", due))
	default:
		return active.Render(fmt.Sprintf("📚 %d DUE", due))
	}
}
