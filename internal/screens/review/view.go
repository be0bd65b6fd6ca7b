package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/theme"
)

func (s *ReviewScreen) View(width, height int) string {
	th := s.deps.Theme
	switch {
	case s.errMsg != "":
		return theme.Centered(th.Bad(), width,
			fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", s.errMsg))
	case s.ctrl == nil:
		return theme.Centered(th.Dim(), width, "\n\n\nGathering today's cards...")
	case s.total == 0:
		return s.renderNothingDue(width)
	case s.confirmQuit:
		return s.renderQuitConfirm(width)
	}
	return s.renderCard(width)
}

func (s *ReviewScreen) renderCard(width int) string {
	th := s.deps.Theme
	cw := components.ContentWidth(width)

	var b strings.Builder

	bar := components.ProgressBar{Label: "Cards", Done: s.done, Total: s.total, Width: cw}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View(th)))
	b.WriteString("\n\n")

	if s.card.ID == "" {
		b.WriteString(theme.Centered(th.Dim(), width, "Wrapping up..."))
		return b.String()
	}

	question := th.Title().Render("Q: ") + th.Body().Bold(true).Render(s.card.Question)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ArcadeCard(th, question, cw)))
	b.WriteString("\n")

	if s.revealed {
		answer := th.Highlight().Render("A: ") + th.Body().Render(s.card.Answer)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ArcadeCard(th, answer, cw)))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderRatingButtons(cw)))
	} else {
		b.WriteString("\n")
		b.WriteString(theme.Centered(th.Hint(), width, "Think of the answer, then press space"))
	}
	b.WriteString("\n\n")

	if s.saveErr != "" {
		b.WriteString(theme.Centered(th.Bad(), width, s.saveErr))
		b.WriteString("\n")
	} else if line := s.feedbackLine(); line != "" {
		b.WriteString(theme.Centered(th.Good(), width, line))
		b.WriteString("\n")
	}

	return b.String()
}

// renderRatingButtons shows one button per rating with the interval it
// would schedule.
func (s *ReviewScreen) renderRatingButtons(cw int) string {
	th := s.deps.Theme
	w := max(cw/3-2, 8)
	state := components.ButtonNormal
	if s.busy {
		state = components.ButtonDisabled
	}

	ratings := []flashcard.Difficulty{flashcard.Hard, flashcard.Medium, flashcard.Easy}
	buttons := make([]string, len(ratings))
	for i, r := range ratings {
		days := max(s.deps.Scheduler.Strategy().IntervalDays(s.card, r), 1)
		label := fmt.Sprintf("%d %s · %s", i+1, r.Label(), formatDays(days))
		buttons[i] = components.ArcadeButton(th, label, state, w)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// feedbackLine describes the last rating and what it earned.
func (s *ReviewScreen) feedbackLine() string {
	if s.last == nil {
		return ""
	}
	line := fmt.Sprintf("Saved! Next review in %s", formatDays(s.last.IntervalDays))
	for _, a := range s.lastAwards {
		switch a.Type {
		case rewards.AwardReview:
			line += fmt.Sprintf("  +%d %s", a.Amount, s.deps.Theme.Labels.Coins)
		case rewards.AwardStreak:
			line += fmt.Sprintf("  %s %s", a.Type.Icon(), a.Reason)
		}
	}
	return line
}

func (s *ReviewScreen) renderNothingDue(width int) string {
	th := s.deps.Theme
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(th.Palette.Primary).Render(th.Assets.Companion)))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(th.Title(), width, "Nothing due today!"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(th.Dim(), width,
		fmt.Sprintf("%s is proud of you. Come back tomorrow.", th.Labels.Companion)))
	return b.String()
}

func (s *ReviewScreen) renderQuitConfirm(width int) string {
	th := s.deps.Theme
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(th.Body().Bold(true), width, "End session early?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(th.Dim(), width, "Cards you already rated are saved."))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(th.Good(), width, "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(th.Highlight(), width, "[N] No, keep going"))
	return b.String()
}

func formatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
