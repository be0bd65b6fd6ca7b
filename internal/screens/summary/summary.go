package summary

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/session"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/layout"
	"github.com/kokostudy/koko/internal/ui/theme"
)

var keyContinue = key.NewBinding(key.WithKeys("enter", "esc", "space"), key.WithHelp("enter", "continue"))

// SummaryScreen displays the result of a finished review session.
type SummaryScreen struct {
	th      theme.Theme
	summary *session.Summary
	awards  []rewards.Award
	mood    rewards.Mood
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen for sum, with the awards earned during the
// session and the companion's mood afterwards.
func New(deps screen.Deps, sum *session.Summary, awards []rewards.Award, mood rewards.Mood) *SummaryScreen {
	return &SummaryScreen{th: deps.Theme, summary: sum, awards: awards, mood: mood}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, keyContinue) {
		return s, router.Pop()
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	th := s.th

	var b strings.Builder
	b.WriteString(theme.Centered(th.Title(), width, headline(sum)))
	b.WriteString("\n")
	b.WriteString(theme.Centered(th.Dim(), width,
		fmt.Sprintf("%s is %s %s", th.Labels.Companion, s.mood, s.mood.Icon())))
	b.WriteString("\n\n")

	b.WriteString(theme.Centered(th.Dim(), width, "Duration: "+formatDuration(sum)))
	b.WriteString("\n\n")

	bar := components.ProgressBar{
		Label: "Reviewed",
		Done:  sum.Reviewed,
		Total: sum.Due,
		Width: min(width-8, 50),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View(th)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Due: %d    Reviewed: %d    Skipped: %d    Left: %d",
		sum.Due, sum.Reviewed, sum.Skipped, sum.Remaining)
	b.WriteString(theme.Centered(th.Body(), width, stats))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(th.Palette.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	if sum.Reviewed > 0 {
		b.WriteString(theme.Centered(th.Dim(), width, "Ratings"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, d := range flashcard.AllDifficulties() {
			n := sum.ByRating[d]
			if n == 0 {
				continue
			}
			line := fmt.Sprintf("%-8s %d", d.Label(), n)
			style := lipgloss.NewStyle().Foreground(ratingColor(th, d))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
			b.WriteString("\n")
		}
	}

	if len(s.awards) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Centered(th.Dim(), width, "Rewards"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, line := range awardLines(s.awards) {
			b.WriteString(theme.Centered(th.Highlight(), width, line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func headline(sum *session.Summary) string {
	switch {
	case sum.Reviewed == 0:
		return "See you next time!"
	case sum.Remaining == 0:
		return "All caught up!"
	default:
		return "Session complete!"
	}
}

func formatDuration(sum *session.Summary) string {
	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// awardLines folds per-card coins into one line and lists the rest.
func awardLines(awards []rewards.Award) []string {
	var coins, cards int
	var lines []string
	for _, a := range awards {
		if a.Type == rewards.AwardReview {
			coins += a.Amount
			cards++
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s  +%d %s", a.Type.Icon(), a.Reason, a.Amount, plural(a.Type.Unit(), a.Amount)))
	}
	if cards > 0 {
		head := fmt.Sprintf("%s %d cards reviewed  +%d %s", rewards.AwardReview.Icon(), cards, coins, plural("coin", coins))
		lines = append([]string{head}, lines...)
	}
	return lines
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func ratingColor(th theme.Theme, d flashcard.Difficulty) color.Color {
	switch d {
	case flashcard.Easy:
		return th.Palette.Success
	case flashcard.Medium:
		return th.Palette.Secondary
	case flashcard.Hard:
		return th.Palette.Accent
	default:
		return th.Palette.Text
	}
}
