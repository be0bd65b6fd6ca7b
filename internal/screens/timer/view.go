package timer

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/study"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/theme"
)

func (s *TimerScreen) View(width, height int) string {
	th := s.deps.Theme
	if s.errMsg != "" {
		return theme.Centered(th.Bad(), width, fmt.Sprintf("\n\nError: %s\n\nPress esc to go back.", s.errMsg))
	}
	if !s.loaded {
		return theme.Centered(th.Dim(), width, "\n\n  Loading courses...")
	}

	cw := components.ContentWidth(width)
	var body string
	switch s.phase {
	case phasePick:
		body = s.viewPick(th, cw)
	case phaseRun:
		body = s.viewRun(th, cw)
	case phaseReflect:
		body = s.viewReflect(th, cw)
	case phaseDone:
		body = s.viewDone(th, cw)
	}
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *TimerScreen) viewPick(th theme.Theme, cw int) string {
	if len(s.courses) == 0 {
		return theme.Centered(th.Dim().Italic(true), cw, "No courses yet. Add a card to start one!")
	}
	return theme.Centered(th.Title(), cw, "What are you studying?") + "\n\n" +
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s.menu.View(th, min(cw-4, 36)))
}

func (s *TimerScreen) viewRun(th theme.Theme, cw int) string {
	modeStyle := th.Highlight()
	if s.mode == modeBreak {
		modeStyle = th.Good()
	}
	state := s.mode.String()
	if s.paused {
		state += " · PAUSED"
	}

	total := s.length(s.mode)
	bar := components.ProgressBar{
		Done:  int((total - s.remaining) / time.Second),
		Total: int(total / time.Second),
		Width: cw - 6,
	}

	lines := []string{
		theme.Centered(th.Body().Bold(true), cw-6, label(s.course)),
		theme.Centered(modeStyle, cw-6, state),
		theme.Centered(th.Title(), cw-6, clock(s.remaining)),
		bar.View(th),
		theme.Centered(th.Dim(), cw-6, fmt.Sprintf("Focused %s · %d %s done",
			study.FormatMinutes(int(s.focused/time.Minute)), s.rounds, rounds(s.rounds))),
	}
	if q := s.quote(); q != "" {
		lines = append(lines, theme.Centered(th.Hint(), cw-6, "“"+q+"”"))
	}
	return components.ArcadeCard(th, strings.Join(lines, "\n\n"), cw)
}

func (s *TimerScreen) viewReflect(th theme.Theme, cw int) string {
	sections := []string{
		th.Title().Render("How did it go?"),
		s.minutes.View(th),
		s.notes.View(th),
		s.mood.View(th),
		s.rating.View(th),
	}
	form := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n"))
	out := components.ArcadeCard(th, form, cw)
	switch {
	case s.busy:
		out += "\n\n" + theme.Centered(th.Dim(), cw, "Saving...")
	case s.formErr != "":
		out += "\n\n" + theme.Centered(th.Bad(), cw, s.formErr)
	}
	return out
}

func (s *TimerScreen) viewDone(th theme.Theme, cw int) string {
	sess := s.result.Session
	lines := []string{
		th.Good().Render("Session saved!"),
		th.Body().Render(fmt.Sprintf("%s on %s", study.FormatMinutes(sess.Minutes), label(s.course))),
	}
	for _, a := range s.result.Awards {
		lines = append(lines, th.Highlight().Render(fmt.Sprintf("%s +%d %s", a.Type.Icon(), a.Amount, a.Reason)))
	}
	if q := s.quote(); q != "" {
		lines = append(lines, th.Hint().Render("“"+q+"”"))
	}
	return components.ArcadeCard(th, strings.Join(lines, "\n\n"), cw)
}

// quote picks a motivational line that changes with each finished block.
func (s *TimerScreen) quote() string {
	qs := s.deps.Theme.Assets.Quotes
	if len(qs) == 0 {
		return ""
	}
	return qs[s.rounds%len(qs)]
}

// clock renders d as MM:SS.
func clock(d time.Duration) string {
	d = max(d, 0).Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}

func rounds(n int) string {
	if n == 1 {
		return "round"
	}
	return "rounds"
}
