package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/layout"
	"github.com/kokostudy/koko/internal/ui/theme"
)

const maxSessions = 50

type historyLoadedMsg struct {
	Sessions []rewards.SessionEntry
	Err      error
}

// HistoryScreen displays past review sessions and their awards.
type HistoryScreen struct {
	deps     screen.Deps
	sessions []rewards.SessionEntry
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screen.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     deps,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	svc := s.deps.Rewards
	return func() tea.Msg {
		sessions, err := svc.Sessions(context.Background(), maxSessions)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, components.KeyBack):
			return s, router.Pop()
		case key.Matches(msg, components.KeyUp):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, components.KeyDown):
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case key.Matches(msg, components.KeySelect):
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	th := s.deps.Theme
	if s.errMsg != "" {
		return theme.Centered(th.Bad(), width, fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return theme.Centered(th.Dim(), width, "\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return theme.Centered(th.Dim().Italic(true), width, "\n\n  No sessions yet. Start reviewing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := prefix + sessionLine(sess)

		style := th.Body()
		if i == s.selected {
			style = th.Title()
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAwards(sess, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAwards(sess rewards.SessionEntry, width int) string {
	th := s.deps.Theme
	if len(sess.Awards) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			th.Dim().Italic(true).Render("    No rewards this session")) + "\n"
	}

	var b strings.Builder
	for _, a := range sess.Awards {
		line := fmt.Sprintf("    %s %s  +%d", a.Type.Icon(), a.Reason, a.Amount)
		style := th.Body()
		if a.Type != rewards.AwardReview {
			style = th.Highlight()
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func sessionLine(sess rewards.SessionEntry) string {
	secs := int(sess.Duration.Seconds())
	coins := 0
	for _, a := range sess.Awards {
		if a.Type != rewards.AwardStreak {
			coins += a.Amount
		}
	}
	return fmt.Sprintf("%s  %d:%02d  %d/%d cards  %d coins",
		sess.EndedAt.Local().Format("Jan 02, 2006"), secs/60, secs%60, sess.Reviewed, sess.Due, coins)
}
