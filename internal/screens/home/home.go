package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/rewards"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/screens/addcard"
	"github.com/kokostudy/koko/internal/screens/history"
	"github.com/kokostudy/koko/internal/screens/quiz"
	"github.com/kokostudy/koko/internal/screens/review"
	"github.com/kokostudy/koko/internal/screens/timer"
	"github.com/kokostudy/koko/internal/screens/vault"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/layout"
	"github.com/kokostudy/koko/internal/ui/theme"
)

type homeLoadedMsg struct {
	Overview rewards.Overview
	Due      int
	Err      error
}

// HomeScreen is the main menu with the companion and today's counters.
type HomeScreen struct {
	deps     screen.Deps
	menu     components.Menu
	overview rewards.Overview
	due      int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps screen.Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START REVIEW", Action: func() tea.Cmd { return router.Push(review.New(deps)) }},
		{Label: "ADD CARD", Action: func() tea.Cmd { return router.Push(addcard.New(deps)) }},
		{Label: "STUDY TIMER", Action: func() tea.Cmd { return router.Push(timer.New(deps)) }},
		{Label: "TAKE QUIZ", Action: func() tea.Cmd { return router.Push(quiz.New(deps)) }},
		{Label: "REWARDS", Action: func() tea.Cmd { return router.Push(vault.New(deps)) }},
		{Label: "HISTORY", Action: func() tea.Cmd { return router.Push(history.New(deps)) }},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Resume reloads the counters after a review or a new card.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		today := deps.Cards.Today()
		due, err := deps.Cards.CountDue(ctx, today)
		if err != nil {
			return homeLoadedMsg{Err: err}
		}
		ov, err := deps.Rewards.Overview(ctx, today, due)
		if err != nil {
			return homeLoadedMsg{Err: err}
		}
		return homeLoadedMsg{Overview: ov, Due: due}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(homeLoadedMsg); ok {
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			h.deps.Log.Error("load home", zap.Error(msg.Err))
			return h, nil
		}
		h.errMsg = ""
		h.overview = msg.Overview
		h.due = msg.Due
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	th := h.deps.Theme
	// height is the content area; add back the header and footer.
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(th, cw))

	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(RenderCompanion(th, h.overview.Mood, h.overview.Companion.CurrentOutfit)))
	}

	switch {
	case h.errMsg != "":
		sections = append(sections, theme.Centered(th.Bad(), cw, "Couldn't load your progress: "+h.errMsg))
	case !h.loaded:
		sections = append(sections, theme.Centered(th.Dim(), cw, "Loading..."))
	default:
		greeting := "Hi " + h.deps.Profile.Greeting() + "! " + moodLine(th, h.overview.Mood, h.due)
		sections = append(sections,
			theme.Centered(th.Body(), cw, greeting),
			renderStatsBar(th, h.overview, h.due, cw, compact))
	}

	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(h.menu.View(th, 22)))

	return components.CabinetFrame(th, strings.Join(sections, "\n\n"), width, height)
}
